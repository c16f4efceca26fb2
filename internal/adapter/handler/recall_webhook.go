package handler

import (
	"encoding/json"
	stdErrors "errors"
	"io"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/customer-pulse/errors"
	"github.com/johnquangdev/customer-pulse/internal/adapter/dto/common"
	recoverydto "github.com/johnquangdev/customer-pulse/internal/adapter/dto/recovery"
	dto "github.com/johnquangdev/customer-pulse/internal/adapter/dto/webhook"
	"github.com/johnquangdev/customer-pulse/internal/domain/entities"
	"github.com/johnquangdev/customer-pulse/internal/usecase/recovery"
	"github.com/johnquangdev/customer-pulse/pkg/webhook"
)

// RecallSignatureHeader carries the hex HMAC-SHA256 of the raw body
const RecallSignatureHeader = "X-Recall-Signature"

// RecallWebhook handles recording vendor webhooks
type RecallWebhook struct {
	svc    recovery.Service
	secret string
	logger *zap.Logger
}

// NewRecallWebhookHandler creates a new webhook handler
func NewRecallWebhookHandler(svc recovery.Service, secret string, logger *zap.Logger) *RecallWebhook {
	return &RecallWebhook{svc: svc, secret: secret, logger: logger}
}

// RecallWebhookResponse acknowledges a processed webhook
type RecallWebhookResponse struct {
	Status string      `json:"status"`
	BotID  string      `json:"bot_id"`
	Result interface{} `json:"result"`
}

// Handle godoc
// @Summary      Recording vendor webhook
// @Description  bot.done and transcript.done events run a single-meeting recovery sweep
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Recall-Signature header string true "HMAC-SHA256 hex of the body"
// @Success      200 {object} RecallWebhookResponse
// @Failure      401 {object} common.ErrorResponse
// @Router       /webhooks/recall [post]
func (h *RecallWebhook) Handle(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	if !webhook.VerifyHMAC(h.secret, body, c.Request().Header.Get(RecallSignatureHeader)) {
		return HandleError(h.logger, c, errors.ErrInvalidSignature())
	}

	var event dto.RecallEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	if !event.TriggersRecovery() {
		return HandleSuccess(h.logger, c, common.StatusResponse{Status: "ignored", Reason: "event " + event.Event})
	}

	botID := event.BotID()
	if botID == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("event has no bot id"))
	}

	if h.logger != nil {
		h.logger.Info("🪝 Recall webhook received",
			zap.String("event", event.Event),
			zap.String("bot_id", botID),
		)
	}

	res, err := h.svc.HandleBotEvent(c.Request().Context(), botID)
	if err != nil {
		if stdErrors.Is(err, entities.ErrMeetingNotFound) {
			return HandleSuccess(h.logger, c, common.StatusResponse{Status: "ignored", Reason: "unknown bot"})
		}
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, RecallWebhookResponse{
		Status: "processed",
		BotID:  botID,
		Result: recoverydto.FromResult(res),
	})
}
