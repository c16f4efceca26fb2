package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/customer-pulse/errors"
	dto "github.com/johnquangdev/customer-pulse/internal/adapter/dto/recovery"
	"github.com/johnquangdev/customer-pulse/internal/usecase/recovery"
)

// Recovery handles transcript recovery sweeps
type Recovery struct {
	svc    recovery.Service
	logger *zap.Logger
}

// NewRecoveryHandler creates a new recovery handler
func NewRecoveryHandler(svc recovery.Service, logger *zap.Logger) *Recovery {
	return &Recovery{svc: svc, logger: logger}
}

// Sweep godoc
// @Summary      Run a transcript recovery sweep
// @Description  dry-run lists candidates only; test-one and batch recover transcripts and hand them to the task runner
// @Tags         recovery
// @Accept       json
// @Produce      json
// @Param        request body dto.SweepRequest true "Sweep options"
// @Success      200 {object} dto.SweepResponse
// @Failure      400 {object} common.ErrorResponse
// @Failure      401 {object} common.ErrorResponse
// @Security     BearerAuth
// @Router       /recovery/sweep [post]
func (h *Recovery) Sweep(c echo.Context) error {
	var req dto.SweepRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	in := recovery.SweepRequest{
		Mode:  recovery.Mode(req.Mode),
		Limit: req.Limit,
		Debug: req.Debug,
	}
	if req.MeetingID != nil {
		id, err := uuid.Parse(*req.MeetingID)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("meeting_id must be a uuid"))
		}
		in.MeetingID = &id
	}

	res, err := h.svc.Sweep(c.Request().Context(), in)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, dto.FromResult(res))
}
