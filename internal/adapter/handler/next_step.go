package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	dto "github.com/johnquangdev/customer-pulse/internal/adapter/dto/nextstep"
	"github.com/johnquangdev/customer-pulse/internal/domain/entities"
	"github.com/johnquangdev/customer-pulse/internal/usecase/nextstep"
)

// NextStep handles next step extraction
type NextStep struct {
	svc    nextstep.Service
	logger *zap.Logger
}

// NewNextStepHandler creates a new next step handler
func NewNextStepHandler(svc nextstep.Service, logger *zap.Logger) *NextStep {
	return &NextStep{svc: svc, logger: logger}
}

// Extract godoc
// @Summary      Extract next steps from a summarized thread or meeting
// @Tags         next-steps
// @Accept       json
// @Produce      json
// @Param        request body dto.ExtractRequest true "Source to extract from"
// @Success      200 {object} dto.ExtractResponse
// @Failure      400 {object} common.ErrorResponse
// @Failure      404 {object} common.ErrorResponse
// @Failure      422 {object} common.ErrorResponse
// @Security     BearerAuth
// @Router       /next-steps/extract [post]
func (h *NextStep) Extract(c echo.Context) error {
	var req dto.ExtractRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	res, err := h.svc.Extract(c.Request().Context(), nextstep.ExtractRequest{
		SourceType: entities.SourceType(req.SourceType),
		SourceID:   req.SourceID,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, dto.FromResult(res))
}
