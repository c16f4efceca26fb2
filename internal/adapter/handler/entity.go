package handler

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/customer-pulse/errors"
	dto "github.com/johnquangdev/customer-pulse/internal/adapter/dto/entity"
	"github.com/johnquangdev/customer-pulse/internal/usecase/entity"
)

// Entity handles thread entity resolution
type Entity struct {
	svc    entity.Service
	logger *zap.Logger
}

// NewEntityHandler creates a new entity handler
func NewEntityHandler(svc entity.Service, logger *zap.Logger) *Entity {
	return &Entity{svc: svc, logger: logger}
}

// ResolveEntities godoc
// @Summary      Resolve companies and customers of an email thread
// @Description  Creates missing companies and prospects for business participants and queues the thread for analysis
// @Tags         threads
// @Accept       json
// @Produce      json
// @Param        thread_id path string true "Thread ID"
// @Param        request body dto.ResolveRequest true "Thread owner"
// @Success      200 {object} dto.ResolveResponse
// @Failure      400 {object} common.ErrorResponse
// @Failure      404 {object} common.ErrorResponse
// @Security     BearerAuth
// @Router       /threads/{thread_id}/resolve-entities [post]
func (h *Entity) ResolveEntities(c echo.Context) error {
	threadID := strings.TrimSpace(c.Param("thread_id"))
	if threadID == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("thread_id is required"))
	}

	var req dto.ResolveRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("user_id must be a uuid"))
	}

	res, err := h.svc.ResolveThreadEntities(c.Request().Context(), userID, threadID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, dto.FromResult(res))
}
