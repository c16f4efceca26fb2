package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/customer-pulse/errors"
	"github.com/johnquangdev/customer-pulse/internal/adapter/dto/common"
	"github.com/johnquangdev/customer-pulse/internal/domain/entities"
)

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// bindAndValidate decodes the JSON body into req and runs its validate tags
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload()
	}
	if err := c.Validate(req); err != nil {
		return errors.ErrInvalidArgument(err.Error())
	}
	return nil
}

// toAppError maps domain errors onto the HTTP error classes
func toAppError(err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	switch {
	case stdErrors.Is(err, entities.ErrInvalidSweepMode),
		stdErrors.Is(err, entities.ErrInvalidSourceType),
		stdErrors.Is(err, entities.ErrInvalidRequest):
		return errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, entities.ErrMeetingNotFound):
		return errors.ErrNotFound("meeting")
	case stdErrors.Is(err, entities.ErrThreadNotFound):
		return errors.ErrNotFound("thread")
	case stdErrors.Is(err, entities.ErrMissingOwner):
		return errors.ErrProcessingFailed(err)
	case stdErrors.Is(err, entities.ErrUnauthorized):
		return errors.ErrUnauthenticated()
	}
	return errors.ErrInternal(err)
}

// HandleSuccess writes data as the 200 response body using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusOK, data)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	appErr := toAppError(err)

	if logger != nil {
		log := logger.Warn
		if appErr.HTTPCode >= http.StatusInternalServerError {
			log = logger.Error
		}
		log("http.response.error",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Stringer("app_code", appErr.Code),
			zap.Error(err),
		)
	}

	return c.JSON(appErr.HTTPCode, common.NewErrorResponse(appErr))
}
