package common

import (
	"github.com/johnquangdev/customer-pulse/errors"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    errors.ErrorCode  `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

// NewErrorResponse builds the error body for an AppError
func NewErrorResponse(appErr errors.AppError) ErrorResponse {
	details := appErr.Details
	if appErr.Raw != nil {
		details = appErr.WithDetail("cause", appErr.Raw.Error()).Details
	}
	return ErrorResponse{
		Error:   appErr.Message,
		Code:    appErr.Code,
		Details: details,
	}
}

// StatusResponse is a plain acknowledgement
type StatusResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}
