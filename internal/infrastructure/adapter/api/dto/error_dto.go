package dto

import (
	"context"
	"errors"
	"net/http"

	errs "github.com/amirhossein-jamali/schema-ledger/internal/domain/error"
)

// ErrorResponse represents a standardized error response for the API
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// NewErrorResponse builds the response body for err. Validation failures list their issues.
func NewErrorResponse(err error) ErrorResponse {
	resp := ErrorResponse{
		Code:    errs.ErrorCode(err),
		Message: err.Error(),
	}

	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		resp.Details = validationErr.Issues
	}
	if resp.Code == errs.CodeInternalServer && !errors.Is(err, context.DeadlineExceeded) {
		resp.Message = "Internal server error"
	}
	return resp
}

// StatusCode maps a domain error onto an HTTP status
func StatusCode(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}

	switch errs.ErrorCode(err) {
	case errs.CodeValidationFailed, errs.CodeMigrationFailed, errs.CodeFailedMigrationPresent:
		return http.StatusUnprocessableEntity
	case errs.CodeBaselineRefused, errs.CodeHistoryNotEmpty, errs.CodeLockNotAcquired:
		return http.StatusConflict
	case errs.CodeHistoryNotFound:
		return http.StatusNotFound
	case errs.CodeInvalidRequest, errs.CodeInvalidVersion, errs.CodeInvalidTarget,
		errs.CodeInvalidMigrationName, errs.CodeDuplicateMigration, errs.CodeUnreadableLocation:
		return http.StatusBadRequest
	case errs.CodeDatabaseConnection:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
