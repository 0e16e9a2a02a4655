// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	"net/http"
	"time"
)

// ErrorHandler writes standardized errors to HTTP responses.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// WriteError normalizes err to a StandardError, logs it, and writes the JSON
// error body with the mapped status code.
func (h *ErrorHandler) WriteError(w http.ResponseWriter, err error) {
	stdErr := h.normalizeError(err)

	h.logger.Error("request failed", map[string]interface{}{
		"errorCode": string(stdErr.Code),
		"category":  GetErrorCategory(stdErr.Code),
		"details":   stdErr.Details,
		"retryable": stdErr.Retryable,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(HTTPStatus(stdErr.Code))
	_ = json.NewEncoder(w).Encode(stdErr)
}

// normalizeError ensures we always have a StandardError
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// HTTPStatus maps error codes to response status codes.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeLiveDataNotFound, ErrCodeUnknownEntity, "RESOURCE_NOT_FOUND":
		return http.StatusNotFound
	case ErrCodeLiveDataInvalid, ErrCodeUnknownCommand, ErrCodeWebhookPending:
		return http.StatusBadRequest
	case ErrCodeWebhookTimeout, ErrCodeSearchTimeout, "TIMEOUT_ERROR":
		return http.StatusGatewayTimeout
	case ErrCodeWebhookSendFailed, "EXTERNAL_SERVICE_ERROR":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
