// Package errors provides standardized error handling for the command center.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeLiveDataNotFound   ErrorCode = "LIVE_DATA_NOT_FOUND"
	ErrCodeLiveDataInvalid    ErrorCode = "LIVE_DATA_INVALID"
	ErrCodeLiveDataReadFailed ErrorCode = "LIVE_DATA_READ_FAILED"
	ErrCodeCacheReadFailed    ErrorCode = "CACHE_READ_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeSnapshotWriteFailed      ErrorCode = "SNAPSHOT_WRITE_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"

	ErrCodeActivityIndexFailed  ErrorCode = "ACTIVITY_INDEX_FAILED"
	ErrCodeActivitySearchFailed ErrorCode = "ACTIVITY_SEARCH_FAILED"
	ErrCodeSearchTimeout        ErrorCode = "SEARCH_TIMEOUT"

	ErrCodeWebhookSendFailed ErrorCode = "WEBHOOK_SEND_FAILED"
	ErrCodeWebhookTimeout    ErrorCode = "WEBHOOK_TIMEOUT"
	ErrCodeWebhookPending    ErrorCode = "WEBHOOK_PENDING"
	ErrCodeUnknownCommand    ErrorCode = "UNKNOWN_COMMAND"
	ErrCodeUnknownEntity     ErrorCode = "UNKNOWN_ENTITY"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeGitNotARepository ErrorCode = "GIT_NOT_A_REPOSITORY"
	ErrCodeGitAuthFailed     ErrorCode = "GIT_AUTH_FAILED"
	ErrCodeGitPushFailed     ErrorCode = "GIT_PUSH_FAILED"
	ErrCodeLaunchFailed      ErrorCode = "LAUNCH_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewLiveDataNotFoundError creates a non-retryable missing data file error.
func NewLiveDataNotFoundError(path string) *StandardError {
	return &StandardError{
		Code:      ErrCodeLiveDataNotFound,
		Message:   "Live data file not found",
		Details:   fmt.Sprintf("path: %s", path),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewLiveDataInvalidError creates a non-retryable schema validation error.
func NewLiveDataInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeLiveDataInvalid,
		Message:   "Live data failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewLiveDataReadFailedError creates a retryable file I/O error.
func NewLiveDataReadFailedError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLiveDataReadFailed,
		Message:   "Live data file read error",
		Details:   fmt.Sprintf("path: %s: %s", path, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheReadFailedError creates a retryable cache error.
func NewCacheReadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheReadFailed,
		Message:   "Redis cache read error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSnapshotWriteFailedError creates a retryable snapshot insert error.
func NewSnapshotWriteFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSnapshotWriteFailed,
		Message:   "Snapshot insert operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(query string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("query: %s, error: %s", query, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewActivityIndexFailedError creates a retryable Elasticsearch indexing error.
func NewActivityIndexFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeActivityIndexFailed,
		Message:   "Activity event indexing failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewActivitySearchFailedError creates a retryable Elasticsearch query error.
func NewActivitySearchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeActivitySearchFailed,
		Message:   "Activity search query error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchTimeoutError creates a retryable search timeout error.
func NewSearchTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchTimeout,
		Message:   "Activity search timeout",
		Details:   "query exceeded timeout threshold",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewWebhookSendFailedError creates a retryable webhook delivery error.
func NewWebhookSendFailedError(endpoint string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWebhookSendFailed,
		Message:   "Webhook delivery failed",
		Details:   fmt.Sprintf("endpoint: %s, error: %s", endpoint, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewWebhookTimeoutError creates a retryable webhook timeout error.
func NewWebhookTimeoutError(endpoint string) *StandardError {
	return &StandardError{
		Code:      ErrCodeWebhookTimeout,
		Message:   "Webhook call timeout",
		Details:   fmt.Sprintf("endpoint: %s", endpoint),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewWebhookPendingError creates a non-retryable error for webhooks that are
// configured but not provisioned yet.
func NewWebhookPendingError(name string) *StandardError {
	return &StandardError{
		Code:      ErrCodeWebhookPending,
		Message:   "Webhook is pending setup",
		Details:   fmt.Sprintf("webhook: %s", name),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownCommandError creates a non-retryable error for unregistered quick commands.
func NewUnknownCommandError(name string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownCommand,
		Message:   "Unknown quick command",
		Details:   fmt.Sprintf("command: %s", name),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownEntityError creates a non-retryable error for codes not in the registry.
func NewUnknownEntityError(code string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownEntity,
		Message:   "Unknown business entity",
		Details:   fmt.Sprintf("entityCode: %s", code),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewGitNotARepositoryError creates a non-retryable error for publish targets
// outside a git work tree.
func NewGitNotARepositoryError(dir string) *StandardError {
	return &StandardError{
		Code:      ErrCodeGitNotARepository,
		Message:   "Directory is not a git repository",
		Details:   fmt.Sprintf("dir: %s", dir),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGitAuthFailedError creates a retryable push authentication error. The
// documented remedy is enabling the platform credential helper and retrying.
func NewGitAuthFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeGitAuthFailed,
		Message:   "Push authentication failed",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewGitPushFailedError creates a non-retryable push error.
func NewGitPushFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeGitPushFailed,
		Message:   "Push to remote failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewLaunchFailedError creates a non-retryable launcher error.
func NewLaunchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLaunchFailed,
		Message:   "Dashboard launch failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// Generic constructors

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "TIMEOUT_ERROR",
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return &StandardError{
		Code:      "RESOURCE_NOT_FOUND",
		Message:   fmt.Sprintf("Resource not found in %s", service),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Retry Policy
// ==========================

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCacheReadFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeSnapshotWriteFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeActivityIndexFailed,
		ErrCodeActivitySearchFailed,
		ErrCodeWebhookSendFailed,
		ErrCodeNotificationSendFailed:
		return 3 // Retryable technical errors

	case ErrCodeSearchTimeout,
		ErrCodeWebhookTimeout:
		return 2 // Partial retry for timeouts

	case ErrCodeGitAuthFailed:
		return 1 // One retry after enabling the credential helper

	default:
		return 0 // Business errors: no retry
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "LIVE_DATA") || strings.Contains(codeStr, "CACHE"):
		return "LIVE_DATA"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "SNAPSHOT") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "ACTIVITY") || strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "WEBHOOK") || strings.Contains(codeStr, "COMMAND"):
		return "COMMAND"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "GIT") || strings.Contains(codeStr, "LAUNCH"):
		return "OPERATIONS"
	default:
		return "OTHER"
	}
}
