// Package errors provides standardized error handling for the matching engine.
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
	ErrCodeAnalysisFailed      ErrorCode = "ANALYSIS_FAILED"
	ErrCodeUnsupportedEncoding ErrorCode = "UNSUPPORTED_ENCODING"

	ErrCodeStudentNotFound ErrorCode = "STUDENT_NOT_FOUND"
	ErrCodePostingNotFound ErrorCode = "POSTING_NOT_FOUND"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"

	ErrCodeSearchQueryFailed ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeSearchTimeout     ErrorCode = "SEARCH_TIMEOUT"
	ErrCodeIndexNotFound     ErrorCode = "INDEX_NOT_FOUND"

	ErrCodeInvalidFilterFormat ErrorCode = "INVALID_FILTER_FORMAT"

	ErrCodeDuplicateApplication ErrorCode = "DUPLICATE_APPLICATION"
	ErrCodeApplicationClosed    ErrorCode = "APPLICATION_CLOSED"
	ErrCodeDeadlinePassed       ErrorCode = "DEADLINE_PASSED"
	ErrCodeCapacityReached      ErrorCode = "CAPACITY_REACHED"
	ErrCodeCGPABelowMinimum     ErrorCode = "CGPA_BELOW_MINIMUM"
	ErrCodeBranchMismatch       ErrorCode = "BRANCH_MISMATCH"

	ErrCodeNotificationPublishFailed ErrorCode = "NOTIFICATION_PUBLISH_FAILED"
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

// NewAnalysisFailedError creates a non-retryable resume analysis error.
func NewAnalysisFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAnalysisFailed,
		Message:   "Resume analysis failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnsupportedEncodingError creates a non-retryable document encoding error.
func NewUnsupportedEncodingError(documentName, contentType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnsupportedEncoding,
		Message:   "Document encoding is not supported",
		Details:   fmt.Sprintf("document: %s, contentType: %s", documentName, contentType),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStudentNotFoundError creates a non-retryable missing student error.
func NewStudentNotFoundError(studentID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeStudentNotFound,
		Message:   "Student not found",
		Details:   fmt.Sprintf("studentId: %s", studentID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPostingNotFoundError creates a non-retryable missing posting error.
func NewPostingNotFoundError(postingID string) *StandardError {
	return &StandardError{
		Code:      ErrCodePostingNotFound,
		Message:   "Internship posting not found",
		Details:   fmt.Sprintf("postingId: %s", postingID),
		Retryable: false,
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

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseInsertFailedError creates a retryable database insert error.
func NewDatabaseInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsertFailed,
		Message:   "Database insert operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError creates a retryable search query error.
func NewSearchQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Elasticsearch query error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchTimeoutError creates a retryable search timeout error.
func NewSearchTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchTimeout,
		Message:   "Elasticsearch query timeout",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIndexNotFoundError creates a non-retryable index not found error.
func NewIndexNotFoundError(indexName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexNotFound,
		Message:   "Elasticsearch index not found",
		Details:   fmt.Sprintf("indexName: %s", indexName),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidFilterFormatError creates a non-retryable filter format error.
func NewInvalidFilterFormatError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidFilterFormat,
		Message:   "Invalid search filter format",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateApplicationError creates a non-retryable duplicate application error.
func NewDuplicateApplicationError(studentID, postingID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateApplication,
		Message:   "Student has already applied to this posting",
		Details:   fmt.Sprintf("studentId: %s, postingId: %s", studentID, postingID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewApplicationRejectedError creates a non-retryable eligibility error for the given code.
func NewApplicationRejectedError(code ErrorCode, details string) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   "Application rejected by eligibility check",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationPublishFailedError creates a retryable notification publish error.
func NewNotificationPublishFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationPublishFailed,
		Message:   "Application event publish failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// GetRetryCount returns the recommended retry count for an error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeDatabaseInsertFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeNotificationPublishFailed:
		return 3 // Retryable technical errors

	case ErrCodeQueryTimeout,
		ErrCodeSearchTimeout:
		return 2 // Partial retry for timeouts

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
	case strings.Contains(codeStr, "ANALYSIS") || strings.Contains(codeStr, "ENCODING"):
		return "ANALYSIS"
	case strings.Contains(codeStr, "NOT_FOUND") && !strings.Contains(codeStr, "INDEX"):
		return "LOOKUP"
	case strings.Contains(codeStr, "SEARCH") || strings.Contains(codeStr, "INDEX"):
		return "SEARCH"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	case strings.Contains(codeStr, "APPLICATION") || strings.Contains(codeStr, "DEADLINE") ||
		strings.Contains(codeStr, "CAPACITY") || strings.Contains(codeStr, "CGPA") ||
		strings.Contains(codeStr, "BRANCH"):
		return "ELIGIBILITY"
	default:
		return "OTHER"
	}
}
