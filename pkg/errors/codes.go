package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal   ErrorCode = "COMMON_001"
	ErrCodeBadRequest ErrorCode = "COMMON_002"
	ErrCodeNotFound   ErrorCode = "COMMON_003"
	ErrCodeConflict   ErrorCode = "COMMON_004"
	ErrCodeValidation ErrorCode = "COMMON_005"
)

// Document Error Codes
const (
	ErrCodeDocumentTooLarge  ErrorCode = "DOC_001"
	ErrCodeDocumentEncrypted ErrorCode = "DOC_002"
	ErrCodeDocumentCorrupt   ErrorCode = "DOC_003"
	ErrCodeDocumentEmpty     ErrorCode = "DOC_004"
	ErrCodeDocumentNotPDF    ErrorCode = "DOC_005"
)

// Analysis Task Error Codes
const (
	ErrCodeTaskNotFound   ErrorCode = "TASK_001"
	ErrCodeTaskNotReady   ErrorCode = "TASK_002"
	ErrCodeTaskFailed     ErrorCode = "TASK_003"
	ErrCodeQueueSaturated ErrorCode = "TASK_004"
)

// Aliases kept for call-site readability.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeConflict     = ErrCodeConflict
	CodeOK           = ErrorCode("OK")
	CodeUnknown      = ErrorCode("UNKNOWN")
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeNotFound:   http.StatusNotFound,
	ErrCodeConflict:   http.StatusConflict,
	ErrCodeValidation: http.StatusUnprocessableEntity,

	ErrCodeDocumentTooLarge:  http.StatusRequestEntityTooLarge,
	ErrCodeDocumentEncrypted: http.StatusBadRequest,
	ErrCodeDocumentCorrupt:   http.StatusBadRequest,
	ErrCodeDocumentEmpty:     http.StatusBadRequest,
	ErrCodeDocumentNotPDF:    http.StatusBadRequest,

	ErrCodeTaskNotFound:   http.StatusNotFound,
	ErrCodeTaskNotReady:   http.StatusConflict,
	ErrCodeTaskFailed:     http.StatusInternalServerError,
	ErrCodeQueueSaturated: http.StatusTooManyRequests,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:   "internal server error",
	ErrCodeBadRequest: "bad request",
	ErrCodeNotFound:   "resource not found",
	ErrCodeConflict:   "resource conflict",
	ErrCodeValidation: "validation failed",

	ErrCodeDocumentTooLarge:  "document exceeds the size limit",
	ErrCodeDocumentEncrypted: "document is encrypted and requires a password",
	ErrCodeDocumentCorrupt:   "document could not be parsed",
	ErrCodeDocumentEmpty:     "document contains no readable pages",
	ErrCodeDocumentNotPDF:    "document is not a PDF",

	ErrCodeTaskNotFound:   "analysis task not found",
	ErrCodeTaskNotReady:   "analysis task is not completed yet",
	ErrCodeTaskFailed:     "analysis task failed",
	ErrCodeQueueSaturated: "analysis queue is full, try again later",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
