package domain

import (
	"errors"
	"net/http"
)

// Sentinel errors for infrastructure-level error discrimination.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("dependency unavailable")
)

// ErrorCode is the closed set of codes returned to API callers.
type ErrorCode string

const (
	CodeValidation        ErrorCode = "VALIDATION_ERROR"
	CodeInvalidEmail      ErrorCode = "INVALID_EMAIL"
	CodeMessageTooLong    ErrorCode = "MESSAGE_TOO_LONG"
	CodeRecaptchaFailed   ErrorCode = "RECAPTCHA_FAILED"
	CodeRecaptchaLowScore ErrorCode = "RECAPTCHA_LOW_SCORE"
	CodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	CodeEmailSendFailed   ErrorCode = "EMAIL_SEND_FAILED"
	CodeInternal          ErrorCode = "INTERNAL_ERROR"
)

// HTTPStatus maps a code to the status it is surfaced with.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case CodeValidation, CodeInvalidEmail, CodeMessageTooLong:
		return http.StatusBadRequest
	case CodeRecaptchaFailed, CodeRecaptchaLowScore:
		return http.StatusForbidden
	case CodeRateLimitExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Failure is a pipeline stage rejection. It is returned as an error so
// callers can use errors.As to recover the code.
type Failure struct {
	Code    ErrorCode
	Message string
	Details map[string]any
}

func (f *Failure) Error() string { return string(f.Code) + ": " + f.Message }

// NewFailure builds a Failure without details.
func NewFailure(code ErrorCode, msg string) *Failure {
	return &Failure{Code: code, Message: msg}
}

// Body converts the failure to its response representation.
func (f *Failure) Body() ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error:   ErrorBody{Code: f.Code, Message: f.Message, Details: f.Details},
	}
}
