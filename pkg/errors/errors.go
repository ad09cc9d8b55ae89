package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"

	"rillid/pkg/streamid"
)

// ErrorCode represents application error codes
type ErrorCode string

const (
	ErrCodeInvalidInput       ErrorCode = "INVALID_INPUT"
	ErrCodeInvalidPrefix      ErrorCode = "INVALID_PREFIX"
	ErrCodeInvalidEncoding    ErrorCode = "INVALID_ENCODING"
	ErrCodeInvalidTrack       ErrorCode = "INVALID_TRACK"
	ErrCodeTruncatedPayload   ErrorCode = "TRUNCATED_PAYLOAD"
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeRateLimit          ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
)

// AppError represents an application error with code and context
type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
	Context    map[string]interface{}
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Context:    make(map[string]interface{}),
	}
}

// WrapError wraps an existing error with application error
func WrapError(err error, code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Cause:      err,
		Context:    make(map[string]interface{}),
	}
}

// Common error constructors
func NewInvalidInputError(message string) *AppError {
	return NewAppError(ErrCodeInvalidInput, message, http.StatusBadRequest)
}

func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrCodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func NewRateLimitError() *AppError {
	return NewAppError(ErrCodeRateLimit, "rate limit exceeded", http.StatusTooManyRequests)
}

func NewInternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

func NewServiceUnavailableError(message string) *AppError {
	return NewAppError(ErrCodeServiceUnavailable, message, http.StatusServiceUnavailable)
}

// FromStreamIDError maps a codec error to an AppError. Errors that do not come
// from the codec become internal errors.
func FromStreamIDError(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr := GetAppError(err); appErr != nil {
		return appErr
	}

	var ioErr *streamid.IOError
	switch {
	case stderrors.Is(err, streamid.ErrInvalidPrefix):
		return WrapError(err, ErrCodeInvalidPrefix,
			fmt.Sprintf("stream id must start with %q", streamid.Prefix), http.StatusBadRequest)
	case stderrors.Is(err, streamid.ErrInvalidEncoding):
		return WrapError(err, ErrCodeInvalidEncoding, "stream id body is not valid unpadded base64", http.StatusBadRequest)
	case stderrors.Is(err, streamid.ErrInvalidTrack):
		return WrapError(err, ErrCodeInvalidTrack, "unknown track", http.StatusBadRequest)
	case stderrors.As(err, &ioErr) && stderrors.Is(err, io.ErrUnexpectedEOF):
		return WrapError(err, ErrCodeTruncatedPayload, "stream id payload is truncated", http.StatusBadRequest).
			WithContext("field", ioErr.Field)
	}
	return WrapError(err, ErrCodeInternal, "stream id codec failure", http.StatusInternalServerError)
}

// IsAppError checks if error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetAppError extracts AppError from error chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return nil
}
