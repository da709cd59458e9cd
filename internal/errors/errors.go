package errors

import (
	"fmt"
)

// AppError is a structured application error carrying a machine-readable
// code alongside a human message and an optional wrapped cause.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap adds context to err while preserving its code if it is already an AppError.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{Code: appErr.Code, Message: message, Cause: appErr}
	}
	return &AppError{Code: CodeInternalError, Message: message, Cause: err}
}

func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode replaces the code on an existing error.
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{Code: code, Message: appErr.Message, Cause: appErr.Cause}
	}
	return &AppError{Code: code, Message: err.Error(), Cause: err}
}

func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes. The first five mirror the taxonomy in spec §7;
// the rest are ambient infrastructure codes (config, persistence).
const (
	CodeInvalidInput      = "INVALID_INPUT"
	CodeInsufficientData  = "INSUFFICIENT_DATA"
	CodeUnreliableData    = "UNRELIABLE_DATA"
	CodeInternalError     = "INTERNAL_ERROR"
	CodeSchemaError       = "SCHEMA_ERROR"
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeDatabaseError     = "DATABASE_ERROR"
	CodeExternalService   = "EXTERNAL_SERVICE_ERROR"
)

func ConfigInvalid(message string) *AppError { return New(CodeConfigInvalid, message) }
func DatabaseError(message string) *AppError { return New(CodeDatabaseError, message) }
func InternalError(message string) *AppError { return New(CodeInternalError, message) }
func InvalidInput(message string) *AppError  { return New(CodeInvalidInput, message) }
func InsufficientData(message string) *AppError {
	return New(CodeInsufficientData, message)
}
func UnreliableData(message string) *AppError { return New(CodeUnreliableData, message) }
func SchemaError(message string) *AppError    { return New(CodeSchemaError, message) }

func ExternalServiceError(service string, cause error) *AppError {
	return &AppError{Code: CodeExternalService, Message: fmt.Sprintf("%s service error", service), Cause: cause}
}
