// Package apperror carries the status, message and field errors that the
// HTTP layer sends back for a failed operation.
package apperror

import (
	"errors"
	"net/http"
)

// Kind groups errors by what went wrong, independently of the status code
type Kind string

const (
	KindInternal   Kind = "internal"
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindAuth       Kind = "auth"
	KindRender     Kind = "render"
	KindPrinter    Kind = "printer"
)

// AppError is an error with the HTTP status it maps to
type AppError struct {
	Code    int
	Kind    Kind
	Message string
	Errors  []FieldError

	cause error
}

// FieldError names one invalid input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

var (
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Kind: KindAuth, Message: "Invalid email or password"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Kind: KindAuth, Message: "Invalid token"}
)

// NewValidationError reports every invalid field at once
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewFieldError is a validation error on a single field
func NewFieldError(field, message string) *AppError {
	return NewValidationError([]FieldError{{Field: field, Message: message}})
}

// NewNotFoundError reports a missing resource, e.g. "Order not found"
func NewNotFoundError(resource string) *AppError {
	return &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: resource + " not found"}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Kind: KindConflict, Message: message}
}

// NewRenderError reports a receipt that could not be produced.
// The order it was built from is left untouched.
func NewRenderError(cause error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindRender,
		Message: "Receipt rendering failed",
		cause:   cause,
	}
}

// NewPrinterError reports a ticket that did not reach the printer
func NewPrinterError(code int, message string, cause error) *AppError {
	return &AppError{Code: code, Kind: KindPrinter, Message: message, cause: cause}
}

// Is reports whether err is an AppError of the given kind
func Is(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

func IsNotFound(err error) bool {
	return Is(err, KindNotFound)
}

func IsValidation(err error) bool {
	return Is(err, KindValidation)
}

// GetAppError returns the AppError in err's chain. Anything else becomes an
// opaque 500 that keeps err as its cause.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: "Internal server error",
		cause:   err,
	}
}
