package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType is the category a failure is reported under at the HTTP boundary.
type ErrorType string

const (
	ErrorTypeValidation         ErrorType = "VALIDATION"
	ErrorTypeInvalidCredentials ErrorType = "INVALID_CREDENTIALS"
	ErrorTypeUnauthorized       ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden          ErrorType = "FORBIDDEN"
	ErrorTypeNotFound           ErrorType = "NOT_FOUND"
	ErrorTypeConflict           ErrorType = "CONFLICT"
	ErrorTypeInvalidStatus      ErrorType = "INVALID_STATUS"
	ErrorTypeInternal           ErrorType = "INTERNAL"
)

// Messages shown to callers for the categories that must not carry detail.
const (
	MsgInvalidCredentials = "Invalid credentials"
	MsgUnauthorized       = "Unauthorized"
	MsgForbidden          = "Insufficient permissions"
	MsgInternal           = "Internal server error"
)

type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) *AppError {
	return &AppError{Type: ErrorTypeValidation, Message: message}
}

// NewInvalidCredentialsError is the single login failure, whatever the cause.
func NewInvalidCredentialsError() *AppError {
	return &AppError{Type: ErrorTypeInvalidCredentials, Message: MsgInvalidCredentials}
}

func NewUnauthorizedError(err error) *AppError {
	return &AppError{Type: ErrorTypeUnauthorized, Message: MsgUnauthorized, Err: err}
}

func NewForbiddenError() *AppError {
	return &AppError{Type: ErrorTypeForbidden, Message: MsgForbidden}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Type: ErrorTypeNotFound, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Type: ErrorTypeConflict, Message: message}
}

func NewInvalidStatusError(message string) *AppError {
	return &AppError{Type: ErrorTypeInvalidStatus, Message: message}
}

func NewInternalError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeInternal, Message: message, Err: err}
}

// TypeOf returns the category of err, ErrorTypeInternal for foreign errors.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

func Is(err error, t ErrorType) bool {
	return err != nil && TypeOf(err) == t
}

// HTTPStatus maps a failure to its response code.
func HTTPStatus(err error) int {
	switch TypeOf(err) {
	case ErrorTypeValidation, ErrorTypeInvalidStatus:
		return http.StatusBadRequest
	case ErrorTypeInvalidCredentials, ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	case ErrorTypeForbidden:
		return http.StatusForbidden
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

/*
* Message is what the caller sees
* Internal failures never expose their cause
 */
func Message(err error) string {
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Type == ErrorTypeInternal {
		return MsgInternal
	}
	return appErr.Message
}
