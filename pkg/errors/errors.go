package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for the registration flow.
var (
	ErrMissingRequiredField = New("MISSING_REQUIRED_FIELD", http.StatusBadRequest, "email, password, and role are required")
	ErrUploadFailure        = New("UPLOAD_FAILURE", http.StatusBadGateway, "error uploading files, please try again")
	ErrDuplicateAccount     = New("DUPLICATE_ACCOUNT", http.StatusConflict, "an account with this email already exists")
	ErrInvalidEmail         = New("INVALID_EMAIL", http.StatusBadRequest, "please enter a valid email address")
	ErrWeakPassword         = New("WEAK_PASSWORD", http.StatusBadRequest, "password is too weak, please use at least 6 characters")
	ErrNetwork              = New("NETWORK_ERROR", http.StatusBadGateway, "network error, please check your connection and try again")
	ErrStorage              = New("STORAGE_ERROR", http.StatusBadGateway, "error uploading files, please try again")
	ErrDatabaseTrigger      = New("DATABASE_TRIGGER_ERROR", http.StatusBadGateway, "registration failed due to database configuration, please try again or contact support")
	ErrUnknownAuth          = New("UNKNOWN_AUTH_ERROR", http.StatusBadGateway, "an unexpected error occurred during registration, please try again")
	ErrUnknownRole          = New("UNKNOWN_ROLE", http.StatusBadRequest, "selected role is not recognized")
	ErrProfileWrite         = New("PROFILE_WRITE_FAILURE", http.StatusInternalServerError, "account was created but profile data could not be fully saved")

	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid email or password")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrDraftNotFound      = New("DRAFT_NOT_FOUND", http.StatusNotFound, "registration draft not found or expired")
	ErrStageBlocked       = New("STAGE_BLOCKED", http.StatusUnprocessableEntity, "current stage has validation errors")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
