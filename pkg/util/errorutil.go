package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewUnsupportedMediaType(mimeType string) error {
	return NewDomainError("UNSUPPORTED_MEDIA_TYPE",
		fmt.Sprintf("unsupported media type %q", mimeType),
		http.StatusBadRequest, nil)
}

func NewPayloadTooLarge(limitBytes int64) error {
	return NewDomainError("PAYLOAD_TOO_LARGE",
		fmt.Sprintf("file exceeds the %d byte limit", limitBytes),
		http.StatusBadRequest, nil)
}

// NewInvalidCredentials returns the undifferentiated auth rejection. The
// message never reveals whether the lookup or the secret comparison failed.
func NewInvalidCredentials(message string) error {
	return NewDomainError("INVALID_CREDENTIALS", message, http.StatusBadRequest, nil)
}

func NewInvalidIdentifier(id string) error {
	return NewDomainError("INVALID_IDENTIFIER",
		fmt.Sprintf("malformed identifier %q", id),
		http.StatusBadRequest, nil)
}

func NewTokenNotFound() error {
	return NewDomainError("TOKEN_NOT_FOUND", "token not found", http.StatusBadRequest, nil)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewPersistenceError(message string, err error) error {
	return &DomainError{
		Code:       "PERSISTENCE_ERROR",
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
