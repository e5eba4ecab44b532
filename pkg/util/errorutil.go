package util

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Stable machine-readable error tags.
const (
	CodeValidation             = "VALIDATION_ERROR"
	CodeUnauthenticated        = "UNAUTHENTICATED"
	CodeForbidden              = "FORBIDDEN"
	CodeNotFoundOrUnauthorized = "NOT_FOUND_OR_UNAUTHORIZED"
	CodeNotFound               = "NOT_FOUND"
	CodeDuplicateApplication   = "DUPLICATE_APPLICATION"
	CodeJobClosed              = "JOB_CLOSED"
	CodeProfileRequired        = "PROFILE_REQUIRED"
	CodeInvalidOrExpiredOTP    = "INVALID_OR_EXPIRED_OTP"
	CodeCorruptDigest          = "CORRUPT_DIGEST"
	CodeInternal               = "INTERNAL_ERROR"
	CodeEmailTaken             = "EMAIL_TAKEN"
	CodeInvalidCredentials     = "INVALID_CREDENTIALS"
	CodeAccountInactive        = "ACCOUNT_INACTIVE"
	CodeInvalidTransition      = "INVALID_TRANSITION"
	CodeRateLimited            = "RATE_LIMITED"
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

// Is matches another DomainError by code so callers can use errors.Is with the constructors.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidation, message, http.StatusBadRequest, details)
}

func NewUnauthenticated(message string) error {
	return NewDomainError(CodeUnauthenticated, message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

// NewNotFoundOrUnauthorized is returned both for absent resources and for resources
// owned by someone else; the message never says which.
func NewNotFoundOrUnauthorized(resource string) error {
	return NewDomainError(CodeNotFoundOrUnauthorized, fmt.Sprintf("%s not found", resource), http.StatusNotFound, nil)
}

func NewNotFound(resource string) error {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound, nil)
}

func NewDuplicateApplication() error {
	return NewDomainError(CodeDuplicateApplication, "already applied to this job", http.StatusConflict, nil)
}

func NewJobClosed() error {
	return NewDomainError(CodeJobClosed, "job is not accepting applications", http.StatusConflict, nil)
}

func NewProfileRequired(message string) error {
	return NewDomainError(CodeProfileRequired, message, http.StatusBadRequest, nil)
}

func NewInvalidOrExpiredOTP() error {
	return NewDomainError(CodeInvalidOrExpiredOTP, "invalid or expired code", http.StatusBadRequest, nil)
}

func NewCorruptDigest(err error) error {
	return &DomainError{
		Code:       CodeCorruptDigest,
		Message:    "stored credential is unreadable",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewEmailTaken() error {
	return NewDomainError(CodeEmailTaken, "email already registered", http.StatusConflict, nil)
}

func NewInvalidCredentials() error {
	return NewDomainError(CodeInvalidCredentials, "invalid email or password", http.StatusUnauthorized, nil)
}

func NewAccountInactive() error {
	return NewDomainError(CodeAccountInactive, "account is deactivated", http.StatusForbidden, nil)
}

func NewInvalidTransition(from, to string) error {
	return NewDomainError(CodeInvalidTransition, fmt.Sprintf("cannot move from %s to %s", from, to), http.StatusConflict,
		map[string]any{"from": from, "to": to})
}

func NewRateLimited() error {
	return NewDomainError(CodeRateLimited, "too many requests", http.StatusTooManyRequests, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
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
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fromStatus(fiberErr.Code, fiberErr.Message)
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func fromStatus(status int, message string) *DomainError {
	code := CodeInternal
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		code = CodeValidation
	case http.StatusUnauthorized:
		code = CodeUnauthenticated
	case http.StatusForbidden:
		code = CodeForbidden
	case http.StatusNotFound:
		code = CodeNotFound
	case http.StatusTooManyRequests:
		code = CodeRateLimited
	default:
		if status < 500 {
			code = strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
		}
	}
	if status >= 500 {
		message = "internal server error"
	}
	return &DomainError{Code: code, Message: message, HTTPStatus: status}
}
