package services

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the service layer. Handlers translate these
// to HTTP status codes; nothing below this layer leaks gorm errors upward.
var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrModuleNotFound      = errors.New("module not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrCertificateNotFound = errors.New("certificate not available")

	ErrAlreadyPurchased    = errors.New("course already purchased")
	ErrDuplicateTitle      = errors.New("course title already exists")
	ErrDuplicateAccount    = errors.New("email or username already taken")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidSortField    = errors.New("invalid sort field")
	ErrReorderMismatch     = errors.New("module order set does not match course modules")
	ErrAdminImmutable      = errors.New("admin account cannot be modified")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrBadRequest         = errors.New("bad request")
	ErrConflict           = errors.New("conflict")
)

// PermissionError carries the denied action for logging and responses.
type PermissionError struct {
	UserID uint
	Action string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("user %d is not allowed to %s", e.UserID, e.Action)
}

func (e *PermissionError) Unwrap() error {
	return ErrForbidden
}

// BusinessRuleError wraps a domain rule violation with detail for the
// client.
type BusinessRuleError struct {
	Rule    string
	Message string
}

func (e *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule %s violated: %s", e.Rule, e.Message)
}

func (e *BusinessRuleError) Unwrap() error {
	return ErrBadRequest
}
