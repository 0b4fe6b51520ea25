package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrPermission   = errors.New("permission denied")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal server error")
	ErrUnauthorized = errors.New("unauthorized")
)

// Postgres SQLSTATE codes we translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

type AppError struct {
	BaseError error
	Message   string
	Details   string
	Err       error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (Details: %s, Cause: %v)", e.BaseError.Error(), e.Message, e.Details, e.Err)
	}
	return fmt.Sprintf("%s: %s (Details: %s)", e.BaseError.Error(), e.Message, e.Details)
}

func (e *AppError) Unwrap() error {
	return e.BaseError
}

func NewAppError(base error, msg, details string, err error) *AppError {
	return &AppError{BaseError: base, Message: msg, Details: details, Err: err}
}

func NewNotFound(resource, identifier string) *AppError {
	msg := fmt.Sprintf("%s not found", resource)
	details := fmt.Sprintf("%s with identifier '%s' was not found", resource, identifier)
	return NewAppError(ErrNotFound, msg, details, nil)
}

func NewInvalidInput(details string, err error) *AppError {
	return NewAppError(ErrInvalidInput, "Invalid input provided", details, err)
}

func NewConflict(resource, field, value string) *AppError {
	msg := fmt.Sprintf("%s conflict", resource)
	details := fmt.Sprintf("%s with %s '%s' already exists", resource, field, value)
	return NewAppError(ErrConflict, msg, details, nil)
}

func NewInternal(details string, err error) *AppError {
	return NewAppError(ErrInternal, "An internal server error occurred", details, err)
}

func NewUnauthorized(details string, err error) *AppError {
	return NewAppError(ErrUnauthorized, "Invalid credentials", details, err)
}

func NewPermissionDenied(details string) *AppError {
	return NewAppError(ErrPermission, "Permission denied", details, nil)
}

// FromPgError classifies a database error raised while writing resource.
// Errors that are not constraint violations become internal errors.
func FromPgError(resource string, err error) *AppError {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return NewInternal(fmt.Sprintf("failed to write %s", resource), err)
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return NewAppError(ErrConflict, fmt.Sprintf("%s conflict", resource),
			fmt.Sprintf("constraint %s violated", pgErr.ConstraintName), err)
	case pgCheckViolation:
		return NewInvalidInput(fmt.Sprintf("%s violates check %s", resource, pgErr.ConstraintName), err)
	case pgForeignKeyViolation:
		return NewInvalidInput(fmt.Sprintf("%s references a missing row (%s)", resource, pgErr.ConstraintName), err)
	}
	return NewInternal(fmt.Sprintf("failed to write %s", resource), err)
}

func ToHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrPermission) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrConflict) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Description is the client-facing text of err. Internal causes are never exposed.
func Description(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if errors.Is(appErr.BaseError, ErrInternal) {
			return appErr.Message
		}
		if appErr.Details != "" {
			return fmt.Sprintf("%s: %s", appErr.Message, appErr.Details)
		}
		return appErr.Message
	}
	if ToHTTPStatus(err) == http.StatusInternalServerError {
		return "An internal server error occurred"
	}
	return err.Error()
}
