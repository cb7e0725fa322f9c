package usecase

import (
	"errors"
	"fmt"
	"strings"

	"cineacme/internal/data/entity"
	"cineacme/pkg/utils"
)

// ErrInvalidCredentials is returned by Login for an unknown email or a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ValidationError carries every rule a request broke.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

func newValidationError(msgs ...string) *ValidationError {
	return &ValidationError{Messages: msgs}
}

type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Entity + " not found"
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// ConflictError reports a write refused because of existing state. Existing
// is set when a screening already occupies the requested window.
type ConflictError struct {
	Message  string
	Existing *entity.Screening
}

func (e *ConflictError) Error() string {
	return e.Message
}

// validateRequest runs the struct tags of req and returns a *ValidationError
// holding one "field: message" entry per failed field.
func validateRequest(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return newValidationError(utils.FormatValidationErrors(errs)...)
	}
	return nil
}

// isDomainError reports whether err is one of the typed errors above, which
// callers surface as is.
func isDomainError(err error) bool {
	var (
		validationErr *ValidationError
		notFoundErr   *NotFoundError
		conflictErr   *ConflictError
	)
	return errors.As(err, &validationErr) ||
		errors.As(err, &notFoundErr) ||
		errors.As(err, &conflictErr) ||
		errors.Is(err, ErrInvalidCredentials)
}
