package orm

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// DatabaseError wraps database-related errors from GORM
type DatabaseError struct {
	Inner error
}

func (e *DatabaseError) Error() string {
	return "Database operation failed: " + e.Inner.Error()
}

func (e *DatabaseError) Unwrap() error {
	return e.Inner
}

// NotFoundError represents when a record is not found by its business key
type NotFoundError struct {
	Search string
}

func (e *NotFoundError) Error() string {
	return "Record not found for search: " + e.Search
}

// ConflictError represents a write rejected by a store constraint other than
// a business key collision (e.g. a foreign key raced by a concurrent delete)
type ConflictError struct {
	Conflict string
}

func (e *ConflictError) Error() string {
	return "Conflict error for: " + e.Conflict
}

type BadInputError struct {
	Reason string
}

func (e *BadInputError) Error() string {
	return "Bad input: " + e.Reason
}

// Reason classifies why a field was rejected.
type Reason string

const (
	ReasonDuplicateKey     Reason = "DuplicateKey"
	ReasonUnknownWarehouse Reason = "UnknownWarehouse"
	ReasonUnknownProduct   Reason = "UnknownProduct"
	ReasonReservedName     Reason = "ReservedName"
	ReasonMissingField     Reason = "MissingField"
	ReasonInvalidState     Reason = "InvalidState"
	ReasonInvalidZip       Reason = "InvalidZip"
	ReasonInvalidQuantity  Reason = "InvalidQuantity"
	ReasonInvalidValue     Reason = "InvalidValue"
)

// FieldError is a single rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Reason  Reason `json:"reason"`
	Message string `json:"message"`
}

// ValidationError is a recoverable rejection of an entity before it is
// persisted. It always carries at least one FieldError.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Reason))
	}

	return "Validation failed: " + strings.Join(parts, ", ")
}

// Has reports whether any field was rejected for the given reason.
func (e *ValidationError) Has(reason Reason) bool {
	for _, f := range e.Fields {
		if f.Reason == reason {
			return true
		}
	}

	return false
}

// NewValidationError returns nil for an empty list so callers can return it
// directly as an error.
func NewValidationError(fields []FieldError) error {
	if len(fields) == 0 {
		return nil
	}

	return &ValidationError{Fields: fields}
}

func duplicateKeyError(field, key string) error {
	return &ValidationError{Fields: []FieldError{{
		Field:   field,
		Reason:  ReasonDuplicateKey,
		Message: fmt.Sprintf("%q already exists", key),
	}}}
}

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError

	return errors.As(err, &notFoundErr)
}

// wrapErrorWithDetails creates a more specific error message
func wrapErrorWithDetails(err error, operation, details string) error {
	if err == nil {
		return nil
	}

	// Already translated by a nested call
	if isTranslated(err) {
		return err
	}

	// Handle specific GORM errors with details
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Search: fmt.Sprintf("%s (%s)", operation, details)}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) {
		return &ConflictError{Conflict: fmt.Sprintf("%s (%s)", operation, details)}
	}

	// For other database errors, wrap with DatabaseError
	return &DatabaseError{Inner: fmt.Errorf("%s: %w", operation, err)}
}

func isTranslated(err error) bool {
	var (
		validationErr *ValidationError
		notFoundErr   *NotFoundError
		conflictErr   *ConflictError
		badInputErr   *BadInputError
		dbErr         *DatabaseError
	)

	return errors.As(err, &validationErr) || errors.As(err, &notFoundErr) ||
		errors.As(err, &conflictErr) || errors.As(err, &badInputErr) ||
		errors.As(err, &dbErr)
}
