// Package apperrors defines the failure kinds returned by the record store
// and the query layer. Handlers inspect them with errors.As / errors.Is to
// decide which notice and status code to produce.
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is wrapped by every lookup that matched no record.
var ErrNotFound = errors.New("not found")

// NotFound wraps ErrNotFound with the entity and id that were looked up.
func NotFound(entity string, id int64) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}

// FieldError describes one invalid or missing input field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries every field problem found in one input bundle.
type ValidationError struct {
	Entity string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(parts, "; "))
}

// Add appends a field problem.
func (e *ValidationError) Add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

// OrNil returns nil when no field problem was recorded.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// ReferentialError reports a link to a record that does not exist, or a
// delete that would orphan dependent records.
type ReferentialError struct {
	Entity string
	ID     int64
	Reason string
}

func (e *ReferentialError) Error() string {
	if e.ID == 0 {
		return e.Entity + ": " + e.Reason
	}
	return fmt.Sprintf("%s %d: %s", e.Entity, e.ID, e.Reason)
}

// StorageError wraps a failure of the underlying database.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Storage wraps err unless it is nil or already a typed failure.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	if Kind(err) != KindStorage {
		return err
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsReferential(err error) bool {
	var re *ReferentialError
	return errors.As(err, &re)
}

func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

const (
	KindNone        = "ok"
	KindValidation  = "validation"
	KindReferential = "referential"
	KindNotFound    = "not_found"
	KindStorage     = "storage"
)

// Kind classifies err. Anything unrecognised counts as a storage failure.
func Kind(err error) string {
	switch {
	case err == nil:
		return KindNone
	case IsValidation(err):
		return KindValidation
	case IsReferential(err):
		return KindReferential
	case IsNotFound(err):
		return KindNotFound
	default:
		return KindStorage
	}
}
