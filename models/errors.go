package models

import (
	"errors"
	"fmt"
)

var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound    = errors.New("product not found")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrImageNotFound      = errors.New("product image not found")
)

// ValidationError rejects an administrative write before anything is persisted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ReferentialIntegrityError is returned when a delete would break a protecting reference.
type ReferentialIntegrityError struct {
	Entity       string
	ReferencedBy string
	Count        int64
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("cannot delete %s: still referenced by %d %s", e.Entity, e.Count, e.ReferencedBy)
}

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrCollectionNotFound) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrImageNotFound)
}
