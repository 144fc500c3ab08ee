package model

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration reports a unit or scenario referencing something the
	// calculation cannot resolve, e.g. a currency without a price.
	ErrConfiguration = errors.New("configuration error")
	// ErrInvalidUnit reports a unit whose parameters are out of range.
	ErrInvalidUnit = errors.New("invalid unit configuration")
	// ErrInvalidRequest reports bad projection settings or scenario prices.
	ErrInvalidRequest = errors.New("invalid projection request")
	// ErrNotFound is returned by repositories for unknown identifiers.
	ErrNotFound = errors.New("not found")
)

// FieldError names the field that failed validation.
type FieldError struct {
	Kind   error
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v: %s %s", e.Kind, e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return e.Kind }

func unitFieldError(field, reason string) error {
	return &FieldError{Kind: ErrInvalidUnit, Field: field, Reason: reason}
}

func requestFieldError(field, reason string) error {
	return &FieldError{Kind: ErrInvalidRequest, Field: field, Reason: reason}
}
