package core

import (
	"errors"
	"strings"
)

// Common errors.
var (
	ErrNotFound             = errors.New("protocol not found")
	ErrDuplicateID          = errors.New("protocol id already exists")
	ErrInvalidStatus        = errors.New("invalid protocol status")
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
	ErrValidation           = errors.New("invalid protocol draft")
	ErrReadOnly             = errors.New("repository is in read-only mode")
)

// ValidationError lists the draft fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

// Is makes errors.Is(err, ErrValidation) hold for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
