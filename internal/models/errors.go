package models

import (
	"errors"
	"fmt"
)

// Sentinel kinds, matched with errors.Is
var (
	ErrValidation           = errors.New("validation error")
	ErrUnknownKey           = errors.New("unknown key")
	ErrInlineSpecIncomplete = errors.New("inline unit incomplete")
)

// ErrInvalidUnit is returned when an army's unit is neither a catalog key nor
// an inline stat object
var ErrInvalidUnit = &ValidationError{Msg: "spec.unit must be a string key or an inline stat object"}

// ValidationError reports a malformed request
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Is makes every ValidationError match ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Validationf builds a ValidationError
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// UnknownKeyError reports a catalog or scenario lookup miss
type UnknownKeyError struct {
	Kind string // "unit" or "scenario"
	Key  string
}

func (e *UnknownKeyError) Error() string {
	if e.Kind == "scenario" {
		return fmt.Sprintf("Scenario not found: %s", e.Key)
	}
	return fmt.Sprintf("Unknown unit key: %s", e.Key)
}

func (e *UnknownKeyError) Is(target error) bool {
	return target == ErrUnknownKey
}

// InlineSpecIncompleteError reports an inline stat object missing a required field
type InlineSpecIncompleteError struct {
	Field string
}

func (e *InlineSpecIncompleteError) Error() string {
	return fmt.Sprintf("Inline unit missing required field: %s", e.Field)
}

func (e *InlineSpecIncompleteError) Is(target error) bool {
	return target == ErrInlineSpecIncomplete
}
