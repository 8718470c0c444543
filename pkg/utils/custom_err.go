package utils

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound     = errors.New("session not found or expired")
	ErrSlotOutOfRange      = errors.New("activity slot out of range")
	ErrRegenerateInFlight  = errors.New("a regeneration is already in flight for this slot")
	ErrMergeConflict       = errors.New("itinerary was replaced; stale result discarded")
	ErrUnsupportedProvider = errors.New("unsupported model provider")
)

// ModelErrorKind classifies why the external model call did not yield a
// usable, schema-conformant result.
type ModelErrorKind string

const (
	ModelErrorNetwork        ModelErrorKind = "network"
	ModelErrorRefusal        ModelErrorKind = "refusal"
	ModelErrorTimeout        ModelErrorKind = "timeout"
	ModelErrorSchemaMismatch ModelErrorKind = "schema_mismatch"
)

// ModelError is the single failure shape surfaced by the model boundary.
// Callers never receive a silent default value in its place.
type ModelError struct {
	Kind ModelErrorKind
	Op   string // the operation that failed, e.g. "generate_itinerary"
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model %s failed (%s): %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("model %s failed (%s)", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error { return e.Err }

func NewModelError(kind ModelErrorKind, op string, err error) *ModelError {
	return &ModelError{Kind: kind, Op: op, Err: err}
}

// AsModelError unwraps err to a *ModelError if one is in the chain.
func AsModelError(err error) (*ModelError, bool) {
	var me *ModelError
	if errors.As(err, &me) {
		return me, true
	}
	return nil, false
}

// FieldViolation names one offending field in a rejected value.
type FieldViolation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError enumerates every violation found instead of stopping at the
// first, so callers (and tests) can assert on precise field paths.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 1 {
		return fmt.Sprintf("validation failed: %s: %s", e.Violations[0].Path, e.Violations[0].Message)
	}
	return fmt.Sprintf("validation failed: %d violations", len(e.Violations))
}

// AsValidationError unwraps err to a *ValidationError if one is in the chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
