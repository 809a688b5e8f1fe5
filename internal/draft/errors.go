package draft

import (
	"errors"
	"fmt"
)

// Code categorises a rejected draft operation.
type Code string

const (
	CodeUnknown           Code = "unknown"
	CodeMissingFields     Code = "missing_fields"
	CodeInvalidPickNumber Code = "invalid_pick_number"
	CodePickTaken         Code = "pick_taken"
	CodeDuplicatePlayer   Code = "duplicate_player"
	CodeDraftComplete     Code = "draft_complete"
	CodeNotFound          Code = "not_found"
	CodeMalformedSnapshot Code = "malformed_snapshot"
)

// Error is returned for every rule violation. The roster is never modified
// when an Error is returned.
type Error struct {
	Code    Code
	Message string
	Cause   error
	Meta    map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error carrying the same code, so callers can compare
// against the Err* sentinels.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

func newError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func newErrorf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

var (
	ErrMissingFields     = newError(CodeMissingFields, "please fill in all required fields")
	ErrInvalidPickNumber = newError(CodeInvalidPickNumber, "invalid pick number")
	ErrPickTaken         = newError(CodePickTaken, "pick already taken")
	ErrDuplicatePlayer   = newError(CodeDuplicatePlayer, "this player has already been drafted")
	ErrDraftComplete     = newError(CodeDraftComplete, "draft is complete")
	ErrNotFound          = newError(CodeNotFound, "pick not found")
	ErrMalformedSnapshot = newError(CodeMalformedSnapshot, "malformed snapshot")
)

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}
