package failure

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation     Kind = "validation"
	KindNotFound       Kind = "not_found"
	KindBusinessRule   Kind = "business_rule"
	KindPartialFailure Kind = "partial_failure"
	KindUnauthorized   Kind = "unauthorized"
	KindForbidden      Kind = "forbidden"
)

// Error is a classified domain error. Two *Error values match under errors.Is
// when they are the same value, or when the target is a category sentinel
// (no Code) of the same Kind.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func New(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Code == "" {
		return t.Kind == e.Kind
	}
	return t.Code == e.Code && t.Kind == e.Kind
}

// Category sentinels.
var (
	ErrValidation     = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrNotFound       = &Error{Kind: KindNotFound, Message: "not found"}
	ErrBusinessRule   = &Error{Kind: KindBusinessRule, Message: "business rule violation"}
	ErrPartialFailure = &Error{Kind: KindPartialFailure, Message: "partial failure"}
	ErrUnauthorized   = &Error{Kind: KindUnauthorized, Message: "unauthorized"}
	ErrForbidden      = &Error{Kind: KindForbidden, Message: "forbidden"}
)

// Validation builds an ad-hoc validation error for a single field.
func Validation(field, msg string) *Error {
	return &Error{Kind: KindValidation, Code: "invalid_" + field, Message: msg}
}

// Partial reports that the authoritative ledger write succeeded but a dependent
// step (Op) did not. Replaying Op alone is safe.
type Partial struct {
	Op  string
	Err error
}

func (p *Partial) Error() string {
	return fmt.Sprintf("%s failed after ledger write: %v", p.Op, p.Err)
}

func (p *Partial) Unwrap() error { return p.Err }

func (p *Partial) Is(target error) bool { return target == ErrPartialFailure }

// KindOf reports the classification of err, or "" for unclassified errors.
func KindOf(err error) Kind {
	var p *Partial
	if errors.As(err, &p) {
		return KindPartialFailure
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
