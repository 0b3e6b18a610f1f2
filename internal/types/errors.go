package types

import (
	"fmt"

	"loom/internal/source"
)

// ErrKind discriminates the closed set of typing errors.
type ErrKind uint8

const (
	// ErrUnexpected is a mismatch between an expected and a found type.
	ErrUnexpected ErrKind = iota
	// ErrUnbound means a name has no type binding in scope.
	ErrUnbound
	// ErrExpectedFn means a non-arrow type was used as a callee.
	ErrExpectedFn
	// ErrExpectedBasic means an arrow type was used where only a basic
	// type is allowed.
	ErrExpectedBasic
	// ErrMissing means a required type annotation was omitted.
	ErrMissing
)

// Error is a typing error pointing at the offending source span. The
// first Error produced aborts checking of the whole program.
type Error struct {
	Kind     ErrKind
	Expected Ty     // ErrUnexpected
	Found    Ty     // ErrUnexpected, ErrExpectedFn, ErrExpectedBasic
	Name     string // ErrUnbound
	Span     source.Span
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrUnexpected:
		return fmt.Sprintf("unexpected type: expected %s, found %s", e.Expected, e.Found)
	case ErrUnbound:
		return fmt.Sprintf("name %s is not bound", e.Name)
	case ErrExpectedFn:
		return fmt.Sprintf("unexpected type: expected function, found %s", e.Found)
	case ErrExpectedBasic:
		return fmt.Sprintf("unexpected type: expected a basic type, found %s", e.Found)
	case ErrMissing:
		return "missing type: type cannot be inferred"
	default:
		return "unknown type error"
	}
}

// Loc returns the primary span of the error.
func (e *Error) Loc() source.Span {
	return e.Span
}

// NewUnexpected builds a mismatch error blaming the found type's span.
func NewUnexpected(expected Ty, found source.Located[Ty]) *Error {
	return &Error{Kind: ErrUnexpected, Expected: expected, Found: found.Item, Span: found.Span}
}

// NewUnbound builds an unbound-name error.
func NewUnbound(name string, span source.Span) *Error {
	return &Error{Kind: ErrUnbound, Name: name, Span: span}
}

// NewExpectedFn builds a non-function-callee error.
func NewExpectedFn(found source.Located[Ty]) *Error {
	return &Error{Kind: ErrExpectedFn, Found: found.Item, Span: found.Span}
}

// NewExpectedBasic builds an arrow-where-basic-required error.
func NewExpectedBasic(found source.Located[Ty]) *Error {
	return &Error{Kind: ErrExpectedBasic, Found: found.Item, Span: found.Span}
}

// NewMissing builds a missing-annotation error.
func NewMissing(span source.Span) *Error {
	return &Error{Kind: ErrMissing, Span: span}
}
