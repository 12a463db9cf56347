package internal

import (
	"errors"
	"fmt"
)

// ErrorKind classifies runtime errors by the kind of catchable exception they
// become when surfaced to scripts.
type ErrorKind uint8

//go:generate go run golang.org/x/tools/cmd/stringer -type=ErrorKind -output=errorkind_string.go

// Error kinds.
const (
	InternalError ErrorKind = iota
	MemoryError
	RangeError
	TypeError
	URIError
	SyntaxError
)

// Error is the error type produced by runtime operations. Every operation
// that fails returns an *Error, possibly wrapped.
type Error struct {
	// Kind is the class of exception this error becomes.
	Kind ErrorKind
	// Message is the human-readable description.
	Message string
	// Property is the name of the property involved in the failure, if any.
	Property string
}

// Error returns the error's kind and message.
func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Message
}

// Is allows errors.Is to match errors by kind and message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// ErrMemory is returned when an allocation fails. It is preallocated so that
// reporting it never needs memory.
var ErrMemory = &Error{Kind: MemoryError, Message: "memory error"}

// ErrInvalidEncoding is returned when text is required but the bytes given
// are not well-formed UTF-8.
var ErrInvalidEncoding = &Error{Kind: SyntaxError, Message: "invalid UTF-8 encoding"}

// NewError creates an error of the given kind with a formatted message.
func NewError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func internalErrorf(format string, args ...interface{}) *Error {
	return NewError(InternalError, format, args...)
}

func rangeErrorf(format string, args ...interface{}) *Error {
	return NewError(RangeError, format, args...)
}

func typeErrorf(format string, args ...interface{}) *Error {
	return NewError(TypeError, format, args...)
}

func uriErrorf(format string, args ...interface{}) *Error {
	return NewError(URIError, format, args...)
}

func syntaxErrorf(format string, args ...interface{}) *Error {
	return NewError(SyntaxError, format, args...)
}

// propertyErrorf creates a TypeError that names the property key.
func propertyErrorf(key Key, format string, args ...interface{}) *Error {
	e := NewError(TypeError, format, args...)
	e.Property = key.String()
	return e
}
