package jsval

import (
	"github.com/zephyrtronium/jsval/internal"
)

// A Template is a read-only snapshot of the built-in objects from which
// runtimes are cloned.
type Template = internal.Template

// A VM is a script runtime. It is not safe for concurrent use.
type VM = internal.VM

// Config holds a runtime's limits and logging options.
type Config = internal.Config

// Object is a script object.
//
// Always use NewObject, ObjectWith, or a type-specific constructor to obtain
// new objects.
type Object = internal.Object

// Tag is a type indicator for objects. Tag values must be comparable.
type Tag = internal.Tag

// BasicTag is a Tag for types whose copies share their primitive value.
type BasicTag = internal.BasicTag

// Value is a script value. The zero Value is undefined.
type Value = internal.Value

// Kind is the type of a Value.
type Kind = internal.Kind

// Key is a property key, either a string or a symbol.
type Key = internal.Key

// Symbol is a unique property key.
type Symbol = internal.Symbol

// String is an immutable string value.
type String = internal.String

// StringKind classifies the contents of a string.
type StringKind = internal.StringKind

// Property is a property record.
type Property = internal.Property

// PropKind is the kind of a property record.
type PropKind = internal.PropKind

// Flag is a tri-state property attribute.
type Flag = internal.Flag

// Descriptor is a requested property definition.
type Descriptor = internal.Descriptor

// Handler computes the value of a native handler property.
type Handler = internal.Handler

// Cell is a slot shared by reference properties.
type Cell = internal.Cell

// Function is the primitive value of function objects.
type Function = internal.Function

// NativeFunc is the signature of functions implemented in Go.
type NativeFunc = internal.NativeFunc

// Pool is the allocator interface for string storage.
type Pool = internal.Pool

// MemPool is the default Pool, with an optional byte limit.
type MemPool = internal.MemPool

// Error is the error type of runtime operations.
type Error = internal.Error

// ErrorKind classifies errors by the exception they become.
type ErrorKind = internal.ErrorKind

// RegExp is the primitive value of regular expression objects.
type RegExp = internal.RegExp

// RegExpFlags are the flags of a regular expression.
type RegExpFlags = internal.RegExpFlags

// Matcher is a compiled pattern.
type Matcher = internal.Matcher

// MatcherCompiler compiles patterns for RegExp objects.
type MatcherCompiler = internal.MatcherCompiler

// Replacement is a $ template or a function computing replacements.
type Replacement = internal.Replacement

// ReplaceMatch describes a match passed to a ReplaceFunc.
type ReplaceMatch = internal.ReplaceMatch

// ReplaceFunc computes the replacement for a match.
type ReplaceFunc = internal.ReplaceFunc

// EscapeSet is a set of bytes to percent-encode or to keep encoded.
type EscapeSet = internal.EscapeSet

// Value kinds.
const (
	KindUndefined = internal.KindUndefined
	KindNull      = internal.KindNull
	KindBoolean   = internal.KindBoolean
	KindNumber    = internal.KindNumber
	KindString    = internal.KindString
	KindSymbol    = internal.KindSymbol
	KindObject    = internal.KindObject
)

// String kinds.
const (
	ByteString  = internal.ByteString
	ASCIIString = internal.ASCIIString
	UTF8String  = internal.UTF8String
)

// Property kinds.
const (
	PropData     = internal.PropData
	PropAccessor = internal.PropAccessor
	PropHandler  = internal.PropHandler
	PropRef      = internal.PropRef
	PropWhiteout = internal.PropWhiteout
)

// Attribute states.
const (
	FlagUnset = internal.FlagUnset
	FlagFalse = internal.FlagFalse
	FlagTrue  = internal.FlagTrue
)

// Error kinds.
const (
	InternalError = internal.InternalError
	MemoryError   = internal.MemoryError
	RangeError    = internal.RangeError
	TypeError     = internal.TypeError
	URIError      = internal.URIError
	SyntaxError   = internal.SyntaxError
)

// Tags for built-in types.
const (
	ObjectTag = internal.ObjectTag
	ArrayTag  = internal.ArrayTag
	ErrorTag  = internal.ErrorTag
	StringTag = internal.StringTag
)

// Tag variables for built-in types.
var (
	FunctionTag = internal.FunctionTag
	RegExpTag   = internal.RegExpTag
)

// ShortStringMax is the largest string size stored inline.
const ShortStringMax = internal.ShortStringMax

// DefaultMaxStringLength is the default bound on string size in bytes.
const DefaultMaxStringLength = internal.DefaultMaxStringLength

// MapStride is the number of characters between offset map entries.
const MapStride = internal.MapStride

// NoLimit requests unlimited results from Split.
const NoLimit = internal.NoLimit

// Singleton values.
var (
	Undefined = internal.Undefined
	Null      = internal.Null
	True      = internal.True
	False     = internal.False
	Empty     = internal.Empty
)

// Sentinel errors.
var (
	ErrMemory          = internal.ErrMemory
	ErrInvalidEncoding = internal.ErrInvalidEncoding
)

// Escape sets for percent encoding and decoding.
var (
	URIEscapes          = internal.URIEscapes
	URIComponentEscapes = internal.URIComponentEscapes
	URIReserved         = internal.URIReserved
	NoReserved          = internal.NoReserved
)

// NewTemplate builds the built-in objects into a template.
func NewTemplate(cfg Config) *Template {
	return internal.NewTemplate(cfg)
}

// NewMemPool creates a pool allowing up to limit bytes, or unlimited if
// limit is not positive.
func NewMemPool(limit int) *MemPool {
	return internal.NewMemPool(limit)
}

// StrKey creates a string property key.
func StrKey(name string) Key {
	return internal.StrKey(name)
}

// SymKey creates a symbol property key.
func SymKey(sym *Symbol) Key {
	return internal.SymKey(sym)
}

// BoolValue converts a bool to a boolean value.
func BoolValue(b bool) Value {
	return internal.BoolValue(b)
}

// NumberValue converts a float64 to a number value.
func NumberValue(n float64) Value {
	return internal.NumberValue(n)
}

// IntValue converts an int to a number value.
func IntValue(n int) Value {
	return internal.IntValue(n)
}

// StringValue converts a String to a string value.
func StringValue(s String) Value {
	return internal.StringValue(s)
}

// SymbolValue converts a symbol to a value.
func SymbolValue(sym *Symbol) Value {
	return internal.SymbolValue(sym)
}

// ObjectValue converts an object to a value. A nil object is null.
func ObjectValue(o *Object) Value {
	return internal.ObjectValue(o)
}

// SameValue reports whether two values are the same, treating NaN as equal
// to itself and distinguishing signed zeros.
func SameValue(a, b Value) bool {
	return internal.SameValue(a, b)
}

// ToBoolean converts a value to a boolean.
func ToBoolean(v Value) bool {
	return internal.ToBoolean(v)
}

// Compare lexicographically compares the bytes of two strings.
func Compare(a, b String) int {
	return internal.Compare(a, b)
}

// Equal reports whether two strings are equal.
func Equal(a, b String) bool {
	return internal.Equal(a, b)
}

// Identical reports whether two strings share storage.
func Identical(a, b String) bool {
	return internal.Identical(a, b)
}

// DataProperty creates a data property record.
func DataProperty(key Key, v Value, writable, enumerable, configurable bool) *Property {
	return internal.DataProperty(key, v, writable, enumerable, configurable)
}

// ValueDescriptor describes a writable, enumerable, configurable value.
func ValueDescriptor(v Value) *Descriptor {
	return internal.ValueDescriptor(v)
}

// FlagOf converts a bool to a set flag.
func FlagOf(b bool) Flag {
	return internal.FlagOf(b)
}

// NewError creates an error with a formatted message.
func NewError(kind ErrorKind, format string, args ...interface{}) *Error {
	return internal.NewError(kind, format, args...)
}

// IsKind reports whether err is or wraps an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return internal.IsKind(err, kind)
}

// ErrorOf recovers the error described by an error object.
func ErrorOf(v Value) *Error {
	return internal.ErrorOf(v)
}

// ParseFlags parses regular expression flags.
func ParseFlags(s string) (RegExpFlags, error) {
	return internal.ParseFlags(s)
}

// CompileECMAScript is the default MatcherCompiler, backed by regexp2 in
// ECMAScript mode.
func CompileECMAScript(source string, flags RegExpFlags, kind StringKind) (Matcher, error) {
	return internal.CompileECMAScript(source, flags, kind)
}
