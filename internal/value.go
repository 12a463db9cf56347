package internal

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the type of a Value.
type Kind uint8

//go:generate go run golang.org/x/tools/cmd/stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Value kinds.
const (
	KindUndefined Kind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindSymbol
	KindObject
)

// Value is a script value. The zero Value is undefined.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    String
	sym  *Symbol
	obj  *Object
}

// Symbol is a unique property key.
type Symbol struct {
	// Description is the symbol's description, used only for display.
	Description string
}

// Singleton values.
var (
	Undefined = Value{}
	Null      = Value{kind: KindNull}
	True      = Value{kind: KindBoolean, b: true}
	False     = Value{kind: KindBoolean}
)

// BoolValue converts a bool to a boolean value.
func BoolValue(b bool) Value {
	if b {
		return True
	}
	return False
}

// NumberValue creates a number value.
func NumberValue(n float64) Value {
	return Value{kind: KindNumber, n: n}
}

// IntValue creates a number value from an int.
func IntValue(n int) Value {
	return Value{kind: KindNumber, n: float64(n)}
}

// StringValue creates a string value.
func StringValue(s String) Value {
	return Value{kind: KindString, s: s}
}

// SymbolValue creates a symbol value.
func SymbolValue(sym *Symbol) Value {
	return Value{kind: KindSymbol, sym: sym}
}

// ObjectValue creates an object value. A nil object produces null.
func ObjectValue(o *Object) Value {
	if o == nil {
		return Null
	}
	return Value{kind: KindObject, obj: o}
}

// Kind returns the value's type.
func (v Value) Kind() Kind {
	return v.kind
}

// IsUndefined returns whether the value is undefined.
func (v Value) IsUndefined() bool {
	return v.kind == KindUndefined
}

// IsNullish returns whether the value is undefined or null.
func (v Value) IsNullish() bool {
	return v.kind == KindUndefined || v.kind == KindNull
}

// IsString returns whether the value is a string.
func (v Value) IsString() bool {
	return v.kind == KindString
}

// IsObject returns whether the value is an object.
func (v Value) IsObject() bool {
	return v.kind == KindObject
}

// Bool returns the boolean payload.
func (v Value) Bool() bool {
	return v.b
}

// Number returns the numeric payload.
func (v Value) Number() float64 {
	return v.n
}

// Str returns the string payload.
func (v Value) Str() String {
	return v.s
}

// Symbol returns the symbol payload.
func (v Value) Symbol() *Symbol {
	return v.sym
}

// Object returns the object payload, or nil if the value is not an object.
func (v Value) Object() *Object {
	return v.obj
}

// IsCallable returns whether the value is a function object.
func (v Value) IsCallable() bool {
	if v.kind != KindObject {
		return false
	}
	_, ok := v.obj.Value.(*Function)
	return ok
}

// SameValue reports whether two values are the same in the sense used for
// property reconciliation: NaN is the same as NaN, and zeros of different
// signs differ.
func SameValue(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindUndefined, KindNull:
		return true
	case KindBoolean:
		return a.b == b.b
	case KindNumber:
		if math.IsNaN(a.n) && math.IsNaN(b.n) {
			return true
		}
		return a.n == b.n && math.Signbit(a.n) == math.Signbit(b.n)
	case KindString:
		return Equal(a.s, b.s)
	case KindSymbol:
		return a.sym == b.sym
	case KindObject:
		return a.obj == b.obj
	}
	return false
}

// GoString returns a debugging representation of the value.
func (v Value) GoString() string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.s.String())
	case KindObject:
		if v.obj.tag != nil {
			return "[object " + v.obj.tag.String() + "]"
		}
		return "[object Object]"
	case KindSymbol:
		return "Symbol(" + v.sym.Description + ")"
	}
	return v.goString()
}

func (v Value) goString() string {
	switch v.kind {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return numberToString(v.n)
	}
	return v.kind.String()
}

// Key is a property key: either a string name or a symbol. Keys are
// comparable.
type Key struct {
	name string
	sym  *Symbol
}

// StrKey creates a string property key.
func StrKey(name string) Key {
	return Key{name: name}
}

// SymKey creates a symbol property key.
func SymKey(sym *Symbol) Key {
	return Key{sym: sym}
}

// IsSymbol returns whether the key is a symbol.
func (k Key) IsSymbol() bool {
	return k.sym != nil
}

// Name returns the key's string name. It is empty for symbols.
func (k Key) Name() string {
	return k.name
}

// String returns a display form of the key.
func (k Key) String() string {
	if k.sym != nil {
		return "Symbol(" + k.sym.Description + ")"
	}
	return k.name
}

// numberToString formats a number the way scripts display numbers.
func numberToString(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case f == 0:
		return "0"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f < 0:
		return "-" + numberToString(-f)
	}
	e := strconv.FormatFloat(f, 'e', -1, 64)
	i := strings.IndexByte(e, 'e')
	digits := strings.Replace(e[:i], ".", "", 1)
	exp, _ := strconv.Atoi(e[i+1:])
	k, n := len(digits), exp+1
	switch {
	case k <= n && n <= 21:
		return digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		return digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		return "0." + strings.Repeat("0", -n) + digits
	}
	sign := "+"
	if n-1 < 0 {
		sign = "-"
	}
	x := strconv.Itoa(abs(n - 1))
	if k == 1 {
		return digits + "e" + sign + x
	}
	return digits[:1] + "." + digits[1:] + "e" + sign + x
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// stringToNumber parses a numeric string.
func stringToNumber(s string) float64 {
	s = strings.TrimFunc(s, isSpace)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		}
	}
	for _, c := range s {
		if !(c >= '0' && c <= '9' || c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-') {
			return math.NaN()
		}
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return n
}

// ToNumber converts a value to a number.
func (vm *VM) ToNumber(v Value) (float64, error) {
	switch v.kind {
	case KindUndefined:
		return math.NaN(), nil
	case KindNull:
		return 0, nil
	case KindBoolean:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case KindNumber:
		return v.n, nil
	case KindString:
		return stringToNumber(v.s.String()), nil
	case KindSymbol:
		return 0, typeErrorf("Cannot convert a Symbol value to a number")
	}
	p, err := vm.ToPrimitive(v)
	if err != nil {
		return 0, err
	}
	return vm.ToNumber(p)
}

// ToInteger converts a value to an integer, truncating toward zero. NaN
// becomes zero and infinities saturate.
func (vm *VM) ToInteger(v Value) (int, error) {
	f, err := vm.ToNumber(v)
	if err != nil {
		return 0, err
	}
	return clampInt(f), nil
}

func clampInt(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32*2:
		return math.MaxInt32 * 2
	case f <= math.MinInt32*2:
		return math.MinInt32 * 2
	}
	return int(f)
}

// ToString converts a value to a string.
func (vm *VM) ToString(v Value) (String, error) {
	switch v.kind {
	case KindString:
		return v.s, nil
	case KindSymbol:
		return Empty, typeErrorf("Cannot convert a Symbol value to a string")
	case KindObject:
		p, err := vm.ToPrimitive(v)
		if err != nil {
			return Empty, err
		}
		return vm.ToString(p)
	}
	return vm.NewString(v.goString())
}

// ToPrimitive converts an object to a primitive by calling its toString or
// valueOf method, in that order.
func (vm *VM) ToPrimitive(v Value) (Value, error) {
	if v.kind != KindObject {
		return v, nil
	}
	for _, name := range [...]string{"toString", "valueOf"} {
		f, _, err := vm.GetProperty(v.obj, StrKey(name), v)
		if err != nil {
			return Undefined, err
		}
		if !f.IsCallable() {
			continue
		}
		r, err := vm.Apply(f, v, nil)
		if err != nil {
			return Undefined, err
		}
		if r.kind != KindObject {
			return r, nil
		}
	}
	return Undefined, typeErrorf("Cannot convert object to primitive value")
}

// ToBoolean converts a value to a boolean.
func ToBoolean(v Value) bool {
	switch v.kind {
	case KindBoolean:
		return v.b
	case KindNumber:
		return v.n != 0 && !math.IsNaN(v.n)
	case KindString:
		return v.s.Size() != 0
	case KindSymbol, KindObject:
		return true
	}
	return false
}

// ToKey converts a value to a property key.
func (vm *VM) ToKey(v Value) (Key, error) {
	if v.kind == KindSymbol {
		return SymKey(v.sym), nil
	}
	s, err := vm.ToString(v)
	if err != nil {
		return Key{}, err
	}
	return StrKey(s.String()), nil
}
