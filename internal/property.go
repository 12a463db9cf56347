package internal

// Flag is a tri-state property attribute. FlagUnset appears only in
// descriptors that have not yet been completed.
type Flag uint8

// Attribute states.
const (
	FlagUnset Flag = iota
	FlagFalse
	FlagTrue
)

// FlagOf converts a bool to a set flag.
func FlagOf(b bool) Flag {
	if b {
		return FlagTrue
	}
	return FlagFalse
}

// IsSet returns whether the flag has a value.
func (f Flag) IsSet() bool {
	return f != FlagUnset
}

// Bool returns whether the flag is true. Unset flags are false.
func (f Flag) Bool() bool {
	return f == FlagTrue
}

// PropKind is the kind of a property record.
type PropKind uint8

//go:generate go run golang.org/x/tools/cmd/stringer -type=PropKind -trimprefix=Prop -output=propkind_string.go

// Property kinds.
const (
	// PropData properties hold a value.
	PropData PropKind = iota
	// PropAccessor properties have a getter and setter.
	PropAccessor
	// PropHandler properties compute their values with a native handler.
	PropHandler
	// PropRef properties forward to a shared cell.
	PropRef
	// PropWhiteout records mark deleted properties.
	PropWhiteout
)

// Handler computes a handler property's value. If setval is non-nil, the
// handler stores it instead and returns it.
type Handler func(vm *VM, p *Property, this *Object, setval *Value) (Value, error)

// Cell is a shared slot referred to by PropRef properties.
type Cell struct {
	Value Value
}

// Property is a property record.
type Property struct {
	Key  Key
	Kind PropKind

	Writable     Flag
	Enumerable   Flag
	Configurable Flag

	// Value is the value of a data property.
	Value Value
	// Getter and Setter are the functions of an accessor property. Either may
	// be undefined.
	Getter, Setter Value
	// Handler computes the value of a handler property.
	Handler Handler
	// Ref is the cell of a reference property.
	Ref *Cell
}

// IsData returns whether the property holds a value directly or by proxy.
func (p *Property) IsData() bool {
	return p.Kind == PropData || p.Kind == PropHandler || p.Kind == PropRef
}

// DataProperty creates a data property record.
func DataProperty(key Key, v Value, writable, enumerable, configurable bool) *Property {
	return &Property{
		Key:          key,
		Kind:         PropData,
		Value:        v,
		Writable:     FlagOf(writable),
		Enumerable:   FlagOf(enumerable),
		Configurable: FlagOf(configurable),
	}
}

// HandlerProperty creates a handler property record.
func HandlerProperty(key Key, h Handler, writable, enumerable, configurable bool) *Property {
	return &Property{
		Key:          key,
		Kind:         PropHandler,
		Handler:      h,
		Writable:     FlagOf(writable),
		Enumerable:   FlagOf(enumerable),
		Configurable: FlagOf(configurable),
	}
}

// RefProperty creates a property that forwards to a cell.
func RefProperty(key Key, c *Cell, enumerable bool) *Property {
	return &Property{
		Key:          key,
		Kind:         PropRef,
		Ref:          c,
		Writable:     FlagTrue,
		Enumerable:   FlagOf(enumerable),
		Configurable: FlagFalse,
	}
}

// Descriptor is a requested property definition. Fields not present leave
// the corresponding attribute of an existing property unchanged.
type Descriptor struct {
	Value          Value
	Getter, Setter Value

	HasValue, HasGet, HasSet bool

	Writable     Flag
	Enumerable   Flag
	Configurable Flag
}

// ValueDescriptor describes a plain assignment: a writable, enumerable,
// configurable data property.
func ValueDescriptor(v Value) *Descriptor {
	return &Descriptor{
		Value:        v,
		HasValue:     true,
		Writable:     FlagTrue,
		Enumerable:   FlagTrue,
		Configurable: FlagTrue,
	}
}

// IsAccessor returns whether the descriptor names a getter or setter.
func (d *Descriptor) IsAccessor() bool {
	return d.HasGet || d.HasSet
}

// IsData returns whether the descriptor names a value or writability.
func (d *Descriptor) IsData() bool {
	return d.HasValue || d.Writable.IsSet()
}

// complete creates a new property record from the descriptor, defaulting
// absent fields to undefined and absent attributes to false.
func (d *Descriptor) complete(key Key) *Property {
	p := &Property{
		Key:          key,
		Enumerable:   orFalse(d.Enumerable),
		Configurable: orFalse(d.Configurable),
	}
	if d.IsAccessor() {
		p.Kind = PropAccessor
		p.Getter = d.Getter
		p.Setter = d.Setter
		return p
	}
	p.Kind = PropData
	p.Value = d.Value
	p.Writable = orFalse(d.Writable)
	return p
}

func orFalse(f Flag) Flag {
	if f == FlagUnset {
		return FlagFalse
	}
	return f
}
