package internal

import (
	"sync/atomic"

	"github.com/zephyrtronium/contains"
)

// Object is a script object.
//
// Always use NewObject, ObjectWith, or a type-specific constructor to obtain
// new objects.
type Object struct {
	// hash is the object's own property table.
	hash Hash
	// shared is a read-only table belonging to a template. Records found
	// there are copied into hash before they are modified.
	shared *Hash
	// proto is the object's prototype, or nil.
	proto *Object
	// extensible controls whether new properties may be added.
	extensible bool
	// template marks objects owned by a template. They are never modified
	// after the template is built.
	template bool

	// Value is the object's type-specific primitive value.
	Value interface{}
	// tag is the type indicator of the object.
	tag Tag

	// id is the object's unique ID.
	id uintptr
}

// Tag is a type indicator for objects. Tag values must be comparable.
type Tag interface {
	// CloneValue takes the Value of an existing object and returns the Value
	// to use for a copy of that object.
	CloneValue(value interface{}) interface{}

	// String returns the name of the type associated with this tag.
	String() string
}

// Tag returns the object's type indicator.
func (o *Object) Tag() Tag {
	return o.tag
}

// UniqueID returns the object's unique ID.
func (o *Object) UniqueID() uintptr {
	return o.id
}

// Proto returns the object's prototype.
func (o *Object) Proto() *Object {
	return o.proto
}

// IsExtensible returns whether properties may be added to the object.
func (o *Object) IsExtensible() bool {
	return o.extensible
}

// BasicTag is a Tag for types whose copies share their primitive value.
type BasicTag string

// CloneValue returns value.
func (t BasicTag) CloneValue(value interface{}) interface{} {
	return value
}

// String returns the receiver.
func (t BasicTag) String() string {
	return string(t)
}

// Tags for built-in types.
const (
	ObjectTag = BasicTag("Object")
	ArrayTag  = BasicTag("Array")
	ErrorTag  = BasicTag("Error")
	StringTag = BasicTag("String")
)

// objcounter is the global counter for object IDs. All accesses to this must
// be atomic.
var objcounter uintptr

// nextObject increments the object counter and returns its value as a unique
// ID for a new object.
func nextObject() uintptr {
	return atomic.AddUintptr(&objcounter, 1)
}

// ObjectWith creates a new extensible object with the given prototype,
// value, and tag.
func (vm *VM) ObjectWith(proto *Object, value interface{}, tag Tag) *Object {
	return &Object{
		proto:      proto,
		extensible: true,
		Value:      value,
		tag:        tag,
		id:         nextObject(),
	}
}

// NewObject creates a new plain object inheriting from the Object prototype.
func (vm *VM) NewObject() *Object {
	return vm.ObjectWith(vm.ObjectPrototype, nil, ObjectTag)
}

// NewArray creates an array-like object holding vals at index keys, with a
// length property.
func (vm *VM) NewArray(vals ...Value) *Object {
	o := vm.ObjectWith(vm.ObjectPrototype, nil, ArrayTag)
	for i, v := range vals {
		o.hash.Insert(DataProperty(StrKey(itoa(i)), v, true, true, true), false)
	}
	o.hash.Insert(DataProperty(StrKey("length"), IntValue(len(vals)), true, false, false), false)
	return o
}

// sharing creates an object whose records are read from a template table.
func (vm *VM) sharing(shared *Hash, proto *Object, value interface{}, tag Tag) *Object {
	o := vm.ObjectWith(proto, value, tag)
	o.shared = shared
	o.hash.masking = true
	return o
}

// SetPrototype changes the object's prototype. A nil proto removes it.
// Prototype chains must remain acyclic.
func (vm *VM) SetPrototype(o, proto *Object) error {
	if o.proto == proto {
		return nil
	}
	if o.template {
		return internalErrorf("cannot modify template object")
	}
	if !o.extensible {
		return typeErrorf("Cannot set prototype of non-extensible object")
	}
	if proto.IsKindOf(o) {
		return typeErrorf("Cyclic __proto__ value")
	}
	o.proto = proto
	return nil
}

// IsKindOf evaluates whether the object has kind as any of its ancestors, or
// is itself kind.
func (o *Object) IsKindOf(kind *Object) bool {
	set := contains.Set{}
	for p := o; p != nil; p = p.proto {
		if p == kind {
			return true
		}
		if !set.Add(p.UniqueID()) {
			// Chains are acyclic, but a broken one must not hang.
			return false
		}
	}
	return false
}

// PreventExtensions makes the object non-extensible.
func (vm *VM) PreventExtensions(o *Object) error {
	if o.template {
		return internalErrorf("cannot modify template object")
	}
	o.extensible = false
	return nil
}

// Freeze makes every own property non-configurable and every own data
// property non-writable, then prevents extensions.
func (vm *VM) Freeze(o *Object) error {
	for _, k := range vm.OwnKeys(o, false) {
		p, _ := vm.ownProperty(o, k)
		d := &Descriptor{Configurable: FlagFalse}
		if p.IsData() {
			d.Writable = FlagFalse
		}
		if err := vm.DefineProperty(o, k, d); err != nil {
			return err
		}
	}
	return vm.PreventExtensions(o)
}

// IsFrozen returns whether the object is non-extensible and all of its own
// properties are fixed.
func (vm *VM) IsFrozen(o *Object) bool {
	if o.extensible {
		return false
	}
	for _, k := range vm.OwnKeys(o, false) {
		p, _ := vm.ownProperty(o, k)
		if p.Configurable.Bool() || p.IsData() && p.Writable.Bool() {
			return false
		}
	}
	return true
}

func itoa(i int) string {
	if i >= 0 && i < 10 {
		return string(rune('0' + i))
	}
	return numberToString(float64(i))
}
