package internal

import (
	"sort"
)

// native describes a built-in function to install.
type native struct {
	length int
	fn     NativeFunc
}

// install adds non-enumerable methods to o in name order.
func (vm *VM) install(o *Object, fns map[string]native) {
	names := make([]string, 0, len(fns))
	for name := range fns {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		f := fns[name]
		m := vm.NewFunction(name, f.length, f.fn)
		o.hash.Insert(DataProperty(StrKey(name), ObjectValue(m), true, false, true), true)
	}
}

// getter installs a configurable, non-enumerable accessor with only a
// getter.
func (vm *VM) getter(o *Object, name string, fn NativeFunc) {
	g := vm.NewFunction("get "+name, 0, fn)
	o.hash.Insert(&Property{
		Key:          StrKey(name),
		Kind:         PropAccessor,
		Getter:       ObjectValue(g),
		Enumerable:   FlagFalse,
		Configurable: FlagTrue,
	}, true)
}

// constructor creates a constructor function whose prototype property
// resolves to the runtime's counterpart of proto, and links proto back to
// it through a constructor property.
func (vm *VM) constructor(name string, length int, fn NativeFunc, proto func(vm *VM) *Object) *Object {
	c := vm.NewFunction(name, length, fn)
	c.hash.Insert(HandlerProperty(StrKey("prototype"), protoHandler(proto), false, false, false), true)
	if p := proto(vm); p != nil {
		p.hash.Insert(HandlerProperty(StrKey("constructor"), ctorHandler(name), true, false, true), true)
	}
	vm.Global.hash.Insert(DataProperty(StrKey(name), ObjectValue(c), true, false, true), true)
	return c
}

// argString converts the i'th argument to a string.
func (vm *VM) argString(args []Value, i int) (String, error) {
	return vm.ToString(arg(args, i))
}

// argInt converts the i'th argument to an integer, or returns def if it is
// undefined.
func (vm *VM) argInt(args []Value, i, def int) (int, error) {
	v := arg(args, i)
	if v.IsUndefined() {
		return def, nil
	}
	return vm.ToInteger(v)
}

// argObject returns the i'th argument as an object, or a TypeError naming
// the calling function.
func argObject(args []Value, i int, fn string) (*Object, error) {
	v := arg(args, i)
	if v.kind != KindObject {
		return nil, typeErrorf("%s called on non-object", fn)
	}
	return v.obj, nil
}

// ToObject converts a value to an object. Strings become String wrapper
// objects; undefined and null are a TypeError.
func (vm *VM) ToObject(v Value) (*Object, error) {
	switch v.kind {
	case KindUndefined, KindNull:
		return nil, typeErrorf("Cannot convert undefined or null to object")
	case KindObject:
		return v.obj, nil
	case KindString:
		return vm.NewStringObject(v.s), nil
	}
	return vm.ObjectWith(vm.ObjectPrototype, v, ObjectTag), nil
}

// NewStringObject creates a String wrapper object with a length property.
func (vm *VM) NewStringObject(s String) *Object {
	o := vm.ObjectWith(vm.StringPrototype, s, StringTag)
	o.hash.Insert(HandlerProperty(StrKey("length"), stringLength, false, false, false), false)
	return o
}

// stringLength is the handler for the length of String wrapper objects.
func stringLength(vm *VM, p *Property, this *Object, setval *Value) (Value, error) {
	s, _ := this.Value.(String)
	if setval != nil {
		return Undefined, typeErrorf("Cannot assign to read only property 'length' of string")
	}
	return IntValue(s.Len()), nil
}

// GetValue reads property k of any value. Properties of strings are their
// length, their characters by index, and the properties of the String
// prototype.
func (vm *VM) GetValue(v Value, k Key) (Value, error) {
	switch v.kind {
	case KindUndefined, KindNull:
		return Undefined, typeErrorf("Cannot read properties of %s (reading '%s')", v.goString(), k)
	case KindObject:
		r, _, err := vm.GetProperty(v.obj, k, v)
		return r, err
	case KindString:
		if k.sym == nil {
			if k.name == "length" {
				return IntValue(v.s.Len()), nil
			}
			if i, ok := arrayIndex(k.name); ok {
				c, ok, err := vm.At(v.s, i)
				if ok || err != nil {
					return StringValue(c), err
				}
			}
		}
		r, _, err := vm.GetProperty(vm.StringPrototype, k, v)
		return r, err
	}
	r, _, err := vm.GetProperty(vm.ObjectPrototype, k, v)
	return r, err
}

// Invoke calls the method named name on v.
func (vm *VM) Invoke(v Value, name string, args ...Value) (Value, error) {
	f, err := vm.GetValue(v, StrKey(name))
	if err != nil {
		return Undefined, err
	}
	if !f.IsCallable() {
		return Undefined, typeErrorf("%s.%s is not a function", v.GoString(), name)
	}
	return vm.Apply(f, v, args)
}

// arrayIndex parses a canonical non-negative integer key.
func arrayIndex(s string) (int, bool) {
	if s == "" || len(s) > 9 || s[0] == '0' && len(s) > 1 {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// arrayValues reads the elements of an array-like object.
func (vm *VM) arrayValues(v Value) ([]Value, error) {
	if v.IsNullish() {
		return nil, nil
	}
	if v.kind != KindObject {
		return nil, typeErrorf("CreateListFromArrayLike called on non-object")
	}
	lv, err := vm.Get(v.obj, "length")
	if err != nil {
		return nil, err
	}
	n, err := vm.ToInteger(lv)
	if err != nil {
		return nil, err
	}
	r := make([]Value, 0, clamp(n, 0, 1<<16))
	for i := 0; i < n; i++ {
		x, err := vm.Get(v.obj, itoa(i))
		if err != nil {
			return nil, err
		}
		r = append(r, x)
	}
	return r, nil
}
