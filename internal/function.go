package internal

// NativeFunc is the signature of functions implemented in Go.
type NativeFunc func(vm *VM, this Value, args []Value) (Value, error)

// Function is the primitive value of function objects.
type Function struct {
	// Native is the function's implementation.
	Native NativeFunc
	// Length is the number of declared arguments.
	Length int

	// Bound functions call Target with BoundThis and BoundArgs prepended.
	Target    Value
	BoundThis Value
	BoundArgs []Value
}

// FunctionTag is the Tag for function objects.
var FunctionTag functionTag

type functionTag struct{}

// CloneValue returns a copy of the function so that copies may be bound
// separately.
func (functionTag) CloneValue(value interface{}) interface{} {
	f := *value.(*Function)
	return &f
}

// String returns "Function".
func (functionTag) String() string {
	return "Function"
}

// NewFunction creates a function object.
func (vm *VM) NewFunction(name string, length int, fn NativeFunc) *Object {
	o := vm.ObjectWith(vm.FunctionPrototype, &Function{Native: fn, Length: length}, FunctionTag)
	n, err := vm.Intern(name)
	if err != nil {
		panic("jsval: bad function name " + name)
	}
	o.hash.Insert(DataProperty(StrKey("length"), IntValue(length), false, false, true), false)
	o.hash.Insert(DataProperty(StrKey("name"), StringValue(n), false, false, true), false)
	return o
}

// Apply calls fn with the given this value and arguments.
func (vm *VM) Apply(fn Value, this Value, args []Value) (Value, error) {
	if !fn.IsCallable() {
		return Undefined, typeErrorf("%s is not a function", fn.GoString())
	}
	f := fn.obj.Value.(*Function)
	if f.Native == nil {
		all := make([]Value, 0, len(f.BoundArgs)+len(args))
		all = append(append(all, f.BoundArgs...), args...)
		return vm.Apply(f.Target, f.BoundThis, all)
	}
	return f.Native(vm, this, args)
}

// Bind creates a bound function.
func (vm *VM) Bind(fn Value, this Value, args []Value) (*Object, error) {
	if !fn.IsCallable() {
		return nil, typeErrorf("Bind must be called on a function")
	}
	target := fn.obj.Value.(*Function)
	length := target.Length - len(args)
	if length < 0 {
		length = 0
	}
	f := &Function{
		Length:    length,
		Target:    fn,
		BoundThis: this,
		BoundArgs: append([]Value(nil), args...),
	}
	o := vm.ObjectWith(vm.FunctionPrototype, f, FunctionTag)
	name, _, err := vm.GetProperty(fn.obj, StrKey("name"), fn)
	if err != nil {
		return nil, err
	}
	ns := Empty
	if name.kind == KindString {
		ns = name.s
	}
	bn, err := vm.Concat(vm.MustString("bound "), ns)
	if err != nil {
		return nil, err
	}
	o.hash.Insert(DataProperty(StrKey("length"), IntValue(length), false, false, true), false)
	o.hash.Insert(DataProperty(StrKey("name"), StringValue(bn), false, false, true), false)
	return o, nil
}

// arg returns the i'th argument or undefined.
func arg(args []Value, i int) Value {
	if i < len(args) {
		return args[i]
	}
	return Undefined
}
