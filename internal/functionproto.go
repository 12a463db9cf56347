package internal

// initFunction initializes Function.prototype on this VM.
func (vm *VM) initFunction() {
	fp := vm.FunctionPrototype
	fp.hash.Insert(DataProperty(StrKey("length"), IntValue(0), false, false, true), true)
	fp.hash.Insert(DataProperty(StrKey("name"), StringValue(Empty), false, false, true), true)
	vm.install(fp, map[string]native{
		"apply":    {2, FunctionApply},
		"bind":     {1, FunctionBind},
		"call":     {1, FunctionCall},
		"toString": {0, FunctionToString},
	})
}

// FunctionCtor is the Function constructor. Runtimes at this layer have no
// compiler, so it always fails.
func FunctionCtor(vm *VM, this Value, args []Value) (Value, error) {
	return Undefined, NewError(InternalError, "Code generation from strings disallowed for this context")
}

// FunctionApply is a Function.prototype method.
//
// apply calls the function with a this value and an array-like of
// arguments.
func FunctionApply(vm *VM, this Value, args []Value) (Value, error) {
	list, err := vm.arrayValues(arg(args, 1))
	if err != nil {
		return Undefined, err
	}
	return vm.Apply(this, arg(args, 0), list)
}

// FunctionBind is a Function.prototype method.
//
// bind creates a function that calls this one with a fixed this value and
// leading arguments.
func FunctionBind(vm *VM, this Value, args []Value) (Value, error) {
	var rest []Value
	if len(args) > 1 {
		rest = args[1:]
	}
	o, err := vm.Bind(this, arg(args, 0), rest)
	if err != nil {
		return Undefined, err
	}
	return ObjectValue(o), nil
}

// FunctionCall is a Function.prototype method.
//
// call calls the function with a this value and the remaining arguments.
func FunctionCall(vm *VM, this Value, args []Value) (Value, error) {
	var rest []Value
	if len(args) > 1 {
		rest = args[1:]
	}
	return vm.Apply(this, arg(args, 0), rest)
}

// FunctionToString is a Function.prototype method.
func FunctionToString(vm *VM, this Value, args []Value) (Value, error) {
	if !this.IsCallable() {
		return Undefined, typeErrorf("Function.prototype.toString requires that 'this' be a Function")
	}
	name, err := vm.Get(this.obj, "name")
	if err != nil {
		return Undefined, err
	}
	n, err := vm.ToString(name)
	if err != nil {
		return Undefined, err
	}
	s, err := vm.Concat(vm.MustString("function "), n, vm.MustString("() { [native code] }"))
	return StringValue(s), err
}
