package internal

// initError initializes Error, its kinds, and Error.prototype on this VM.
func (vm *VM) initError() {
	ep := vm.ErrorPrototype
	ep.hash.Insert(DataProperty(StrKey("name"), StringValue(vm.MustString("Error")), true, false, true), true)
	ep.hash.Insert(DataProperty(StrKey("message"), StringValue(Empty), true, false, true), true)
	vm.install(ep, map[string]native{
		"toString": {0, ErrorToString},
	})
	vm.constructor("Error", 1, ErrorCtor, func(vm *VM) *Object { return vm.ErrorPrototype })
	for _, k := range [...]ErrorKind{RangeError, TypeError, URIError, SyntaxError, InternalError} {
		k := k
		c := vm.NewFunction(k.String(), 1, func(vm *VM, this Value, args []Value) (Value, error) {
			return vm.errorFrom(k, args)
		})
		c.hash.Insert(HandlerProperty(StrKey("prototype"), protoHandler(func(vm *VM) *Object { return vm.ErrorPrototype }), false, false, false), true)
		vm.Global.hash.Insert(DataProperty(StrKey(k.String()), ObjectValue(c), true, false, true), true)
	}
}

// ErrorCtor is the Error constructor. Its result has no kind of its own.
func ErrorCtor(vm *VM, this Value, args []Value) (Value, error) {
	o := vm.ObjectWith(vm.ErrorPrototype, nil, ErrorTag)
	if m := arg(args, 0); !m.IsUndefined() {
		s, err := vm.ToString(m)
		if err != nil {
			return Undefined, err
		}
		o.hash.Insert(DataProperty(StrKey("message"), StringValue(s), true, false, true), true)
	}
	return ObjectValue(o), nil
}

// errorFrom creates an error object of a given kind with a message from the
// first argument.
func (vm *VM) errorFrom(kind ErrorKind, args []Value) (Value, error) {
	var msg string
	if m := arg(args, 0); !m.IsUndefined() {
		s, err := vm.ToString(m)
		if err != nil {
			return Undefined, err
		}
		msg = s.String()
	}
	return ObjectValue(vm.newError(&Error{Kind: kind, Message: msg})), nil
}

// ErrorToString is an Error.prototype method.
//
// toString returns the name and message separated by a colon, or whichever
// of them is not empty.
func ErrorToString(vm *VM, this Value, args []Value) (Value, error) {
	if this.kind != KindObject {
		return Undefined, typeErrorf("Error.prototype.toString called on non-object")
	}
	part := func(name, def string) (String, error) {
		v, err := vm.Get(this.obj, name)
		if err != nil {
			return Empty, err
		}
		if v.IsUndefined() {
			return vm.NewString(def)
		}
		return vm.ToString(v)
	}
	name, err := part("name", "Error")
	if err != nil {
		return Undefined, err
	}
	msg, err := part("message", "")
	if err != nil {
		return Undefined, err
	}
	switch {
	case name.Size() == 0:
		return StringValue(msg), nil
	case msg.Size() == 0:
		return StringValue(name), nil
	}
	return stringResult(vm.Concat(name, vm.MustString(": "), msg))
}
