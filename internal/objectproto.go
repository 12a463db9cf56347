package internal

// initObject initializes Object and Object.prototype on this VM.
func (vm *VM) initObject() {
	vm.install(vm.ObjectPrototype, map[string]native{
		"hasOwnProperty":       {1, ObjectHasOwnProperty},
		"isPrototypeOf":        {1, ObjectIsPrototypeOf},
		"propertyIsEnumerable": {1, ObjectPropertyIsEnumerable},
		"toString":             {0, ObjectToString},
		"valueOf":              {0, ObjectValueOf},
	})
	c := vm.constructor("Object", 1, ObjectCtor, func(vm *VM) *Object { return vm.ObjectPrototype })
	vm.install(c, map[string]native{
		"create":                    {2, ObjectCreate},
		"defineProperties":          {2, ObjectDefineProperties},
		"defineProperty":            {3, ObjectDefineProperty},
		"freeze":                    {1, ObjectFreeze},
		"getOwnPropertyDescriptor":  {2, ObjectGetOwnPropertyDescriptor},
		"getOwnPropertyDescriptors": {1, ObjectGetOwnPropertyDescriptors},
		"getOwnPropertyNames":       {1, ObjectGetOwnPropertyNames},
		"getPrototypeOf":            {1, ObjectGetPrototypeOf},
		"isExtensible":              {1, ObjectIsExtensible},
		"isFrozen":                  {1, ObjectIsFrozen},
		"keys":                      {1, ObjectKeys},
		"preventExtensions":         {1, ObjectPreventExtensions},
		"setPrototypeOf":            {2, ObjectSetPrototypeOf},
	})
}

// ObjectCtor is the Object constructor. It converts its argument to an
// object, or creates a new one.
func ObjectCtor(vm *VM, this Value, args []Value) (Value, error) {
	v := arg(args, 0)
	if v.IsNullish() {
		return ObjectValue(vm.NewObject()), nil
	}
	o, err := vm.ToObject(v)
	if err != nil {
		return Undefined, err
	}
	return ObjectValue(o), nil
}

// ObjectCreate is an Object function.
//
// create makes an object with the given prototype and, optionally,
// properties defined from descriptors.
func ObjectCreate(vm *VM, this Value, args []Value) (Value, error) {
	p := arg(args, 0)
	var proto *Object
	switch p.kind {
	case KindObject:
		proto = p.obj
	case KindNull:
	default:
		return Undefined, typeErrorf("Object prototype may only be an Object or null: %s", p.GoString())
	}
	o := vm.ObjectWith(proto, nil, ObjectTag)
	if props := arg(args, 1); !props.IsUndefined() {
		if err := vm.defineProperties(o, props); err != nil {
			return Undefined, err
		}
	}
	return ObjectValue(o), nil
}

// ObjectDefineProperty is an Object function.
//
// defineProperty creates or reconciles a property from a descriptor object.
func ObjectDefineProperty(vm *VM, this Value, args []Value) (Value, error) {
	o, err := argObject(args, 0, "Object.defineProperty")
	if err != nil {
		return Undefined, err
	}
	k, err := vm.ToKey(arg(args, 1))
	if err != nil {
		return Undefined, err
	}
	d, err := vm.ToDescriptor(arg(args, 2))
	if err != nil {
		return Undefined, err
	}
	if err := vm.DefineProperty(o, k, d); err != nil {
		return Undefined, err
	}
	return ObjectValue(o), nil
}

// ObjectDefineProperties is an Object function.
//
// defineProperties defines a property for each enumerable own property of
// its second argument.
func ObjectDefineProperties(vm *VM, this Value, args []Value) (Value, error) {
	o, err := argObject(args, 0, "Object.defineProperties")
	if err != nil {
		return Undefined, err
	}
	if err := vm.defineProperties(o, arg(args, 1)); err != nil {
		return Undefined, err
	}
	return ObjectValue(o), nil
}

// defineProperties decodes every descriptor before defining any.
func (vm *VM) defineProperties(o *Object, props Value) error {
	src, err := vm.ToObject(props)
	if err != nil {
		return err
	}
	keys := vm.OwnKeys(src, true)
	descs := make([]*Descriptor, len(keys))
	for i, k := range keys {
		v, _, err := vm.GetProperty(src, k, ObjectValue(src))
		if err != nil {
			return err
		}
		if descs[i], err = vm.ToDescriptor(v); err != nil {
			return err
		}
	}
	for i, k := range keys {
		if err := vm.DefineProperty(o, k, descs[i]); err != nil {
			return err
		}
	}
	return nil
}

// ObjectGetOwnPropertyDescriptor is an Object function.
//
// getOwnPropertyDescriptor describes an own property, or returns undefined.
func ObjectGetOwnPropertyDescriptor(vm *VM, this Value, args []Value) (Value, error) {
	o, err := vm.ToObject(arg(args, 0))
	if err != nil {
		return Undefined, err
	}
	k, err := vm.ToKey(arg(args, 1))
	if err != nil {
		return Undefined, err
	}
	d, _, err := vm.Describe(o, k)
	return d, err
}

// ObjectGetOwnPropertyDescriptors is an Object function.
//
// getOwnPropertyDescriptors describes every own property.
func ObjectGetOwnPropertyDescriptors(vm *VM, this Value, args []Value) (Value, error) {
	o, err := vm.ToObject(arg(args, 0))
	if err != nil {
		return Undefined, err
	}
	r := vm.NewObject()
	for _, k := range vm.OwnKeys(o, false) {
		d, ok, err := vm.Describe(o, k)
		if err != nil {
			return Undefined, err
		}
		if ok {
			r.hash.Insert(DataProperty(k, d, true, true, true), true)
		}
	}
	return ObjectValue(r), nil
}

// ObjectGetOwnPropertyNames is an Object function.
//
// getOwnPropertyNames lists the string keys of every own property.
func ObjectGetOwnPropertyNames(vm *VM, this Value, args []Value) (Value, error) {
	return vm.keyArray(arg(args, 0), false)
}

// ObjectKeys is an Object function.
//
// keys lists the string keys of enumerable own properties.
func ObjectKeys(vm *VM, this Value, args []Value) (Value, error) {
	return vm.keyArray(arg(args, 0), true)
}

func (vm *VM) keyArray(v Value, enumerableOnly bool) (Value, error) {
	o, err := vm.ToObject(v)
	if err != nil {
		return Undefined, err
	}
	var vals []Value
	if s, ok := o.Value.(String); ok && o.tag == StringTag {
		for i := 0; i < s.Len(); i++ {
			vals = append(vals, StringValue(vm.MustString(itoa(i))))
		}
	}
	for _, k := range vm.OwnKeys(o, enumerableOnly) {
		if k.IsSymbol() {
			continue
		}
		s, err := vm.NewString(k.name)
		if err != nil {
			return Undefined, err
		}
		vals = append(vals, StringValue(s))
	}
	return ObjectValue(vm.NewArray(vals...)), nil
}

// ObjectFreeze is an Object function.
func ObjectFreeze(vm *VM, this Value, args []Value) (Value, error) {
	v := arg(args, 0)
	if v.kind != KindObject {
		return v, nil
	}
	return v, vm.Freeze(v.obj)
}

// ObjectIsFrozen is an Object function.
func ObjectIsFrozen(vm *VM, this Value, args []Value) (Value, error) {
	v := arg(args, 0)
	if v.kind != KindObject {
		return True, nil
	}
	return BoolValue(vm.IsFrozen(v.obj)), nil
}

// ObjectPreventExtensions is an Object function.
func ObjectPreventExtensions(vm *VM, this Value, args []Value) (Value, error) {
	v := arg(args, 0)
	if v.kind != KindObject {
		return v, nil
	}
	return v, vm.PreventExtensions(v.obj)
}

// ObjectIsExtensible is an Object function.
func ObjectIsExtensible(vm *VM, this Value, args []Value) (Value, error) {
	v := arg(args, 0)
	if v.kind != KindObject {
		return False, nil
	}
	return BoolValue(v.obj.IsExtensible()), nil
}

// ObjectGetPrototypeOf is an Object function.
func ObjectGetPrototypeOf(vm *VM, this Value, args []Value) (Value, error) {
	v := arg(args, 0)
	if v.kind == KindString {
		return ObjectValue(vm.StringPrototype), nil
	}
	o, err := vm.ToObject(v)
	if err != nil {
		return Undefined, err
	}
	return ObjectValue(o.proto), nil
}

// ObjectSetPrototypeOf is an Object function.
//
// setPrototypeOf changes an object's prototype. The new prototype must be an
// object or null, and must not have the object in its own chain.
func ObjectSetPrototypeOf(vm *VM, this Value, args []Value) (Value, error) {
	v, p := arg(args, 0), arg(args, 1)
	if v.IsNullish() {
		return Undefined, typeErrorf("Object.setPrototypeOf called on null or undefined")
	}
	var proto *Object
	switch p.kind {
	case KindObject:
		proto = p.obj
	case KindNull:
	default:
		return Undefined, typeErrorf("Object prototype may only be an Object or null: %s", p.GoString())
	}
	if v.kind != KindObject {
		return v, nil
	}
	return v, vm.SetPrototype(v.obj, proto)
}

// ObjectHasOwnProperty is an Object.prototype method.
func ObjectHasOwnProperty(vm *VM, this Value, args []Value) (Value, error) {
	k, err := vm.ToKey(arg(args, 0))
	if err != nil {
		return Undefined, err
	}
	o, err := vm.ToObject(this)
	if err != nil {
		return Undefined, err
	}
	return BoolValue(vm.HasOwnProperty(o, k)), nil
}

// ObjectPropertyIsEnumerable is an Object.prototype method.
func ObjectPropertyIsEnumerable(vm *VM, this Value, args []Value) (Value, error) {
	k, err := vm.ToKey(arg(args, 0))
	if err != nil {
		return Undefined, err
	}
	o, err := vm.ToObject(this)
	if err != nil {
		return Undefined, err
	}
	p, _ := vm.ownProperty(o, k)
	return BoolValue(p != nil && p.Enumerable.Bool()), nil
}

// ObjectIsPrototypeOf is an Object.prototype method.
//
// isPrototypeOf reports whether this appears in the prototype chain of its
// argument.
func ObjectIsPrototypeOf(vm *VM, this Value, args []Value) (Value, error) {
	v := arg(args, 0)
	if v.kind != KindObject {
		return False, nil
	}
	o, err := vm.ToObject(this)
	if err != nil {
		return Undefined, err
	}
	if v.obj.proto == nil {
		return False, nil
	}
	return BoolValue(v.obj.proto.IsKindOf(o)), nil
}

// ObjectToString is an Object.prototype method.
func ObjectToString(vm *VM, this Value, args []Value) (Value, error) {
	var s string
	switch this.kind {
	case KindUndefined:
		s = "[object Undefined]"
	case KindNull:
		s = "[object Null]"
	case KindString:
		s = "[object String]"
	default:
		s = this.GoString()
		if this.kind != KindObject {
			s = "[object Object]"
		}
	}
	r, err := vm.Intern(s)
	return StringValue(r), err
}

// ObjectValueOf is an Object.prototype method.
func ObjectValueOf(vm *VM, this Value, args []Value) (Value, error) {
	o, err := vm.ToObject(this)
	if err != nil {
		return Undefined, err
	}
	return ObjectValue(o), nil
}
