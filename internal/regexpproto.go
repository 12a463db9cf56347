package internal

// initRegExp initializes RegExp and RegExp.prototype on this VM.
func (vm *VM) initRegExp() {
	rp := vm.RegExpPrototype
	vm.install(rp, map[string]native{
		"exec":     {1, RegExpExec},
		"test":     {1, RegExpTest},
		"toString": {0, RegExpToString},
	})
	vm.getter(rp, "source", RegExpSource)
	vm.getter(rp, "flags", RegExpFlagString)
	flag := func(name string, get func(f RegExpFlags) bool) {
		vm.getter(rp, name, func(vm *VM, this Value, args []Value) (Value, error) {
			r, ok := regexpOf(this)
			if !ok {
				if this.kind == KindObject && this.obj == vm.RegExpPrototype {
					return Undefined, nil
				}
				return Undefined, typeErrorf("RegExp.prototype.%s getter called on non-RegExp", name)
			}
			return BoolValue(get(r.Flags)), nil
		})
	}
	flag("dotAll", func(f RegExpFlags) bool { return f.DotAll })
	flag("global", func(f RegExpFlags) bool { return f.Global })
	flag("ignoreCase", func(f RegExpFlags) bool { return f.IgnoreCase })
	flag("multiline", func(f RegExpFlags) bool { return f.Multiline })
	flag("sticky", func(f RegExpFlags) bool { return f.Sticky })
	flag("unicode", func(f RegExpFlags) bool { return f.Unicode })
	vm.constructor("RegExp", 2, RegExpCtor, func(vm *VM) *Object { return vm.RegExpPrototype })
}

// RegExpCtor is the RegExp constructor. Given a regular expression, it
// copies its source, with new flags if they are given.
func RegExpCtor(vm *VM, this Value, args []Value) (Value, error) {
	pat, fl := arg(args, 0), arg(args, 1)
	var src, flags String
	var err error
	if r, ok := regexpOf(pat); ok {
		src = r.Source
		flags, err = vm.NewString(r.Flags.String())
	} else if !pat.IsUndefined() {
		src, err = vm.ToString(pat)
	}
	if err != nil {
		return Undefined, err
	}
	if !fl.IsUndefined() {
		if flags, err = vm.ToString(fl); err != nil {
			return Undefined, err
		}
	}
	o, err := vm.NewRegExp(src, flags)
	if err != nil {
		return Undefined, err
	}
	return ObjectValue(o), nil
}

func thisRegExp(this Value, method string) (*Object, *RegExp, error) {
	r, ok := regexpOf(this)
	if !ok {
		return nil, nil, typeErrorf("RegExp.prototype.%s called on incompatible receiver %s", method, this.GoString())
	}
	return this.obj, r, nil
}

// RegExpExec is a RegExp.prototype method.
//
// exec returns a match array with index and input properties, or null.
func RegExpExec(vm *VM, this Value, args []Value) (Value, error) {
	o, _, err := thisRegExp(this, "exec")
	if err != nil {
		return Undefined, err
	}
	s, err := vm.argString(args, 0)
	if err != nil {
		return Undefined, err
	}
	return vm.Exec(o, s)
}

// RegExpTest is a RegExp.prototype method.
func RegExpTest(vm *VM, this Value, args []Value) (Value, error) {
	o, _, err := thisRegExp(this, "test")
	if err != nil {
		return Undefined, err
	}
	s, err := vm.argString(args, 0)
	if err != nil {
		return Undefined, err
	}
	m, err := vm.Exec(o, s)
	if err != nil {
		return Undefined, err
	}
	return BoolValue(m.kind == KindObject), nil
}

// RegExpToString is a RegExp.prototype method.
func RegExpToString(vm *VM, this Value, args []Value) (Value, error) {
	_, r, err := thisRegExp(this, "toString")
	if err != nil {
		return Undefined, err
	}
	src := r.Source
	if src.Size() == 0 {
		src = vm.MustString("(?:)")
	}
	return stringResult(vm.Concat(vm.MustString("/"), src, vm.MustString("/"+r.Flags.String())))
}

// RegExpSource is the getter of RegExp.prototype.source.
func RegExpSource(vm *VM, this Value, args []Value) (Value, error) {
	r, ok := regexpOf(this)
	if !ok {
		return stringResult(vm.Intern("(?:)"))
	}
	return StringValue(r.Source), nil
}

// RegExpFlagString is the getter of RegExp.prototype.flags.
func RegExpFlagString(vm *VM, this Value, args []Value) (Value, error) {
	r, ok := regexpOf(this)
	if !ok {
		return StringValue(Empty), nil
	}
	return stringResult(vm.NewString(r.Flags.String()))
}
