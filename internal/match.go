package internal

// regexpOf returns the primitive value of a regular expression object.
func regexpOf(v Value) (*RegExp, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	r, ok := v.obj.Value.(*RegExp)
	return r, ok
}

// matchArray builds the result of a successful match: the matched text and
// captures at indices, with index and input properties.
func (vm *VM) matchArray(s String, loc []int) (*Object, error) {
	vals := make([]Value, 0, len(loc)/2)
	for i := 0; i+1 < len(loc); i += 2 {
		if loc[i] < 0 {
			vals = append(vals, Undefined)
			continue
		}
		c, err := vm.byteSlice(s, loc[i], loc[i+1])
		if err != nil {
			return nil, err
		}
		vals = append(vals, StringValue(c))
	}
	a := vm.NewArray(vals...)
	a.hash.Insert(DataProperty(StrKey("index"), IntValue(s.CharIndex(loc[0])), true, true, true), true)
	a.hash.Insert(DataProperty(StrKey("input"), StringValue(s), true, true, true), true)
	return a, nil
}

// Exec runs the regular expression object re against s. Global and sticky
// expressions start at lastIndex and update it. The result is a match array
// or null.
func (vm *VM) Exec(re *Object, s String) (Value, error) {
	r, ok := re.Value.(*RegExp)
	if !ok {
		return Undefined, typeErrorf("RegExp.prototype.exec called on incompatible receiver %s", ObjectValue(re).GoString())
	}
	tracking := r.Flags.Global || r.Flags.Sticky
	start := 0
	if tracking {
		li, err := vm.lastIndex(re)
		if err != nil {
			return Undefined, err
		}
		if li < 0 || li > s.Len() {
			return Null, vm.setLastIndex(re, 0)
		}
		start = s.ByteOffset(li)
	}
	loc, err := execAt(r, s, start)
	if err != nil {
		return Undefined, err
	}
	if loc == nil {
		if tracking {
			return Null, vm.setLastIndex(re, 0)
		}
		return Null, nil
	}
	if tracking {
		if err := vm.setLastIndex(re, s.CharIndex(loc[1])); err != nil {
			return Undefined, err
		}
	}
	a, err := vm.matchArray(s, loc)
	if err != nil {
		return Undefined, err
	}
	return ObjectValue(a), nil
}

// Search returns the character index of the first match of r in s, or -1.
// lastIndex is neither read nor changed.
func (vm *VM) Search(s String, r *RegExp) (int, error) {
	loc, err := execAt(r, s, 0)
	if err != nil || loc == nil {
		return -1, err
	}
	return s.CharIndex(loc[0]), nil
}

// Match matches the regular expression object re against s. Non-global
// expressions behave as Exec. Global expressions return an array of every
// matched text, or null, and reset lastIndex.
func (vm *VM) Match(s String, re *Object) (Value, error) {
	r, ok := re.Value.(*RegExp)
	if !ok {
		return Undefined, typeErrorf("not a regular expression")
	}
	if !r.Flags.Global {
		return vm.Exec(re, s)
	}
	var all []Value
	for pos := 0; pos <= s.Size(); {
		loc, err := execAt(r, s, pos)
		if err != nil {
			return Undefined, err
		}
		if loc == nil {
			break
		}
		m, err := vm.byteSlice(s, loc[0], loc[1])
		if err != nil {
			return Undefined, err
		}
		all = append(all, StringValue(m))
		pos = loc[1]
		if loc[0] == loc[1] {
			pos = vm.advance(s, pos)
		}
	}
	if err := vm.setLastIndex(re, 0); err != nil {
		return Undefined, err
	}
	if len(all) == 0 {
		return Null, nil
	}
	return ObjectValue(vm.NewArray(all...)), nil
}
