package internal

// DefineProperty creates or updates o's own property k according to d.
//
// A new property takes d's fields, with absent attributes false. An existing
// property is reconciled with d: a non-configurable property rejects any
// change other than setting a writable value or lowering writability, and a
// change between data and accessor kinds replaces the record, defaulting the
// attributes d does not name. Shared records are copied into o's own table
// before they change.
func (vm *VM) DefineProperty(o *Object, k Key, d *Descriptor) error {
	if o.template {
		return internalErrorf("cannot modify template object")
	}
	if d.IsAccessor() && d.IsData() {
		return typeErrorf("Invalid property descriptor. Cannot both specify accessors and a value or writable attribute")
	}
	prev, shared := vm.ownProperty(o, k)
	materialized := false
	if prev == nil {
		if !o.extensible {
			return propertyErrorf(k, "Cannot define property %s, object is not extensible", k)
		}
		return o.hash.Insert(d.complete(k), true)
	}
	switch prev.Kind {
	case PropRef:
		if !d.IsAccessor() && d.Writable != FlagFalse {
			if err := checkRedefine(prev, k, d); err != nil {
				return err
			}
			if d.HasValue {
				prev.Ref.Value = d.Value
			}
			return nil
		}
		// Fixing the value or changing the kind detaches the cell.
		np := *prev
		np.Kind, np.Value, np.Ref = PropData, prev.Ref.Value, nil
		prev, materialized = &np, true
	case PropHandler:
		if !d.IsAccessor() && !d.Enumerable.IsSet() && !d.Configurable.IsSet() && !d.Writable.IsSet() {
			if !d.HasValue {
				return nil
			}
			if !prev.Writable.Bool() {
				cur, err := prev.Handler(vm, prev, o, nil)
				if err != nil {
					return err
				}
				if SameValue(cur, d.Value) {
					return nil
				}
				return propertyErrorf(k, "Cannot redefine property: %s", k)
			}
			_, err := prev.Handler(vm, prev, o, &d.Value)
			return err
		}
		// Any other change materializes the computed value.
		v, err := prev.Handler(vm, prev, o, nil)
		if err != nil {
			return err
		}
		np := *prev
		np.Kind, np.Value, np.Handler = PropData, v, nil
		prev, materialized = &np, true
	}
	if err := checkRedefine(prev, k, d); err != nil {
		return err
	}
	if prev.Kind == PropData && d.IsAccessor() || prev.Kind == PropAccessor && d.IsData() {
		// Kind changes start over from defaults.
		return o.hash.Insert(d.complete(k), true)
	}
	p := prev
	if shared {
		var err error
		if p, err = vm.privateCopy(o, prev); err != nil {
			return err
		}
	}
	if d.HasValue {
		p.Value = d.Value
	}
	if d.HasGet {
		p.Getter = d.Getter
	}
	if d.HasSet {
		p.Setter = d.Setter
	}
	if d.Writable.IsSet() {
		p.Writable = d.Writable
	}
	if d.Enumerable.IsSet() {
		p.Enumerable = d.Enumerable
	}
	if d.Configurable.IsSet() {
		p.Configurable = d.Configurable
	}
	if materialized {
		return o.hash.Insert(p, true)
	}
	return nil
}

// checkRedefine rejects changes to a non-configurable property other than
// setting the value of a writable property or making it non-writable.
func checkRedefine(p *Property, k Key, d *Descriptor) error {
	if p.Configurable.Bool() {
		return nil
	}
	reject := func() error {
		return propertyErrorf(k, "Cannot redefine property: %s", k)
	}
	if d.Configurable == FlagTrue {
		return reject()
	}
	if d.Enumerable.IsSet() && d.Enumerable != p.Enumerable {
		return reject()
	}
	switch p.Kind {
	case PropData:
		if d.IsAccessor() {
			return reject()
		}
		if !p.Writable.Bool() {
			if d.Writable == FlagTrue {
				return reject()
			}
			if d.HasValue && !SameValue(d.Value, p.Value) {
				return reject()
			}
		}
	case PropAccessor:
		if d.IsData() {
			return reject()
		}
		if d.HasGet && !SameValue(d.Getter, p.Getter) {
			return reject()
		}
		if d.HasSet && !SameValue(d.Setter, p.Setter) {
			return reject()
		}
	}
	return nil
}

// DefineCell makes o's own property k forward reads and writes to c.
func (vm *VM) DefineCell(o *Object, k Key, c *Cell, enumerable bool) error {
	if o.template {
		return internalErrorf("cannot modify template object")
	}
	prev, _ := vm.ownProperty(o, k)
	switch {
	case prev == nil && !o.extensible:
		return propertyErrorf(k, "Cannot define property %s, object is not extensible", k)
	case prev != nil && !prev.Configurable.Bool():
		return propertyErrorf(k, "Cannot redefine property: %s", k)
	}
	return o.hash.Insert(RefProperty(k, c, enumerable), true)
}
