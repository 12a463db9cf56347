package internal

// ToDescriptor decodes a descriptor object. Fields are read with ordinary
// property lookup, so inherited fields count and getters run.
func (vm *VM) ToDescriptor(v Value) (*Descriptor, error) {
	if v.kind != KindObject {
		return nil, typeErrorf("Property description must be an object: %s", v.GoString())
	}
	o := v.obj
	d := new(Descriptor)
	flag := func(name string, f *Flag) error {
		k := StrKey(name)
		if !vm.HasProperty(o, k) {
			return nil
		}
		x, _, err := vm.GetProperty(o, k, v)
		if err != nil {
			return err
		}
		*f = FlagOf(ToBoolean(x))
		return nil
	}
	if err := flag("enumerable", &d.Enumerable); err != nil {
		return nil, err
	}
	if err := flag("configurable", &d.Configurable); err != nil {
		return nil, err
	}
	var err error
	if vm.HasProperty(o, StrKey("value")) {
		d.HasValue = true
		if d.Value, _, err = vm.GetProperty(o, StrKey("value"), v); err != nil {
			return nil, err
		}
	}
	if err := flag("writable", &d.Writable); err != nil {
		return nil, err
	}
	if vm.HasProperty(o, StrKey("get")) {
		d.HasGet = true
		if d.Getter, _, err = vm.GetProperty(o, StrKey("get"), v); err != nil {
			return nil, err
		}
		if !d.Getter.IsUndefined() && !d.Getter.IsCallable() {
			return nil, typeErrorf("Getter must be a function: %s", d.Getter.GoString())
		}
	}
	if vm.HasProperty(o, StrKey("set")) {
		d.HasSet = true
		if d.Setter, _, err = vm.GetProperty(o, StrKey("set"), v); err != nil {
			return nil, err
		}
		if !d.Setter.IsUndefined() && !d.Setter.IsCallable() {
			return nil, typeErrorf("Setter must be a function: %s", d.Setter.GoString())
		}
	}
	if d.IsAccessor() && d.IsData() {
		return nil, typeErrorf("Invalid property descriptor. Cannot both specify accessors and a value or writable attribute")
	}
	return d, nil
}

// Describe encodes o's own property k as a descriptor object. The bool
// result is false if there is no such property.
func (vm *VM) Describe(o *Object, k Key) (Value, bool, error) {
	p, ok, err := vm.GetOwnProperty(o, k)
	if err != nil || !ok {
		return Undefined, false, err
	}
	d := vm.NewObject()
	set := func(name string, v Value) {
		d.hash.Insert(DataProperty(StrKey(name), v, true, true, true), true)
	}
	switch p.Kind {
	case PropAccessor:
		set("get", p.Getter)
		set("set", p.Setter)
	default:
		v, err := vm.propertyValue(p, o, ObjectValue(o))
		if err != nil {
			return Undefined, true, err
		}
		set("value", v)
		set("writable", BoolValue(p.Writable.Bool()))
	}
	set("enumerable", BoolValue(p.Enumerable.Bool()))
	set("configurable", BoolValue(p.Configurable.Bool()))
	return ObjectValue(d), true, nil
}
