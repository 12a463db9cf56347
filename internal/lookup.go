package internal

// ownProperty finds the own record of o for k. The shared result reports
// whether the record belongs to o's read-only shared table. Whiteouts in the
// own table mask shared records.
func (vm *VM) ownProperty(o *Object, k Key) (p *Property, shared bool) {
	if p, ok := o.hash.Find(k); ok {
		if p.Kind == PropWhiteout {
			return nil, false
		}
		return p, false
	}
	if o.shared != nil {
		if p, ok := o.shared.Find(k); ok && p.Kind != PropWhiteout {
			return p, true
		}
	}
	return nil, false
}

// isTemplateValue returns whether v is an object owned by a template.
func isTemplateValue(v Value) bool {
	return v.kind == KindObject && v.obj.template
}

// holdsTemplateValue returns whether reading p would expose a template
// object.
func holdsTemplateValue(p *Property) bool {
	switch p.Kind {
	case PropData:
		return isTemplateValue(p.Value)
	case PropAccessor:
		return isTemplateValue(p.Getter) || isTemplateValue(p.Setter)
	}
	return false
}

// privateCopy copies a shared record into o's own table, replacing any
// template objects it holds with private copies, and returns the copy.
func (vm *VM) privateCopy(o *Object, p *Property) (*Property, error) {
	cp := *p
	switch p.Kind {
	case PropData:
		cp.Value = vm.copyValue(p.Value, "")
	case PropAccessor:
		cp.Getter = vm.copyValue(p.Getter, "get "+p.Key.String())
		cp.Setter = vm.copyValue(p.Setter, "set "+p.Key.String())
	}
	if err := o.hash.Insert(&cp, false); err != nil {
		return nil, err
	}
	log.Debugf("copied shared property %s to object %d", p.Key, o.id)
	return &cp, nil
}

// copyValue returns a private copy of a template object. The copy reads its
// own properties from the template object's table. Functions are renamed to
// name if it is not empty.
func (vm *VM) copyValue(v Value, name string) Value {
	if !isTemplateValue(v) {
		return v
	}
	t := v.obj
	proto := t.proto
	if p, ok := vm.mapped[proto]; ok {
		proto = p
	} else if proto != nil && proto.template {
		proto = vm.ObjectPrototype
	}
	var value interface{}
	if t.tag != nil {
		value = t.tag.CloneValue(t.Value)
	}
	c := vm.sharing(&t.hash, proto, value, t.tag)
	c.extensible = t.extensible
	if name != "" && v.IsCallable() {
		s, err := vm.Intern(name)
		if err == nil {
			c.hash.Insert(DataProperty(StrKey("name"), StringValue(s), false, false, true), true)
		}
	}
	return ObjectValue(c)
}

// sharedRecord resolves a record found by ownProperty for reading, copying
// it into o's own table if it would expose template objects.
func (vm *VM) sharedRecord(o *Object, p *Property, shared bool) (*Property, error) {
	if shared && holdsTemplateValue(p) {
		return vm.privateCopy(o, p)
	}
	return p, nil
}

// writableRecord resolves a record found by ownProperty for modification,
// copying it into o's own table if it is shared.
func (vm *VM) writableRecord(o *Object, p *Property, shared bool) (*Property, error) {
	if o.template {
		return nil, internalErrorf("cannot modify template object")
	}
	if shared {
		return vm.privateCopy(o, p)
	}
	return p, nil
}

// propertyValue reads the value of a record found on holder.
func (vm *VM) propertyValue(p *Property, holder *Object, receiver Value) (Value, error) {
	switch p.Kind {
	case PropData:
		return p.Value, nil
	case PropRef:
		return p.Ref.Value, nil
	case PropHandler:
		this := holder
		if receiver.kind == KindObject {
			this = receiver.obj
		}
		return p.Handler(vm, p, this, nil)
	case PropAccessor:
		if p.Getter.IsUndefined() {
			return Undefined, nil
		}
		return vm.Apply(p.Getter, receiver, nil)
	}
	return Undefined, internalErrorf("cannot read %v property %s", p.Kind, p.Key)
}

// GetOwnProperty returns the own record of o for k.
func (vm *VM) GetOwnProperty(o *Object, k Key) (*Property, bool, error) {
	p, shared := vm.ownProperty(o, k)
	if p == nil {
		return nil, false, nil
	}
	p, err := vm.sharedRecord(o, p, shared)
	return p, p != nil, err
}

// GetProperty finds k on o or its prototypes and returns its value. Getters
// are called with receiver as this. The bool result reports whether the
// property exists.
func (vm *VM) GetProperty(o *Object, k Key, receiver Value) (Value, bool, error) {
	for obj := o; obj != nil; obj = obj.proto {
		p, shared := vm.ownProperty(obj, k)
		if p == nil {
			continue
		}
		p, err := vm.sharedRecord(obj, p, shared)
		if err != nil {
			return Undefined, true, err
		}
		v, err := vm.propertyValue(p, obj, receiver)
		return v, true, err
	}
	return Undefined, false, nil
}

// Get is a convenience wrapper for GetProperty using o as the receiver.
func (vm *VM) Get(o *Object, name string) (Value, error) {
	v, _, err := vm.GetProperty(o, StrKey(name), ObjectValue(o))
	return v, err
}

// HasProperty returns whether o or a prototype has k.
func (vm *VM) HasProperty(o *Object, k Key) bool {
	for obj := o; obj != nil; obj = obj.proto {
		if p, _ := vm.ownProperty(obj, k); p != nil {
			return true
		}
	}
	return false
}

// HasOwnProperty returns whether o itself has k.
func (vm *VM) HasOwnProperty(o *Object, k Key) bool {
	p, _ := vm.ownProperty(o, k)
	return p != nil
}

// SetProperty assigns v to k on o. Writes to inherited data properties
// create own properties; inherited accessors and read-only properties are
// honored.
func (vm *VM) SetProperty(o *Object, k Key, v Value) error {
walk:
	for obj := o; obj != nil; obj = obj.proto {
		p, shared := vm.ownProperty(obj, k)
		if p == nil {
			continue
		}
		switch p.Kind {
		case PropAccessor:
			if p.Setter.IsUndefined() {
				return propertyErrorf(k, "Cannot set property %s of %s which has only a getter", k, vm.typeName(o))
			}
			_, err := vm.Apply(p.Setter, ObjectValue(o), []Value{v})
			return err
		case PropRef:
			if obj == o {
				p.Ref.Value = v
				return nil
			}
		case PropHandler:
			if !p.Writable.Bool() {
				return propertyErrorf(k, "Cannot assign to read only property '%s' of object", k)
			}
			if obj == o {
				_, err := p.Handler(vm, p, o, &v)
				return err
			}
		case PropData:
			if !p.Writable.Bool() {
				return propertyErrorf(k, "Cannot assign to read only property '%s' of object", k)
			}
			if obj == o {
				p, err := vm.writableRecord(o, p, shared)
				if err != nil {
					return err
				}
				p.Value = v
				return nil
			}
		}
		break walk
	}
	if o.template {
		return internalErrorf("cannot modify template object")
	}
	if !o.extensible {
		return propertyErrorf(k, "Cannot add property %s, object is not extensible", k)
	}
	return o.hash.Insert(DataProperty(k, v, true, true, true), true)
}

// Set is a convenience wrapper for SetProperty with a string key.
func (vm *VM) Set(o *Object, name string, v Value) error {
	return vm.SetProperty(o, StrKey(name), v)
}

// DeleteProperty removes o's own property k. Deleting a missing property
// succeeds; deleting a non-configurable one is a TypeError.
func (vm *VM) DeleteProperty(o *Object, k Key) error {
	p, shared := vm.ownProperty(o, k)
	if p == nil {
		return nil
	}
	if !p.Configurable.Bool() {
		return propertyErrorf(k, "Cannot delete property '%s' of %s", k, vm.typeName(o))
	}
	if o.template {
		return internalErrorf("cannot modify template object")
	}
	if shared || o.shared != nil {
		o.hash.Whiteout(k)
		return nil
	}
	o.hash.Delete(k)
	return nil
}

// OwnKeys lists the keys of o's own properties. Keys of the shared table
// come first in template order, followed by keys added to the object.
func (vm *VM) OwnKeys(o *Object, enumerableOnly bool) []Key {
	var keys []Key
	add := func(p *Property) {
		if !enumerableOnly || p.Enumerable.Bool() {
			keys = append(keys, p.Key)
		}
	}
	if o.shared != nil {
		o.shared.Each(func(p *Property) bool {
			if own, ok := o.hash.Find(p.Key); ok {
				if own.Kind != PropWhiteout {
					add(own)
				}
				return true
			}
			add(p)
			return true
		})
	}
	o.hash.Each(func(p *Property) bool {
		if o.shared != nil {
			if _, ok := o.shared.Find(p.Key); ok {
				return true
			}
		}
		add(p)
		return true
	})
	return keys
}

// typeName returns a short description of o for error messages.
func (vm *VM) typeName(o *Object) string {
	if o.tag != nil {
		return "#<" + o.tag.String() + ">"
	}
	return "#<Object>"
}
