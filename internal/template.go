package internal

// Template is a read-only snapshot of the built-in objects. Runtimes cloned
// from a template read its property tables directly and copy records into
// their own objects only when they change them. A Template may be cloned
// from many goroutines at once.
type Template struct {
	cfg Config
	vm  *VM
	// objects lists every template object with a runtime counterpart, in
	// the order they are recreated by Clone.
	objects []*Object
}

// NewTemplate builds the built-in objects and freezes them into a template.
func NewTemplate(cfg Config) *Template {
	// The template itself is built without the runtime limits.
	vm := &VM{
		Pool: NewMemPool(0),
	}
	vm.CompileMatcher = CompileECMAScript

	vm.ObjectPrototype = vm.ObjectWith(nil, nil, ObjectTag)
	vm.FunctionPrototype = vm.ObjectWith(vm.ObjectPrototype, &Function{Native: funcNoop}, FunctionTag)
	vm.StringPrototype = vm.ObjectWith(vm.ObjectPrototype, Empty, StringTag)
	vm.RegExpPrototype = vm.ObjectWith(vm.ObjectPrototype, nil, ObjectTag)
	vm.ErrorPrototype = vm.ObjectWith(vm.ObjectPrototype, nil, ObjectTag)
	vm.Global = vm.ObjectWith(vm.ObjectPrototype, nil, ObjectTag)

	// There is a specific order for initialization. Function must come first
	// so that its prototype has its methods before any other function is
	// created, and the global object's remaining functions come last.
	vm.initFunction()
	vm.initObject()
	vm.initString()
	vm.initRegExp()
	vm.initError()
	vm.initGlobal()

	t := &Template{
		cfg: cfg,
		vm:  vm,
		objects: []*Object{
			vm.ObjectPrototype,
			vm.FunctionPrototype,
			vm.StringPrototype,
			vm.RegExpPrototype,
			vm.ErrorPrototype,
			vm.Global,
		},
	}
	for _, o := range t.objects {
		freeze(o)
	}
	for _, s := range vm.atoms.strs {
		fixString(s)
	}
	vm.template = t
	log.Debugf("built template with %d atoms", len(vm.atoms.strs))
	return t
}

// freeze marks o and every object reachable through its properties as
// template-owned, measuring their strings so that clones never write to
// shared string headers.
func freeze(o *Object) {
	if o == nil || o.template {
		return
	}
	o.template = true
	fixValue := func(v Value) {
		switch v.kind {
		case KindString:
			fixString(v.s)
		case KindObject:
			freeze(v.obj)
		}
	}
	o.hash.Each(func(p *Property) bool {
		fixValue(p.Value)
		fixValue(p.Getter)
		fixValue(p.Setter)
		return true
	})
	if s, ok := o.Value.(String); ok {
		fixString(s)
	}
	freeze(o.proto)
}

// fixString makes a long string's header static.
func fixString(s String) {
	if s.size != shortLong || s.long.static {
		return
	}
	kind, length := s.kindLen()
	if kind == UTF8String {
		s.long.offsetMap(length)
	}
	s.long.static = true
}

// Config returns the configuration the template was built with.
func (t *Template) Config() Config {
	return t.cfg
}

// Clone creates a new runtime whose built-in objects share the template's
// property tables.
func (t *Template) Clone() *VM {
	tvm := t.vm
	vm := &VM{
		Pool:           NewMemPool(t.cfg.MemoryLimit),
		Config:         t.cfg,
		CompileMatcher: tvm.CompileMatcher,
		template:       t,
		mapped:         make(map[*Object]*Object, len(t.objects)),
		atoms:          atoms{parent: &tvm.atoms},
	}
	for _, o := range t.objects {
		var value interface{}
		if o.tag != nil {
			value = o.tag.CloneValue(o.Value)
		}
		vm.mapped[o] = vm.sharing(&o.hash, nil, value, o.tag)
	}
	for _, o := range t.objects {
		vm.mapped[o].proto = vm.mapped[o.proto]
	}
	vm.ObjectPrototype = vm.mapped[tvm.ObjectPrototype]
	vm.FunctionPrototype = vm.mapped[tvm.FunctionPrototype]
	vm.StringPrototype = vm.mapped[tvm.StringPrototype]
	vm.RegExpPrototype = vm.mapped[tvm.RegExpPrototype]
	vm.ErrorPrototype = vm.mapped[tvm.ErrorPrototype]
	vm.Global = vm.mapped[tvm.Global]
	vm.memoryError = vm.newError(ErrMemory)
	log.Debugf("cloned template into runtime with global %d", vm.Global.id)
	return vm
}

func funcNoop(vm *VM, this Value, args []Value) (Value, error) {
	return Undefined, nil
}

// protoHandler makes a handler that yields the runtime's counterpart of a
// template object, so that template tables can refer to prototypes.
func protoHandler(get func(vm *VM) *Object) Handler {
	return func(vm *VM, p *Property, this *Object, setval *Value) (Value, error) {
		if setval != nil {
			return Undefined, typeErrorf("Cannot assign to read only property 'prototype'")
		}
		return ObjectValue(get(vm)), nil
	}
}

// ctorHandler makes a handler that reads a constructor from the global
// object.
func ctorHandler(name string) Handler {
	return func(vm *VM, p *Property, this *Object, setval *Value) (Value, error) {
		if setval != nil {
			// Assignment replaces the handler with a plain value.
			return *setval, this.hash.Insert(DataProperty(p.Key, *setval, true, false, true), true)
		}
		v, _, err := vm.GetProperty(vm.Global, StrKey(name), ObjectValue(vm.Global))
		return v, err
	}
}
