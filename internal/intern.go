package internal

// atoms is a table of interned strings. A VM's table falls back to its
// template's, which is read-only once the template is built.
type atoms struct {
	strs   map[string]String
	parent *atoms
}

func (a *atoms) find(s string) (String, bool) {
	for ; a != nil; a = a.parent {
		if r, ok := a.strs[s]; ok {
			return r, true
		}
	}
	return Empty, false
}

// Intern returns the unique string value for s. Strings interned while
// building a template are static and shared by its clones.
func (vm *VM) Intern(s string) (String, error) {
	if r, ok := vm.atoms.find(s); ok {
		return r, nil
	}
	r, err := vm.NewString(s)
	if err != nil {
		return Empty, err
	}
	if vm.atoms.strs == nil {
		vm.atoms.strs = make(map[string]String)
	}
	vm.atoms.strs[s] = r
	return r, nil
}
