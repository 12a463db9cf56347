package internal

import (
	"math"
)

// initGlobal initializes the global object's functions and constants. The
// constructors are installed by their own initializers.
func (vm *VM) initGlobal() {
	g := vm.Global
	vm.constructor("Function", 1, FunctionCtor, func(vm *VM) *Object { return vm.FunctionPrototype })
	g.hash.Insert(HandlerProperty(StrKey("globalThis"), protoHandler(func(vm *VM) *Object { return vm.Global }), false, false, true), true)
	g.hash.Insert(DataProperty(StrKey("undefined"), Undefined, false, false, false), true)
	g.hash.Insert(DataProperty(StrKey("NaN"), NumberValue(math.NaN()), false, false, false), true)
	g.hash.Insert(DataProperty(StrKey("Infinity"), NumberValue(math.Inf(1)), false, false, false), true)
	vm.install(g, map[string]native{
		"atob":               {1, GlobalAtob},
		"btoa":               {1, GlobalBtoa},
		"decodeURI":          {1, GlobalDecodeURI},
		"decodeURIComponent": {1, GlobalDecodeURIComponent},
		"encodeURI":          {1, GlobalEncodeURI},
		"encodeURIComponent": {1, GlobalEncodeURIComponent},
	})
}

// GlobalEncodeURI is a global function.
//
// encodeURI percent-encodes a URI, keeping reserved characters.
func GlobalEncodeURI(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.argString(args, 0)
	if err != nil {
		return Undefined, err
	}
	return stringResult(vm.EncodePercent(s, URIEscapes))
}

// GlobalEncodeURIComponent is a global function.
//
// encodeURIComponent percent-encodes everything but unreserved characters.
func GlobalEncodeURIComponent(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.argString(args, 0)
	if err != nil {
		return Undefined, err
	}
	return stringResult(vm.EncodePercent(s, URIComponentEscapes))
}

// GlobalDecodeURI is a global function.
//
// decodeURI decodes percent escapes other than those of reserved
// characters.
func GlobalDecodeURI(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.argString(args, 0)
	if err != nil {
		return Undefined, err
	}
	return stringResult(vm.DecodePercent(s, URIReserved))
}

// GlobalDecodeURIComponent is a global function.
func GlobalDecodeURIComponent(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.argString(args, 0)
	if err != nil {
		return Undefined, err
	}
	return stringResult(vm.DecodePercent(s, NoReserved))
}

// GlobalBtoa is a global function.
func GlobalBtoa(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.argString(args, 0)
	if err != nil {
		return Undefined, err
	}
	return stringResult(vm.Btoa(s))
}

// GlobalAtob is a global function.
func GlobalAtob(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.argString(args, 0)
	if err != nil {
		return Undefined, err
	}
	return stringResult(vm.Atob(s))
}
