package internal

import (
	"errors"

	"github.com/zephyrtronium/contains"
)

// Config holds the runtime's tunable limits and logging options.
type Config struct {
	// MaxStringLength is the largest string size in bytes. Zero means
	// DefaultMaxStringLength.
	MaxStringLength int `yaml:"maxStringLength" toml:"max_string_length"`
	// MemoryLimit bounds each runtime's pool in bytes. Zero means unlimited.
	MemoryLimit int `yaml:"memoryLimit" toml:"memory_limit"`
	// Verbosity is the logging verbosity: 0 logs notices and worse, 2 and
	// above add debug output, and -4 and below silence logging.
	Verbosity int `yaml:"verbosity" toml:"verbosity"`
	// LogFile is the path of the log file. Empty means stderr.
	LogFile string `yaml:"logFile" toml:"log_file"`
}

// VM is a script runtime. A VM is obtained by cloning a Template. It is not
// safe for concurrent use, but clones of the same template are independent.
type VM struct {
	// Pool is the allocator for this runtime's strings.
	Pool Pool
	// Config is the configuration the runtime was created with.
	Config Config

	// Global is the global object.
	Global *Object

	// Prototypes of built-in types.
	ObjectPrototype   *Object
	FunctionPrototype *Object
	StringPrototype   *Object
	RegExpPrototype   *Object
	ErrorPrototype    *Object

	// CompileMatcher compiles regular expression sources for RegExp objects.
	CompileMatcher MatcherCompiler

	// template is the template this runtime was cloned from, or nil while the
	// template itself is being built.
	template *Template
	// mapped associates template objects with this runtime's counterparts.
	mapped map[*Object]*Object
	// atoms is the interning table.
	atoms atoms

	// memoryError is the preallocated exception for memory errors.
	memoryError *Object

	// protoSet is the set of objects visited while collecting keys.
	protoSet contains.Set
}

func (vm *VM) maxStringLength() int {
	if vm.Config.MaxStringLength > 0 {
		return vm.Config.MaxStringLength
	}
	return DefaultMaxStringLength
}

// Template returns the template this runtime was cloned from.
func (vm *VM) Template() *Template {
	return vm.template
}

// EnumerableKeys lists the enumerable string keys of o and its prototypes,
// nearest first, without duplicates. A key shadowed by a non-enumerable
// property is omitted.
func (vm *VM) EnumerableKeys(o *Object) []Key {
	var keys []Key
	seen := make(map[Key]bool)
	vm.protoSet.Reset()
	for p := o; p != nil; p = p.proto {
		if !vm.protoSet.Add(p.UniqueID()) {
			break
		}
		for _, k := range vm.OwnKeys(p, false) {
			if seen[k] || k.IsSymbol() {
				continue
			}
			seen[k] = true
			if prop, _ := vm.ownProperty(p, k); prop.Enumerable.Bool() {
				keys = append(keys, k)
			}
		}
	}
	return keys
}

// Throwable converts an error into an error object that scripts can catch.
// Errors that are not *Error become InternalErrors.
func (vm *VM) Throwable(err error) Value {
	if err == nil {
		return Undefined
	}
	if IsKind(err, MemoryError) && vm.memoryError != nil {
		return ObjectValue(vm.memoryError)
	}
	var e *Error
	if !errors.As(err, &e) {
		e = &Error{Kind: InternalError, Message: err.Error()}
	}
	return ObjectValue(vm.newError(e))
}

// newError creates an error object describing e.
func (vm *VM) newError(e *Error) *Object {
	o := vm.ObjectWith(vm.ErrorPrototype, e, ErrorTag)
	set := func(name, s string) {
		v, err := vm.NewString(s)
		if err != nil {
			v, _ = vm.NewByteString([]byte(s))
		}
		o.hash.Insert(DataProperty(StrKey(name), StringValue(v), true, false, true), true)
	}
	set("name", e.Kind.String())
	set("message", e.Message)
	if e.Property != "" {
		set("property", e.Property)
	}
	return o
}

// ErrorOf recovers the error described by an error object created by
// Throwable. It returns nil if v is not such an object.
func ErrorOf(v Value) *Error {
	if v.kind != KindObject {
		return nil
	}
	e, _ := v.obj.Value.(*Error)
	return e
}
