/*
Package jsval implements the value and object core of an embeddable script
runtime: strings, property records, and the built-in objects that operate on
them.

A host starts by building a Template with NewTemplate. The template holds
the built-in prototypes and constructors in read-only property tables. Each
call to Clone produces an independent runtime, a VM, whose objects read the
template's tables directly and copy a record into their own table only when
they change it. Clones of one template may run on different goroutines; a
single VM may not.

Strings

Strings are immutable values. Strings of up to ShortStringMax bytes live
inline in the String value itself; longer ones share a reference-counted
buffer drawn from the runtime's Pool. A string is either text, which is valid
UTF-8 indexed by code point, or a byte string, which is indexed by byte.
Joining a byte string with anything yields a byte string.

	vm := jsval.NewTemplate(jsval.Config{}).Clone()
	s := vm.MustString("héllo")
	s.Len()  // 5
	s.Size() // 6

Character indices are translated to byte offsets through a sparse offset map
built the first time a long text string is indexed, so random access costs
at most one short scan.

Properties

Every object has an ordered own property table and, for runtime copies of
template objects, a shared table it reads through. Properties are data
records, accessor records with a getter and setter, native handler records
computing their value on demand, or reference records forwarding to a shared
cell. Deleting a property of an object that shares a table leaves a whiteout
so the shared record stays hidden.

DefineProperty reconciles a descriptor with an existing property: a
non-configurable property accepts only setting the value of a writable
property or making it read-only, and changing a property between the data and
accessor kinds starts it over from default attributes.

	o := vm.NewObject()
	err := vm.DefineProperty(o, jsval.StrKey("x"), &jsval.Descriptor{
		Value:    jsval.IntValue(1),
		HasValue: true,
	})

Errors

Operations that fail return an *Error whose Kind names the exception a script
would see: RangeError, TypeError, URIError, SyntaxError, InternalError, or the
preallocated ErrMemory. Throwable converts any error into an error object.
*/
package jsval
