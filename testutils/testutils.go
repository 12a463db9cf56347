// Package testutils provides utilities for testing jsval runtimes.
package testutils

import (
	"sync"
	"testing"

	"github.com/zephyrtronium/jsval"
)

var (
	testTemplate     *jsval.Template
	testTemplateInit sync.Once

	testVM     *jsval.VM
	testVMInit sync.Once
)

// Template returns the template shared by all tests that use this package.
func Template() *jsval.Template {
	testTemplateInit.Do(func() { testTemplate = jsval.NewTemplate(jsval.Config{}) })
	return testTemplate
}

// VM returns a runtime for tests. The runtime is shared by all tests
// that use this package, so tests using it must not run in parallel.
func VM() *jsval.VM {
	testVMInit.Do(ResetVM)
	return testVM
}

// ResetVM replaces the runtime returned by VM with a fresh
// clone of the shared template. It is not safe to call this in parallel
// tests.
func ResetVM() {
	testVM = Template().Clone()
}

// NewVM returns a fresh clone of the shared template.
func NewVM() *jsval.VM {
	return Template().Clone()
}

// Str creates a text string on the testing runtime.
func Str(s string) jsval.String {
	return VM().MustString(s)
}

// StrValue creates a text string value on the testing runtime.
func StrValue(s string) jsval.Value {
	return jsval.StringValue(Str(s))
}

// Bytes creates a byte string on the testing runtime.
func Bytes(b string) jsval.String {
	r, err := VM().NewByteString([]byte(b))
	if err != nil {
		panic(err)
	}
	return r
}

// A CallTestCase is a test case calling a method on a receiver and checking
// the result with a predicate.
type CallTestCase struct {
	// This is the receiver.
	This jsval.Value
	// Method is the name of the method to call.
	Method string
	// Args are the arguments to pass.
	Args []jsval.Value
	// Pass is a predicate taking the result of the call. If Pass returns
	// false, then the test fails.
	Pass func(result jsval.Value, err error) bool
}

// TestFunc returns a test function for the test case. This uses VM
// to make the call.
func (c CallTestCase) TestFunc(name string) func(*testing.T) {
	return func(t *testing.T) {
		vm := VM()
		r, err := vm.Invoke(c.This, c.Method, c.Args...)
		if !c.Pass(r, err) {
			if err != nil {
				t.Errorf("%s: %s produced wrong result; an error occurred: %v", name, c.Method, err)
			} else {
				t.Errorf("%s: %s produced wrong result; got %#v", name, c.Method, r)
			}
		}
	}
}

// PassString returns a Pass function that predicates on a string result
// with the given contents.
func PassString(want string) func(jsval.Value, error) bool {
	return func(result jsval.Value, err error) bool {
		return err == nil && result.IsString() && result.Str().String() == want
	}
}

// PassNumber returns a Pass function that predicates on a number result.
func PassNumber(want float64) func(jsval.Value, error) bool {
	return func(result jsval.Value, err error) bool {
		return err == nil && jsval.SameValue(result, jsval.NumberValue(want))
	}
}

// PassSame returns a Pass function that predicates on SameValue equality.
func PassSame(want jsval.Value) func(jsval.Value, error) bool {
	return func(result jsval.Value, err error) bool {
		return err == nil && jsval.SameValue(result, want)
	}
}

// PassError returns a Pass function that predicates on an error of the
// given kind.
func PassError(kind jsval.ErrorKind) func(jsval.Value, error) bool {
	return func(result jsval.Value, err error) bool {
		return jsval.IsKind(err, kind)
	}
}

// PassStrings returns a Pass function that predicates on an array of
// strings. Undefined elements are written as "<undefined>".
func PassStrings(want ...string) func(jsval.Value, error) bool {
	return func(result jsval.Value, err error) bool {
		if err != nil || !result.IsObject() {
			return false
		}
		vm := VM()
		o := result.Object()
		n, err := vm.Get(o, "length")
		if err != nil || !jsval.SameValue(n, jsval.IntValue(len(want))) {
			return false
		}
		for i, w := range want {
			v, err := vm.GetValue(result, jsval.StrKey(itoa(i)))
			if err != nil {
				return false
			}
			if v.IsUndefined() {
				if w != "<undefined>" {
					return false
				}
				continue
			}
			if !v.IsString() || v.Str().String() != w {
				return false
			}
		}
		return true
	}
}

func itoa(i int) string {
	if i < 10 {
		return string(rune('0' + i))
	}
	return itoa(i/10) + itoa(i%10)
}
