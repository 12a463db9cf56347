package internal_test

import (
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/zephyrtronium/jsval"
	"github.com/zephyrtronium/jsval/testutils"
)

// TestCloneIdentity tests that clones see their own built-in objects through
// the shared tables.
func TestCloneIdentity(t *testing.T) {
	vm := testutils.NewVM()
	ctor, err := vm.Get(vm.Global, "String")
	if err != nil {
		t.Fatal(err)
	}
	back, err := vm.Get(vm.StringPrototype, "constructor")
	if err != nil {
		t.Fatal(err)
	}
	if !jsval.SameValue(ctor, back) {
		t.Errorf("String.prototype.constructor is %v, not String", back.GoString())
	}
	proto, err := vm.Get(ctor.Object(), "prototype")
	if err != nil {
		t.Fatal(err)
	}
	if !jsval.SameValue(proto, jsval.ObjectValue(vm.StringPrototype)) {
		t.Errorf("String.prototype is %v, not the runtime's", proto.GoString())
	}
	trim, err := vm.Get(vm.StringPrototype, "trim")
	if err != nil {
		t.Fatal(err)
	}
	again, err := vm.Get(vm.StringPrototype, "trim")
	if err != nil {
		t.Fatal(err)
	}
	if !jsval.SameValue(trim, again) {
		t.Error("reading a method twice gave different functions")
	}
	if trim.Object().Proto() != vm.FunctionPrototype {
		t.Error("method's prototype is not the runtime's Function.prototype")
	}
	g, err := vm.Get(vm.Global, "globalThis")
	if err != nil {
		t.Fatal(err)
	}
	if !jsval.SameValue(g, jsval.ObjectValue(vm.Global)) {
		t.Error("globalThis is not the runtime's global object")
	}
	other := testutils.NewVM()
	otherTrim, err := other.Get(other.StringPrototype, "trim")
	if err != nil {
		t.Fatal(err)
	}
	if jsval.SameValue(trim, otherTrim) {
		t.Error("two runtimes share a method object")
	}
}

// TestCloneCopyOnWrite tests that changes in one clone are invisible to the
// template and to other clones.
func TestCloneCopyOnWrite(t *testing.T) {
	a, b := testutils.NewVM(), testutils.NewVM()
	replaced := a.NewFunction("trim", 0, func(vm *jsval.VM, this jsval.Value, args []jsval.Value) (jsval.Value, error) {
		return testutils.StrValue("replaced"), nil
	})
	if err := a.Set(a.StringPrototype, "trim", jsval.ObjectValue(replaced)); err != nil {
		t.Fatal(err)
	}
	if err := a.Set(a.StringPrototype, "extra", jsval.IntValue(1)); err != nil {
		t.Fatal(err)
	}
	if err := a.DeleteProperty(a.StringPrototype, jsval.StrKey("padStart")); err != nil {
		t.Fatal(err)
	}
	s := jsval.StringValue(a.MustString("  x  "))
	if r, err := a.Invoke(s, "trim"); err != nil || r.Str().String() != "replaced" {
		t.Errorf("changed runtime: have %v, %v", r.GoString(), err)
	}
	if a.HasOwnProperty(a.StringPrototype, jsval.StrKey("padStart")) {
		t.Error("deleted method is still present")
	}
	if r, err := b.Invoke(jsval.StringValue(b.MustString("  x  ")), "trim"); err != nil || r.Str().String() != "x" {
		t.Errorf("other runtime: have %v, %v", r.GoString(), err)
	}
	if v, err := b.Get(b.StringPrototype, "extra"); err != nil || !v.IsUndefined() {
		t.Errorf("other runtime sees extra property: %v, %v", v.GoString(), err)
	}
	if !b.HasOwnProperty(b.StringPrototype, jsval.StrKey("padStart")) {
		t.Error("delete in one runtime removed the method from another")
	}
	c := testutils.NewVM()
	if r, err := c.Invoke(jsval.StringValue(c.MustString("  x  ")), "trim"); err != nil || r.Str().String() != "x" {
		t.Errorf("new clone: have %v, %v", r.GoString(), err)
	}
	if !c.HasOwnProperty(c.StringPrototype, jsval.StrKey("padStart")) {
		t.Error("new clone is missing a method deleted elsewhere")
	}
}

// TestCloneKeyOrder tests that deleting and redefining a shared property
// keeps the template's key order.
func TestCloneKeyOrder(t *testing.T) {
	vm := testutils.NewVM()
	before := vm.OwnKeys(vm.ErrorPrototype, false)
	if err := vm.DeleteProperty(vm.ErrorPrototype, jsval.StrKey("name")); err != nil {
		t.Fatal(err)
	}
	for _, k := range vm.OwnKeys(vm.ErrorPrototype, false) {
		if k == jsval.StrKey("name") {
			t.Error("deleted key is listed")
		}
	}
	if err := vm.Set(vm.ErrorPrototype, "name", testutils.StrValue("Oops")); err != nil {
		t.Fatal(err)
	}
	after := vm.OwnKeys(vm.ErrorPrototype, false)
	if len(after) != len(before) {
		t.Fatalf("wrong number of keys: have %d, want %d", len(after), len(before))
	}
	for i := range before {
		if after[i] != before[i] {
			t.Errorf("key %d: have %v, want %v", i, after[i], before[i])
		}
	}
}

// TestCloneNewProperty tests that properties added to a clone's built-in
// objects stay out of the template.
func TestCloneNewProperty(t *testing.T) {
	vm := testutils.NewVM()
	if err := vm.Set(vm.StringPrototype, "x", jsval.True); err != nil {
		t.Fatal(err)
	}
	fresh := testutils.NewVM()
	v, err := fresh.Get(fresh.StringPrototype, "x")
	if err != nil {
		t.Fatal(err)
	}
	if !v.IsUndefined() {
		t.Errorf("template changed: x is %v", v.GoString())
	}
}

// TestCloneConcurrent tests that many clones of one template work at once.
func TestCloneConcurrent(t *testing.T) {
	tmpl := jsval.NewTemplate(jsval.Config{})
	long := strings.Repeat("héllo wörld ", 20)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			vm := tmpl.Clone()
			tag := strconv.Itoa(i)
			if err := vm.Set(vm.StringPrototype, "tag", jsval.StringValue(vm.MustString(tag))); err != nil {
				t.Error(err)
				return
			}
			s := jsval.StringValue(vm.MustString(long))
			for j := 0; j < 50; j++ {
				r, err := vm.Invoke(s, "replaceAll", jsval.StringValue(vm.MustString("ö")), jsval.StringValue(vm.MustString(tag)))
				if err != nil {
					t.Error(err)
					return
				}
				if !strings.Contains(r.Str().String(), "w"+tag+"rld") {
					t.Errorf("clone %d: wrong result %q", i, r.Str().String())
					return
				}
				v, err := vm.GetValue(s, jsval.StrKey("tag"))
				if err != nil {
					t.Error(err)
					return
				}
				if !v.IsString() || v.Str().String() != tag {
					t.Errorf("clone %d sees tag %v", i, v.GoString())
					return
				}
			}
		}(i)
	}
	wg.Wait()
}

// TestCloneLimits tests that clones carry the template's limits.
func TestCloneLimits(t *testing.T) {
	tmpl := jsval.NewTemplate(jsval.Config{MemoryLimit: 256, MaxStringLength: 128})
	if tmpl.Config().MemoryLimit != 256 {
		t.Errorf("template config: have %+v", tmpl.Config())
	}
	vm := tmpl.Clone()
	if _, err := vm.NewString(strings.Repeat("a", 200)); !jsval.IsKind(err, jsval.RangeError) {
		t.Errorf("oversized string: have %v, want RangeError", err)
	}
	var err error
	for i := 0; i < 4 && err == nil; i++ {
		_, err = vm.NewString(strings.Repeat("b", 100))
	}
	if !jsval.IsKind(err, jsval.MemoryError) {
		t.Errorf("exhausted pool: have %v, want MemoryError", err)
	}
	if v := vm.Throwable(err); !v.IsObject() {
		t.Errorf("memory error is not throwable: %v", v.GoString())
	}
	other := tmpl.Clone()
	if _, err := other.NewString(strings.Repeat("c", 100)); err != nil {
		t.Errorf("fresh clone shares a pool: %v", err)
	}
}
