package internal_test

import (
	"testing"

	"github.com/zephyrtronium/jsval"
	"github.com/zephyrtronium/jsval/testutils"
)

func TestRegExpMethods(t *testing.T) {
	s := testutils.StrValue
	g := jsval.ObjectValue(testutils.VM().Global)
	cases := map[string]testutils.CallTestCase{
		"test":           {This: mustRegExp("b+", ""), Method: "test", Args: args(s("abbc")), Pass: testutils.PassSame(jsval.True)},
		"testFail":       {This: mustRegExp("x", ""), Method: "test", Args: args(s("abc")), Pass: testutils.PassSame(jsval.False)},
		"execFail":       {This: mustRegExp("x", ""), Method: "exec", Args: args(s("abc")), Pass: testutils.PassSame(jsval.Null)},
		"execGroups":     {This: mustRegExp("b(c)(x)?", ""), Method: "exec", Args: args(s("abcbc")), Pass: testutils.PassStrings("bc", "c", "<undefined>")},
		"toString":       {This: mustRegExp("a/b", "gi"), Method: "toString", Pass: testutils.PassString("/a/b/gi")},
		"toStringEmpty":  {This: mustRegExp("", ""), Method: "toString", Pass: testutils.PassString("/(?:)/")},
		"execNotRegExp":  {This: s("abc"), Method: "exec", Pass: testutils.PassError(jsval.TypeError)},
		"ctor":           {This: g, Method: "RegExp", Args: args(s("a+"), s("g")), Pass: passToString("/a+/g")},
		"ctorCopy":       {This: g, Method: "RegExp", Args: args(mustRegExp("a+", "g"), s("i")), Pass: passToString("/a+/i")},
		"ctorKeepFlags":  {This: g, Method: "RegExp", Args: args(mustRegExp("a+", "my")), Pass: passToString("/a+/my")},
		"ctorBadFlags":   {This: g, Method: "RegExp", Args: args(s("a"), s("gg")), Pass: testutils.PassError(jsval.SyntaxError)},
		"ctorUnknownFlg": {This: g, Method: "RegExp", Args: args(s("a"), s("q")), Pass: testutils.PassError(jsval.SyntaxError)},
		"ctorBadSource":  {This: g, Method: "RegExp", Args: args(s("(")), Pass: testutils.PassError(jsval.SyntaxError)},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}

// passToString checks the toString of a result.
func passToString(want string) func(jsval.Value, error) bool {
	return func(result jsval.Value, err error) bool {
		if err != nil {
			return false
		}
		r, err := testutils.VM().Invoke(result, "toString")
		return err == nil && r.IsString() && r.Str().String() == want
	}
}

func TestRegExpExecResult(t *testing.T) {
	vm := testutils.VM()
	s := vm.MustString("héllo wörld")
	m, err := vm.Exec(regexp(t, vm, "w(ö)", ""), s)
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsObject() {
		t.Fatalf("no match: have %v", m.GoString())
	}
	idx, err := vm.Get(m.Object(), "index")
	if err != nil {
		t.Fatal(err)
	}
	if !jsval.SameValue(idx, jsval.IntValue(6)) {
		t.Errorf("index: have %v, want 6", idx.GoString())
	}
	in, err := vm.Get(m.Object(), "input")
	if err != nil {
		t.Fatal(err)
	}
	if !in.IsString() || !jsval.Identical(in.Str(), s) {
		t.Errorf("input: have %v", in.GoString())
	}
	g, err := vm.Get(m.Object(), "1")
	if err != nil {
		t.Fatal(err)
	}
	if !g.IsString() || g.Str().String() != "ö" {
		t.Errorf("capture: have %v", g.GoString())
	}
}

func TestRegExpGlobalExec(t *testing.T) {
	vm := testutils.VM()
	re := regexp(t, vm, `\d`, "g")
	s := vm.MustString("é1é2")
	steps := []struct {
		match     string
		lastIndex int
	}{
		{"1", 2},
		{"2", 4},
		{"", 0},
		{"1", 2},
	}
	for i, step := range steps {
		m, err := vm.Exec(re, s)
		if err != nil {
			t.Fatal(err)
		}
		if step.match == "" {
			if !jsval.SameValue(m, jsval.Null) {
				t.Errorf("step %d: have %v, want null", i, m.GoString())
			}
		} else {
			v, err := vm.Get(m.Object(), "0")
			if err != nil {
				t.Fatal(err)
			}
			if !v.IsString() || v.Str().String() != step.match {
				t.Errorf("step %d: have %v, want %q", i, v.GoString(), step.match)
			}
		}
		li, err := vm.Get(re, "lastIndex")
		if err != nil {
			t.Fatal(err)
		}
		if !jsval.SameValue(li, jsval.IntValue(step.lastIndex)) {
			t.Errorf("step %d: lastIndex is %v, want %d", i, li.GoString(), step.lastIndex)
		}
	}
	if err := vm.Set(re, "lastIndex", jsval.IntValue(99)); err != nil {
		t.Fatal(err)
	}
	if m, _ := vm.Exec(re, s); !jsval.SameValue(m, jsval.Null) {
		t.Errorf("lastIndex past end: have %v, want null", m.GoString())
	}
	if li, _ := vm.Get(re, "lastIndex"); !jsval.SameValue(li, jsval.IntValue(0)) {
		t.Errorf("lastIndex past end left at %v", li.GoString())
	}
}

func TestRegExpGetters(t *testing.T) {
	vm := testutils.VM()
	re := jsval.ObjectValue(regexp(t, vm, "a.b", "ygsi"))
	cases := map[string]jsval.Value{
		"source":     testutils.StrValue("a.b"),
		"flags":      testutils.StrValue("gisy"),
		"global":     jsval.True,
		"ignoreCase": jsval.True,
		"multiline":  jsval.False,
		"dotAll":     jsval.True,
		"sticky":     jsval.True,
		"unicode":    jsval.False,
	}
	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			v, err := vm.GetValue(re, jsval.StrKey(name))
			if err != nil {
				t.Fatal(err)
			}
			if want.IsString() {
				if !v.IsString() || v.Str().String() != want.Str().String() {
					t.Errorf("have %v, want %v", v.GoString(), want.GoString())
				}
				return
			}
			if !jsval.SameValue(v, want) {
				t.Errorf("have %v, want %v", v.GoString(), want.GoString())
			}
		})
	}
}

func TestRegExpPrototypeGetters(t *testing.T) {
	vm := testutils.VM()
	rp := jsval.ObjectValue(vm.RegExpPrototype)
	if v, err := vm.GetValue(rp, jsval.StrKey("source")); err != nil || v.Str().String() != "(?:)" {
		t.Errorf("prototype source: have %v, %v", v.GoString(), err)
	}
	if v, err := vm.GetValue(rp, jsval.StrKey("global")); err != nil || !v.IsUndefined() {
		t.Errorf("prototype global: have %v, %v", v.GoString(), err)
	}
	d, ok, err := vm.Describe(vm.RegExpPrototype, jsval.StrKey("source"))
	if err != nil || !ok {
		t.Fatalf("no descriptor for source: %v", err)
	}
	get, err := vm.Get(d.Object(), "get")
	if err != nil {
		t.Fatal(err)
	}
	name, err := vm.GetValue(get, jsval.StrKey("name"))
	if err != nil {
		t.Fatal(err)
	}
	if !name.IsString() || name.Str().String() != "get source" {
		t.Errorf("getter name: have %v, want %q", name.GoString(), "get source")
	}
	set, err := vm.Get(d.Object(), "set")
	if err != nil {
		t.Fatal(err)
	}
	if !set.IsUndefined() {
		t.Errorf("getter-only accessor has setter %v", set.GoString())
	}
}
