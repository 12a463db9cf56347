package internal_test

import (
	"testing"

	"github.com/zephyrtronium/jsval"
	"github.com/zephyrtronium/jsval/testutils"
)

// object creates an ordinary object with the given properties, given as
// alternating names and values.
func object(kv ...interface{}) *jsval.Object {
	vm := testutils.VM()
	o := vm.NewObject()
	for i := 0; i+1 < len(kv); i += 2 {
		if err := vm.Set(o, kv[i].(string), kv[i+1].(jsval.Value)); err != nil {
			panic(err)
		}
	}
	return o
}

func TestObjectFunctions(t *testing.T) {
	s := testutils.StrValue
	n := jsval.IntValue
	o := jsval.ObjectValue
	objectCtor := global("Object")
	frozen := object("x", n(1))
	if err := testutils.VM().Freeze(frozen); err != nil {
		t.Fatal(err)
	}
	parent := object()
	child := testutils.VM().ObjectWith(parent, nil, jsval.ObjectTag)
	cases := map[string]testutils.CallTestCase{
		"keys":              {This: objectCtor, Method: "keys", Args: args(o(object("b", n(1), "a", n(2)))), Pass: testutils.PassStrings("b", "a")},
		"keysString":        {This: objectCtor, Method: "keys", Args: args(s("hé")), Pass: testutils.PassStrings("0", "1")},
		"keysNull":          {This: objectCtor, Method: "keys", Args: args(jsval.Null), Pass: testutils.PassError(jsval.TypeError)},
		"ownNamesString":    {This: objectCtor, Method: "getOwnPropertyNames", Args: args(s("ab")), Pass: testutils.PassStrings("0", "1", "length")},
		"isFrozen":          {This: objectCtor, Method: "isFrozen", Args: args(o(frozen)), Pass: testutils.PassSame(jsval.True)},
		"isFrozenNot":       {This: objectCtor, Method: "isFrozen", Args: args(o(object("x", n(1)))), Pass: testutils.PassSame(jsval.False)},
		"isFrozenPrimitive": {This: objectCtor, Method: "isFrozen", Args: args(n(1)), Pass: testutils.PassSame(jsval.True)},
		"isExtensible":      {This: objectCtor, Method: "isExtensible", Args: args(o(frozen)), Pass: testutils.PassSame(jsval.False)},
		"freezePrimitive":   {This: objectCtor, Method: "freeze", Args: args(s("a")), Pass: testutils.PassString("a")},
		"getPrototypeOf":    {This: objectCtor, Method: "getPrototypeOf", Args: args(o(child)), Pass: testutils.PassSame(o(parent))},
		"setPrototypeCycle": {This: objectCtor, Method: "setPrototypeOf", Args: args(o(parent), o(child)), Pass: testutils.PassError(jsval.TypeError)},
		"setPrototypeBad":   {This: objectCtor, Method: "setPrototypeOf", Args: args(o(object()), n(1)), Pass: testutils.PassError(jsval.TypeError)},
		"setPrototypeNull":  {This: objectCtor, Method: "setPrototypeOf", Args: args(jsval.Null, o(parent)), Pass: testutils.PassError(jsval.TypeError)},
		"createBadProto":    {This: objectCtor, Method: "create", Args: args(n(1)), Pass: testutils.PassError(jsval.TypeError)},
		"defineNonObject":   {This: objectCtor, Method: "defineProperty", Args: args(n(1), s("x"), o(object())), Pass: testutils.PassError(jsval.TypeError)},
		"defineBadDesc":     {This: objectCtor, Method: "defineProperty", Args: args(o(object()), s("x"), n(1)), Pass: testutils.PassError(jsval.TypeError)},
		"hasOwn":            {This: o(object("x", n(1))), Method: "hasOwnProperty", Args: args(s("x")), Pass: testutils.PassSame(jsval.True)},
		"hasOwnInherited":   {This: o(object("x", n(1))), Method: "hasOwnProperty", Args: args(s("toString")), Pass: testutils.PassSame(jsval.False)},
		"hasOwnString":      {This: s("abc"), Method: "hasOwnProperty", Args: args(s("length")), Pass: testutils.PassSame(jsval.True)},
		"enumerable":        {This: o(object("x", n(1))), Method: "propertyIsEnumerable", Args: args(s("x")), Pass: testutils.PassSame(jsval.True)},
		"notEnumerable":     {This: o(object()), Method: "propertyIsEnumerable", Args: args(s("toString")), Pass: testutils.PassSame(jsval.False)},
		"isPrototypeOf":     {This: o(parent), Method: "isPrototypeOf", Args: args(o(child)), Pass: testutils.PassSame(jsval.True)},
		"isPrototypeOfSelf": {This: o(child), Method: "isPrototypeOf", Args: args(o(child)), Pass: testutils.PassSame(jsval.False)},
		"toString":          {This: o(object()), Method: "toString", Pass: testutils.PassString("[object Object]")},
		"toStringArray":     {This: o(testutils.VM().NewArray()), Method: "toString", Pass: testutils.PassString("[object Array]")},
		"valueOf":           {This: o(parent), Method: "valueOf", Pass: testutils.PassSame(o(parent))},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}

func TestObjectToStringReceivers(t *testing.T) {
	vm := testutils.VM()
	toString, err := vm.Get(vm.ObjectPrototype, "toString")
	if err != nil {
		t.Fatal(err)
	}
	cases := map[string]struct {
		this jsval.Value
		want string
	}{
		"undefined": {jsval.Undefined, "[object Undefined]"},
		"null":      {jsval.Null, "[object Null]"},
		"string":    {testutils.StrValue("x"), "[object String]"},
		"number":    {jsval.IntValue(1), "[object Object]"},
		"function":  {toString, "[object Function]"},
		"error":     {vm.Throwable(jsval.NewError(jsval.TypeError, "x")), "[object Error]"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := vm.Invoke(toString, "call", c.this)
			if err != nil {
				t.Fatal(err)
			}
			if !r.IsString() || r.Str().String() != c.want {
				t.Errorf("have %v, want %q", r.GoString(), c.want)
			}
		})
	}
}

func TestObjectDefineAndDescribe(t *testing.T) {
	vm := testutils.VM()
	objectCtor := global("Object")
	o := jsval.ObjectValue(vm.NewObject())
	desc := jsval.ObjectValue(object("value", jsval.IntValue(7), "enumerable", jsval.True))
	r, err := vm.Invoke(objectCtor, "defineProperty", o, testutils.StrValue("x"), desc)
	if err != nil {
		t.Fatal(err)
	}
	if !jsval.SameValue(r, o) {
		t.Errorf("defineProperty returned %v", r.GoString())
	}
	d, err := vm.Invoke(objectCtor, "getOwnPropertyDescriptor", o, testutils.StrValue("x"))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]jsval.Value{
		"value":        jsval.IntValue(7),
		"writable":     jsval.False,
		"enumerable":   jsval.True,
		"configurable": jsval.False,
	}
	for name, w := range want {
		v, err := vm.Get(d.Object(), name)
		if err != nil {
			t.Fatal(err)
		}
		if !jsval.SameValue(v, w) {
			t.Errorf("%s: have %v, want %v", name, v.GoString(), w.GoString())
		}
	}
	missing, err := vm.Invoke(objectCtor, "getOwnPropertyDescriptor", o, testutils.StrValue("y"))
	if err != nil {
		t.Fatal(err)
	}
	if !missing.IsUndefined() {
		t.Errorf("missing property described as %v", missing.GoString())
	}
	_, err = vm.Invoke(objectCtor, "defineProperty", o, testutils.StrValue("x"), jsval.ObjectValue(object("value", jsval.IntValue(8))))
	if !jsval.IsKind(err, jsval.TypeError) {
		t.Errorf("redefining non-configurable value: have %v, want TypeError", err)
	}
}

func TestObjectCreate(t *testing.T) {
	vm := testutils.VM()
	objectCtor := global("Object")
	bare, err := vm.Invoke(objectCtor, "create", jsval.Null)
	if err != nil {
		t.Fatal(err)
	}
	p, err := vm.Invoke(objectCtor, "getPrototypeOf", bare)
	if err != nil {
		t.Fatal(err)
	}
	if !jsval.SameValue(p, jsval.Null) {
		t.Errorf("prototype of create(null): have %v", p.GoString())
	}
	proto := object("greeting", testutils.StrValue("hi"))
	props := object(
		"hidden", jsval.ObjectValue(object("value", jsval.IntValue(1))),
		"shown", jsval.ObjectValue(object("value", jsval.IntValue(2), "enumerable", jsval.True)),
	)
	r, err := vm.Invoke(objectCtor, "create", jsval.ObjectValue(proto), jsval.ObjectValue(props))
	if err != nil {
		t.Fatal(err)
	}
	keys, err := vm.Invoke(objectCtor, "keys", r)
	if err != nil {
		t.Fatal(err)
	}
	if !testutils.PassStrings("shown")(keys, nil) {
		t.Errorf("keys of created object: have %v", keys.GoString())
	}
	if v, _ := vm.Get(r.Object(), "greeting"); !v.IsString() || v.Str().String() != "hi" {
		t.Errorf("inherited greeting: have %v", v.GoString())
	}
	if v, _ := vm.Get(r.Object(), "hidden"); !jsval.SameValue(v, jsval.IntValue(1)) {
		t.Errorf("hidden: have %v", v.GoString())
	}
}

func TestObjectDefinePropertiesAtomic(t *testing.T) {
	vm := testutils.VM()
	objectCtor := global("Object")
	o := vm.NewObject()
	props := object(
		"good", jsval.ObjectValue(object("value", jsval.IntValue(1))),
		"bad", jsval.ObjectValue(object("get", jsval.IntValue(1))),
	)
	_, err := vm.Invoke(objectCtor, "defineProperties", jsval.ObjectValue(o), jsval.ObjectValue(props))
	if !jsval.IsKind(err, jsval.TypeError) {
		t.Errorf("bad getter: have %v, want TypeError", err)
	}
	if vm.HasOwnProperty(o, jsval.StrKey("good")) {
		t.Error("defineProperties defined a property before failing")
	}
}

func TestObjectGetOwnPropertyDescriptors(t *testing.T) {
	vm := testutils.VM()
	objectCtor := global("Object")
	o := object("a", jsval.IntValue(1), "b", jsval.IntValue(2))
	r, err := vm.Invoke(objectCtor, "getOwnPropertyDescriptors", jsval.ObjectValue(o))
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a", "b"} {
		d, err := vm.Get(r.Object(), name)
		if err != nil {
			t.Fatal(err)
		}
		if !d.IsObject() {
			t.Fatalf("%s: have %v, want descriptor", name, d.GoString())
		}
		w, err := vm.Get(d.Object(), "writable")
		if err != nil {
			t.Fatal(err)
		}
		if !jsval.SameValue(w, jsval.True) {
			t.Errorf("%s: writable is %v", name, w.GoString())
		}
	}
}
