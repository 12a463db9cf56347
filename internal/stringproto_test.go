package internal_test

import (
	"math"
	"testing"

	"github.com/zephyrtronium/jsval"
	"github.com/zephyrtronium/jsval/testutils"
)

func mustRegExp(source, flags string) jsval.Value {
	vm := testutils.VM()
	re, err := vm.NewRegExp(vm.MustString(source), vm.MustString(flags))
	if err != nil {
		panic(err)
	}
	return jsval.ObjectValue(re)
}

func native(name string, fn jsval.NativeFunc) jsval.Value {
	return jsval.ObjectValue(testutils.VM().NewFunction(name, 0, fn))
}

func global(name string) jsval.Value {
	vm := testutils.VM()
	v, err := vm.Get(vm.Global, name)
	if err != nil {
		panic(err)
	}
	return v
}

func args(vals ...jsval.Value) []jsval.Value {
	return vals
}

func TestStringMethods(t *testing.T) {
	s := testutils.StrValue
	n := jsval.IntValue
	upper := native("upper", func(vm *jsval.VM, this jsval.Value, args []jsval.Value) (jsval.Value, error) {
		r, err := vm.ToUpper(args[0].Str())
		return jsval.StringValue(r), err
	})
	seven := native("seven", func(vm *jsval.VM, this jsval.Value, args []jsval.Value) (jsval.Value, error) {
		return jsval.IntValue(7), nil
	})
	position := native("position", func(vm *jsval.VM, this jsval.Value, args []jsval.Value) (jsval.Value, error) {
		// match, capture, index, subject
		if len(args) != 4 {
			return jsval.Undefined, jsval.NewError(jsval.InternalError, "wrong argument count %d", len(args))
		}
		return args[2], nil
	})
	cases := map[string]testutils.CallTestCase{
		"concat":          {This: s("ab"), Method: "concat", Args: args(s("cd")), Pass: testutils.PassString("abcd")},
		"concatMany":      {This: s("a"), Method: "concat", Args: args(n(1), jsval.True, jsval.Null), Pass: testutils.PassString("a1truenull")},
		"padStart":        {This: s("5"), Method: "padStart", Args: args(n(3), s("0")), Pass: testutils.PassString("005")},
		"padEndSpace":     {This: s("ab"), Method: "padEnd", Args: args(n(4)), Pass: testutils.PassString("ab  ")},
		"sliceAstral":     {This: s("a𝒄b"), Method: "slice", Args: args(n(1), n(2)), Pass: testutils.PassString("𝒄")},
		"sliceNegative":   {This: s("hello"), Method: "slice", Args: args(n(-3)), Pass: testutils.PassString("llo")},
		"substring":       {This: s("hello"), Method: "substring", Args: args(n(3), n(1)), Pass: testutils.PassString("el")},
		"substr":          {This: s("hello"), Method: "substr", Args: args(n(1), n(3)), Pass: testutils.PassString("ell")},
		"at":              {This: s("héllo"), Method: "at", Args: args(n(-4)), Pass: testutils.PassString("é")},
		"atOut":           {This: s("abc"), Method: "at", Args: args(n(3)), Pass: testutils.PassSame(jsval.Undefined)},
		"charAt":          {This: s("héllo"), Method: "charAt", Args: args(n(1)), Pass: testutils.PassString("é")},
		"charAtOut":       {This: s("abc"), Method: "charAt", Args: args(n(9)), Pass: testutils.PassString("")},
		"charCodeAt":      {This: s("héllo"), Method: "charCodeAt", Args: args(n(1)), Pass: testutils.PassNumber(0xe9)},
		"charCodeAtOut":   {This: s("abc"), Method: "charCodeAt", Args: args(n(3)), Pass: testutils.PassNumber(math.NaN())},
		"codePointAt":     {This: s("a𝒄"), Method: "codePointAt", Args: args(n(1)), Pass: testutils.PassNumber(0x1d484)},
		"codePointAtOut":  {This: s("a"), Method: "codePointAt", Args: args(n(1)), Pass: testutils.PassSame(jsval.Undefined)},
		"indexOf":         {This: s("héllo héllo"), Method: "indexOf", Args: args(s("llo"), n(3)), Pass: testutils.PassNumber(8)},
		"lastIndexOf":     {This: s("héllo héllo"), Method: "lastIndexOf", Args: args(s("é")), Pass: testutils.PassNumber(7)},
		"lastIndexOfNaN":  {This: s("abab"), Method: "lastIndexOf", Args: args(s("a"), jsval.NumberValue(math.NaN())), Pass: testutils.PassNumber(2)},
		"includes":        {This: s("abc"), Method: "includes", Args: args(s("bc")), Pass: testutils.PassSame(jsval.True)},
		"includesRegExp":  {This: s("abc"), Method: "includes", Args: args(mustRegExp("b", "")), Pass: testutils.PassError(jsval.TypeError)},
		"startsWith":      {This: s("abc"), Method: "startsWith", Args: args(s("bc"), n(1)), Pass: testutils.PassSame(jsval.True)},
		"endsWith":        {This: s("abc"), Method: "endsWith", Args: args(s("ab"), n(2)), Pass: testutils.PassSame(jsval.True)},
		"repeat":          {This: s("ab"), Method: "repeat", Args: args(n(3)), Pass: testutils.PassString("ababab")},
		"repeatNegative":  {This: s("ab"), Method: "repeat", Args: args(n(-1)), Pass: testutils.PassError(jsval.RangeError)},
		"repeatInfinite":  {This: s("ab"), Method: "repeat", Args: args(jsval.NumberValue(math.Inf(1))), Pass: testutils.PassError(jsval.RangeError)},
		"toUpperCase":     {This: s("héllo"), Method: "toUpperCase", Pass: testutils.PassString("HÉLLO")},
		"toLowerCase":     {This: s("HÉLLO"), Method: "toLowerCase", Pass: testutils.PassString("héllo")},
		"trim":            {This: s("\t x \n"), Method: "trim", Pass: testutils.PassString("x")},
		"trimStart":       {This: s("  x  "), Method: "trimStart", Pass: testutils.PassString("x  ")},
		"trimEnd":         {This: s("  x  "), Method: "trimEnd", Pass: testutils.PassString("  x")},
		"normalize":       {This: s("é"), Method: "normalize", Pass: testutils.PassString("é")},
		"normalizeBad":    {This: s("e"), Method: "normalize", Args: args(s("NFX")), Pass: testutils.PassError(jsval.RangeError)},
		"toStringHex":     {This: s("hi"), Method: "toString", Args: args(s("hex")), Pass: testutils.PassString("6869")},
		"toStringBase64":  {This: s("hi"), Method: "toString", Args: args(s("base64")), Pass: testutils.PassString("aGk=")},
		"valueOf":         {This: s("hi"), Method: "valueOf", Pass: testutils.PassString("hi")},
		"toBytes":         {This: s("ÿ"), Method: "toBytes", Pass: testutils.PassString("\xff")},
		"toBytesWide":     {This: s("𝒄"), Method: "toBytes", Pass: testutils.PassError(jsval.TypeError)},
		"fromBytes":       {This: jsval.StringValue(testutils.Bytes("\xff")), Method: "fromBytes", Pass: testutils.PassString("ÿ")},
		"toUTF8":          {This: s("é"), Method: "toUTF8", Pass: testutils.PassString("\xc3\xa9")},
		"fromUTF8":        {This: jsval.StringValue(testutils.Bytes("\xc3\xa9")), Method: "fromUTF8", Pass: testutils.PassString("é")},
		"fromUTF8Invalid": {This: jsval.StringValue(testutils.Bytes("\xc3")), Method: "fromUTF8", Pass: testutils.PassSame(jsval.Undefined)},
		"replace":         {This: s("x"), Method: "replace", Args: args(mustRegExp("x", ""), s("$&$&")), Pass: testutils.PassString("xx")},
		"replaceString":   {This: s("a.b.c"), Method: "replace", Args: args(s("."), s("-")), Pass: testutils.PassString("a-b.c")},
		"replaceAll":      {This: s("a.b.c"), Method: "replaceAll", Args: args(s("."), s("-")), Pass: testutils.PassString("a-b-c")},
		"replaceAllRegEx": {This: s("a1b2"), Method: "replaceAll", Args: args(mustRegExp(`\d`, "g"), s("#")), Pass: testutils.PassString("a#b#")},
		"replaceAllLocal": {This: s("a1b2"), Method: "replaceAll", Args: args(mustRegExp(`\d`, ""), s("#")), Pass: testutils.PassError(jsval.TypeError)},
		"replaceFunc":     {This: s("abc"), Method: "replace", Args: args(mustRegExp("b", "g"), upper), Pass: testutils.PassString("aBc")},
		"replaceFuncNum":  {This: s("a1"), Method: "replace", Args: args(mustRegExp(`\d`, ""), seven), Pass: testutils.PassString("a7")},
		"replaceFuncArgs": {This: s("xéy"), Method: "replace", Args: args(mustRegExp("(y)", ""), position), Pass: testutils.PassString("xé2")},
		"search":          {This: s("héllo"), Method: "search", Args: args(mustRegExp("l+", "")), Pass: testutils.PassNumber(2)},
		"searchString":    {This: s("a.c"), Method: "search", Args: args(s(".")), Pass: testutils.PassNumber(0)},
		"searchMissing":   {This: s("abc"), Method: "search", Args: args(mustRegExp("z", "")), Pass: testutils.PassNumber(-1)},
		"matchGlobal":     {This: s("a1b22"), Method: "match", Args: args(mustRegExp(`\d+`, "g")), Pass: testutils.PassStrings("1", "22")},
		"matchNone":       {This: s("abc"), Method: "match", Args: args(mustRegExp(`\d`, "g")), Pass: testutils.PassSame(jsval.Null)},
		"matchGroups":     {This: s("ab"), Method: "match", Args: args(mustRegExp(`(a)(x)?`, "")), Pass: testutils.PassStrings("a", "a", "<undefined>")},
		"split":           {This: s("a,b,,c"), Method: "split", Args: args(s(",")), Pass: testutils.PassStrings("a", "b", "", "c")},
		"splitLimit":      {This: s("a,b,c"), Method: "split", Args: args(s(","), n(2)), Pass: testutils.PassStrings("a", "b")},
		"splitNone":       {This: s("abc"), Method: "split", Pass: testutils.PassStrings("abc")},
		"splitChars":      {This: s("hé"), Method: "split", Args: args(s("")), Pass: testutils.PassStrings("h", "é")},
		"splitRegExp":     {This: s("a1b2c"), Method: "split", Args: args(mustRegExp(`(\d)`, "")), Pass: testutils.PassStrings("a", "1", "b", "2", "c")},
		"splitEmptyMatch": {This: s("abc"), Method: "split", Args: args(mustRegExp(``, "")), Pass: testutils.PassStrings("a", "b", "c")},
		"nullThis":        {This: jsval.Null, Method: "trim", Pass: testutils.PassError(jsval.TypeError)},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}

func TestStringStatics(t *testing.T) {
	s := testutils.StrValue
	n := jsval.IntValue
	str := global("String")
	cases := map[string]testutils.CallTestCase{
		"fromCharCode":     {This: str, Method: "fromCharCode", Args: args(n(104), n(0x10069)), Pass: testutils.PassString("hi")},
		"fromCodePoint":    {This: str, Method: "fromCodePoint", Args: args(n(0x1d484)), Pass: testutils.PassString("𝒄")},
		"fromCodePointBad": {This: str, Method: "fromCodePoint", Args: args(n(-1)), Pass: testutils.PassError(jsval.RangeError)},
		"bytesFromHex":     {This: str, Method: "bytesFrom", Args: args(s("6869"), s("hex")), Pass: testutils.PassString("hi")},
		"bytesFromBase64":  {This: str, Method: "bytesFrom", Args: args(s("aGk"), s("base64")), Pass: testutils.PassString("hi")},
		"bytesFromUTF16":   {This: str, Method: "bytesFrom", Args: args(s("h"), s("utf-16le")), Pass: testutils.PassString("h\x00")},
		"bytesFromUnknown": {This: str, Method: "bytesFrom", Args: args(s("h"), s("klingon")), Pass: testutils.PassError(jsval.TypeError)},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}

func TestStringValueProperties(t *testing.T) {
	vm := testutils.VM()
	s := testutils.StrValue("a𝒄b")
	if v, err := vm.GetValue(s, jsval.StrKey("length")); err != nil || !jsval.SameValue(v, jsval.IntValue(3)) {
		t.Errorf("length: have %v, %v", v.GoString(), err)
	}
	if v, err := vm.GetValue(s, jsval.StrKey("1")); err != nil || !v.IsString() || v.Str().String() != "𝒄" {
		t.Errorf("index 1: have %v, %v", v.GoString(), err)
	}
	if v, err := vm.GetValue(s, jsval.StrKey("3")); err != nil || !v.IsUndefined() {
		t.Errorf("index 3: have %v, %v", v.GoString(), err)
	}
	if _, err := vm.GetValue(jsval.Undefined, jsval.StrKey("x")); !jsval.IsKind(err, jsval.TypeError) {
		t.Errorf("property of undefined: have %v, want TypeError", err)
	}
	o, err := vm.ToObject(s)
	if err != nil {
		t.Fatal(err)
	}
	if v, err := vm.Get(o, "length"); err != nil || !jsval.SameValue(v, jsval.IntValue(3)) {
		t.Errorf("wrapper length: have %v, %v", v.GoString(), err)
	}
	if err := vm.Set(o, "length", jsval.IntValue(1)); !jsval.IsKind(err, jsval.TypeError) {
		t.Errorf("assigning wrapper length: have %v, want TypeError", err)
	}
	r, err := vm.Invoke(jsval.ObjectValue(o), "valueOf")
	if err != nil || !r.IsString() || r.Str().String() != "a𝒄b" {
		t.Errorf("wrapper valueOf: have %v, %v", r.GoString(), err)
	}
}
