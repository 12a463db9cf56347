package internal

import (
	"math"
)

// initString initializes String and String.prototype on this VM.
func (vm *VM) initString() {
	vm.StringPrototype.hash.Insert(HandlerProperty(StrKey("length"), stringLength, false, false, false), true)
	vm.install(vm.StringPrototype, map[string]native{
		"at":          {1, StringAt},
		"charAt":      {1, StringCharAt},
		"charCodeAt":  {1, StringCharCodeAt},
		"codePointAt": {1, StringCodePointAt},
		"concat":      {1, StringConcat},
		"endsWith":    {1, StringEndsWith},
		"fromBytes":   {0, StringFromBytes},
		"fromUTF8":    {0, StringFromUTF8},
		"includes":    {1, StringIncludes},
		"indexOf":     {1, StringIndexOf},
		"lastIndexOf": {1, StringLastIndexOf},
		"match":       {1, StringMatch},
		"normalize":   {0, StringNormalize},
		"padEnd":      {1, StringPadEnd},
		"padStart":    {1, StringPadStart},
		"repeat":      {1, StringRepeat},
		"replace":     {2, StringReplace},
		"replaceAll":  {2, StringReplaceAll},
		"search":      {1, StringSearch},
		"slice":       {2, StringSlice},
		"split":       {2, StringSplit},
		"startsWith":  {1, StringStartsWith},
		"substr":      {2, StringSubstr},
		"substring":   {2, StringSubstring},
		"toBytes":     {0, StringToBytes},
		"toLowerCase": {0, StringToLowerCase},
		"toString":    {0, StringToString},
		"toUpperCase": {0, StringToUpperCase},
		"toUTF8":      {0, StringToUTF8},
		"trim":        {0, StringTrim},
		"trimEnd":     {0, StringTrimEnd},
		"trimStart":   {0, StringTrimStart},
		"valueOf":     {0, StringValueOf},
	})
	c := vm.constructor("String", 1, StringCtor, func(vm *VM) *Object { return vm.StringPrototype })
	vm.install(c, map[string]native{
		"bytesFrom":     {2, StringBytesFrom},
		"fromCharCode":  {1, StringFromCharCode},
		"fromCodePoint": {1, StringFromCodePoint},
	})
}

// thisString coerces the this value of a String.prototype method.
func (vm *VM) thisString(this Value, method string) (String, error) {
	if this.IsNullish() {
		return Empty, typeErrorf("String.prototype.%s called on null or undefined", method)
	}
	return vm.ToString(this)
}

// thisStringValue returns the primitive value of a string or String
// wrapper.
func thisStringValue(this Value, method string) (String, error) {
	switch this.kind {
	case KindString:
		return this.s, nil
	case KindObject:
		if s, ok := this.obj.Value.(String); ok && this.obj.tag == StringTag {
			return s, nil
		}
	}
	return Empty, typeErrorf("String.prototype.%s requires that 'this' be a String", method)
}

// stringResult wraps a string-producing operation's results.
func stringResult(s String, err error) (Value, error) {
	if err != nil {
		return Undefined, err
	}
	return StringValue(s), nil
}

// StringCtor is the String constructor. It converts its argument to a
// string; symbols produce their descriptive form.
func StringCtor(vm *VM, this Value, args []Value) (Value, error) {
	if len(args) == 0 {
		return StringValue(Empty), nil
	}
	if v := args[0]; v.kind == KindSymbol {
		return stringResult(vm.NewString("Symbol(" + v.sym.Description + ")"))
	}
	return stringResult(vm.ToString(args[0]))
}

// StringFromCharCode is a String function.
//
// fromCharCode creates a string from 16-bit character codes.
func StringFromCharCode(vm *VM, this Value, args []Value) (Value, error) {
	codes, err := vm.numbers(args)
	if err != nil {
		return Undefined, err
	}
	return stringResult(vm.FromCharCode(codes...))
}

// StringFromCodePoint is a String function.
//
// fromCodePoint creates a string from code points.
func StringFromCodePoint(vm *VM, this Value, args []Value) (Value, error) {
	cps, err := vm.numbers(args)
	if err != nil {
		return Undefined, err
	}
	return stringResult(vm.FromCodePoint(cps...))
}

func (vm *VM) numbers(args []Value) ([]float64, error) {
	r := make([]float64, len(args))
	for i, v := range args {
		var err error
		if r[i], err = vm.ToNumber(v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// StringBytesFrom is a String function.
//
// bytesFrom creates a byte string from a string in an encoding: hex,
// base64, base64url, or a character encoding such as latin1 or utf-16le.
// The default is utf8.
func StringBytesFrom(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.argString(args, 0)
	if err != nil {
		return Undefined, err
	}
	enc := "utf8"
	if v := arg(args, 1); !v.IsUndefined() {
		e, err := vm.ToString(v)
		if err != nil {
			return Undefined, err
		}
		enc = e.String()
	}
	return stringResult(vm.BytesFrom(s, enc))
}

// StringAt is a String.prototype method.
//
// at returns the character at an index, counting from the end if it is
// negative, or undefined.
func StringAt(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.thisString(this, "at")
	if err != nil {
		return Undefined, err
	}
	i, err := vm.argInt(args, 0, 0)
	if err != nil {
		return Undefined, err
	}
	c, ok, err := vm.At(s, i)
	if err != nil || !ok {
		return Undefined, err
	}
	return StringValue(c), nil
}

// StringCharAt is a String.prototype method.
func StringCharAt(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.thisString(this, "charAt")
	if err != nil {
		return Undefined, err
	}
	i, err := vm.argInt(args, 0, 0)
	if err != nil {
		return Undefined, err
	}
	return stringResult(vm.CharAt(s, i))
}

// StringCharCodeAt is a String.prototype method.
//
// charCodeAt returns the code of the character at an index, or NaN.
// Characters are code points, or bytes in byte strings.
func StringCharCodeAt(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.thisString(this, "charCodeAt")
	if err != nil {
		return Undefined, err
	}
	i, err := vm.argInt(args, 0, 0)
	if err != nil {
		return Undefined, err
	}
	c := s.CodePointAt(i)
	if c < 0 {
		return NumberValue(math.NaN()), nil
	}
	return IntValue(int(c)), nil
}

// StringCodePointAt is a String.prototype method.
func StringCodePointAt(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.thisString(this, "codePointAt")
	if err != nil {
		return Undefined, err
	}
	i, err := vm.argInt(args, 0, 0)
	if err != nil {
		return Undefined, err
	}
	c := s.CodePointAt(i)
	if c < 0 {
		return Undefined, nil
	}
	return IntValue(int(c)), nil
}

// StringConcat is a String.prototype method.
func StringConcat(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.thisString(this, "concat")
	if err != nil {
		return Undefined, err
	}
	parts := make([]String, 1, len(args)+1)
	parts[0] = s
	for _, v := range args {
		p, err := vm.ToString(v)
		if err != nil {
			return Undefined, err
		}
		parts = append(parts, p)
	}
	return stringResult(vm.Concat(parts...))
}

// searchArg converts the search argument of includes, startsWith, and
// endsWith, which may not be a regular expression.
func (vm *VM) searchArg(args []Value, method string) (String, error) {
	if _, ok := regexpOf(arg(args, 0)); ok {
		return Empty, typeErrorf("First argument to String.prototype.%s must not be a regular expression", method)
	}
	return vm.argString(args, 0)
}

// StringEndsWith is a String.prototype method.
func StringEndsWith(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.thisString(this, "endsWith")
	if err != nil {
		return Undefined, err
	}
	search, err := vm.searchArg(args, "endsWith")
	if err != nil {
		return Undefined, err
	}
	end, err := vm.argInt(args, 1, s.Len())
	if err != nil {
		return Undefined, err
	}
	return BoolValue(s.EndsWith(search, end)), nil
}

// StringIncludes is a String.prototype method.
func StringIncludes(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.thisString(this, "includes")
	if err != nil {
		return Undefined, err
	}
	search, err := vm.searchArg(args, "includes")
	if err != nil {
		return Undefined, err
	}
	from, err := vm.argInt(args, 1, 0)
	if err != nil {
		return Undefined, err
	}
	return BoolValue(s.Includes(search, from)), nil
}

// StringIndexOf is a String.prototype method.
func StringIndexOf(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.thisString(this, "indexOf")
	if err != nil {
		return Undefined, err
	}
	search, err := vm.argString(args, 0)
	if err != nil {
		return Undefined, err
	}
	from, err := vm.argInt(args, 1, 0)
	if err != nil {
		return Undefined, err
	}
	return IntValue(s.IndexOf(search, from)), nil
}

// StringLastIndexOf is a String.prototype method.
//
// lastIndexOf searches backward from a position, or from the end if the
// position is missing or NaN.
func StringLastIndexOf(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.thisString(this, "lastIndexOf")
	if err != nil {
		return Undefined, err
	}
	search, err := vm.argString(args, 0)
	if err != nil {
		return Undefined, err
	}
	from := s.Len()
	f, err := vm.ToNumber(arg(args, 1))
	if err != nil {
		return Undefined, err
	}
	if !math.IsNaN(f) {
		from = clampInt(f)
	}
	return IntValue(s.LastIndexOf(search, from)), nil
}

// StringStartsWith is a String.prototype method.
func StringStartsWith(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.thisString(this, "startsWith")
	if err != nil {
		return Undefined, err
	}
	search, err := vm.searchArg(args, "startsWith")
	if err != nil {
		return Undefined, err
	}
	pos, err := vm.argInt(args, 1, 0)
	if err != nil {
		return Undefined, err
	}
	return BoolValue(s.StartsWith(search, pos)), nil
}

// toRegExp converts a pattern argument to a regular expression object.
func (vm *VM) toRegExp(v Value, flags string) (*Object, error) {
	if _, ok := regexpOf(v); ok {
		return v.obj, nil
	}
	src := Empty
	if !v.IsUndefined() {
		var err error
		if src, err = vm.ToString(v); err != nil {
			return nil, err
		}
	}
	return vm.NewRegExp(src, vm.MustString(flags))
}

// StringMatch is a String.prototype method.
func StringMatch(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.thisString(this, "match")
	if err != nil {
		return Undefined, err
	}
	re, err := vm.toRegExp(arg(args, 0), "")
	if err != nil {
		return Undefined, err
	}
	return vm.Match(s, re)
}

// StringSearch is a String.prototype method.
func StringSearch(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.thisString(this, "search")
	if err != nil {
		return Undefined, err
	}
	re, err := vm.toRegExp(arg(args, 0), "")
	if err != nil {
		return Undefined, err
	}
	i, err := vm.Search(s, re.Value.(*RegExp))
	if err != nil {
		return Undefined, err
	}
	return IntValue(i), nil
}

// StringNormalize is a String.prototype method.
func StringNormalize(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.thisString(this, "normalize")
	if err != nil {
		return Undefined, err
	}
	form := "NFC"
	if v := arg(args, 0); !v.IsUndefined() {
		f, err := vm.ToString(v)
		if err != nil {
			return Undefined, err
		}
		form = f.String()
	}
	return stringResult(vm.Normalize(s, form))
}

func (vm *VM) pad(this Value, args []Value, atStart bool, method string) (Value, error) {
	s, err := vm.thisString(this, method)
	if err != nil {
		return Undefined, err
	}
	n, err := vm.argInt(args, 0, 0)
	if err != nil {
		return Undefined, err
	}
	fill := vm.MustString(" ")
	if v := arg(args, 1); !v.IsUndefined() {
		if fill, err = vm.ToString(v); err != nil {
			return Undefined, err
		}
	}
	return stringResult(vm.Pad(s, n, fill, atStart))
}

// StringPadEnd is a String.prototype method.
//
// padEnd extends the string to a length by repeating a fill string, a space
// by default, after it.
func StringPadEnd(vm *VM, this Value, args []Value) (Value, error) {
	return vm.pad(this, args, false, "padEnd")
}

// StringPadStart is a String.prototype method.
//
// padStart extends the string to a length by repeating a fill string, a
// space by default, before it.
func StringPadStart(vm *VM, this Value, args []Value) (Value, error) {
	return vm.pad(this, args, true, "padStart")
}

// StringRepeat is a String.prototype method.
func StringRepeat(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.thisString(this, "repeat")
	if err != nil {
		return Undefined, err
	}
	f, err := vm.ToNumber(arg(args, 0))
	if err != nil {
		return Undefined, err
	}
	if math.IsInf(f, 0) {
		return Undefined, rangeErrorf("Invalid count value: %s", numberToString(f))
	}
	return stringResult(vm.Repeat(s, clampInt(f)))
}

// replacement converts the replacement argument of replace and replaceAll.
// Functions are called with the match, each capture, the match index, and
// the subject, and their results are converted to strings.
func (vm *VM) replacement(v Value) (Replacement, error) {
	if v.IsCallable() {
		fn := func(m *ReplaceMatch) (Value, error) {
			args := make([]Value, 0, len(m.Captures)+3)
			args = append(args, StringValue(m.Match))
			args = append(args, m.Captures...)
			args = append(args, IntValue(m.Index), StringValue(m.Subject))
			r, err := vm.Apply(v, Undefined, args)
			if err != nil {
				return Undefined, err
			}
			s, err := vm.ToString(r)
			if err != nil {
				return Undefined, err
			}
			return StringValue(s), nil
		}
		return Replacement{Func: fn}, nil
	}
	t, err := vm.ToString(v)
	if err != nil {
		return Replacement{}, err
	}
	return Replacement{Template: t}, nil
}

func (vm *VM) replace(this Value, args []Value, all bool, method string) (Value, error) {
	s, err := vm.thisString(this, method)
	if err != nil {
		return Undefined, err
	}
	pat := arg(args, 0)
	if r, ok := regexpOf(pat); ok {
		if all && !r.Flags.Global {
			return Undefined, typeErrorf("replaceAll must be called with a global RegExp")
		}
		repl, err := vm.replacement(arg(args, 1))
		if err != nil {
			return Undefined, err
		}
		return stringResult(vm.ReplaceRegExp(s, pat.obj, repl))
	}
	search, err := vm.ToString(pat)
	if err != nil {
		return Undefined, err
	}
	repl, err := vm.replacement(arg(args, 1))
	if err != nil {
		return Undefined, err
	}
	return stringResult(vm.ReplaceString(s, search, repl, all))
}

// StringReplace is a String.prototype method.
//
// replace substitutes the first occurrence of a string, or the matches of a
// regular expression, using a $ template or a function.
func StringReplace(vm *VM, this Value, args []Value) (Value, error) {
	return vm.replace(this, args, false, "replace")
}

// StringReplaceAll is a String.prototype method.
//
// replaceAll is like replace, but substitutes every occurrence. Regular
// expressions must be global.
func StringReplaceAll(vm *VM, this Value, args []Value) (Value, error) {
	return vm.replace(this, args, true, "replaceAll")
}

// StringSlice is a String.prototype method.
func StringSlice(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.thisString(this, "slice")
	if err != nil {
		return Undefined, err
	}
	start, err := vm.argInt(args, 0, 0)
	if err != nil {
		return Undefined, err
	}
	end, err := vm.argInt(args, 1, s.Len())
	if err != nil {
		return Undefined, err
	}
	return stringResult(vm.SliceRange(s, start, end))
}

// StringSplit is a String.prototype method.
//
// split divides the string at a separator string or regular expression,
// returning at most limit pieces.
func StringSplit(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.thisString(this, "split")
	if err != nil {
		return Undefined, err
	}
	limit := NoLimit
	if v := arg(args, 1); !v.IsUndefined() {
		n, err := vm.ToNumber(v)
		if err != nil {
			return Undefined, err
		}
		limit = int(uint32(toInt64(n)))
	}
	sep := arg(args, 0)
	if r, ok := regexpOf(sep); ok {
		vals, err := vm.SplitRegExp(s, r, limit)
		if err != nil {
			return Undefined, err
		}
		return ObjectValue(vm.NewArray(vals...)), nil
	}
	if sep.IsUndefined() {
		if limit == 0 {
			return ObjectValue(vm.NewArray()), nil
		}
		return ObjectValue(vm.NewArray(StringValue(s))), nil
	}
	sp, err := vm.ToString(sep)
	if err != nil {
		return Undefined, err
	}
	parts, err := vm.Split(s, sp, limit)
	if err != nil {
		return Undefined, err
	}
	vals := make([]Value, len(parts))
	for i, p := range parts {
		vals[i] = StringValue(p)
	}
	return ObjectValue(vm.NewArray(vals...)), nil
}

// StringSubstr is a String.prototype method.
func StringSubstr(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.thisString(this, "substr")
	if err != nil {
		return Undefined, err
	}
	start, err := vm.argInt(args, 0, 0)
	if err != nil {
		return Undefined, err
	}
	n, err := vm.argInt(args, 1, s.Len())
	if err != nil {
		return Undefined, err
	}
	return stringResult(vm.Substr(s, start, n))
}

// StringSubstring is a String.prototype method.
func StringSubstring(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.thisString(this, "substring")
	if err != nil {
		return Undefined, err
	}
	start, err := vm.argInt(args, 0, 0)
	if err != nil {
		return Undefined, err
	}
	end, err := vm.argInt(args, 1, s.Len())
	if err != nil {
		return Undefined, err
	}
	return stringResult(vm.Substring(s, start, end))
}

// StringToLowerCase is a String.prototype method.
func StringToLowerCase(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.thisString(this, "toLowerCase")
	if err != nil {
		return Undefined, err
	}
	return stringResult(vm.ToLower(s))
}

// StringToUpperCase is a String.prototype method.
func StringToUpperCase(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.thisString(this, "toUpperCase")
	if err != nil {
		return Undefined, err
	}
	return stringResult(vm.ToUpper(s))
}

// StringTrim is a String.prototype method.
func StringTrim(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.thisString(this, "trim")
	if err != nil {
		return Undefined, err
	}
	return stringResult(vm.Trim(s))
}

// StringTrimEnd is a String.prototype method.
func StringTrimEnd(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.thisString(this, "trimEnd")
	if err != nil {
		return Undefined, err
	}
	return stringResult(vm.TrimEnd(s))
}

// StringTrimStart is a String.prototype method.
func StringTrimStart(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.thisString(this, "trimStart")
	if err != nil {
		return Undefined, err
	}
	return stringResult(vm.TrimStart(s))
}

// StringToString is a String.prototype method.
//
// toString returns the string. Given an encoding, it renders the string's
// bytes in it instead: hex, base64, base64url, or a character encoding.
func StringToString(vm *VM, this Value, args []Value) (Value, error) {
	s, err := thisStringValue(this, "toString")
	if err != nil {
		return Undefined, err
	}
	v := arg(args, 0)
	if v.IsUndefined() {
		return StringValue(s), nil
	}
	enc, err := vm.ToString(v)
	if err != nil {
		return Undefined, err
	}
	return stringResult(vm.StringTo(s, enc.String()))
}

// StringValueOf is a String.prototype method.
func StringValueOf(vm *VM, this Value, args []Value) (Value, error) {
	s, err := thisStringValue(this, "valueOf")
	if err != nil {
		return Undefined, err
	}
	return StringValue(s), nil
}

// StringToBytes is a String.prototype method.
//
// toBytes converts a string of characters below U+0100 to the byte string of
// their values.
func StringToBytes(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.thisString(this, "toBytes")
	if err != nil {
		return Undefined, err
	}
	r, ok, err := vm.ToBytes(s)
	if err != nil {
		return Undefined, err
	}
	if !ok {
		return Undefined, typeErrorf("String.prototype.toBytes: character out of byte range")
	}
	return StringValue(r), nil
}

// StringFromBytes is a String.prototype method.
//
// fromBytes interprets each byte as the character with that value.
func StringFromBytes(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.thisString(this, "fromBytes")
	if err != nil {
		return Undefined, err
	}
	return stringResult(vm.FromBytes(s))
}

// StringToUTF8 is a String.prototype method.
//
// toUTF8 returns the byte string of the string's UTF-8 encoding.
func StringToUTF8(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.thisString(this, "toUTF8")
	if err != nil {
		return Undefined, err
	}
	return stringResult(vm.ToUTF8(s))
}

// StringFromUTF8 is a String.prototype method.
//
// fromUTF8 decodes the string's bytes as UTF-8, returning undefined if they
// are not valid.
func StringFromUTF8(vm *VM, this Value, args []Value) (Value, error) {
	s, err := vm.thisString(this, "fromUTF8")
	if err != nil {
		return Undefined, err
	}
	r, ok, err := vm.FromUTF8(s)
	if err != nil || !ok {
		return Undefined, err
	}
	return StringValue(r), nil
}
