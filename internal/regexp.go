package internal

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// Matcher is a compiled pattern.
type Matcher interface {
	// Match finds the leftmost match in subject at or after byte offset
	// start. The result holds byte offset pairs for the whole match and each
	// capture group, with -1 for groups that did not participate, or nil if
	// there is no match.
	Match(subject []byte, start int) ([]int, error)
	// NumCaptures returns the number of capture groups.
	NumCaptures() int
}

// MatcherCompiler compiles a pattern source with the given flags for
// subjects of the given kind.
type MatcherCompiler func(source string, flags RegExpFlags, kind StringKind) (Matcher, error)

// RegExpFlags are the flags of a regular expression.
type RegExpFlags struct {
	Global     bool
	IgnoreCase bool
	Multiline  bool
	DotAll     bool
	Sticky     bool
	Unicode    bool
}

// ParseFlags parses a flags string. Unknown or repeated flags are a
// SyntaxError.
func ParseFlags(s string) (RegExpFlags, error) {
	var f RegExpFlags
	for _, c := range s {
		var p *bool
		switch c {
		case 'g':
			p = &f.Global
		case 'i':
			p = &f.IgnoreCase
		case 'm':
			p = &f.Multiline
		case 's':
			p = &f.DotAll
		case 'y':
			p = &f.Sticky
		case 'u':
			p = &f.Unicode
		default:
			return f, syntaxErrorf("Invalid regular expression flags '%s'", s)
		}
		if *p {
			return f, syntaxErrorf("Invalid regular expression flags '%s'", s)
		}
		*p = true
	}
	return f, nil
}

// String returns the flags in canonical order.
func (f RegExpFlags) String() string {
	var b strings.Builder
	for _, x := range [...]struct {
		on bool
		c  byte
	}{{f.Global, 'g'}, {f.IgnoreCase, 'i'}, {f.Multiline, 'm'}, {f.DotAll, 's'}, {f.Unicode, 'u'}, {f.Sticky, 'y'}} {
		if x.on {
			b.WriteByte(x.c)
		}
	}
	return b.String()
}

// RegExp is the primitive value of regular expression objects.
type RegExp struct {
	Source String
	Flags  RegExpFlags

	compile  MatcherCompiler
	matchers [3]Matcher
}

// RegExpTag is the Tag for regular expression objects.
var RegExpTag regexpTag

type regexpTag struct{}

// CloneValue returns the same compiled pattern.
func (regexpTag) CloneValue(value interface{}) interface{} {
	return value
}

// String returns "RegExp".
func (regexpTag) String() string {
	return "RegExp"
}

// Matcher returns the pattern compiled for subjects of the given kind,
// compiling it on first use.
func (r *RegExp) Matcher(kind StringKind) (Matcher, error) {
	if m := r.matchers[kind]; m != nil {
		return m, nil
	}
	m, err := r.compile(r.Source.String(), r.Flags, kind)
	if err != nil {
		return nil, err
	}
	r.matchers[kind] = m
	return m, nil
}

// NewRegExp compiles a pattern and wraps it in a regular expression object.
func (vm *VM) NewRegExp(source, flags String) (*Object, error) {
	f, err := ParseFlags(flags.String())
	if err != nil {
		return nil, err
	}
	r := &RegExp{Source: source, Flags: f, compile: vm.CompileMatcher}
	// Compile eagerly so that syntax errors surface at construction.
	if _, err := r.Matcher(UTF8String); err != nil {
		return nil, err
	}
	o := vm.ObjectWith(vm.RegExpPrototype, r, RegExpTag)
	o.hash.Insert(DataProperty(StrKey("lastIndex"), IntValue(0), true, false, false), false)
	return o, nil
}

// lastIndex reads a regular expression object's lastIndex.
func (vm *VM) lastIndex(o *Object) (int, error) {
	v, _, err := vm.GetProperty(o, StrKey("lastIndex"), ObjectValue(o))
	if err != nil {
		return 0, err
	}
	return vm.ToInteger(v)
}

func (vm *VM) setLastIndex(o *Object, n int) error {
	return vm.SetProperty(o, StrKey("lastIndex"), IntValue(n))
}

// ecmaMatcher adapts a regexp2 program compiled in ECMAScript mode. The
// engine works on code points, so subjects are decoded per the kind the
// program was compiled for and match positions are mapped back to bytes.
type ecmaMatcher struct {
	re   *regexp2.Regexp
	kind StringKind
}

// CompileECMAScript compiles a pattern with regexp2 in ECMAScript mode. The
// i, m, s, and u flags map to the corresponding engine options. Byte string
// and ASCII subjects are matched with one character per byte.
func CompileECMAScript(source string, flags RegExpFlags, kind StringKind) (Matcher, error) {
	opt := regexp2.RegexOptions(regexp2.ECMAScript)
	if flags.IgnoreCase {
		opt |= regexp2.IgnoreCase
	}
	if flags.Multiline {
		opt |= regexp2.Multiline
	}
	if flags.DotAll {
		opt |= regexp2.Singleline
	}
	if flags.Unicode {
		opt |= regexp2.Unicode
	}
	re, err := regexp2.Compile(source, opt)
	if err != nil {
		return nil, syntaxErrorf("Invalid regular expression: /%s/: %v", source, err)
	}
	return ecmaMatcher{re: re, kind: kind}, nil
}

// decode returns the characters of subject along with the byte offset of
// each character and a final entry for the end of the subject.
func (m ecmaMatcher) decode(subject []byte) ([]rune, []int) {
	if m.kind != UTF8String {
		text := make([]rune, len(subject))
		offs := make([]int, len(subject)+1)
		for i, b := range subject {
			text[i] = rune(b)
			offs[i] = i
		}
		offs[len(subject)] = len(subject)
		return text, offs
	}
	text := make([]rune, 0, len(subject))
	offs := make([]int, 0, len(subject)+1)
	for i := 0; i < len(subject); {
		r, n := utf8.DecodeRune(subject[i:])
		text = append(text, r)
		offs = append(offs, i)
		i += n
	}
	offs = append(offs, len(subject))
	return text, offs
}

func (m ecmaMatcher) Match(subject []byte, start int) ([]int, error) {
	if start > len(subject) {
		return nil, nil
	}
	text, offs := m.decode(subject)
	// Offsets inside a character resume at the next one.
	at := sort.SearchInts(offs, start)
	r, err := m.re.FindRunesMatchStartingAt(text, at)
	if err != nil {
		return nil, NewError(InternalError, "regular expression failed: %v", err)
	}
	if r == nil {
		return nil, nil
	}
	groups := r.Groups()
	loc := make([]int, 2*len(groups))
	for i, g := range groups {
		if len(g.Captures) == 0 {
			loc[2*i], loc[2*i+1] = -1, -1
			continue
		}
		loc[2*i], loc[2*i+1] = offs[g.Index], offs[g.Index+g.Length]
	}
	return loc, nil
}

func (m ecmaMatcher) NumCaptures() int {
	return len(m.re.GetGroupNumbers()) - 1
}

// execAt runs r against s from byte offset start. Sticky patterns must match
// exactly at start.
func execAt(r *RegExp, s String, start int) ([]int, error) {
	m, err := r.Matcher(s.Kind())
	if err != nil {
		return nil, err
	}
	loc, err := m.Match(s.raw(), start)
	if err != nil || loc == nil {
		return nil, err
	}
	if r.Flags.Sticky && loc[0] != start {
		return nil, nil
	}
	return loc, nil
}
