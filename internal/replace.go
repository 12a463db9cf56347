package internal

// ReplaceMatch describes a match passed to a replacement function.
type ReplaceMatch struct {
	// Match is the matched text.
	Match String
	// Captures holds each capture group, undefined for groups that did not
	// participate.
	Captures []Value
	// Index is the character index of the match in Subject.
	Index int
	// Subject is the string being searched.
	Subject String
}

// ReplaceFunc computes the replacement for a match. It must return a string.
type ReplaceFunc func(m *ReplaceMatch) (Value, error)

// Replacement is either a template with $ substitutions or a function.
type Replacement struct {
	Template String
	Func     ReplaceFunc
}

// template substitution codes.
const (
	subLiteral = iota
	subMatch
	subBefore
	subAfter
	subCapture
)

// replacePart is one piece of a parsed replacement template.
type replacePart struct {
	code int
	// start and end delimit literal text in the template.
	start, end int
	group      int
}

// parseReplacement splits a template into literal spans and substitutions.
// References to groups beyond ncaptures are literal text.
func parseReplacement(t []byte, ncaptures int) []replacePart {
	var parts []replacePart
	lit := 0
	flush := func(end int) {
		if end > lit {
			parts = append(parts, replacePart{code: subLiteral, start: lit, end: end})
		}
	}
	for i := 0; i < len(t)-1; i++ {
		if t[i] != '$' {
			continue
		}
		var p replacePart
		w := 2
		switch c := t[i+1]; {
		case c == '$':
			flush(i)
			lit = i + 1
			i++
			continue
		case c == '&':
			p.code = subMatch
		case c == '`':
			p.code = subBefore
		case c == '\'':
			p.code = subAfter
		case '0' <= c && c <= '9':
			n := int(c - '0')
			if i+2 < len(t) && '0' <= t[i+2] && t[i+2] <= '9' {
				if nn := n*10 + int(t[i+2]-'0'); nn >= 1 && nn <= ncaptures {
					n, w = nn, 3
				}
			}
			if n < 1 || n > ncaptures {
				continue
			}
			p.code, p.group = subCapture, n
		default:
			continue
		}
		flush(i)
		parts = append(parts, p)
		i += w - 1
		lit = i + 1
	}
	flush(len(t))
	return parts
}

// span is a piece of the result: bytes with their character count, or a
// negative count for byte string data.
type span struct {
	b      []byte
	length int
}

// replace states.
const (
	replaceScanning = iota
	replaceMatched
	replaceAdvancing
	replaceJoining
	replaceDone
)

// replacer holds the state of one replacement.
type replacer struct {
	vm      *VM
	subject String
	kind    StringKind

	// search finds the next match at or after a byte offset.
	search func(from int) ([]int, error)
	global bool

	repl  Replacement
	tpl   []replacePart
	tplb  []byte
	tplln int

	state   int
	pos     int
	lastEnd int
	loc     []int
	matches int
	spans   []span
	result  String
}

func (vm *VM) newReplacer(subject String, repl Replacement, ncaptures int) *replacer {
	r := &replacer{vm: vm, subject: subject, kind: subject.Kind(), repl: repl}
	if repl.Func == nil {
		r.tplb = repl.Template.Bytes()
		r.tpl = parseReplacement(r.tplb, ncaptures)
		if repl.Template.Kind() == ByteString {
			r.tplln = -1
		}
	}
	return r
}

// ReplaceString replaces the first occurrence of search in subject, or
// every occurrence if all is set. An empty search matches between every
// pair of characters.
func (vm *VM) ReplaceString(subject, search String, repl Replacement, all bool) (String, error) {
	r := vm.newReplacer(subject, repl, 0)
	hay, needle := subject.Bytes(), search.Bytes()
	text := subject.Kind() == UTF8String
	r.search = func(from int) ([]int, error) {
		i := scan(hay, needle, from, scanForward, text)
		if i < 0 {
			return nil, nil
		}
		return []int{i, i + len(needle)}, nil
	}
	r.global = all
	return r.run()
}

// ReplaceRegExp replaces matches of the regular expression object re in
// subject. Global expressions replace every match and reset lastIndex;
// sticky ones match only at lastIndex.
func (vm *VM) ReplaceRegExp(subject String, re *Object, repl Replacement) (String, error) {
	rx, ok := re.Value.(*RegExp)
	if !ok {
		return Empty, typeErrorf("not a regular expression")
	}
	m, err := rx.Matcher(subject.Kind())
	if err != nil {
		return Empty, err
	}
	start := 0
	if rx.Flags.Sticky && !rx.Flags.Global {
		if start, err = vm.lastIndex(re); err != nil {
			return Empty, err
		}
		if start < 0 || start > subject.Len() {
			return subject, vm.setLastIndex(re, 0)
		}
		start = subject.ByteOffset(start)
	}
	r := vm.newReplacer(subject, repl, m.NumCaptures())
	hay := subject.Bytes()
	sticky := rx.Flags.Sticky
	r.search = func(from int) ([]int, error) {
		loc, err := m.Match(hay, from)
		if err != nil || loc == nil {
			return nil, err
		}
		if sticky && loc[0] != from {
			return nil, nil
		}
		return loc, nil
	}
	r.global = rx.Flags.Global
	r.pos = start
	result, err := r.run()
	if err != nil {
		return Empty, err
	}
	switch {
	case rx.Flags.Global:
		err = vm.setLastIndex(re, 0)
	case sticky && r.loc != nil:
		err = vm.setLastIndex(re, subject.CharIndex(r.loc[1]))
	case sticky:
		err = vm.setLastIndex(re, 0)
	}
	return result, err
}

// run drives the replacement to completion.
func (r *replacer) run() (String, error) {
	var err error
	for r.state != replaceDone && err == nil {
		switch r.state {
		case replaceScanning:
			err = r.scan()
		case replaceMatched:
			err = r.substitute()
		case replaceAdvancing:
			r.advance()
		case replaceJoining:
			err = r.join()
		}
	}
	return r.result, err
}

func (r *replacer) scan() error {
	var loc []int
	if r.pos <= r.subject.Size() {
		var err error
		if loc, err = r.search(r.pos); err != nil {
			return err
		}
	}
	if loc == nil {
		if r.matches == 0 {
			r.result = r.subject
			r.state = replaceDone
			return nil
		}
		r.state = replaceJoining
		return nil
	}
	r.loc = loc
	r.matches++
	r.state = replaceMatched
	return nil
}

// piece returns a span of the subject.
func (r *replacer) piece(from, to int) span {
	b := r.subject.Bytes()[from:to]
	switch r.kind {
	case ByteString:
		return span{b: b, length: -1}
	case ASCIIString:
		return span{b: b, length: len(b)}
	}
	return span{b: b, length: countChars(b)}
}

func (r *replacer) substitute() error {
	loc := r.loc
	r.spans = append(r.spans, r.piece(r.lastEnd, loc[0]))
	if r.repl.Func != nil {
		if err := r.call(); err != nil {
			return err
		}
		r.state = replaceAdvancing
		return nil
	}
	size := r.subject.Size()
	for _, p := range r.tpl {
		switch p.code {
		case subLiteral:
			b := r.tplb[p.start:p.end]
			n := r.tplln
			if n >= 0 {
				n = countChars(b)
			}
			r.spans = append(r.spans, span{b: b, length: n})
		case subMatch:
			r.spans = append(r.spans, r.piece(loc[0], loc[1]))
		case subBefore:
			r.spans = append(r.spans, r.piece(0, loc[0]))
		case subAfter:
			r.spans = append(r.spans, r.piece(loc[1], size))
		case subCapture:
			if i := 2 * p.group; i < len(loc) && loc[i] >= 0 {
				r.spans = append(r.spans, r.piece(loc[i], loc[i+1]))
			}
		}
	}
	r.state = replaceAdvancing
	return nil
}

// call invokes the replacement function for the current match.
func (r *replacer) call() error {
	vm, loc := r.vm, r.loc
	match, err := vm.byteSlice(r.subject, loc[0], loc[1])
	if err != nil {
		return err
	}
	m := &ReplaceMatch{Match: match, Index: r.subject.CharIndex(loc[0]), Subject: r.subject}
	for i := 2; i+1 < len(loc); i += 2 {
		v := Undefined
		if loc[i] >= 0 {
			c, err := vm.byteSlice(r.subject, loc[i], loc[i+1])
			if err != nil {
				return err
			}
			v = StringValue(c)
		}
		m.Captures = append(m.Captures, v)
	}
	v, err := r.repl.Func(m)
	if err != nil {
		return err
	}
	if v.kind != KindString {
		return internalErrorf("replacement function returned %v, not a string", v.kind)
	}
	s := v.s
	n := s.Len()
	if s.Kind() == ByteString {
		n = -1
	}
	r.spans = append(r.spans, span{b: s.Bytes(), length: n})
	return nil
}

func (r *replacer) advance() {
	loc := r.loc
	r.lastEnd = loc[1]
	if !r.global {
		r.state = replaceJoining
		return
	}
	r.pos = loc[1]
	if loc[0] == loc[1] {
		// Empty matches step over one character so the scan progresses.
		r.pos = r.vm.advance(r.subject, loc[1])
	}
	r.state = replaceScanning
}

func (r *replacer) join() error {
	r.spans = append(r.spans, r.piece(r.lastEnd, r.subject.Size()))
	size, length := 0, 0
	for _, s := range r.spans {
		size += len(s.b)
		if s.length < 0 || length < 0 {
			length = -1
		} else {
			length += s.length
		}
	}
	r.state = replaceDone
	if size == 0 {
		r.result = Empty
		return nil
	}
	res, buf, err := r.vm.allocString(size)
	if err != nil {
		return err
	}
	buf = buf[:0]
	for _, s := range r.spans {
		buf = append(buf, s.b...)
	}
	if length < 0 {
		length = 0
	}
	res.setLength(length)
	r.result = *res
	return nil
}

// countChars counts the characters of valid UTF-8 text.
func countChars(b []byte) int {
	n := measure(b)
	if n < 0 {
		return len(b)
	}
	return n
}
