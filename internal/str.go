package internal

import (
	"bytes"
	"unicode/utf8"
)

// ShortStringMax is the largest byte size stored inline in a String.
const ShortStringMax = 14

// DefaultMaxStringLength is the default upper bound on string byte size.
const DefaultMaxStringLength = 1<<29 - 1

const (
	// shortLong in the size field marks the long form.
	shortLong uint8 = 0xff
	// shortUnmeasured and shortInvalid are length states of short strings.
	shortUnmeasured uint8 = 0xfe
	shortInvalid    uint8 = 0xfd
)

const (
	lengthUnmeasured = -1
	lengthInvalid    = -2
)

// StringKind classifies the contents of a string.
type StringKind uint8

//go:generate go run golang.org/x/tools/cmd/stringer -type=StringKind -output=stringkind_string.go

// String kinds.
const (
	// ByteString strings hold arbitrary bytes and are indexed by byte.
	ByteString StringKind = iota
	// ASCIIString strings have as many characters as bytes.
	ASCIIString
	// UTF8String strings hold multi-byte UTF-8 text.
	UTF8String
)

// String is an immutable string value. Strings of at most ShortStringMax
// bytes are stored inline; longer strings share a reference-counted header.
// The zero String is the empty string.
//
// A string's character length is one of: a count of code points, zero for a
// byte string with non-zero size, or unmeasured. Unmeasured strings are
// measured on demand; strings that fail measurement are invalid and behave as
// byte strings.
type String struct {
	// size is the inline byte size, or shortLong.
	size uint8
	// length is the inline character length or a short length state.
	length uint8
	inline [ShortStringMax]byte
	long   *stringData
}

// stringData is the shared header of a long string.
type stringData struct {
	bytes []byte
	// length is the character count, zero for byte strings, or one of
	// lengthUnmeasured and lengthInvalid.
	length int
	// retain is the number of values referring to this header.
	retain int
	// static headers belong to a template and are never freed or mutated.
	static bool
	// offsets is the lazily built offset map.
	offsets []uint32
	pool    Pool
	// parent owns bytes when this header is a truncated view of it.
	parent *stringData
}

// Empty is the canonical empty string.
var Empty = String{}

// IsLong returns whether the string uses the long form.
func (s String) IsLong() bool {
	return s.size == shortLong
}

// Size returns the string's size in bytes.
func (s String) Size() int {
	if s.size == shortLong {
		return len(s.long.bytes)
	}
	return int(s.size)
}

// Bytes returns the string's contents. The result must not be modified.
func (s String) Bytes() []byte {
	if s.size == shortLong {
		return s.long.bytes
	}
	b := s.inline
	return b[:s.size]
}

// raw returns the string's contents without copying inline storage.
func (s *String) raw() []byte {
	if s.size == shortLong {
		return s.long.bytes
	}
	return s.inline[:s.size]
}

// String returns the contents as a Go string.
func (s String) String() string {
	return string(s.raw())
}

// state returns the recorded length state without measuring.
func (s String) state() int {
	if s.size == shortLong {
		return s.long.length
	}
	switch s.length {
	case shortUnmeasured:
		return lengthUnmeasured
	case shortInvalid:
		return lengthInvalid
	}
	return int(s.length)
}

// kindLen resolves the string's kind and character length, measuring if
// needed. For byte and invalid strings, the length is the byte size. Long
// headers memoize the measurement.
func (s String) kindLen() (StringKind, int) {
	n := s.state()
	if n == lengthUnmeasured {
		n = measure(s.raw())
		if s.size == shortLong {
			s.long.length = n
		}
	}
	size := s.Size()
	switch {
	case n == lengthInvalid:
		return ByteString, size
	case n == 0 && size != 0:
		return ByteString, size
	case n == size:
		return ASCIIString, n
	}
	return UTF8String, n
}

// Kind returns the kind of the string's contents.
func (s String) Kind() StringKind {
	k, _ := s.kindLen()
	return k
}

// IsByteString returns whether the string is indexed by byte. Invalid strings
// are byte strings.
func (s String) IsByteString() bool {
	return s.Kind() == ByteString
}

// Len returns the number of characters in the string. Byte strings count
// bytes.
func (s String) Len() int {
	_, n := s.kindLen()
	return n
}

// Measure computes and records the string's character length. It returns
// ErrInvalidEncoding if the string is not valid UTF-8; the string is then
// recorded as invalid. Strings whose length is already known, including byte
// strings, return it without scanning.
func (s *String) Measure() (int, error) {
	n := s.state()
	if n == lengthUnmeasured {
		n = measure(s.raw())
		if s.size == shortLong {
			s.long.length = n
		} else if n == lengthInvalid {
			s.length = shortInvalid
		} else {
			s.length = uint8(n)
		}
	}
	if n == lengthInvalid {
		return s.Size(), ErrInvalidEncoding
	}
	if n == 0 {
		return s.Size(), nil
	}
	return n, nil
}

// measure counts code points in b, or returns lengthInvalid.
func measure(b []byte) int {
	n := 0
	for i := 0; i < len(b); {
		if c := b[i]; c < utf8.RuneSelf {
			i++
			n++
			continue
		}
		r, w := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && w <= 1 {
			return lengthInvalid
		}
		i += w
		n++
	}
	return n
}

// Retain records an additional reference to a long string's storage.
func (s String) Retain() String {
	if s.size == shortLong && !s.long.static {
		s.long.retain++
	}
	return s
}

// Release drops a reference to a long string's storage, returning it to its
// pool when no references remain.
func (s String) Release() {
	if s.size != shortLong || s.long.static {
		return
	}
	d := s.long
	d.retain--
	if d.retain > 0 {
		return
	}
	if d.offsets != nil && d.pool != nil {
		d.pool.Free(u32bytes(d.offsets))
	}
	switch {
	case d.parent != nil:
		String{size: shortLong, long: d.parent}.Release()
	case d.pool != nil:
		d.pool.Free(d.bytes)
	}
	d.bytes, d.offsets, d.parent = nil, nil, nil
}

// Truncate shortens the string to size bytes. Other copies of the value are
// unchanged; a long result shares the original's bytes. If the string was
// text and the cut falls inside a character, the result is invalid and
// behaves as a byte string.
func (s *String) Truncate(size int) error {
	if size < 0 || size > s.Size() {
		return rangeErrorf("cannot truncate %d-byte string to %d bytes", s.Size(), size)
	}
	kind, _ := s.kindLen()
	if s.size != shortLong {
		s.size = uint8(size)
		switch kind {
		case ByteString:
			if size == 0 {
				s.length = 0
			} else if s.length != 0 {
				// Invalid strings may become valid once cut.
				s.length = shortUnmeasured
			}
		case ASCIIString:
			s.length = uint8(size)
		default:
			s.length = shortUnmeasured
		}
		return nil
	}
	d := s.long
	b := d.bytes[:size]
	if size <= ShortStringMax {
		var r String
		r.size = uint8(size)
		copy(r.inline[:], b)
		r.length = shortUnmeasured
		switch {
		case kind == ASCIIString || size == 0:
			r.length = uint8(size)
		case kind == ByteString && d.length == 0:
			r.length = 0
		}
		// The header is left alone; other copies may still refer to it.
		*s = r
		return nil
	}
	// Other values may hold the header without retaining it, so the cut
	// gets a header of its own that views the original bytes. The view
	// takes over this value's reference to the original.
	v := &stringData{bytes: b, retain: 1, pool: d.pool, parent: d}
	switch {
	case kind == ASCIIString:
		v.length = size
	case kind == ByteString && d.length == 0:
		// Still a byte string.
	default:
		v.length = lengthUnmeasured
	}
	s.long = v
	return nil
}

// Compare lexicographically compares the bytes of two strings.
func Compare(a, b String) int {
	return bytes.Compare(a.raw(), b.raw())
}

// Equal returns whether two strings are equal. Strings of different sizes
// are never equal, and neither are strings whose known character lengths
// differ; otherwise the bytes decide.
func Equal(a, b String) bool {
	if a.Size() != b.Size() {
		return false
	}
	if la, lb := a.state(), b.state(); la > 0 && lb > 0 && la != lb {
		return false
	}
	return bytes.Equal(a.raw(), b.raw())
}

// Identical returns whether two strings share storage, or are equal short
// strings.
func Identical(a, b String) bool {
	if a.size == shortLong || b.size == shortLong {
		return a.long == b.long
	}
	return bytes.Equal(a.raw(), b.raw())
}

// allocString reserves storage for a string of size bytes. Short strings
// use inline storage; the returned slice aliases the result's storage in
// either case, so callers must write through the returned pointer.
func (vm *VM) allocString(size int) (*String, []byte, error) {
	if size > vm.maxStringLength() {
		return nil, nil, rangeErrorf("invalid string length")
	}
	r := new(String)
	if size <= ShortStringMax {
		r.size = uint8(size)
		r.length = shortUnmeasured
		return r, r.inline[:size], nil
	}
	b, err := vm.Pool.Alloc(size)
	if err != nil {
		return nil, nil, err
	}
	r.size = shortLong
	r.long = &stringData{bytes: b, retain: 1, length: lengthUnmeasured, pool: vm.Pool}
	return r, b, nil
}

// setLength records a known length state on a freshly built string.
func (s *String) setLength(n int) {
	if s.size == shortLong {
		s.long.length = n
		return
	}
	switch n {
	case lengthUnmeasured:
		s.length = shortUnmeasured
	case lengthInvalid:
		s.length = shortInvalid
	default:
		s.length = uint8(n)
	}
}

// newString copies b into a new string with the given length state.
func (vm *VM) newString(b []byte, length int) (String, error) {
	if len(b) == 0 {
		return Empty, nil
	}
	r, buf, err := vm.allocString(len(b))
	if err != nil {
		return Empty, err
	}
	copy(buf, b)
	r.setLength(length)
	return *r, nil
}

// NewStringBytes creates an unmeasured string holding a copy of b. Its kind
// is determined when first needed.
func (vm *VM) NewStringBytes(b []byte) (String, error) {
	return vm.newString(b, lengthUnmeasured)
}

// NewString creates a text string from s. It returns ErrInvalidEncoding if s
// is not valid UTF-8.
func (vm *VM) NewString(s string) (String, error) {
	n := measure([]byte(s))
	if n == lengthInvalid {
		return Empty, ErrInvalidEncoding
	}
	return vm.newString([]byte(s), n)
}

// NewByteString creates a byte string holding a copy of b.
func (vm *VM) NewByteString(b []byte) (String, error) {
	return vm.newString(b, 0)
}

// MustString is like NewString but panics on failure. It is meant for
// strings known at compile time.
func (vm *VM) MustString(s string) String {
	r, err := vm.NewString(s)
	if err != nil {
		panic("jsval: bad string " + s + ": " + err.Error())
	}
	return r
}

// resultLength computes the length state of a string built by joining parts.
// Any byte string part makes the result a byte string.
func resultLength(parts ...String) int {
	n := 0
	for _, p := range parts {
		if p.Size() == 0 {
			continue
		}
		k, l := p.kindLen()
		if k == ByteString {
			return 0
		}
		n += l
	}
	return n
}

// Concat joins strings. The result is a byte string if any non-empty part
// is one.
func (vm *VM) Concat(parts ...String) (String, error) {
	size := 0
	var last String
	nonempty := 0
	for _, p := range parts {
		if p.Size() != 0 {
			size += p.Size()
			last = p
			nonempty++
		}
		if size > vm.maxStringLength() {
			return Empty, rangeErrorf("invalid string length")
		}
	}
	switch nonempty {
	case 0:
		return Empty, nil
	case 1:
		return last.Retain(), nil
	}
	r, buf, err := vm.allocString(size)
	if err != nil {
		return Empty, err
	}
	buf = buf[:0]
	for _, p := range parts {
		buf = append(buf, p.raw()...)
	}
	r.setLength(resultLength(parts...))
	return *r, nil
}
