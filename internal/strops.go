package internal

import (
	"unicode"
	"unicode/utf8"
)

// Slice returns length characters of s starting at character start. The
// caller clamps start and length to the string. The whole string is
// returned as is.
func (vm *VM) Slice(s String, start, length int) (String, error) {
	if length <= 0 {
		return Empty, nil
	}
	kind, n := s.kindLen()
	if start == 0 && length >= n {
		return s.Retain(), nil
	}
	b := s.raw()
	switch kind {
	case ByteString:
		return vm.newString(b[start:start+length], 0)
	case ASCIIString:
		return vm.newString(b[start:start+length], length)
	}
	from := s.ByteOffset(start)
	to := skipChars(b, from, length)
	return vm.newString(b[from:to], length)
}

// clampIndex clamps a relative index to [0, n]. Negative values count from
// the end.
func clampIndex(i, n int) int {
	if i < 0 {
		i += n
		if i < 0 {
			return 0
		}
	}
	if i > n {
		return n
	}
	return i
}

// SliceRange returns the characters of s in [start, end), where negative
// indices count from the end.
func (vm *VM) SliceRange(s String, start, end int) (String, error) {
	n := s.Len()
	start, end = clampIndex(start, n), clampIndex(end, n)
	return vm.Slice(s, start, end-start)
}

// Substring returns the characters between two indices in either order,
// clamping negative indices to zero.
func (vm *VM) Substring(s String, start, end int) (String, error) {
	n := s.Len()
	start, end = clamp(start, 0, n), clamp(end, 0, n)
	if start > end {
		start, end = end, start
	}
	return vm.Slice(s, start, end-start)
}

// Substr returns length characters from start, where a negative start
// counts from the end.
func (vm *VM) Substr(s String, start, length int) (String, error) {
	n := s.Len()
	start = clampIndex(start, n)
	length = clamp(length, 0, n-start)
	return vm.Slice(s, start, length)
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// CodePointAt returns the code point of the character at index, or -1 if
// index is out of range. Characters of byte strings are bytes.
func (s String) CodePointAt(index int) rune {
	kind, n := s.kindLen()
	if index < 0 || index >= n {
		return -1
	}
	b := s.raw()
	if kind != UTF8String {
		return rune(b[index])
	}
	r, _ := utf8.DecodeRune(b[s.ByteOffset(index):])
	return r
}

// CharAt returns the character at index as a string, or the empty string if
// index is out of range.
func (vm *VM) CharAt(s String, index int) (String, error) {
	if index < 0 || index >= s.Len() {
		return Empty, nil
	}
	return vm.Slice(s, index, 1)
}

// At is like CharAt, but negative indices count from the end. The bool
// result is false if the index is out of range.
func (vm *VM) At(s String, index int) (String, bool, error) {
	n := s.Len()
	if index < 0 {
		index += n
	}
	if index < 0 || index >= n {
		return Empty, false, nil
	}
	r, err := vm.Slice(s, index, 1)
	return r, true, err
}

// FromCodePoint builds a string from code points. Values outside the
// Unicode range are a RangeError; surrogate halves become U+FFFD.
func (vm *VM) FromCodePoint(cps ...float64) (String, error) {
	var buf []byte
	for _, c := range cps {
		if c != float64(int64(c)) || c < 0 || c > unicode.MaxRune {
			return Empty, rangeErrorf("Invalid code point %s", numberToString(c))
		}
		buf = utf8.AppendRune(buf, rune(c))
	}
	return vm.newString(buf, utf8.RuneCount(buf))
}

// FromCharCode builds a string from character codes, each truncated to 16
// bits.
func (vm *VM) FromCharCode(codes ...float64) (String, error) {
	var buf []byte
	for _, c := range codes {
		buf = utf8.AppendRune(buf, rune(uint16(toInt64(c))))
	}
	return vm.newString(buf, utf8.RuneCount(buf))
}

func toInt64(f float64) int64 {
	if f != f || f > 1<<63-1 || f < -1<<63 {
		return 0
	}
	return int64(f)
}

// Repeat concatenates count copies of s.
func (vm *VM) Repeat(s String, count int) (String, error) {
	if count < 0 {
		return Empty, rangeErrorf("Invalid count value: %d", count)
	}
	if count == 0 || s.Size() == 0 {
		return Empty, nil
	}
	if s.Size() > vm.maxStringLength()/count {
		return Empty, rangeErrorf("invalid string length")
	}
	r, buf, err := vm.allocString(s.Size() * count)
	if err != nil {
		return Empty, err
	}
	b := s.raw()
	for off := 0; off < len(buf); off += len(b) {
		copy(buf[off:], b)
	}
	kind, n := s.kindLen()
	if kind == ByteString {
		r.setLength(0)
	} else {
		r.setLength(n * count)
	}
	return *r, nil
}

// Pad extends s to length characters by repeating pad at the start or the
// end. The last repetition of pad is cut to fit. s is returned unchanged if
// it is already long enough or pad is empty.
func (vm *VM) Pad(s String, length int, pad String, atStart bool) (String, error) {
	n := s.Len()
	if length <= n || pad.Size() == 0 {
		return s.Retain(), nil
	}
	if length > vm.maxStringLength() {
		return Empty, rangeErrorf("invalid string length")
	}
	plen := pad.Len()
	fill := length - n
	whole, rem := fill/plen, fill%plen
	pb := pad.raw()
	remSize := pad.ByteOffset(rem)
	size := s.Size() + whole*len(pb) + remSize
	r, buf, err := vm.allocString(size)
	if err != nil {
		return Empty, err
	}
	buf = buf[:0]
	if !atStart {
		buf = append(buf, s.raw()...)
	}
	for i := 0; i < whole; i++ {
		buf = append(buf, pb...)
	}
	buf = append(buf, pb[:remSize]...)
	if atStart {
		buf = append(buf, s.raw()...)
	}
	if s.Kind() == ByteString || pad.Kind() == ByteString {
		r.setLength(0)
	} else {
		r.setLength(length)
	}
	return *r, nil
}

// ToLower maps each character to lower case. Byte strings map only ASCII
// letters.
func (vm *VM) ToLower(s String) (String, error) {
	return vm.mapCase(s, unicode.ToLower, 'A', 'Z')
}

// ToUpper maps each character to upper case. Byte strings map only ASCII
// letters.
func (vm *VM) ToUpper(s String) (String, error) {
	return vm.mapCase(s, unicode.ToUpper, 'a', 'z')
}

func (vm *VM) mapCase(s String, fn func(rune) rune, lo, hi byte) (String, error) {
	kind, n := s.kindLen()
	b := s.raw()
	if kind != UTF8String {
		r, buf, err := vm.allocString(len(b))
		if err != nil {
			return Empty, err
		}
		for i, c := range b {
			if lo <= c && c <= hi {
				c ^= 0x20
			}
			buf[i] = c
		}
		if kind == ByteString {
			r.setLength(0)
		} else {
			r.setLength(n)
		}
		return *r, nil
	}
	// The size of a mapped character may differ from the original.
	buf := make([]byte, 0, len(b))
	for i := 0; i < len(b); {
		c, w := utf8.DecodeRune(b[i:])
		buf = utf8.AppendRune(buf, fn(c))
		i += w
	}
	return vm.newString(buf, n)
}

// isSpace reports whether r is white space or a line terminator.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', 0xa0, 0x1680, 0x2028, 0x2029, 0x202f, 0x205f, 0x3000, 0xfeff:
		return true
	}
	return 0x2000 <= r && r <= 0x200a
}

// Trim removes white space from both ends of s.
func (vm *VM) Trim(s String) (String, error) {
	return vm.trim(s, true, true)
}

// TrimStart removes leading white space.
func (vm *VM) TrimStart(s String) (String, error) {
	return vm.trim(s, true, false)
}

// TrimEnd removes trailing white space.
func (vm *VM) TrimEnd(s String) (String, error) {
	return vm.trim(s, false, true)
}

func (vm *VM) trim(s String, start, end bool) (String, error) {
	kind, n := s.kindLen()
	b := s.raw()
	from, to := 0, len(b)
	cfrom, cto := 0, n
	if kind != UTF8String {
		for start && from < to && isSpace(rune(b[from])) && b[from] < utf8.RuneSelf {
			from++
		}
		for end && to > from && isSpace(rune(b[to-1])) && b[to-1] < utf8.RuneSelf {
			to--
		}
		return vm.Slice(s, from, to-from)
	}
	for start && from < to {
		r, w := utf8.DecodeRune(b[from:])
		if !isSpace(r) {
			break
		}
		from += w
		cfrom++
	}
	for end && to > from {
		r, w := utf8.DecodeLastRune(b[from:to])
		if !isSpace(r) {
			break
		}
		to -= w
		cto--
	}
	if from == 0 && to == len(b) {
		return s.Retain(), nil
	}
	return vm.newString(b[from:to], cto-cfrom)
}

// ToUTF8 returns a byte string with the same bytes as s.
func (vm *VM) ToUTF8(s String) (String, error) {
	return vm.newString(s.raw(), 0)
}

// FromUTF8 interprets a string's bytes as UTF-8 text. The bool result is
// false if they are not valid UTF-8.
func (vm *VM) FromUTF8(s String) (String, bool, error) {
	b := s.raw()
	n := measure(b)
	if n == lengthInvalid {
		return Empty, false, nil
	}
	r, err := vm.newString(b, n)
	return r, true, err
}
