package internal

import (
	"encoding/base64"
	"encoding/hex"
	"unicode/utf8"
)

// EscapeSet is a set of bytes, one bit per byte value.
type EscapeSet [8]uint32

// Has returns whether c is in the set.
func (e *EscapeSet) Has(c byte) bool {
	return e[c>>5]&(1<<(c&31)) != 0
}

func (e *EscapeSet) add(chars string) {
	for i := 0; i < len(chars); i++ {
		c := chars[i]
		e[c>>5] |= 1 << (c & 31)
	}
}

func (e *EscapeSet) remove(chars string) {
	for i := 0; i < len(chars); i++ {
		c := chars[i]
		e[c>>5] &^= 1 << (c & 31)
	}
}

// escapeAll returns a set of every byte except those in keep.
func escapeAll(keep string) *EscapeSet {
	e := new(EscapeSet)
	for i := range e {
		e[i] = ^uint32(0)
	}
	e.remove(keep)
	return e
}

const (
	uriUnreserved = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_.!~*'()"
	uriReserved   = ";/?:@&=+$,#"
)

var (
	// URIEscapes are the bytes percent-encoded when encoding a whole URI.
	URIEscapes = escapeAll(uriUnreserved + uriReserved)
	// URIComponentEscapes are the bytes percent-encoded when encoding a URI
	// component.
	URIComponentEscapes = escapeAll(uriUnreserved)
	// URIReserved are the bytes whose escapes are kept when decoding a whole
	// URI.
	URIReserved = func() *EscapeSet {
		e := new(EscapeSet)
		e.add(uriReserved)
		return e
	}()
	// NoReserved keeps no escapes when decoding.
	NoReserved = new(EscapeSet)
)

const hexDigits = "0123456789ABCDEF"

// EncodePercent percent-encodes each byte of s that is in escapes. Text
// strings must be valid UTF-8; byte strings are encoded byte by byte.
func (vm *VM) EncodePercent(s String, escapes *EscapeSet) (String, error) {
	kind, _ := s.kindLen()
	b := s.raw()
	if kind == ByteString && s.state() == lengthInvalid {
		return Empty, uriErrorf("URI malformed")
	}
	size := 0
	for _, c := range b {
		if escapes.Has(c) {
			size += 3
		} else {
			size++
		}
	}
	if size == len(b) {
		return vm.newString(b, len(b))
	}
	r, buf, err := vm.allocString(size)
	if err != nil {
		return Empty, err
	}
	buf = buf[:0]
	for _, c := range b {
		if escapes.Has(c) {
			buf = append(buf, '%', hexDigits[c>>4], hexDigits[c&15])
		} else {
			buf = append(buf, c)
		}
	}
	r.setLength(size)
	return *r, nil
}

func unhex(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

// DecodePercent decodes percent escapes in s, except escapes of bytes in
// reserved, which are kept as written. Any malformed escape, or decoded
// bytes that are not valid UTF-8, fail the whole decode with a URIError.
func (vm *VM) DecodePercent(s String, reserved *EscapeSet) (String, error) {
	b := s.raw()
	size := 0
	for i := 0; i < len(b); i++ {
		if b[i] != '%' {
			size++
			continue
		}
		if i+2 >= len(b) {
			return Empty, uriErrorf("URI malformed")
		}
		hi, lo := unhex(b[i+1]), unhex(b[i+2])
		if hi < 0 || lo < 0 {
			return Empty, uriErrorf("URI malformed")
		}
		if reserved.Has(byte(hi<<4 | lo)) {
			size += 3
		} else {
			size++
		}
		i += 2
	}
	if size == len(b) {
		return s.Retain(), nil
	}
	buf := make([]byte, 0, size)
	for i := 0; i < len(b); i++ {
		if b[i] != '%' {
			buf = append(buf, b[i])
			continue
		}
		c := byte(unhex(b[i+1])<<4 | unhex(b[i+2]))
		if reserved.Has(c) {
			buf = append(buf, b[i:i+3]...)
		} else {
			buf = append(buf, c)
		}
		i += 2
	}
	if !utf8.Valid(buf) {
		return Empty, uriErrorf("URI malformed")
	}
	return vm.newString(buf, utf8.RuneCount(buf))
}

// EncodeBase64 encodes the bytes of s with the standard alphabet and
// padding.
func (vm *VM) EncodeBase64(s String) (String, error) {
	return vm.encodeWith(s, base64.StdEncoding.EncodedLen(s.Size()), base64.StdEncoding.Encode)
}

// EncodeBase64URL encodes the bytes of s with the URL alphabet and no
// padding.
func (vm *VM) EncodeBase64URL(s String) (String, error) {
	return vm.encodeWith(s, base64.RawURLEncoding.EncodedLen(s.Size()), base64.RawURLEncoding.Encode)
}

// EncodeHex encodes the bytes of s as lower-case hexadecimal.
func (vm *VM) EncodeHex(s String) (String, error) {
	return vm.encodeWith(s, hex.EncodedLen(s.Size()), func(dst, src []byte) { hex.Encode(dst, src) })
}

func (vm *VM) encodeWith(s String, size int, enc func(dst, src []byte)) (String, error) {
	if size == 0 {
		return Empty, nil
	}
	r, buf, err := vm.allocString(size)
	if err != nil {
		return Empty, err
	}
	enc(buf, s.raw())
	r.setLength(size)
	return *r, nil
}

// base64 decoding tables, with 0xff for bytes outside the alphabet.
var (
	stdDecode = decodeTable("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/")
	urlDecode = decodeTable("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_")
)

func decodeTable(alphabet string) *[256]byte {
	var t [256]byte
	for i := range t {
		t[i] = 0xff
	}
	for i := 0; i < len(alphabet); i++ {
		t[alphabet[i]] = byte(i)
	}
	return &t
}

// DecodeBase64 decodes standard base64 into a byte string. Decoding stops
// at the first byte outside the alphabet, including padding; a trailing
// partial group yields as many whole bytes as it holds.
func (vm *VM) DecodeBase64(s String) (String, error) {
	return vm.decodeBase64(s, stdDecode)
}

// DecodeBase64URL is like DecodeBase64 with the URL alphabet.
func (vm *VM) DecodeBase64URL(s String) (String, error) {
	return vm.decodeBase64(s, urlDecode)
}

func (vm *VM) decodeBase64(s String, table *[256]byte) (String, error) {
	b := s.raw()
	n := 0
	for n < len(b) && table[b[n]] != 0xff {
		n++
	}
	size := n / 4 * 3
	switch n % 4 {
	case 2:
		size++
	case 3:
		size += 2
	}
	if size == 0 {
		return Empty, nil
	}
	r, buf, err := vm.allocString(size)
	if err != nil {
		return Empty, err
	}
	var acc uint32
	k, o := 0, 0
	for _, c := range b[:n] {
		acc = acc<<6 | uint32(table[c])
		k++
		if k == 4 {
			buf[o], buf[o+1], buf[o+2] = byte(acc>>16), byte(acc>>8), byte(acc)
			o += 3
			acc, k = 0, 0
		}
	}
	switch k {
	case 2:
		buf[o] = byte(acc >> 4)
	case 3:
		buf[o], buf[o+1] = byte(acc>>10), byte(acc>>2)
	}
	r.setLength(0)
	return *r, nil
}

// DecodeHex decodes hexadecimal into a byte string. Decoding stops at the
// first pair that is not two hex digits.
func (vm *VM) DecodeHex(s String) (String, error) {
	b := s.raw()
	n := 0
	for n+1 < len(b) && unhex(b[n]) >= 0 && unhex(b[n+1]) >= 0 {
		n += 2
	}
	if n == 0 {
		return Empty, nil
	}
	r, buf, err := vm.allocString(n / 2)
	if err != nil {
		return Empty, err
	}
	for i := range buf {
		buf[i] = byte(unhex(b[2*i])<<4 | unhex(b[2*i+1]))
	}
	r.setLength(0)
	return *r, nil
}
