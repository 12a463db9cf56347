package internal

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/unicode/norm"
)

// charset looks up a character encoding by name. UTF-8 is handled by
// callers.
func charset(name string) (encoding.Encoding, bool) {
	switch strings.ToLower(name) {
	case "latin1", "binary", "iso-8859-1":
		return charmap.ISO8859_1, true
	case "windows-1252", "cp1252":
		return charmap.Windows1252, true
	case "utf-16le", "utf16le", "ucs2", "ucs-2":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), true
	case "utf-16be", "utf16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), true
	case "utf-32le", "utf32le":
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM), true
	case "utf-32be", "utf32be":
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM), true
	}
	return nil, false
}

// Decode interprets the bytes of s in the named encoding and returns the
// text. Malformed input decodes to U+FFFD.
func (vm *VM) Decode(s String, name string) (String, error) {
	switch strings.ToLower(name) {
	case "utf8", "utf-8":
		b := s.raw()
		if utf8.Valid(b) {
			return vm.newString(b, utf8.RuneCount(b))
		}
		return vm.newString([]byte(strings.ToValidUTF8(string(b), "\uFFFD")), lengthUnmeasured)
	}
	enc, ok := charset(name)
	if !ok {
		return Empty, typeErrorf("Unknown encoding: %s", name)
	}
	b, err := enc.NewDecoder().Bytes(s.raw())
	if err != nil {
		return Empty, typeErrorf("Cannot decode %s: %v", name, err)
	}
	return vm.newString(b, utf8.RuneCount(b))
}

// Encode converts the text of s to the named encoding, returning a byte
// string. Characters the encoding cannot represent are a TypeError.
func (vm *VM) Encode(s String, name string) (String, error) {
	switch strings.ToLower(name) {
	case "utf8", "utf-8":
		return vm.ToUTF8(s)
	}
	enc, ok := charset(name)
	if !ok {
		return Empty, typeErrorf("Unknown encoding: %s", name)
	}
	b, err := enc.NewEncoder().Bytes(s.raw())
	if err != nil {
		return Empty, typeErrorf("Cannot encode as %s: %v", name, err)
	}
	return vm.newString(b, 0)
}

// ToBytes converts a string whose characters are all below U+0100 to the
// byte string of those values. The bool result is false if some character
// is too large. Byte strings are returned as is.
func (vm *VM) ToBytes(s String) (String, bool, error) {
	if s.Kind() == ByteString {
		return s.Retain(), true, nil
	}
	b, err := charmap.ISO8859_1.NewEncoder().Bytes(s.raw())
	if err != nil {
		return Empty, false, nil
	}
	r, err := vm.newString(b, 0)
	return r, err == nil, err
}

// FromBytes interprets each byte of s as the character with that value.
func (vm *VM) FromBytes(s String) (String, error) {
	b, err := charmap.ISO8859_1.NewDecoder().Bytes(s.raw())
	if err != nil {
		return Empty, internalErrorf("latin1 decode: %v", err)
	}
	return vm.newString(b, s.Size())
}

// Normalize applies a Unicode normalization form: NFC, NFD, NFKC, or NFKD.
func (vm *VM) Normalize(s String, form string) (String, error) {
	var f norm.Form
	switch form {
	case "", "NFC":
		f = norm.NFC
	case "NFD":
		f = norm.NFD
	case "NFKC":
		f = norm.NFKC
	case "NFKD":
		f = norm.NFKD
	default:
		return Empty, rangeErrorf("The normalization form should be one of NFC, NFD, NFKC, NFKD.")
	}
	b := s.raw()
	if s.Kind() == ByteString || f.IsNormal(b) {
		return s.Retain(), nil
	}
	nb := f.Bytes(b)
	return vm.newString(nb, utf8.RuneCount(nb))
}

// BytesFrom creates a byte string from s in the named encoding: hex,
// base64, and base64url decode s; text encodings encode it.
func (vm *VM) BytesFrom(s String, name string) (String, error) {
	switch strings.ToLower(name) {
	case "hex":
		return vm.DecodeHex(s)
	case "base64":
		return vm.DecodeBase64(s)
	case "base64url":
		return vm.DecodeBase64URL(s)
	}
	return vm.Encode(s, name)
}

// StringTo renders the bytes of s in the named encoding: hex, base64, and
// base64url encode them; text encodings decode them.
func (vm *VM) StringTo(s String, name string) (String, error) {
	switch strings.ToLower(name) {
	case "hex":
		return vm.EncodeHex(s)
	case "base64":
		return vm.EncodeBase64(s)
	case "base64url":
		return vm.EncodeBase64URL(s)
	}
	return vm.Decode(s, name)
}

// Btoa encodes a string of characters below U+0100 as base64.
func (vm *VM) Btoa(s String) (String, error) {
	b, ok, err := vm.ToBytes(s)
	if err != nil {
		return Empty, err
	}
	if !ok {
		return Empty, NewError(TypeError, "The string to be encoded contains characters outside of the Latin1 range.")
	}
	return vm.EncodeBase64(b)
}

// Atob decodes base64 into a string of characters below U+0100. ASCII
// white space is ignored.
func (vm *VM) Atob(s String) (String, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\f', '\r':
			return -1
		}
		return r
	}, s.String())
	cs, err := vm.NewStringBytes([]byte(strings.TrimRight(clean, "=")))
	if err != nil {
		return Empty, err
	}
	b, err := vm.DecodeBase64(cs)
	if err != nil {
		return Empty, err
	}
	return vm.FromBytes(b)
}
