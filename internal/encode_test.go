package internal_test

import (
	"testing"

	"github.com/zephyrtronium/jsval"
	"github.com/zephyrtronium/jsval/testutils"
)

func TestEncodePercent(t *testing.T) {
	vm := testutils.VM()
	cases := map[string]struct {
		s       string
		escapes *jsval.EscapeSet
		want    string
	}{
		"plain":     {"abc", jsval.URIComponentEscapes, "abc"},
		"space":     {"a b", jsval.URIComponentEscapes, "a%20b"},
		"reserved":  {"a/b?c", jsval.URIEscapes, "a/b?c"},
		"component": {"a/b?c", jsval.URIComponentEscapes, "a%2Fb%3Fc"},
		"utf8":      {"é", jsval.URIComponentEscapes, "%C3%A9"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := vm.EncodePercent(vm.MustString(c.s), c.escapes)
			if err != nil {
				t.Fatal(err)
			}
			if r.String() != c.want {
				t.Errorf("have %q, want %q", r.String(), c.want)
			}
		})
	}
}

func TestDecodePercent(t *testing.T) {
	vm := testutils.VM()
	cases := map[string]struct {
		s        string
		reserved *jsval.EscapeSet
		want     string
		fail     bool
	}{
		"plain":     {"abc", jsval.NoReserved, "abc", false},
		"utf8":      {"%C3%A9t%C3%A9", jsval.NoReserved, "été", false},
		"reserved":  {"a%2Fb%20c", jsval.URIReserved, "a%2Fb c", false},
		"component": {"a%2Fb", jsval.NoReserved, "a/b", false},
		"truncated": {"abc%4", jsval.NoReserved, "", true},
		"badHex":    {"%zz", jsval.NoReserved, "", true},
		"badUTF8":   {"%C3", jsval.NoReserved, "", true},
		"lateError": {"%C3%A9%", jsval.NoReserved, "", true},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := vm.DecodePercent(vm.MustString(c.s), c.reserved)
			if c.fail {
				if !jsval.IsKind(err, jsval.URIError) {
					t.Errorf("have %q, %v; want URIError", r.String(), err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if r.String() != c.want {
				t.Errorf("have %q, want %q", r.String(), c.want)
			}
		})
	}
}

func TestPercentRoundTrip(t *testing.T) {
	vm := testutils.VM()
	for _, s := range []string{"", "hello world", "a+b=c&d", "ünïcödé 𝒄", "100%"} {
		x := vm.MustString(s)
		e, err := vm.EncodePercent(x, jsval.URIComponentEscapes)
		if err != nil {
			t.Fatal(err)
		}
		d, err := vm.DecodePercent(e, jsval.NoReserved)
		if err != nil {
			t.Fatal(err)
		}
		if !jsval.Equal(d, x) {
			t.Errorf("%q round tripped to %q through %q", s, d.String(), e.String())
		}
	}
}

func TestBase64(t *testing.T) {
	vm := testutils.VM()
	cases := map[string]struct {
		s, std, url string
	}{
		"empty": {"", "", ""},
		"one":   {"a", "YQ==", "YQ"},
		"two":   {"ab", "YWI=", "YWI"},
		"three": {"abc", "YWJj", "YWJj"},
		"url":   {"\xfb\xff", "+/8=", "-_8"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			s := testutils.Bytes(c.s)
			std, err := vm.EncodeBase64(s)
			if err != nil {
				t.Fatal(err)
			}
			if std.String() != c.std {
				t.Errorf("standard: have %q, want %q", std.String(), c.std)
			}
			url, err := vm.EncodeBase64URL(s)
			if err != nil {
				t.Fatal(err)
			}
			if url.String() != c.url {
				t.Errorf("url: have %q, want %q", url.String(), c.url)
			}
			d, err := vm.DecodeBase64(std)
			if err != nil {
				t.Fatal(err)
			}
			if d.String() != c.s {
				t.Errorf("standard decode: have %q, want %q", d.String(), c.s)
			}
			d, err = vm.DecodeBase64URL(url)
			if err != nil {
				t.Fatal(err)
			}
			if d.String() != c.s {
				t.Errorf("url decode: have %q, want %q", d.String(), c.s)
			}
		})
	}
}

func TestBase64Lenient(t *testing.T) {
	vm := testutils.VM()
	cases := map[string]struct {
		s, want string
	}{
		"unpadded": {"YQ", "a"},
		"stop":     {"YWJj!YWJj", "abc"},
		"partial":  {"YWJjZ", "abc"},
		"space":    {"YW Jj", "a"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := vm.DecodeBase64(vm.MustString(c.s))
			if err != nil {
				t.Fatal(err)
			}
			if r.String() != c.want {
				t.Errorf("have %q, want %q", r.String(), c.want)
			}
			if r.Size() > 0 && r.Kind() != jsval.ByteString {
				t.Errorf("decoded to %v, want byte string", r.Kind())
			}
		})
	}
}

func TestHex(t *testing.T) {
	vm := testutils.VM()
	s := testutils.Bytes("\x00\x7f\xff")
	e, err := vm.EncodeHex(s)
	if err != nil {
		t.Fatal(err)
	}
	if e.String() != "007fff" {
		t.Errorf("encode: have %q, want %q", e.String(), "007fff")
	}
	d, err := vm.DecodeHex(e)
	if err != nil {
		t.Fatal(err)
	}
	if !jsval.Equal(d, s) {
		t.Errorf("decode: have %q", d.String())
	}
	d, _ = vm.DecodeHex(vm.MustString("AbCdEg12"))
	if d.String() != "\xab\xcd" {
		t.Errorf("lenient decode: have %q, want %q", d.String(), "\xab\xcd")
	}
}

func TestAtobBtoa(t *testing.T) {
	vm := testutils.VM()
	r, err := vm.Btoa(vm.MustString("héllo"))
	if err != nil {
		t.Fatal(err)
	}
	if r.String() != "aOlsbG8=" {
		t.Errorf("btoa: have %q, want %q", r.String(), "aOlsbG8=")
	}
	d, err := vm.Atob(vm.MustString("aOls\nbG8="))
	if err != nil {
		t.Fatal(err)
	}
	if d.String() != "héllo" {
		t.Errorf("atob: have %q, want %q", d.String(), "héllo")
	}
	if _, err := vm.Btoa(vm.MustString("𝒄")); !jsval.IsKind(err, jsval.TypeError) {
		t.Errorf("btoa of astral character: have %v, want TypeError", err)
	}
}

func TestTranscode(t *testing.T) {
	vm := testutils.VM()
	cases := map[string]struct {
		text, enc, bytes string
	}{
		"latin1":  {"café", "latin1", "caf\xe9"},
		"utf16le": {"hé", "utf-16le", "h\x00\xe9\x00"},
		"utf16be": {"hé", "utf16be", "\x00h\x00\xe9"},
		"utf8":    {"hé", "utf8", "h\xc3\xa9"},
		"utf32le": {"a", "utf-32le", "a\x00\x00\x00"},
		"windows": {"€", "cp1252", "\x80"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			e, err := vm.Encode(vm.MustString(c.text), c.enc)
			if err != nil {
				t.Fatal(err)
			}
			if e.String() != c.bytes || e.Kind() != jsval.ByteString {
				t.Errorf("encode: have %q (%v), want byte string %q", e.String(), e.Kind(), c.bytes)
			}
			d, err := vm.Decode(e, c.enc)
			if err != nil {
				t.Fatal(err)
			}
			if d.String() != c.text {
				t.Errorf("decode: have %q, want %q", d.String(), c.text)
			}
		})
	}
	if _, err := vm.Encode(vm.MustString("x"), "ebcdic"); !jsval.IsKind(err, jsval.TypeError) {
		t.Errorf("unknown encoding: have %v, want TypeError", err)
	}
	if _, err := vm.Encode(vm.MustString("𝒄"), "latin1"); !jsval.IsKind(err, jsval.TypeError) {
		t.Errorf("unencodable: have %v, want TypeError", err)
	}
}

func TestBytesFromStringTo(t *testing.T) {
	vm := testutils.VM()
	b, err := vm.BytesFrom(vm.MustString("68656c6c6f"), "hex")
	if err != nil {
		t.Fatal(err)
	}
	if b.String() != "hello" || b.Kind() != jsval.ByteString {
		t.Errorf("BytesFrom hex: have %q (%v)", b.String(), b.Kind())
	}
	s, err := vm.StringTo(b, "base64")
	if err != nil {
		t.Fatal(err)
	}
	if s.String() != "aGVsbG8=" {
		t.Errorf("StringTo base64: have %q", s.String())
	}
	s, err = vm.StringTo(b, "utf8")
	if err != nil {
		t.Fatal(err)
	}
	if s.String() != "hello" || s.Kind() == jsval.ByteString {
		t.Errorf("StringTo utf8: have %q (%v)", s.String(), s.Kind())
	}
}

func TestBytesConversion(t *testing.T) {
	vm := testutils.VM()
	b, ok, err := vm.ToBytes(vm.MustString("ÿa"))
	if err != nil || !ok {
		t.Fatalf("ToBytes: %t %v", ok, err)
	}
	if b.String() != "\xffa" || b.Kind() != jsval.ByteString {
		t.Errorf("ToBytes: have %q (%v)", b.String(), b.Kind())
	}
	if _, ok, _ := vm.ToBytes(vm.MustString("Ā")); ok {
		t.Error("ToBytes accepted a character above U+00FF")
	}
	s, err := vm.FromBytes(b)
	if err != nil {
		t.Fatal(err)
	}
	if s.String() != "ÿa" || s.Len() != 2 {
		t.Errorf("FromBytes: have %q (%d)", s.String(), s.Len())
	}
	u, ok, err := vm.FromUTF8(testutils.Bytes("h\xc3\xa9"))
	if err != nil || !ok {
		t.Fatalf("FromUTF8: %t %v", ok, err)
	}
	if u.String() != "hé" || u.Len() != 2 {
		t.Errorf("FromUTF8: have %q (%d)", u.String(), u.Len())
	}
	if _, ok, _ := vm.FromUTF8(testutils.Bytes("\xff")); ok {
		t.Error("FromUTF8 accepted invalid UTF-8")
	}
}

func TestNormalize(t *testing.T) {
	vm := testutils.VM()
	composed := vm.MustString("\u00e9")
	decomposed := vm.MustString("e\u0301")
	r, err := vm.Normalize(decomposed, "NFC")
	if err != nil {
		t.Fatal(err)
	}
	if !jsval.Equal(r, composed) {
		t.Errorf("NFC: have %q, want %q", r.String(), composed.String())
	}
	r, err = vm.Normalize(composed, "NFD")
	if err != nil {
		t.Fatal(err)
	}
	if !jsval.Equal(r, decomposed) || r.Len() != 2 {
		t.Errorf("NFD: have %q (%d)", r.String(), r.Len())
	}
	r, _ = vm.Normalize(composed, "")
	if !jsval.Identical(r, composed) {
		t.Error("normalizing normal text changed it")
	}
	if _, err := vm.Normalize(composed, "NFX"); !jsval.IsKind(err, jsval.RangeError) {
		t.Errorf("bad form: have %v, want RangeError", err)
	}
}

func TestCBOR(t *testing.T) {
	vm := testutils.VM()
	for _, s := range []jsval.String{vm.MustString("héllo"), testutils.Bytes("\x00\xff"), jsval.Empty} {
		data, err := s.MarshalCBOR()
		if err != nil {
			t.Fatal(err)
		}
		r, err := vm.UnmarshalString(data)
		if err != nil {
			t.Fatal(err)
		}
		if !jsval.Equal(r, s) {
			t.Errorf("%q round tripped to %q", s.String(), r.String())
		}
		if (r.Kind() == jsval.ByteString) != (s.Kind() == jsval.ByteString) {
			t.Errorf("%q changed kind from %v to %v", s.String(), s.Kind(), r.Kind())
		}
	}
	if _, err := vm.UnmarshalString([]byte{0x01}); err == nil {
		t.Error("decoded an integer as a string")
	}
}
