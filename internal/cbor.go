package internal

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var cborEnc = func() cbor.EncMode {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// MarshalCBOR encodes text as a CBOR text string and byte strings as CBOR
// byte strings.
func (s String) MarshalCBOR() ([]byte, error) {
	if s.Kind() == ByteString {
		return cborEnc.Marshal(s.raw())
	}
	return cborEnc.Marshal(s.String())
}

// UnmarshalString decodes a CBOR text or byte string into a string value,
// preserving which of the two it was.
func (vm *VM) UnmarshalString(data []byte) (String, error) {
	var v interface{}
	if err := cbor.Unmarshal(data, &v); err != nil {
		return Empty, fmt.Errorf("jsval: decoding string: %w", err)
	}
	switch x := v.(type) {
	case string:
		return vm.NewString(x)
	case []byte:
		return vm.NewByteString(x)
	}
	return Empty, fmt.Errorf("jsval: decoding string: unexpected CBOR %T", v)
}
