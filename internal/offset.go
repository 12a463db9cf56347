package internal

import (
	"sort"
	"unicode/utf8"
	"unsafe"
)

// MapStride is the number of characters between entries of a long string's
// offset map.
const MapStride = 128

// u32bytes reinterprets an offset map as the bytes it was allocated as.
func u32bytes(m []uint32) []byte {
	if len(m) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&m[0])), 4*cap(m))
}

// offsetMap returns the offset map of a long UTF-8 string, building it if
// necessary. Entry i holds the byte offset of character (i+1)*MapStride. The
// result is nil if the map cannot be allocated. Static headers are shared
// between goroutines and only have a map if one was built before they became
// static.
func (d *stringData) offsetMap(length int) []uint32 {
	if d.offsets != nil || d.static {
		return d.offsets
	}
	n := length / MapStride
	if n == 0 {
		return nil
	}
	buf, err := d.pool.Align(4, 4*n)
	if err != nil {
		return nil
	}
	m := unsafe.Slice((*uint32)(unsafe.Pointer(&buf[0])), n)
	b := d.bytes
	off := 0
	for i := range m {
		for k := 0; k < MapStride; k++ {
			_, w := utf8.DecodeRune(b[off:])
			off += w
		}
		m[i] = uint32(off)
	}
	log.Debugf("built offset map with %d entries for %d-character string", n, length)
	d.offsets = m
	return m
}

// skipChars advances n characters from byte offset off in b.
func skipChars(b []byte, off, n int) int {
	for ; n > 0 && off < len(b); n-- {
		if b[off] < utf8.RuneSelf {
			off++
			continue
		}
		_, w := utf8.DecodeRune(b[off:])
		off += w
	}
	return off
}

// ByteOffset returns the byte offset of the character at index, which must
// be in [0, Len()]. For byte and ASCII strings, this is index itself. Long
// UTF-8 strings consult an offset map so that the scan is bounded by
// MapStride characters.
func (s String) ByteOffset(index int) int {
	kind, length := s.kindLen()
	if kind != UTF8String {
		return index
	}
	b := s.raw()
	if index >= length {
		return len(b)
	}
	if index < MapStride || s.size != shortLong {
		return skipChars(b, 0, index)
	}
	m := s.long.offsetMap(length)
	if m == nil {
		return skipChars(b, 0, index)
	}
	return skipChars(b, int(m[index/MapStride-1]), index%MapStride)
}

// CharIndex returns the index of the character that starts at byte offset
// off, which must be in [0, Size()] and on a character boundary.
func (s String) CharIndex(off int) int {
	kind, length := s.kindLen()
	if kind != UTF8String {
		return off
	}
	b := s.raw()
	if off >= len(b) {
		return length
	}
	start, index := 0, 0
	if s.size == shortLong && length >= MapStride {
		if m := s.long.offsetMap(length); m != nil {
			// Find the last entry not past off.
			i := sort.Search(len(m), func(i int) bool { return int(m[i]) > off })
			if i > 0 {
				start, index = int(m[i-1]), i*MapStride
			}
		}
	}
	return index + utf8.RuneCount(b[start:off])
}
