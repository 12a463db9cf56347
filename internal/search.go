package internal

import (
	"bytes"
	"unicode/utf8"
)

// scan directions and anchoring for the search core.
const (
	scanForward = iota
	scanBackward
	// scanAnchored matches only at the starting offset.
	scanAnchored
)

// scan finds needle in hay starting at byte offset from and returns its
// byte offset, or -1. Forward scans try from, from+1, and so on; backward
// scans try from, from-1, down to zero; anchored scans try only from. When
// text is set, matches must start and end on character boundaries of hay.
func scan(hay, needle []byte, from, mode int, text bool) int {
	last := len(hay) - len(needle)
	if last < 0 || from < 0 {
		return -1
	}
	switch mode {
	case scanAnchored:
		if from <= last && bytes.Equal(hay[from:from+len(needle)], needle) && aligned(hay, from, len(needle), text) {
			return from
		}
		return -1
	case scanBackward:
		if from > last {
			from = last
		}
		if len(needle) == 0 {
			return from
		}
		for i := from; i >= 0; i-- {
			if hay[i] == needle[0] && bytes.Equal(hay[i:i+len(needle)], needle) && aligned(hay, i, len(needle), text) {
				return i
			}
		}
		return -1
	}
	if from > last {
		return -1
	}
	if len(needle) == 0 {
		return from
	}
	for i := from; i <= last; {
		j := bytes.IndexByte(hay[i:last+1], needle[0])
		if j < 0 {
			return -1
		}
		i += j
		if bytes.Equal(hay[i:i+len(needle)], needle) && aligned(hay, i, len(needle), text) {
			return i
		}
		i++
	}
	return -1
}

// aligned reports whether hay[i:i+n] starts and ends on character
// boundaries. Byte haystacks are always aligned.
func aligned(hay []byte, i, n int, text bool) bool {
	if !text {
		return true
	}
	if i < len(hay) && !utf8.RuneStart(hay[i]) {
		return false
	}
	return i+n >= len(hay) || utf8.RuneStart(hay[i+n])
}

// IndexOf returns the character index of the first occurrence of search in
// s at or after character from, or -1.
func (s String) IndexOf(search String, from int) int {
	n := s.Len()
	from = clamp(from, 0, n)
	off := scan(s.raw(), search.raw(), s.ByteOffset(from), scanForward, s.Kind() == UTF8String)
	if off < 0 {
		return -1
	}
	return s.CharIndex(off)
}

// LastIndexOf returns the character index of the last occurrence of search
// in s starting at or before character from, or -1.
func (s String) LastIndexOf(search String, from int) int {
	n := s.Len()
	from = clamp(from, 0, n)
	off := scan(s.raw(), search.raw(), s.ByteOffset(from), scanBackward, s.Kind() == UTF8String)
	if off < 0 {
		return -1
	}
	return s.CharIndex(off)
}

// Includes returns whether search occurs in s at or after character from.
func (s String) Includes(search String, from int) bool {
	return s.IndexOf(search, from) >= 0
}

// StartsWith returns whether search occurs in s at character position.
func (s String) StartsWith(search String, position int) bool {
	position = clamp(position, 0, s.Len())
	return scan(s.raw(), search.raw(), s.ByteOffset(position), scanAnchored, s.Kind() == UTF8String) >= 0
}

// EndsWith returns whether search occurs in s ending at character end.
func (s String) EndsWith(search String, end int) bool {
	end = clamp(end, 0, s.Len())
	off := s.ByteOffset(end)
	start := off - search.Size()
	if start < 0 {
		return false
	}
	return scan(s.raw()[:off], search.raw(), start, scanAnchored, s.Kind() == UTF8String) >= 0
}
