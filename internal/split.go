package internal

// NoLimit is passed to Split for unlimited results.
const NoLimit = -1

// Split divides s at each occurrence of sep. An empty separator splits s
// into characters. At most limit pieces are returned unless limit is
// negative.
func (vm *VM) Split(s String, sep String, limit int) ([]String, error) {
	if limit == 0 {
		return nil, nil
	}
	full := func(r []String) bool { return limit >= 0 && len(r) >= limit }
	var r []String
	n := s.Len()
	if sep.Size() == 0 {
		for i := 0; i < n && !full(r); i++ {
			c, err := vm.Slice(s, i, 1)
			if err != nil {
				return nil, err
			}
			r = append(r, c)
		}
		return r, nil
	}
	b := s.raw()
	text := s.Kind() == UTF8String
	p := 0
	for !full(r) {
		q := scan(b, sep.raw(), p, scanForward, text)
		if q < 0 {
			break
		}
		piece, err := vm.byteSlice(s, p, q)
		if err != nil {
			return nil, err
		}
		r = append(r, piece)
		p = q + sep.Size()
	}
	if !full(r) {
		piece, err := vm.byteSlice(s, p, len(b))
		if err != nil {
			return nil, err
		}
		r = append(r, piece)
	}
	return r, nil
}

// byteSlice returns the substring of s between byte offsets on character
// boundaries.
func (vm *VM) byteSlice(s String, from, to int) (String, error) {
	if from == 0 && to == s.Size() {
		return s.Retain(), nil
	}
	b := s.raw()[from:to]
	kind, _ := s.kindLen()
	switch kind {
	case ByteString:
		return vm.newString(b, 0)
	case ASCIIString:
		return vm.newString(b, len(b))
	}
	return vm.NewStringBytes(b)
}

// SplitRegExp divides s at each match of r. Captures of each match are
// inserted between the pieces, with undefined for groups that did not
// participate.
func (vm *VM) SplitRegExp(s String, r *RegExp, limit int) ([]Value, error) {
	if limit == 0 {
		return nil, nil
	}
	m, err := r.Matcher(s.Kind())
	if err != nil {
		return nil, err
	}
	b := s.raw()
	size := len(b)
	if size == 0 {
		loc, err := m.Match(b, 0)
		if err != nil {
			return nil, err
		}
		if loc != nil {
			return nil, nil
		}
		return []Value{StringValue(s)}, nil
	}
	var out []Value
	full := func() bool { return limit >= 0 && len(out) >= limit }
	p, q := 0, 0
	for q < size {
		loc, err := m.Match(b, q)
		if err != nil {
			return nil, err
		}
		if loc == nil || loc[0] >= size {
			break
		}
		e := loc[1]
		if e == p {
			q = vm.advance(s, loc[0])
			continue
		}
		piece, err := vm.byteSlice(s, p, loc[0])
		if err != nil {
			return nil, err
		}
		out = append(out, StringValue(piece))
		if full() {
			return out, nil
		}
		for i := 2; i < len(loc); i += 2 {
			v := Undefined
			if loc[i] >= 0 {
				c, err := vm.byteSlice(s, loc[i], loc[i+1])
				if err != nil {
					return nil, err
				}
				v = StringValue(c)
			}
			out = append(out, v)
			if full() {
				return out, nil
			}
		}
		p, q = e, e
	}
	piece, err := vm.byteSlice(s, p, size)
	if err != nil {
		return nil, err
	}
	return append(out, StringValue(piece)), nil
}

// advance returns the byte offset just past the character at byte offset
// off. Byte strings advance one byte.
func (vm *VM) advance(s String, off int) int {
	b := s.raw()
	if off >= len(b) {
		return off + 1
	}
	if s.Kind() != UTF8String {
		return off + 1
	}
	return skipChars(b, off, 1)
}
