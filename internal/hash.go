package internal

// Hash is an insertion-ordered table of property records. Deleted records
// become whiteouts in place, so a later definition of the same key reuses
// the slot.
//
// A Hash that belongs to a template is read-only and may be read from many
// goroutines at once.
type Hash struct {
	index     map[Key]int
	props     []*Property
	whiteouts int
	// masking is set on own tables of objects that have a shared table.
	masking bool
}

// Find returns the record for k, including whiteouts.
func (h *Hash) Find(k Key) (*Property, bool) {
	i, ok := h.index[k]
	if !ok {
		return nil, false
	}
	return h.props[i], true
}

// Insert adds p to the table. If a record with the same key exists, Insert
// replaces it when replace is true and fails otherwise. Whiteouts are always
// replaced.
func (h *Hash) Insert(p *Property, replace bool) error {
	if h.index == nil {
		h.index = make(map[Key]int)
	}
	if i, ok := h.index[p.Key]; ok {
		old := h.props[i]
		switch {
		case old.Kind == PropWhiteout:
			h.whiteouts--
		case !replace:
			return internalErrorf("property %s already exists", p.Key)
		}
		h.props[i] = p
		return nil
	}
	h.index[p.Key] = len(h.props)
	h.props = append(h.props, p)
	return nil
}

// Delete marks the record for k as a whiteout. It returns false if there was
// no live record.
func (h *Hash) Delete(k Key) bool {
	i, ok := h.index[k]
	if !ok || h.props[i].Kind == PropWhiteout {
		return false
	}
	h.props[i] = &Property{Key: k, Kind: PropWhiteout}
	h.whiteouts++
	if h.whiteouts > 8 && h.whiteouts > len(h.props)/2 {
		h.compact()
	}
	return true
}

// Whiteout records k as deleted whether or not a record exists. Whiteouts
// in an object's own table mask records of its shared table.
func (h *Hash) Whiteout(k Key) {
	if h.Delete(k) {
		return
	}
	if _, ok := h.index[k]; ok {
		return
	}
	h.Insert(&Property{Key: k, Kind: PropWhiteout}, false)
	h.whiteouts++
}

// compact drops whiteouts. Whiteouts are needed to mask shared records, so
// it is only used on tables without a shared counterpart.
func (h *Hash) compact() {
	if h.masking {
		return
	}
	props := make([]*Property, 0, len(h.props)-h.whiteouts)
	for _, p := range h.props {
		if p.Kind == PropWhiteout {
			delete(h.index, p.Key)
			continue
		}
		h.index[p.Key] = len(props)
		props = append(props, p)
	}
	h.props = props
	h.whiteouts = 0
}

// Each calls fn on each live record in insertion order until fn returns
// false.
func (h *Hash) Each(fn func(p *Property) bool) {
	for _, p := range h.props {
		if p.Kind == PropWhiteout {
			continue
		}
		if !fn(p) {
			return
		}
	}
}

// Len returns the number of live records.
func (h *Hash) Len() int {
	return len(h.props) - h.whiteouts
}
