package cursor

import "sort"

// Set holds one primary selection plus any number of extra selections for
// multi-cursor editing. Extras are kept sorted by start position and
// deduplicated against each other and the primary; group mutations walk
// All() which interleaves the primary into that order.
//
// Set is not safe for concurrent use; the owning Engine serialises access.
type Set struct {
	primary Selection
	extras  []Selection
}

// NewSet returns a set whose primary is a bare cursor at offset.
func NewSet(offset ByteOffset) *Set {
	return &Set{primary: Caret(offset)}
}

// FromSelections builds a set from sels; the first element becomes the
// primary. An empty slice yields a cursor at 0.
func FromSelections(sels []Selection) *Set {
	if len(sels) == 0 {
		return NewSet(0)
	}
	s := &Set{primary: sels[0]}
	for _, sel := range sels[1:] {
		s.Add(sel)
	}
	return s
}

// Primary returns the primary selection.
func (s *Set) Primary() Selection {
	return s.primary
}

// PrimaryCaret returns the primary cursor position (the head).
func (s *Set) PrimaryCaret() ByteOffset {
	return s.primary.Head
}

// Extras returns a copy of the extra selections, sorted by start.
func (s *Set) Extras() []Selection {
	out := make([]Selection, len(s.extras))
	copy(out, s.extras)
	return out
}

// All returns every selection — primary and extras — sorted ascending by
// start position. The slice is a copy.
func (s *Set) All() []Selection {
	out := make([]Selection, 0, len(s.extras)+1)
	out = append(out, s.primary)
	out = append(out, s.extras...)
	sort.Slice(out, func(i, j int) bool { return out[i].Start() < out[j].Start() })
	return out
}

// Count returns the number of cursors including the primary.
func (s *Set) Count() int {
	return len(s.extras) + 1
}

// IsMulti reports whether extra cursors exist.
func (s *Set) IsMulti() bool {
	return len(s.extras) > 0
}

// AddCaret adds an extra cursor at offset. A position already occupied by
// the primary or an extra is ignored.
func (s *Set) AddCaret(offset ByteOffset) {
	s.Add(Caret(offset))
}

// Add adds sel as an extra selection. Selections covering bytes already
// covered by the set are dropped rather than merged; cursors at duplicate
// positions are dropped.
func (s *Set) Add(sel Selection) {
	if s.covers(sel) {
		return
	}
	s.extras = append(s.extras, sel)
	sort.Slice(s.extras, func(i, j int) bool { return s.extras[i].Start() < s.extras[j].Start() })
}

// covers reports whether sel duplicates or overlaps a member.
func (s *Set) covers(sel Selection) bool {
	members := append([]Selection{s.primary}, s.extras...)
	for _, m := range members {
		if m.SameRange(sel) {
			return true
		}
		if !m.IsEmpty() && !sel.IsEmpty() &&
			sel.Start() < m.End() && m.Start() < sel.End() {
			return true
		}
	}
	return false
}

// Promote installs sel as the new primary, demoting the old primary to an
// extra. Used by add-next-occurrence, which makes each new match primary.
func (s *Set) Promote(sel Selection) {
	old := s.primary
	s.primary = sel
	s.Add(old)
}

// Select collapses the whole set to the single selection sel.
func (s *Set) Select(sel Selection) {
	s.primary = sel
	s.extras = nil
}

// ReplaceAll replaces every selection; the first element becomes primary.
// An empty slice resets to a cursor at 0.
func (s *Set) ReplaceAll(sels []Selection) {
	if len(sels) == 0 {
		s.primary = Caret(0)
		s.extras = nil
		return
	}
	s.primary = sels[0]
	s.extras = nil
	for _, sel := range sels[1:] {
		s.Add(sel)
	}
}

// ClearExtras drops every extra cursor, keeping the primary.
func (s *Set) ClearExtras() {
	s.extras = nil
}

// CollapseAll collapses every selection to a bare cursor at its head.
func (s *Set) CollapseAll() {
	s.primary = s.primary.Collapse()
	for i, sel := range s.extras {
		s.extras[i] = sel.Collapse()
	}
	s.dedupe()
}

// HasSelection reports whether any member selects at least one byte.
func (s *Set) HasSelection() bool {
	if !s.primary.IsEmpty() {
		return true
	}
	for _, sel := range s.extras {
		if !sel.IsEmpty() {
			return true
		}
	}
	return false
}

// Clamp limits every selection to [0, max], then drops extras that
// collapsed onto each other or the primary.
func (s *Set) Clamp(max ByteOffset) {
	s.primary = s.primary.Clamp(max)
	for i, sel := range s.extras {
		s.extras[i] = sel.Clamp(max)
	}
	s.dedupe()
}

// Clone returns an independent copy of the set.
func (s *Set) Clone() *Set {
	c := &Set{primary: s.primary}
	if len(s.extras) > 0 {
		c.extras = make([]Selection, len(s.extras))
		copy(c.extras, s.extras)
	}
	return c
}

// dedupe rebuilds extras, dropping duplicates of the primary or of an
// earlier extra.
func (s *Set) dedupe() {
	if len(s.extras) == 0 {
		return
	}
	kept := s.extras[:0]
	for _, sel := range s.extras {
		dup := sel.SameRange(s.primary)
		for _, k := range kept {
			if sel.SameRange(k) {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, sel)
		}
	}
	s.extras = kept
	sort.Slice(s.extras, func(i, j int) bool { return s.extras[i].Start() < s.extras[j].Start() })
}
