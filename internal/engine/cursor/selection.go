package cursor

import (
	"fmt"

	"github.com/JaakkoJSeppala/coreedit/internal/engine/buffer"
)

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// Selection pairs an anchor with a head. The head is the cursor: typing
// happens there, and the anchor marks where the selection began. A
// collapsed pair (anchor == head) is a bare cursor with nothing selected.
// Selection is a value type; methods return new values.
type Selection struct {
	Anchor ByteOffset
	Head   ByteOffset
}

// Caret returns a collapsed selection at offset.
func Caret(offset ByteOffset) Selection {
	return Selection{Anchor: offset, Head: offset}
}

// Span returns a selection anchored at anchor with the cursor at head.
func Span(anchor, head ByteOffset) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// IsEmpty reports whether nothing is selected (anchor == head).
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Start returns min(anchor, head).
func (s Selection) Start() ByteOffset {
	if s.Head < s.Anchor {
		return s.Head
	}
	return s.Anchor
}

// End returns max(anchor, head).
func (s Selection) End() ByteOffset {
	if s.Head > s.Anchor {
		return s.Head
	}
	return s.Anchor
}

// Len returns the number of selected bytes.
func (s Selection) Len() ByteOffset {
	return s.End() - s.Start()
}

// Range returns the normalised [Start, End) extent.
func (s Selection) Range() Range {
	return Range{Start: s.Start(), End: s.End()}
}

// Collapse returns a bare cursor at the head.
func (s Selection) Collapse() Selection {
	return Caret(s.Head)
}

// Clamp limits both ends to [0, max].
func (s Selection) Clamp(max ByteOffset) Selection {
	clip := func(off ByteOffset) ByteOffset {
		if off < 0 {
			return 0
		}
		if off > max {
			return max
		}
		return off
	}
	return Selection{Anchor: clip(s.Anchor), Head: clip(s.Head)}
}

// SameRange reports whether s and other cover the same bytes, ignoring
// direction.
func (s Selection) SameRange(other Selection) bool {
	return s.Start() == other.Start() && s.End() == other.End()
}

func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("caret@%d", s.Head)
	}
	return fmt.Sprintf("sel[%d,%d)", s.Start(), s.End())
}
