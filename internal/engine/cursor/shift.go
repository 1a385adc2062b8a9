package cursor

import "github.com/JaakkoJSeppala/coreedit/internal/engine/buffer"

// shiftOffset maps a byte offset across an edit. Offsets past the edited
// range move by the edit's length delta; offsets inside a replaced range
// land at the end of the replacement; offsets before the edit are
// untouched. An insertion exactly at the offset pushes it right, so a
// cursor sitting where text is typed ends up after the new text.
func shiftOffset(offset ByteOffset, edit buffer.Edit) ByteOffset {
	newLen := ByteOffset(len(edit.NewText))
	// An empty range at the offset satisfies the first test, which is what
	// pushes a cursor right when text is inserted exactly at it.
	if edit.Range.End <= offset {
		return offset - edit.Range.Len() + newLen
	}
	if edit.Range.Start >= offset {
		return offset
	}
	return edit.Range.Start + newLen
}

// ApplyEdit shifts every selection in the set across edit, keeping each
// anchor and head consistent with the buffer after the edit was applied.
// Spec behaviour for group mutation falls out of this: a single-byte
// insert advances every cursor at or past the insert point by one, and a
// single-byte delete pulls them back by one.
func (s *Set) ApplyEdit(edit buffer.Edit) {
	shift := func(sel Selection) Selection {
		return Selection{
			Anchor: shiftOffset(sel.Anchor, edit),
			Head:   shiftOffset(sel.Head, edit),
		}
	}
	s.primary = shift(s.primary)
	for i, sel := range s.extras {
		s.extras[i] = shift(sel)
	}
	s.dedupe()
}
