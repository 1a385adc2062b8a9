package buffer

import "fmt"

// Edit pairs a range to replace with its replacement text. An empty
// range is a pure insertion; empty NewText is a pure deletion.
type Edit struct {
	Range   Range
	NewText string
}

// NewInsert returns an Edit that inserts text at offset.
func NewInsert(offset ByteOffset, text string) Edit {
	return Edit{Range: Range{Start: offset, End: offset}, NewText: text}
}

// NewDelete returns an Edit that removes [start, end).
func NewDelete(start, end ByteOffset) Edit {
	return Edit{Range: Range{Start: start, End: end}}
}

// Delta returns the change in buffer length the edit causes.
func (e Edit) Delta() ByteOffset {
	return ByteOffset(len(e.NewText)) - e.Range.Len()
}

func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("insert(%d, %q)", e.Range.Start, e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("delete%s", e.Range)
	}
	return fmt.Sprintf("replace%s with %q", e.Range, e.NewText)
}

// EditResult describes a completed edit: the range that was replaced,
// the range the replacement occupies, the text that was overwritten, and
// the net length change.
type EditResult struct {
	OldRange Range
	NewRange Range
	OldText  string
	Delta    int64
}
