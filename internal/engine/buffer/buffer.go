package buffer

import (
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/JaakkoJSeppala/coreedit/internal/coreerr"
)

// LineEnding selects the terminator style the buffer normalises text to.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // \n
	LineEndingCRLF                   // \r\n
	LineEndingCR                     // \r
)

// Sequence returns the terminator bytes for the style.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// String returns an escaped form of the terminator for display.
func (le LineEnding) String() string {
	out := ""
	for _, c := range le.Sequence() {
		if c == '\r' {
			out += "\\r"
		} else {
			out += "\\n"
		}
	}
	return out
}

func (le LineEnding) terminator() (length int, last byte) {
	switch le {
	case LineEndingCRLF:
		return 2, '\n'
	case LineEndingCR:
		return 1, '\r'
	default:
		return 1, '\n'
	}
}

// Buffer is a piece-table backed text store: an immutable original buffer
// plus a single append-only add buffer, stitched together by an ordered
// list of pieces. All methods are safe for concurrent use.
type Buffer struct {
	mu         sync.RWMutex
	pt         *pieceTable
	revisionID RevisionID
	lineEnding LineEnding
	tabWidth   int
	readOnly   bool
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		pt:         newPieceTable(""),
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
		tabWidth:   4,
	}
	for _, opt := range opts {
		opt(b)
	}
	length, last := b.lineEnding.terminator()
	b.pt.setTerminator(length, last)
	return b
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.pt = newPieceTable(b.normalizeLineEndings(s))
	length, last := b.lineEnding.terminator()
	b.pt.setTerminator(length, last)
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
//
// The whole reader is drained before line endings are normalized, since a
// CRLF pair can straddle a read boundary.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	b := NewBuffer(opts...)
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.ErrIoError, "buffer: read", err)
	}
	b.pt = newPieceTable(b.normalizeLineEndings(string(data)))
	length, last := b.lineEnding.terminator()
	b.pt.setTerminator(length, last)
	return b, nil
}

// normalizeLineEndings rewrites every terminator in s to the buffer's
// configured style. Every load and every inserted string passes through
// here, so a mixed-ending source never survives into the piece table.
func (b *Buffer) normalizeLineEndings(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	// Collapse to bare \n first, then expand to the target sequence.
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if seq := b.lineEnding.Sequence(); seq != "\n" {
		s = strings.ReplaceAll(s, "\n", seq)
	}
	return s
}

// Read operations.

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pt.String()
}

// TextRange returns text in the given byte range.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pt.Slice(int(start), int(end))
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(b.pt.Len())
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return uint32(b.pt.LineCount())
}

// LineText returns the text of a specific line (without its terminator).
func (b *Buffer) LineText(line uint32) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pt.Slice(b.pt.LineStartOffset(int(line)), b.pt.LineEndOffset(int(line)))
}

// LineLen returns the length of a specific line in bytes (without terminator).
func (b *Buffer) LineLen(line uint32) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pt.LineEndOffset(int(line)) - b.pt.LineStartOffset(int(line))
}

// LinesRange returns up to count consecutive lines starting at line,
// each without its terminator, clipped to the document.
func (b *Buffer) LinesRange(line uint32, count int) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	total := b.pt.LineCount()
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		n := int(line) + i
		if n >= total {
			break
		}
		out = append(out, b.pt.Slice(b.pt.LineStartOffset(n), b.pt.LineEndOffset(n)))
	}
	return out
}

// ByteAt returns the byte at the given offset.
func (b *Buffer) ByteAt(offset ByteOffset) (byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pt.ByteAt(int(offset))
}

// RuneAt returns the rune at the given byte offset.
// Returns utf8.RuneError and size 0 if offset is out of range.
func (b *Buffer) RuneAt(offset ByteOffset) (rune, int) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	length := ByteOffset(b.pt.Len())
	if offset < 0 || offset >= length {
		return utf8.RuneError, 0
	}
	end := offset + 4
	if end > length {
		end = length
	}
	s := b.pt.Slice(int(offset), int(end))
	return utf8.DecodeRuneInString(s)
}

// Coordinate conversion.

// OffsetToPoint converts a byte offset to line/column.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	line := b.pt.OffsetToLine(int(offset))
	col := int(offset) - b.pt.LineStartOffset(line)
	return Point{Line: uint32(line), Column: uint32(col)}
}

// PointToOffset converts line/column to byte offset.
func (b *Buffer) PointToOffset(point Point) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(b.pt.LineStartOffset(int(point.Line)) + int(point.Column))
}

// LineStartOffset returns the byte offset of the start of a line.
func (b *Buffer) LineStartOffset(line uint32) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(b.pt.LineStartOffset(int(line)))
}

// LineEndOffset returns the byte offset of the end of a line (before its terminator).
func (b *Buffer) LineEndOffset(line uint32) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(b.pt.LineEndOffset(int(line)))
}

// Write operations.

// Insert inserts text at the given offset and returns the end position of
// the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readOnly {
		return 0, coreerr.Wrap(coreerr.ErrConflict, "buffer: insert", nil)
	}
	if offset < 0 || offset > ByteOffset(b.pt.Len()) {
		return 0, coreerr.Wrap(coreerr.ErrOutOfRange, "buffer: insert", nil)
	}

	text = b.normalizeLineEndings(text)
	b.pt.Insert(int(offset), text)
	b.revisionID = NewRevisionID()

	return offset + ByteOffset(len(text)), nil
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end ByteOffset) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readOnly {
		return coreerr.Wrap(coreerr.ErrConflict, "buffer: delete", nil)
	}
	if start < 0 || start > end || end > ByteOffset(b.pt.Len()) {
		return coreerr.Wrap(coreerr.ErrOutOfRange, "buffer: delete", nil)
	}

	b.pt.Delete(int(start), int(end))
	b.revisionID = NewRevisionID()
	return nil
}

// Replace replaces text in the given range with new text and returns the
// end position of the replacement text.
func (b *Buffer) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readOnly {
		return 0, coreerr.Wrap(coreerr.ErrConflict, "buffer: replace", nil)
	}
	if start < 0 || start > end || end > ByteOffset(b.pt.Len()) {
		return 0, coreerr.Wrap(coreerr.ErrOutOfRange, "buffer: replace", nil)
	}

	text = b.normalizeLineEndings(text)
	b.pt.Replace(int(start), int(end), text)
	b.revisionID = NewRevisionID()

	return start + ByteOffset(len(text)), nil
}

// ApplyEdit applies a single edit to the buffer.
func (b *Buffer) ApplyEdit(edit Edit) (EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readOnly {
		return EditResult{}, coreerr.Wrap(coreerr.ErrConflict, "buffer: apply-edit", nil)
	}
	if edit.Range.Start < 0 || edit.Range.Start > edit.Range.End ||
		edit.Range.End > ByteOffset(b.pt.Len()) {
		return EditResult{}, coreerr.Wrap(coreerr.ErrOutOfRange, "buffer: apply-edit", nil)
	}

	oldText := b.pt.Slice(int(edit.Range.Start), int(edit.Range.End))
	text := b.normalizeLineEndings(edit.NewText)
	b.pt.Replace(int(edit.Range.Start), int(edit.Range.End), text)
	b.revisionID = NewRevisionID()

	newEnd := edit.Range.Start + ByteOffset(len(text))
	return EditResult{
		OldRange: edit.Range,
		NewRange: Range{Start: edit.Range.Start, End: newEnd},
		OldText:  oldText,
		Delta:    int64(len(text)) - int64(edit.Range.Len()),
	}, nil
}

// ApplyEdits applies multiple edits atomically. Edits must be supplied in
// reverse order (highest offset first) so that applying one never shifts
// the offsets the others were computed against.
func (b *Buffer) ApplyEdits(edits []Edit) error {
	if len(edits) == 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readOnly {
		return coreerr.Wrap(coreerr.ErrConflict, "buffer: apply-edits", nil)
	}

	for i := 1; i < len(edits); i++ {
		if edits[i].Range.End > edits[i-1].Range.Start {
			return coreerr.Wrap(coreerr.ErrInvalidArgument, "buffer: apply-edits: overlapping or misordered edits", nil)
		}
	}

	length := ByteOffset(b.pt.Len())
	for _, edit := range edits {
		if edit.Range.Start < 0 || edit.Range.Start > edit.Range.End || edit.Range.End > length {
			return coreerr.Wrap(coreerr.ErrOutOfRange, "buffer: apply-edits", nil)
		}
	}

	for _, edit := range edits {
		text := b.normalizeLineEndings(edit.NewText)
		b.pt.Replace(int(edit.Range.Start), int(edit.Range.End), text)
	}

	b.revisionID = NewRevisionID()
	return nil
}

// Buffer state.

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pt.IsEmpty()
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// TabWidth returns the buffer's tab width.
func (b *Buffer) TabWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabWidth
}

// SetLineEnding sets the buffer's line ending style. Existing content is
// not retroactively converted.
func (b *Buffer) SetLineEnding(le LineEnding) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lineEnding = le
	length, last := le.terminator()
	b.pt.setTerminator(length, last)
}

// SetTabWidth sets the buffer's tab width.
func (b *Buffer) SetTabWidth(width int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if width > 0 {
		b.tabWidth = width
	}
}

// ReadOnly returns whether the buffer currently rejects mutations.
func (b *Buffer) ReadOnly() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.readOnly
}

// SetReadOnly toggles the buffer's read-only state.
func (b *Buffer) SetReadOnly(readOnly bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.readOnly = readOnly
}

// Snapshot returns a read-only snapshot of the current buffer state.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	snapPt := newPieceTable(b.pt.String())
	length, last := b.lineEnding.terminator()
	snapPt.setTerminator(length, last)

	return &Snapshot{
		pt:         snapPt,
		revisionID: b.revisionID,
		lineEnding: b.lineEnding,
		tabWidth:   b.tabWidth,
	}
}
