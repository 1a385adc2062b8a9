package buffer

import "unicode/utf8"

// Snapshot is a read-only, point-in-time view of a Buffer. Once created it
// never changes, even if the Buffer it was taken from is mutated further,
// so it is safe to hand to another goroutine (a background indexer, a
// project search worker) without any locking.
type Snapshot struct {
	pt         *pieceTable
	revisionID RevisionID
	lineEnding LineEnding
	tabWidth   int
}

// Text returns the full snapshot content as a string.
func (s *Snapshot) Text() string { return s.pt.String() }

// TextRange returns text in the given byte range.
func (s *Snapshot) TextRange(start, end ByteOffset) string {
	return s.pt.Slice(int(start), int(end))
}

// Len returns the total byte length of the snapshot.
func (s *Snapshot) Len() ByteOffset { return ByteOffset(s.pt.Len()) }

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() uint32 { return uint32(s.pt.LineCount()) }

// LineText returns the text of a specific line (without its terminator).
func (s *Snapshot) LineText(line uint32) string {
	return s.pt.Slice(s.pt.LineStartOffset(int(line)), s.pt.LineEndOffset(int(line)))
}

// LineLen returns the length of a specific line in bytes (without terminator).
func (s *Snapshot) LineLen(line uint32) int {
	return s.pt.LineEndOffset(int(line)) - s.pt.LineStartOffset(int(line))
}

// ByteAt returns the byte at the given offset.
func (s *Snapshot) ByteAt(offset ByteOffset) (byte, bool) {
	return s.pt.ByteAt(int(offset))
}

// RuneAt returns the rune at the given byte offset.
// Returns utf8.RuneError and size 0 if offset is out of range.
func (s *Snapshot) RuneAt(offset ByteOffset) (rune, int) {
	length := ByteOffset(s.pt.Len())
	if offset < 0 || offset >= length {
		return utf8.RuneError, 0
	}
	end := offset + 4
	if end > length {
		end = length
	}
	return utf8.DecodeRuneInString(s.pt.Slice(int(offset), int(end)))
}

// OffsetToPoint converts a byte offset to line/column.
func (s *Snapshot) OffsetToPoint(offset ByteOffset) Point {
	line := s.pt.OffsetToLine(int(offset))
	col := int(offset) - s.pt.LineStartOffset(line)
	return Point{Line: uint32(line), Column: uint32(col)}
}

// PointToOffset converts line/column to byte offset.
func (s *Snapshot) PointToOffset(point Point) ByteOffset {
	return ByteOffset(s.pt.LineStartOffset(int(point.Line)) + int(point.Column))
}

// LineStartOffset returns the byte offset of the start of a line.
func (s *Snapshot) LineStartOffset(line uint32) ByteOffset {
	return ByteOffset(s.pt.LineStartOffset(int(line)))
}

// LineEndOffset returns the byte offset of the end of a line (before its terminator).
func (s *Snapshot) LineEndOffset(line uint32) ByteOffset {
	return ByteOffset(s.pt.LineEndOffset(int(line)))
}

// RevisionID returns the revision ID the snapshot was taken at.
func (s *Snapshot) RevisionID() RevisionID { return s.revisionID }

// IsEmpty returns true if the snapshot is empty.
func (s *Snapshot) IsEmpty() bool { return s.pt.IsEmpty() }

// LineEnding returns the snapshot's line ending style.
func (s *Snapshot) LineEnding() LineEnding { return s.lineEnding }

// TabWidth returns the snapshot's tab width.
func (s *Snapshot) TabWidth() int { return s.tabWidth }
