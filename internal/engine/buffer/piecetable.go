package buffer

import "strings"

// pieceSource identifies which backing buffer a piece's bytes live in.
type pieceSource uint8

const (
	sourceOriginal pieceSource = iota
	sourceAdd
)

// piece is a contiguous run of bytes taken from either the read-only
// original buffer or the append-only add buffer.
type piece struct {
	source pieceSource
	start  int
	length int
}

// pieceTable is an append-only text store: the file's initial content
// never moves (original), every insertion is appended to a single
// growing add buffer, and the logical document is described by an
// ordered list of pieces pointing into one or the other. Edits only ever
// touch the piece list — split, trim, or drop pieces — never the byte
// buffers themselves, which makes undo/redo cheap to reason about and
// keeps large files from being repeatedly copied on every keystroke.
type pieceTable struct {
	original string
	add      []byte
	pieces   []piece
	length   int

	// lineStarts[i] is the byte offset of the first byte of logical line i.
	// Rebuilt lazily after any mutation invalidates it.
	lineStarts []int
	// termLen is the byte length of the line terminator the cache was
	// built against (1 for LF/CR, 2 for CRLF); termByte is its final byte.
	termLen  int
	termByte byte
}

func newPieceTable(initial string) *pieceTable {
	pt := &pieceTable{termLen: 1, termByte: '\n'}
	if initial != "" {
		pt.original = initial
		pt.pieces = []piece{{source: sourceOriginal, start: 0, length: len(initial)}}
		pt.length = len(initial)
	}
	return pt
}

func (pt *pieceTable) setTerminator(termLen int, termByte byte) {
	if pt.termLen == termLen && pt.termByte == termByte {
		return
	}
	pt.termLen = termLen
	pt.termByte = termByte
	pt.lineStarts = nil
}

func (pt *pieceTable) Len() int { return pt.length }

func (pt *pieceTable) IsEmpty() bool { return pt.length == 0 }

func (pt *pieceTable) pieceBytes(p piece) string {
	if p.source == sourceOriginal {
		return pt.original[p.start : p.start+p.length]
	}
	return string(pt.add[p.start : p.start+p.length])
}

// Slice returns the logical text in the half-open byte range [start, end).
func (pt *pieceTable) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > pt.length {
		end = pt.length
	}
	if start >= end {
		return ""
	}

	var sb strings.Builder
	sb.Grow(end - start)
	pos := 0
	for _, p := range pt.pieces {
		pEnd := pos + p.length
		if pos >= end {
			break
		}
		if pEnd > start {
			lo, hi := 0, p.length
			if start > pos {
				lo = start - pos
			}
			if end < pEnd {
				hi = end - pos
			}
			sb.WriteString(pt.pieceBytes(p)[lo:hi])
		}
		pos = pEnd
	}
	return sb.String()
}

// String returns the full logical text.
func (pt *pieceTable) String() string { return pt.Slice(0, pt.length) }

// ByteAt returns the byte at offset and whether offset was in range.
func (pt *pieceTable) ByteAt(offset int) (byte, bool) {
	if offset < 0 || offset >= pt.length {
		return 0, false
	}
	pos := 0
	for _, p := range pt.pieces {
		pEnd := pos + p.length
		if offset < pEnd {
			return pt.pieceBytes(p)[offset-pos], true
		}
		pos = pEnd
	}
	return 0, false
}

// Insert splices text into the logical document at offset, in O(pieces).
func (pt *pieceTable) Insert(offset int, text string) {
	if text == "" {
		return
	}
	if offset < 0 {
		offset = 0
	}
	if offset > pt.length {
		offset = pt.length
	}

	addStart := len(pt.add)
	pt.add = append(pt.add, text...)
	inserted := piece{source: sourceAdd, start: addStart, length: len(text)}

	switch {
	case len(pt.pieces) == 0 || offset == pt.length:
		pt.pieces = append(pt.pieces, inserted)
	case offset == 0:
		pt.pieces = append([]piece{inserted}, pt.pieces...)
	default:
		result := make([]piece, 0, len(pt.pieces)+2)
		pos := 0
		placed := false
		for _, p := range pt.pieces {
			pStart, pEnd := pos, pos+p.length
			pos = pEnd
			if placed || offset < pStart || offset > pEnd {
				result = append(result, p)
				continue
			}
			if offset > pStart {
				result = append(result, piece{p.source, p.start, offset - pStart})
			}
			result = append(result, inserted)
			if offset < pEnd {
				result = append(result, piece{p.source, p.start + (offset - pStart), pEnd - offset})
			}
			placed = true
		}
		pt.pieces = result
	}

	pt.length += len(text)
	pt.lineStarts = nil
}

// Delete removes the logical bytes in [start, end).
func (pt *pieceTable) Delete(start, end int) {
	if start < 0 {
		start = 0
	}
	if end > pt.length {
		end = pt.length
	}
	if start >= end {
		return
	}

	result := make([]piece, 0, len(pt.pieces))
	pos := 0
	for _, p := range pt.pieces {
		pStart, pEnd := pos, pos+p.length
		pos = pEnd
		if pEnd <= start || pStart >= end {
			result = append(result, p)
			continue
		}
		if pStart < start {
			result = append(result, piece{p.source, p.start, start - pStart})
		}
		if pEnd > end {
			result = append(result, piece{p.source, p.start + (end - pStart), pEnd - end})
		}
	}
	pt.pieces = result
	pt.length -= end - start
	pt.lineStarts = nil
}

// Replace deletes [start, end) and inserts text in its place.
func (pt *pieceTable) Replace(start, end int, text string) {
	pt.Delete(start, end)
	pt.Insert(start, text)
}

func (pt *pieceTable) ensureLineStarts() {
	if pt.lineStarts != nil {
		return
	}
	starts := make([]int, 1, pt.length/32+2)
	starts[0] = 0
	pos := 0
	for _, p := range pt.pieces {
		text := pt.pieceBytes(p)
		for i := 0; i < len(text); i++ {
			if text[i] == pt.termByte {
				starts = append(starts, pos+i+1)
			}
		}
		pos += p.length
	}
	pt.lineStarts = starts
}

// LineCount returns the number of logical lines; a trailing terminator
// produces one additional, empty final line, matching how editors report
// line counts for files that end with a newline.
func (pt *pieceTable) LineCount() int {
	pt.ensureLineStarts()
	return len(pt.lineStarts)
}

// LineStartOffset returns the byte offset of the first byte of line.
func (pt *pieceTable) LineStartOffset(line int) int {
	pt.ensureLineStarts()
	if line < 0 {
		line = 0
	}
	if line >= len(pt.lineStarts) {
		return pt.length
	}
	return pt.lineStarts[line]
}

// LineEndOffset returns the byte offset just before line's terminator
// (or the end of the document, for the last line).
func (pt *pieceTable) LineEndOffset(line int) int {
	pt.ensureLineStarts()
	start := pt.LineStartOffset(line)
	if line+1 < len(pt.lineStarts) {
		end := pt.lineStarts[line+1] - pt.termLen
		if end < start {
			end = start
		}
		return end
	}
	return pt.length
}

// OffsetToLine returns the line index containing offset.
func (pt *pieceTable) OffsetToLine(offset int) int {
	pt.ensureLineStarts()
	lo, hi := 0, len(pt.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if pt.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
