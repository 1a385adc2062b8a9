package buffer

import (
	"fmt"
	"sync/atomic"
)

// ByteOffset is the position type everything in the engine speaks:
// cursors, selections, pieces, and edits are all byte offsets, never
// code points.
type ByteOffset = int64

// Point is a zero-indexed line/column pair; the column counts bytes
// from the start of the line.
type Point struct {
	Line   uint32
	Column uint32
}

func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare orders points first by line, then by column.
func (p Point) Compare(other Point) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Column < other.Column:
		return -1
	case p.Column > other.Column:
		return 1
	}
	return 0
}

// Before reports whether p orders before other.
func (p Point) Before(other Point) bool { return p.Compare(other) < 0 }

// RevisionID identifies a buffer revision. Every mutation stamps a new,
// strictly increasing RevisionID, which is how callers tell whether a
// previously computed Match or cached line offset is stale.
type RevisionID uint64

var revisionCounter atomic.Uint64

// NewRevisionID generates a unique revision ID. Safe for concurrent use.
func NewRevisionID() RevisionID {
	return RevisionID(revisionCounter.Add(1))
}
