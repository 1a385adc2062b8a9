package finder

import (
	"strings"

	"github.com/JaakkoJSeppala/coreedit/internal/engine/buffer"
)

// Match represents a single search match in a document.
type Match struct {
	Position int // byte offset of the match start
	Length   int // byte length of the match
	Line     int // zero-based line number
	Column   int // byte offset since the last newline

	// RevisionID is the buffer revision the match was found against, set
	// only by the *InBuffer convenience operations. Zero if the match was
	// produced from a plain find_all/find_next/find_previous call.
	RevisionID buffer.RevisionID
}

// lineColOf computes the line/column of position within text by counting
// newlines up to position.
func lineColOf(text string, position int) (line, column int) {
	prefix := text[:position]
	line = strings.Count(prefix, "\n")
	if idx := strings.LastIndexByte(prefix, '\n'); idx >= 0 {
		column = position - idx - 1
	} else {
		column = position
	}
	return line, column
}
