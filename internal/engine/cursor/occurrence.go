package cursor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/JaakkoJSeppala/coreedit/internal/engine/buffer"
)

// wordRangeAt returns the range of the word touching offset in text, or a
// zero-length range at offset if there is no word there.
func wordRangeAt(text string, offset ByteOffset) Range {
	isWord := func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
	}

	start := int(offset)
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:start])
		if r == utf8.RuneError || !isWord(r) {
			break
		}
		start -= size
	}

	end := int(offset)
	for end < len(text) {
		r, size := utf8.DecodeRuneInString(text[end:])
		if r == utf8.RuneError || !isWord(r) {
			break
		}
		end += size
	}

	return Range{Start: ByteOffset(start), End: ByteOffset(end)}
}

// AddNextOccurrence grows the set for multi-cursor editing. With a
// non-empty primary selection it searches forward from the end of the
// highest selection for the next occurrence of the selected bytes; on a
// hit the occurrence becomes the new primary selection (anchor at its
// start, head at its end) and the old primary is kept as an extra. With a
// bare primary cursor it first selects the word under the cursor. Returns
// false without changing the set when there is nothing to search for or
// no further occurrence exists before the end of the document.
func AddNextOccurrence(s *Set, buf *buffer.Buffer) bool {
	text := buf.Text()

	if s.Primary().IsEmpty() {
		wr := wordRangeAt(text, s.Primary().Head)
		if wr.IsEmpty() {
			return false
		}
		s.Select(Span(wr.Start, wr.End))
		return true
	}

	needle := text[s.Primary().Start():s.Primary().End()]
	if needle == "" {
		return false
	}

	from := ByteOffset(0)
	for _, sel := range s.All() {
		if sel.End() > from {
			from = sel.End()
		}
	}

	for int(from) < len(text) {
		idx := strings.Index(text[from:], needle)
		if idx < 0 {
			return false
		}
		found := Span(from+ByteOffset(idx), from+ByteOffset(idx)+ByteOffset(len(needle)))
		from = found.End()

		already := false
		for _, sel := range s.All() {
			if sel.SameRange(found) {
				already = true
				break
			}
		}
		if already {
			continue
		}

		s.Promote(found)
		return true
	}
	return false
}
