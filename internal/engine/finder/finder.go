package finder

import (
	"regexp"
	"strings"
	"sync"

	"github.com/JaakkoJSeppala/coreedit/internal/engine/buffer"
)

// Finder performs in-buffer find/replace and keeps an optional current-match
// cursor for cycling through a previously computed result set.
type Finder struct {
	mu sync.Mutex

	caseSensitive bool
	useRegex      bool

	matches []Match
	current int
}

// New creates a Finder with the given case-sensitivity and regex mode.
func New(caseSensitive, useRegex bool) *Finder {
	return &Finder{caseSensitive: caseSensitive, useRegex: useRegex}
}

// CaseSensitive reports whether matching is case-sensitive.
func (f *Finder) CaseSensitive() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.caseSensitive
}

// SetCaseSensitive sets case sensitivity for future searches.
func (f *Finder) SetCaseSensitive(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.caseSensitive = enabled
}

// UseRegex reports whether the needle is interpreted as a regular expression.
func (f *Finder) UseRegex() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.useRegex
}

// SetUseRegex toggles regex mode for future searches.
func (f *Finder) SetUseRegex(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.useRegex = enabled
}

// asciiLower lowercases ASCII letters only, preserving byte length and the
// encoding of every other byte, so positions computed against the lowered
// copy remain valid offsets into the original string.
func asciiLower(s string) string {
	b := []byte(s)
	changed := false
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(b)
}

func matchPositions(haystack, needle string, useRegex, caseSensitive bool) ([][2]int, error) {
	if needle == "" {
		return nil, nil
	}

	if useRegex {
		pattern := needle
		if !caseSensitive {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, err
		}
		raw := re.FindAllStringIndex(haystack, -1)
		if raw == nil {
			return nil, nil
		}
		positions := make([][2]int, len(raw))
		for i, p := range raw {
			positions[i] = [2]int{p[0], p[1]}
		}
		return positions, nil
	}

	h, n := haystack, needle
	if !caseSensitive {
		h = asciiLower(haystack)
		n = asciiLower(needle)
	}

	var positions [][2]int
	pos := 0
	for {
		idx := strings.Index(h[pos:], n)
		if idx < 0 {
			break
		}
		start := pos + idx
		end := start + len(n)
		positions = append(positions, [2]int{start, end})
		pos = end
	}
	return positions, nil
}

func toMatches(haystack string, positions [][2]int) []Match {
	matches := make([]Match, 0, len(positions))
	for _, p := range positions {
		line, col := lineColOf(haystack, p[0])
		matches = append(matches, Match{
			Position: p[0],
			Length:   p[1] - p[0],
			Line:     line,
			Column:   col,
		})
	}
	return matches
}

// FindAll returns every non-overlapping match of needle in haystack, in
// ascending order. An empty needle returns no matches.
func (f *Finder) FindAll(haystack, needle string) ([]Match, error) {
	f.mu.Lock()
	useRegex, caseSensitive := f.useRegex, f.caseSensitive
	f.mu.Unlock()

	positions, err := matchPositions(haystack, needle, useRegex, caseSensitive)
	if err != nil {
		return nil, err
	}
	return toMatches(haystack, positions), nil
}

// FindNext returns the first match at or after startPos.
func (f *Finder) FindNext(haystack, needle string, startPos int) (Match, bool, error) {
	matches, err := f.FindAll(haystack, needle)
	if err != nil {
		return Match{}, false, err
	}
	for _, m := range matches {
		if m.Position >= startPos {
			return m, true, nil
		}
	}
	return Match{}, false, nil
}

// FindPrevious returns the highest-offset match strictly before startPos.
func (f *Finder) FindPrevious(haystack, needle string, startPos int) (Match, bool, error) {
	if startPos < 0 {
		startPos = 0
	}
	if startPos > len(haystack) {
		startPos = len(haystack)
	}
	matches, err := f.FindAll(haystack[:startPos], needle)
	if err != nil {
		return Match{}, false, err
	}
	if len(matches) == 0 {
		return Match{}, false, nil
	}
	return matches[len(matches)-1], true, nil
}

// ReplaceCurrent replaces the text covered by match with replacement.
func ReplaceCurrent(haystack string, match Match, replacement string) string {
	return haystack[:match.Position] + replacement + haystack[match.Position+match.Length:]
}

// ReplaceAll replaces every occurrence of needle with replacement, returning
// the new text and the number of replacements made.
func (f *Finder) ReplaceAll(haystack, needle, replacement string) (string, int, error) {
	matches, err := f.FindAll(haystack, needle)
	if err != nil {
		return haystack, 0, err
	}
	if len(matches) == 0 {
		return haystack, 0, nil
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(haystack[last:m.Position])
		b.WriteString(replacement)
		last = m.Position + m.Length
	}
	b.WriteString(haystack[last:])
	return b.String(), len(matches), nil
}

// ============================================================================
// Buffer-aware convenience operations (stamp RevisionID on each match)
// ============================================================================

// FindAllInBuffer finds all matches in buf's current text, stamping each
// with buf's current RevisionID.
func (f *Finder) FindAllInBuffer(buf *buffer.Buffer, needle string) ([]Match, error) {
	matches, err := f.FindAll(buf.Text(), needle)
	if err != nil {
		return nil, err
	}
	rev := buf.RevisionID()
	for i := range matches {
		matches[i].RevisionID = rev
	}
	return matches, nil
}

// IsStale reports whether match was computed against a revision other than
// buf's current one.
func IsStale(match Match, buf *buffer.Buffer) bool {
	return match.RevisionID != buf.RevisionID()
}

// ============================================================================
// Current-match cursor
// ============================================================================

// SetMatches installs a new match list and resets the current index to 0.
func (f *Finder) SetMatches(matches []Match) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matches = matches
	f.current = 0
}

// MatchCount returns the number of matches in the current list.
func (f *Finder) MatchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.matches)
}

// HasMatches reports whether the current match list is non-empty.
func (f *Finder) HasMatches() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.matches) > 0
}

// CurrentMatchIndex returns the current index into the match list.
func (f *Finder) CurrentMatchIndex() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

// CurrentMatch returns the match at the current index, if any.
func (f *Finder) CurrentMatch() (Match, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.current >= len(f.matches) {
		return Match{}, false
	}
	return f.matches[f.current], true
}

// NextMatch advances the current index, wrapping to the start.
func (f *Finder) NextMatch() (Match, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.matches) == 0 {
		return Match{}, false
	}
	f.current = (f.current + 1) % len(f.matches)
	return f.matches[f.current], true
}

// PreviousMatch retreats the current index, wrapping to the end.
func (f *Finder) PreviousMatch() (Match, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.matches) == 0 {
		return Match{}, false
	}
	if f.current == 0 {
		f.current = len(f.matches) - 1
	} else {
		f.current--
	}
	return f.matches[f.current], true
}

// ClearMatches empties the match list and resets the current index.
func (f *Finder) ClearMatches() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matches = nil
	f.current = 0
}
