package viewport

import (
	"strings"
	"sync"

	"github.com/rivo/uniseg"

	"github.com/JaakkoJSeppala/coreedit/internal/engine/buffer"
)

// Viewport is a window over a buffer: the first visible line, a height
// in lines, and a width in columns. It materialises only the lines a
// renderer asks for, so scrolling a million-line document costs the
// same as scrolling a ten-line one. Truncation to the column window is
// display-only; the buffer is never touched.
type Viewport struct {
	mu sync.RWMutex

	doc *buffer.Buffer

	topLine    uint32
	leftColumn int

	visibleColumns int
	visibleLines   int
}

// New creates a viewport of the given size in columns and lines. Both
// dimensions are clamped to a minimum of 1.
func New(columns, lines int) *Viewport {
	if columns < 1 {
		columns = 1
	}
	if lines < 1 {
		lines = 1
	}
	return &Viewport{visibleColumns: columns, visibleLines: lines}
}

// SetDocument binds the buffer this viewport scrolls over and re-clamps
// the scroll position against it.
func (v *Viewport) SetDocument(doc *buffer.Buffer) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.doc = doc
	v.topLine = v.clampTop(v.topLine)
}

// Resize changes the viewport dimensions, keeping the scroll position
// clamped.
func (v *Viewport) Resize(columns, lines int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if columns < 1 {
		columns = 1
	}
	if lines < 1 {
		lines = 1
	}
	v.visibleColumns = columns
	v.visibleLines = lines
	v.topLine = v.clampTop(v.topLine)
}

// TopLine returns the first visible line.
func (v *Viewport) TopLine() uint32 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.topLine
}

// VisibleLineCount returns how many lines the viewport shows, clipped
// to the document: a ten-line file in a forty-line viewport yields ten.
func (v *Viewport) VisibleLineCount() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.visibleLineCount()
}

func (v *Viewport) visibleLineCount() int {
	if v.doc == nil {
		return 0
	}
	remaining := int64(v.doc.LineCount()) - int64(v.topLine)
	if remaining < 0 {
		remaining = 0
	}
	if remaining > int64(v.visibleLines) {
		remaining = int64(v.visibleLines)
	}
	return int(remaining)
}

// VisibleColumns returns the viewport width in columns.
func (v *Viewport) VisibleColumns() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.visibleColumns
}

// Height returns the viewport height in lines, regardless of document
// length.
func (v *Viewport) Height() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.visibleLines
}

// LeftColumn returns the first visible column.
func (v *Viewport) LeftColumn() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.leftColumn
}

// clampTop limits a candidate top line so the window never scrolls past
// max(0, lineCount - visibleLines).
func (v *Viewport) clampTop(line uint32) uint32 {
	if v.doc == nil {
		return 0
	}
	count := int64(v.doc.LineCount())
	max := count - int64(v.visibleLines)
	if max < 0 {
		max = 0
	}
	if int64(line) > max {
		return uint32(max)
	}
	return line
}

// ScrollTo puts line at the top of the window, clamped to the document.
func (v *Viewport) ScrollTo(line uint32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.topLine = v.clampTop(line)
}

// ScrollUp moves the window up by n lines, stopping at the first line.
func (v *Viewport) ScrollUp(n uint32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if n > v.topLine {
		v.topLine = 0
		return
	}
	v.topLine -= n
}

// ScrollDown moves the window down by n lines, stopping at the clamp
// boundary.
func (v *Viewport) ScrollDown(n uint32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.topLine = v.clampTop(v.topLine + n)
}

// PageUp scrolls up by one window height.
func (v *Viewport) PageUp() {
	v.mu.RLock()
	n := uint32(v.visibleLines)
	v.mu.RUnlock()
	v.ScrollUp(n)
}

// PageDown scrolls down by one window height.
func (v *Viewport) PageDown() {
	v.mu.RLock()
	n := uint32(v.visibleLines)
	v.mu.RUnlock()
	v.ScrollDown(n)
}

// ScrollLeft moves the column window left by n, stopping at column 0.
func (v *Viewport) ScrollLeft(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.leftColumn -= n
	if v.leftColumn < 0 {
		v.leftColumn = 0
	}
}

// ScrollRight moves the column window right by n.
func (v *Viewport) ScrollRight(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.leftColumn += n
}

// EnsureVisible scrolls the minimum distance needed to bring line into
// the window. Reports whether the viewport moved.
func (v *Viewport) EnsureVisible(line uint32) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if line < v.topLine {
		v.topLine = line
		return true
	}
	bottom := int64(v.topLine) + int64(v.visibleLines) - 1
	if int64(line) > bottom {
		v.topLine = v.clampTop(uint32(int64(line) - int64(v.visibleLines) + 1))
		return true
	}
	return false
}

// IsLineVisible reports whether line falls inside the window.
func (v *Viewport) IsLineVisible(line uint32) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return line >= v.topLine && int64(line) < int64(v.topLine)+int64(v.visibleLineCount())
}

// VisibleLines returns copies of the lines in the window, clipped to
// the document and truncated to the column window.
func (v *Viewport) VisibleLines() []string {
	v.mu.RLock()
	doc := v.doc
	top := v.topLine
	count := v.visibleLineCount()
	left, width := v.leftColumn, v.visibleColumns
	v.mu.RUnlock()

	if doc == nil || count == 0 {
		return nil
	}

	lines := make([]string, 0, count)
	for i := 0; i < count; i++ {
		lines = append(lines, clipColumns(doc.LineText(top+uint32(i)), left, width))
	}
	return lines
}

// clipColumns returns the grapheme clusters of line in columns
// [left, left+width), never splitting a cluster that straddles the
// window edge.
func clipColumns(line string, left, width int) string {
	if width <= 0 {
		return ""
	}

	var b strings.Builder
	col := 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		if col >= left+width {
			break
		}
		if col >= left {
			b.WriteString(gr.Str())
		}
		col++
	}
	return b.String()
}
