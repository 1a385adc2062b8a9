package viewport

import (
	"strings"
	"testing"

	"github.com/JaakkoJSeppala/coreedit/internal/engine/buffer"
)

func docOfLines(n int) *buffer.Buffer {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteString("line ")
		sb.WriteString(strings.Repeat("x", i%5))
		sb.WriteByte('\n')
	}
	return buffer.NewBufferFromString(sb.String())
}

func TestScrollToClamps(t *testing.T) {
	v := New(80, 10)
	v.SetDocument(docOfLines(100)) // 101 lines including trailing empty

	v.ScrollTo(50)
	if got := v.TopLine(); got != 50 {
		t.Errorf("TopLine = %d, want 50", got)
	}

	v.ScrollTo(10_000)
	if got := v.TopLine(); got != 91 {
		t.Errorf("TopLine = %d, want clamp to 91 (101 lines - 10 visible)", got)
	}
}

func TestScrollUpDownStopAtBounds(t *testing.T) {
	v := New(80, 10)
	v.SetDocument(docOfLines(30))

	v.ScrollDown(5)
	if got := v.TopLine(); got != 5 {
		t.Fatalf("TopLine = %d, want 5", got)
	}
	v.ScrollUp(100)
	if got := v.TopLine(); got != 0 {
		t.Errorf("TopLine = %d, want 0", got)
	}
	v.ScrollDown(1_000)
	if got := v.TopLine(); got != 21 {
		t.Errorf("TopLine = %d, want clamp to 21", got)
	}
}

func TestShortDocumentNeverScrolls(t *testing.T) {
	v := New(80, 40)
	v.SetDocument(docOfLines(5))

	v.ScrollDown(10)
	if got := v.TopLine(); got != 0 {
		t.Errorf("TopLine = %d, want 0 when document fits the window", got)
	}
	if got := v.VisibleLineCount(); got != 6 {
		t.Errorf("VisibleLineCount = %d, want 6", got)
	}
}

func TestVisibleLinesClippedToDocument(t *testing.T) {
	v := New(80, 40)
	v.SetDocument(docOfLines(3))

	lines := v.VisibleLines()
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	if lines[0] != "line " {
		t.Errorf("lines[0] = %q", lines[0])
	}
}

func TestVisibleLinesTruncatedToColumns(t *testing.T) {
	v := New(4, 5)
	v.SetDocument(buffer.NewBufferFromString("abcdefgh\nxy\n"))

	lines := v.VisibleLines()
	if lines[0] != "abcd" {
		t.Errorf("lines[0] = %q, want abcd", lines[0])
	}
	if lines[1] != "xy" {
		t.Errorf("lines[1] = %q, want xy", lines[1])
	}
}

func TestVisibleLinesRespectsLeftColumn(t *testing.T) {
	v := New(3, 5)
	v.SetDocument(buffer.NewBufferFromString("abcdefgh\n"))

	v.ScrollRight(2)
	lines := v.VisibleLines()
	if lines[0] != "cde" {
		t.Errorf("lines[0] = %q, want cde", lines[0])
	}

	v.ScrollLeft(10)
	if got := v.LeftColumn(); got != 0 {
		t.Errorf("LeftColumn = %d, want 0", got)
	}
}

func TestColumnClipKeepsGraphemesWhole(t *testing.T) {
	// The family emoji is a single grapheme cluster of many bytes.
	family := "\U0001F468\u200D\U0001F469\u200D\U0001F466"
	v := New(2, 5)
	v.SetDocument(buffer.NewBufferFromString(family + "ab\n"))

	lines := v.VisibleLines()
	if lines[0] != family+"a" {
		t.Errorf("lines[0] = %q, want cluster kept whole plus %q", lines[0], "a")
	}
}

func TestEnsureVisible(t *testing.T) {
	v := New(80, 10)
	v.SetDocument(docOfLines(100))

	if moved := v.EnsureVisible(5); moved {
		t.Error("line 5 already visible, no scroll expected")
	}
	if moved := v.EnsureVisible(50); !moved {
		t.Error("expected scroll to reveal line 50")
	}
	if !v.IsLineVisible(50) {
		t.Error("line 50 not visible after EnsureVisible")
	}
	if got := v.TopLine(); got != 41 {
		t.Errorf("TopLine = %d, want 41 (50 at window bottom)", got)
	}
	if moved := v.EnsureVisible(3); !moved {
		t.Error("expected scroll up to reveal line 3")
	}
	if got := v.TopLine(); got != 3 {
		t.Errorf("TopLine = %d, want 3", got)
	}
}

func TestResizeReclamps(t *testing.T) {
	v := New(80, 10)
	v.SetDocument(docOfLines(20))
	v.ScrollTo(11)

	v.Resize(80, 21)
	if got := v.TopLine(); got != 0 {
		t.Errorf("TopLine = %d after growing window, want 0", got)
	}
}

func TestMillionLineScrollAndSlice(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 1_000_000; i++ {
		sb.WriteString("line\n")
	}
	v := New(80, 40)
	v.SetDocument(buffer.NewBufferFromString(sb.String()))

	v.ScrollTo(500_000)
	if got := v.TopLine(); got != 500_000 {
		t.Fatalf("TopLine = %d", got)
	}
	lines := v.VisibleLines()
	if len(lines) != 40 {
		t.Fatalf("got %d lines, want 40", len(lines))
	}
	for i, l := range lines {
		if l != "line" {
			t.Fatalf("lines[%d] = %q", i, l)
		}
	}
}
