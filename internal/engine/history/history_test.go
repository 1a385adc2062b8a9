package history

import (
	"testing"

	"github.com/JaakkoJSeppala/coreedit/internal/engine/buffer"
	"github.com/JaakkoJSeppala/coreedit/internal/engine/cursor"
)

func newBuf(t *testing.T, content string) *buffer.Buffer {
	t.Helper()
	return buffer.NewBufferFromString(content)
}

func TestInsertApplyRevert(t *testing.T) {
	buf := newBuf(t, "hello")
	l := NewLog(0)

	if err := l.Execute(Insert(5, " world"), buf); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := buf.Text(); got != "hello world" {
		t.Fatalf("after insert: %q", got)
	}

	if _, err := l.Undo(buf); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := buf.Text(); got != "hello" {
		t.Fatalf("after undo: %q", got)
	}

	if _, err := l.Redo(buf); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if got := buf.Text(); got != "hello world" {
		t.Fatalf("after redo: %q", got)
	}
}

func TestDeleteCapturesRemovedBytes(t *testing.T) {
	buf := newBuf(t, "hello world")
	l := NewLog(0)

	cmd := Delete(5, 6)
	if err := l.Execute(cmd, buf); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := buf.Text(); got != "hello" {
		t.Fatalf("after delete: %q", got)
	}
	if cmd.Text() != " world" {
		t.Fatalf("captured %q, want %q", cmd.Text(), " world")
	}

	if _, err := l.Undo(buf); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := buf.Text(); got != "hello world" {
		t.Fatalf("undo restored %q", got)
	}
}

func TestDeleteUndoRestoresLiteralTextAfterLaterEdits(t *testing.T) {
	buf := newBuf(t, "abcdef")
	l := NewLog(0)

	if err := l.Execute(Delete(0, 3), buf); err != nil {
		t.Fatalf("delete: %v", err)
	}
	// A later command changes an unrelated region.
	if err := l.Execute(Insert(3, "XYZ"), buf); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if got := buf.Text(); got != "defXYZ" {
		t.Fatalf("setup: %q", got)
	}

	if _, err := l.Undo(buf); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Undo(buf); err != nil {
		t.Fatal(err)
	}
	if got := buf.Text(); got != "abcdef" {
		t.Errorf("double undo gave %q, want original", got)
	}
}

func TestCompositeRevertsChildrenInReverse(t *testing.T) {
	buf := newBuf(t, "aXbXc")
	l := NewLog(0)

	// Children ordered from the highest position down, as multi-cursor
	// groups are built.
	cmd := Composite(Delete(3, 1), Delete(1, 1))
	if err := l.Execute(cmd, buf); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := buf.Text(); got != "abc" {
		t.Fatalf("after composite: %q", got)
	}

	if _, err := l.Undo(buf); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := buf.Text(); got != "aXbXc" {
		t.Fatalf("after undo: %q", got)
	}

	if _, err := l.Redo(buf); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if got := buf.Text(); got != "abc" {
		t.Fatalf("after redo: %q", got)
	}
}

func TestZeroLengthCommandsAreNoOps(t *testing.T) {
	buf := newBuf(t, "abc")
	l := NewLog(0)

	if err := l.Execute(Insert(1, ""), buf); err != nil {
		t.Fatalf("empty insert: %v", err)
	}
	if err := l.Execute(Delete(1, 0), buf); err != nil {
		t.Fatalf("empty delete: %v", err)
	}
	if got := buf.Text(); got != "abc" {
		t.Errorf("buffer changed: %q", got)
	}
}

func TestExecuteTruncatesRedoTail(t *testing.T) {
	buf := newBuf(t, "abc")
	l := NewLog(0)

	if err := l.Execute(Insert(3, "d"), buf); err != nil {
		t.Fatal(err)
	}
	if err := l.Execute(Insert(4, "e"), buf); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Undo(buf); err != nil {
		t.Fatal(err)
	}
	if !l.CanRedo() {
		t.Fatal("expected redo available after undo")
	}

	if err := l.Execute(Insert(4, "X"), buf); err != nil {
		t.Fatal(err)
	}
	if l.CanRedo() {
		t.Error("new execute should discard the undone suffix")
	}
	if got := buf.Text(); got != "abcdX" {
		t.Errorf("buffer = %q, want abcdX", got)
	}
}

func TestUndoRedoBoundaries(t *testing.T) {
	buf := newBuf(t, "abc")
	l := NewLog(0)

	if _, err := l.Undo(buf); err != ErrNothingToUndo {
		t.Errorf("Undo on empty log: %v, want ErrNothingToUndo", err)
	}
	if _, err := l.Redo(buf); err != ErrNothingToRedo {
		t.Errorf("Redo on empty log: %v, want ErrNothingToRedo", err)
	}

	if err := l.Execute(Insert(0, "x"), buf); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Redo(buf); err != ErrNothingToRedo {
		t.Errorf("Redo after execute: %v, want ErrNothingToRedo", err)
	}
}

func TestMaxDepthDropsOldestRecords(t *testing.T) {
	buf := newBuf(t, "")
	l := NewLog(3)

	for i := 0; i < 5; i++ {
		if err := l.Execute(Insert(buf.Len(), "x"), buf); err != nil {
			t.Fatal(err)
		}
	}
	if got := l.UndoCount(); got != 3 {
		t.Fatalf("UndoCount = %d, want 3", got)
	}

	// Only the retained suffix can be undone.
	for l.CanUndo() {
		if _, err := l.Undo(buf); err != nil {
			t.Fatal(err)
		}
	}
	if got := buf.Text(); got != "xx" {
		t.Errorf("after exhausting undo: %q, want xx", got)
	}
}

func TestSetMaxDepthTrimsExisting(t *testing.T) {
	buf := newBuf(t, "")
	l := NewLog(0)
	for i := 0; i < 5; i++ {
		if err := l.Execute(Insert(buf.Len(), "x"), buf); err != nil {
			t.Fatal(err)
		}
	}
	l.SetMaxDepth(2)
	if got := l.UndoCount(); got != 2 {
		t.Errorf("UndoCount after SetMaxDepth = %d, want 2", got)
	}
}

func TestTagSelectionsRoundTrip(t *testing.T) {
	buf := newBuf(t, "abc")
	l := NewLog(0)

	before := []cursor.Selection{cursor.Caret(0)}
	after := []cursor.Selection{cursor.Caret(1)}

	if err := l.Execute(Insert(0, "x"), buf); err != nil {
		t.Fatal(err)
	}
	l.TagSelections(before, after)

	got, err := l.Undo(buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != cursor.Caret(0) {
		t.Errorf("Undo selections = %v, want caret 0", got)
	}

	got, err = l.Redo(buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != cursor.Caret(1) {
		t.Errorf("Redo selections = %v, want caret 1", got)
	}
}

func TestClear(t *testing.T) {
	buf := newBuf(t, "abc")
	l := NewLog(0)
	if err := l.Execute(Insert(0, "x"), buf); err != nil {
		t.Fatal(err)
	}
	l.Clear()
	if l.CanUndo() || l.CanRedo() {
		t.Error("Clear left history behind")
	}
}

func TestUndoExecuteUndoIdempotence(t *testing.T) {
	buf := newBuf(t, "abc")
	l := NewLog(0)
	cmd := Insert(3, "d")

	if err := l.Execute(cmd, buf); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Undo(buf); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Redo(buf); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Undo(buf); err != nil {
		t.Fatal(err)
	}
	if got := buf.Text(); got != "abc" {
		t.Errorf("execute-undo-redo-undo left %q, want abc", got)
	}
}
