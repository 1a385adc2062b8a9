package engine

import (
	"io"
	"sync"

	"github.com/JaakkoJSeppala/coreedit/internal/engine/buffer"
	"github.com/JaakkoJSeppala/coreedit/internal/engine/cursor"
	"github.com/JaakkoJSeppala/coreedit/internal/engine/history"
)

// Re-export commonly used types for convenience.
type (
	// ByteOffset is a byte position in the buffer.
	ByteOffset = buffer.ByteOffset

	// Point represents a line/column position.
	Point = buffer.Point

	// Range represents a byte range in the buffer.
	Range = buffer.Range

	// Edit represents an edit operation.
	Edit = buffer.Edit

	// EditResult contains information about a completed edit.
	EditResult = buffer.EditResult

	// Selection represents a cursor selection.
	Selection = cursor.Selection

	// LineEnding specifies the line ending style.
	LineEnding = buffer.LineEnding

	// RevisionID uniquely identifies a buffer revision.
	RevisionID = buffer.RevisionID

	// Command is a reversible edit routed through the command log.
	Command = history.Command
)

// Re-export constants.
const (
	LineEndingLF   = buffer.LineEndingLF
	LineEndingCRLF = buffer.LineEndingCRLF
	LineEndingCR   = buffer.LineEndingCR
)

// Engine is the per-document facade combining buffer storage, cursor/
// selection state, and the reversible command log into a single
// thread-safe API. Each open tab owns one Engine; the Tab & Session
// Manager and Core API Facade route operations to the Engine of
// whichever tab is active.
//
// All operations are thread-safe and can be called from multiple goroutines.
type Engine struct {
	mu sync.RWMutex

	buf     *buffer.Buffer
	cursors *cursor.Set
	log     *history.Log

	tabWidth       int
	lineEnding     buffer.LineEnding
	maxUndoEntries int
	readOnly       bool

	initContent string
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		tabWidth:       DefaultTabWidth,
		lineEnding:     buffer.LineEndingLF,
		maxUndoEntries: DefaultMaxUndoEntries,
	}

	for _, opt := range opts {
		opt(e)
	}

	bufOpts := []buffer.Option{
		buffer.WithTabWidth(e.tabWidth),
		buffer.WithLineEnding(e.lineEnding),
	}
	if e.initContent != "" {
		e.buf = buffer.NewBufferFromString(e.initContent, bufOpts...)
	} else {
		e.buf = buffer.NewBuffer(bufOpts...)
	}
	e.buf.SetReadOnly(e.readOnly)

	e.cursors = cursor.NewSet(0)
	e.log = history.NewLog(e.maxUndoEntries)

	return e
}

// NewFromReader creates an Engine from an io.Reader.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	e := &Engine{
		tabWidth:       DefaultTabWidth,
		lineEnding:     buffer.LineEndingLF,
		maxUndoEntries: DefaultMaxUndoEntries,
	}

	for _, opt := range opts {
		opt(e)
	}

	bufOpts := []buffer.Option{
		buffer.WithTabWidth(e.tabWidth),
		buffer.WithLineEnding(e.lineEnding),
	}
	var err error
	e.buf, err = buffer.NewBufferFromReader(r, bufOpts...)
	if err != nil {
		return nil, err
	}
	e.buf.SetReadOnly(e.readOnly)

	e.cursors = cursor.NewSet(0)
	e.log = history.NewLog(e.maxUndoEntries)

	return e, nil
}

// Buffer returns the underlying piece-table buffer, for collaborators
// (viewport.Viewport, finder.Finder) that need to bind directly to it
// rather than going through the Engine's own accessor methods.
func (e *Engine) Buffer() *buffer.Buffer {
	return e.buf
}

// ============================================================================
// Read Operations (Buffer interface)
// ============================================================================

// Text returns the full buffer content.
// For large buffers, prefer using TextRange.
func (e *Engine) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Text()
}

// TextRange returns text in the given byte range.
func (e *Engine) TextRange(start, end ByteOffset) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.TextRange(start, end)
}

// Len returns the total byte length of the buffer.
func (e *Engine) Len() ByteOffset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Len()
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() uint32 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineCount()
}

// LineText returns the text of a specific line (without newline).
func (e *Engine) LineText(line uint32) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineText(line)
}

// LineLen returns the length of a specific line in bytes (without newline).
func (e *Engine) LineLen(line uint32) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineLen(line)
}

// ByteAt returns the byte at the given offset.
func (e *Engine) ByteAt(offset ByteOffset) (byte, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.ByteAt(offset)
}

// RuneAt returns the rune at the given byte offset.
func (e *Engine) RuneAt(offset ByteOffset) (rune, int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.RuneAt(offset)
}

// IsEmpty returns true if the buffer is empty.
func (e *Engine) IsEmpty() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.IsEmpty()
}

// ============================================================================
// Position Conversion
// ============================================================================

// OffsetToPoint converts a byte offset to line/column.
func (e *Engine) OffsetToPoint(offset ByteOffset) Point {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.OffsetToPoint(offset)
}

// PointToOffset converts line/column to byte offset.
func (e *Engine) PointToOffset(point Point) ByteOffset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.PointToOffset(point)
}

// LineStartOffset returns the byte offset of the start of a line.
func (e *Engine) LineStartOffset(line uint32) ByteOffset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineStartOffset(line)
}

// LineEndOffset returns the byte offset of the end of a line (before newline).
func (e *Engine) LineEndOffset(line uint32) ByteOffset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineEndOffset(line)
}

// ============================================================================
// Write Operations
// ============================================================================

// run executes cmd through the command log, shifts every cursor across
// the edits the command stands for, and tags the log record with cursor
// snapshots so undo/redo restore them. All positional and multi-cursor
// mutations funnel through here.
func (e *Engine) run(cmd *Command, shifts []Edit, collapse bool) error {
	before := e.cursors.All()
	if err := e.log.Execute(cmd, e.buf); err != nil {
		return err
	}
	for _, edit := range shifts {
		e.cursors.ApplyEdit(edit)
	}
	if collapse {
		e.cursors.CollapseAll()
	}
	e.log.TagSelections(before, e.cursors.All())
	return nil
}

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (e *Engine) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return 0, ErrReadOnly
	}

	cmd := history.Insert(offset, text)
	if err := e.run(cmd, []Edit{buffer.NewInsert(offset, text)}, false); err != nil {
		return 0, err
	}
	return offset + cmd.InsertedLen(), nil
}

// Delete removes text in the given range.
func (e *Engine) Delete(start, end ByteOffset) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	cmd := history.Delete(start, end-start)
	return e.run(cmd, []Edit{buffer.NewDelete(start, end)}, false)
}

// Replace replaces text in the given range with new text.
// Returns the end position of the replacement text.
func (e *Engine) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return 0, ErrReadOnly
	}

	return e.replaceLocked(start, end, text)
}

func (e *Engine) replaceLocked(start, end ByteOffset, text string) (ByteOffset, error) {
	ins := history.Insert(start, text)
	cmd := ins
	if start != end {
		cmd = history.Composite(history.Delete(start, end-start), ins)
	}
	shift := Edit{Range: Range{Start: start, End: end}, NewText: text}
	if err := e.run(cmd, []Edit{shift}, false); err != nil {
		return 0, err
	}
	return start + ins.InsertedLen(), nil
}

// ApplyEdit applies a single edit operation.
func (e *Engine) ApplyEdit(edit Edit) (EditResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return EditResult{}, ErrReadOnly
	}

	oldText := e.buf.TextRange(edit.Range.Start, edit.Range.End)
	end, err := e.replaceLocked(edit.Range.Start, edit.Range.End, edit.NewText)
	if err != nil {
		return EditResult{}, err
	}
	return EditResult{
		OldRange: edit.Range,
		NewRange: Range{Start: edit.Range.Start, End: end},
		OldText:  oldText,
		Delta:    int64(end-edit.Range.Start) - int64(edit.Range.Len()),
	}, nil
}

// ApplyEdits applies multiple edits atomically as one undoable command.
// Edits must be in reverse order (highest offset first).
func (e *Engine) ApplyEdits(edits []Edit) error {
	if len(edits) == 0 {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	for i := 1; i < len(edits); i++ {
		if edits[i].Range.Start >= edits[i-1].Range.Start {
			return ErrEditsOverlap
		}
	}

	children := make([]*Command, 0, len(edits)*2)
	for _, edit := range edits {
		if !edit.Range.IsEmpty() {
			children = append(children, history.Delete(edit.Range.Start, edit.Range.Len()))
		}
		if edit.NewText != "" {
			children = append(children, history.Insert(edit.Range.Start, edit.NewText))
		}
	}

	return e.run(history.Composite(children...), edits, false)
}

// ============================================================================
// Multi-Cursor Editing
// ============================================================================

// TypeText inserts text at every cursor as a single undoable composite,
// replacing any selected text. Children run from the highest position
// down so each recorded position is valid at its own execution; the
// cursors then shift uniformly and end up collapsed after their own
// insertion.
func (e *Engine) TypeText(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	sels := e.cursors.All()

	children := make([]*Command, 0, len(sels)*2)
	shifts := make([]Edit, 0, len(sels))
	for i := len(sels) - 1; i >= 0; i-- {
		r := sels[i].Range()
		if !r.IsEmpty() {
			children = append(children, history.Delete(r.Start, r.Len()))
		}
		if text != "" {
			children = append(children, history.Insert(r.Start, text))
		}
		shifts = append(shifts, Edit{Range: r, NewText: text})
	}
	if len(children) == 0 {
		return nil
	}

	return e.run(history.Composite(children...), shifts, true)
}

// DeleteLeft removes n bytes before every cursor (or the selected text,
// where a selection exists) as a single undoable composite.
func (e *Engine) DeleteLeft(n ByteOffset) error {
	return e.deleteAtCursors(func(sel Selection) Range {
		if !sel.IsEmpty() {
			return sel.Range()
		}
		start := sel.Head - n
		if start < 0 {
			start = 0
		}
		return Range{Start: start, End: sel.Head}
	})
}

// DeleteRight removes n bytes after every cursor (or the selected text,
// where a selection exists) as a single undoable composite.
func (e *Engine) DeleteRight(n ByteOffset) error {
	return e.deleteAtCursors(func(sel Selection) Range {
		if !sel.IsEmpty() {
			return sel.Range()
		}
		end := sel.Head + n
		if max := e.buf.Len(); end > max {
			end = max
		}
		return Range{Start: sel.Head, End: end}
	})
}

func (e *Engine) deleteAtCursors(extent func(Selection) Range) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	sels := e.cursors.All()

	children := make([]*Command, 0, len(sels))
	shifts := make([]Edit, 0, len(sels))
	for i := len(sels) - 1; i >= 0; i-- {
		r := extent(sels[i])
		if r.IsEmpty() {
			continue
		}
		children = append(children, history.Delete(r.Start, r.Len()))
		shifts = append(shifts, Edit{Range: r})
	}
	if len(children) == 0 {
		return nil
	}

	return e.run(history.Composite(children...), shifts, false)
}

// DeleteSelections removes the selected text at every cursor that has a
// selection, as a single undoable composite. No-op when nothing is
// selected.
func (e *Engine) DeleteSelections() error {
	return e.deleteAtCursors(func(sel Selection) Range {
		return sel.Range() // empty for bare cursors, skipped by the caller
	})
}

// SelectionText returns the concatenation of every selected region in
// position order, with multi-cursor regions joined by newlines, and
// false when nothing is selected. This is what copy and cut put on the
// clipboard.
func (e *Engine) SelectionText() (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var parts []string
	for _, sel := range e.cursors.All() {
		if sel.IsEmpty() {
			continue
		}
		parts = append(parts, e.buf.TextRange(sel.Start(), sel.End()))
	}
	if len(parts) == 0 {
		return "", false
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += "\n" + p
	}
	return out, true
}

// SelectAll collapses the cursor set to one selection covering the
// whole document.
func (e *Engine) SelectAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursors.Select(cursor.Span(0, e.buf.Len()))
}

// CollapseSelections collapses every selection to a bare cursor at its
// head.
func (e *Engine) CollapseSelections() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursors.CollapseAll()
}

// ============================================================================
// Undo/Redo Operations
// ============================================================================

// Undo undoes the last command and restores the cursor positions
// captured before it ran.
func (e *Engine) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	sels, err := e.log.Undo(e.buf)
	if err != nil {
		return err
	}
	e.restoreSelections(sels)
	return nil
}

// Redo redoes the last undone command and restores the cursor positions
// captured after its original run.
func (e *Engine) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	sels, err := e.log.Redo(e.buf)
	if err != nil {
		return err
	}
	e.restoreSelections(sels)
	return nil
}

func (e *Engine) restoreSelections(sels []Selection) {
	if len(sels) > 0 {
		e.cursors.ReplaceAll(sels)
	}
	e.cursors.Clamp(e.buf.Len())
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	return e.log.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	return e.log.CanRedo()
}

// UndoCount returns the number of available undo operations.
func (e *Engine) UndoCount() int {
	return e.log.UndoCount()
}

// RedoCount returns the number of available redo operations.
func (e *Engine) RedoCount() int {
	return e.log.RedoCount()
}

// ClearHistory removes all undo/redo history.
func (e *Engine) ClearHistory() {
	e.log.Clear()
}

// Execute routes a caller-built command through the log. Cursors are
// clamped afterwards rather than shifted, since an arbitrary command's
// edits are not known to the engine.
func (e *Engine) Execute(cmd *Command) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	before := e.cursors.All()
	if err := e.log.Execute(cmd, e.buf); err != nil {
		return err
	}
	e.cursors.Clamp(e.buf.Len())
	e.log.TagSelections(before, e.cursors.All())
	return nil
}

// ============================================================================
// Cursor Operations
// ============================================================================

// Cursors returns a copy of the cursor set.
func (e *Engine) Cursors() *cursor.Set {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursors.Clone()
}

// SetCursors replaces the cursor set.
func (e *Engine) SetCursors(cs *cursor.Set) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursors = cs.Clone()
}

// PrimaryCursor returns the primary cursor offset.
func (e *Engine) PrimaryCursor() ByteOffset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursors.PrimaryCaret()
}

// PrimarySelection returns the primary selection.
func (e *Engine) PrimarySelection() Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursors.Primary()
}

// SetPrimaryCursor collapses the set to a single cursor at offset.
func (e *Engine) SetPrimaryCursor(offset ByteOffset) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursors.Select(cursor.Caret(offset))
}

// SetPrimarySelection collapses the set to the single selection sel.
func (e *Engine) SetPrimarySelection(sel Selection) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursors.Select(sel)
}

// CursorCount returns the number of cursors.
func (e *Engine) CursorCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursors.Count()
}

// HasMultipleCursors returns true if there are multiple cursors.
func (e *Engine) HasMultipleCursors() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursors.IsMulti()
}

// AddCursor adds an extra cursor at the given offset.
func (e *Engine) AddCursor(offset ByteOffset) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursors.AddCaret(offset)
}

// AddSelection adds an extra selection.
func (e *Engine) AddSelection(sel Selection) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursors.Add(sel)
}

// AddNextOccurrence grows the cursor set with the next match of the current
// selection (or word under the cursor), for multi-cursor editing.
func (e *Engine) AddNextOccurrence() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cursor.AddNextOccurrence(e.cursors, e.buf)
}

// ClearSecondary removes all cursors except the primary.
func (e *Engine) ClearSecondary() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursors.ClearExtras()
}

// ClampCursors ensures all cursors are within valid buffer range.
func (e *Engine) ClampCursors() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursors.Clamp(e.buf.Len())
}

// ============================================================================
// Revision
// ============================================================================

// RevisionID returns the current buffer revision.
func (e *Engine) RevisionID() RevisionID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.RevisionID()
}

// ============================================================================
// Configuration
// ============================================================================

// TabWidth returns the tab width.
func (e *Engine) TabWidth() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.TabWidth()
}

// SetTabWidth sets the tab width.
func (e *Engine) SetTabWidth(width int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.buf.SetTabWidth(width)
}

// LineEnding returns the line ending style.
func (e *Engine) LineEnding() LineEnding {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineEnding()
}

// SetLineEnding sets the line ending style.
func (e *Engine) SetLineEnding(ending LineEnding) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.buf.SetLineEnding(ending)
}

// IsReadOnly returns true if the engine is read-only.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// ============================================================================
// Buffer Snapshot
// ============================================================================

// Snapshot returns a read-only snapshot of the current buffer state.
func (e *Engine) Snapshot() *buffer.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Snapshot()
}

// ============================================================================
// Clear and Reset
// ============================================================================

// Clear removes all content from the buffer and resets history.
func (e *Engine) Clear() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	if e.buf.Len() > 0 {
		if err := e.buf.Delete(0, e.buf.Len()); err != nil {
			return err
		}
	}

	e.cursors = cursor.NewSet(0)
	e.log.Clear()

	return nil
}

// SetContent replaces all content and resets history.
func (e *Engine) SetContent(content string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	_, err := e.buf.Replace(0, e.buf.Len(), content)
	if err != nil {
		return err
	}

	e.cursors = cursor.NewSet(0)
	e.log.Clear()

	return nil
}
