package history

import (
	"errors"
	"sync"

	"github.com/JaakkoJSeppala/coreedit/internal/engine/buffer"
	"github.com/JaakkoJSeppala/coreedit/internal/engine/cursor"
)

// Sentinel errors for log operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxDepth bounds the retained history when no explicit depth is
// configured.
const DefaultMaxDepth = 1000

// record pairs an executed command with the cursor state around it, so
// undo and redo can put the cursors back where they were.
type record struct {
	cmd    *Command
	before []cursor.Selection
	after  []cursor.Selection
}

// Log is the command log for one buffer: an ordered list of executed
// commands plus a current index. records[:current] have been applied and
// can be undone; records[current:] have been undone and can be redone.
// Executing a new command truncates everything past current before
// appending, which is how a fresh edit discards the redo tail. A
// maxDepth bound drops excess records from the front.
type Log struct {
	mu sync.Mutex

	records  []record
	current  int
	maxDepth int
}

// NewLog creates a log retaining at most maxDepth commands. Non-positive
// depths fall back to DefaultMaxDepth.
func NewLog(maxDepth int) *Log {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Log{maxDepth: maxDepth}
}

// Execute applies cmd to buf and appends it at current, truncating any
// undone tail and enforcing the depth bound. The command is owned by the
// log from this point on.
func (l *Log) Execute(cmd *Command, buf *buffer.Buffer) error {
	if err := apply(cmd, buf); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = l.records[:l.current]
	l.records = append(l.records, record{cmd: cmd})
	l.current++

	if l.current > l.maxDepth {
		excess := l.current - l.maxDepth
		l.records = l.records[excess:]
		l.current -= excess
	}
	return nil
}

// TagSelections attaches cursor snapshots to the most recently executed
// command: before is restored by Undo, after by Redo. No-op if nothing
// has been executed.
func (l *Log) TagSelections(before, after []cursor.Selection) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current == 0 {
		return
	}
	r := &l.records[l.current-1]
	r.before = append([]cursor.Selection(nil), before...)
	r.after = append([]cursor.Selection(nil), after...)
}

// Undo reverts the most recent applied command and returns the cursor
// snapshot taken before it ran (nil if none was tagged).
func (l *Log) Undo(buf *buffer.Buffer) ([]cursor.Selection, error) {
	l.mu.Lock()
	if l.current == 0 {
		l.mu.Unlock()
		return nil, ErrNothingToUndo
	}
	idx := l.current - 1
	r := l.records[idx]
	l.mu.Unlock()

	if err := revert(r.cmd, buf); err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.current = idx
	l.mu.Unlock()
	return r.before, nil
}

// Redo reapplies the most recently undone command and returns the cursor
// snapshot taken after its original run (nil if none was tagged).
func (l *Log) Redo(buf *buffer.Buffer) ([]cursor.Selection, error) {
	l.mu.Lock()
	if l.current >= len(l.records) {
		l.mu.Unlock()
		return nil, ErrNothingToRedo
	}
	idx := l.current
	r := l.records[idx]
	l.mu.Unlock()

	if err := apply(r.cmd, buf); err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.current = idx + 1
	l.mu.Unlock()
	return r.after, nil
}

// CanUndo reports whether an applied command remains.
func (l *Log) CanUndo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current > 0
}

// CanRedo reports whether an undone command remains.
func (l *Log) CanRedo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current < len(l.records)
}

// UndoCount returns how many commands can be undone.
func (l *Log) UndoCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

// RedoCount returns how many commands can be redone.
func (l *Log) RedoCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records) - l.current
}

// Clear drops all history.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = nil
	l.current = 0
}

// SetMaxDepth changes the retention bound, trimming from the front if
// the applied prefix already exceeds it.
func (l *Log) SetMaxDepth(depth int) {
	if depth <= 0 {
		depth = DefaultMaxDepth
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.maxDepth = depth
	if l.current > depth {
		excess := l.current - depth
		l.records = l.records[excess:]
		l.current -= excess
	}
}

// MaxDepth returns the retention bound.
func (l *Log) MaxDepth() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.maxDepth
}
