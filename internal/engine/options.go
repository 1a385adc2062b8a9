package engine

import (
	"github.com/JaakkoJSeppala/coreedit/internal/engine/buffer"
)

// Defaults applied when no option overrides them.
const (
	DefaultTabWidth       = 4
	DefaultMaxUndoEntries = 1000
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent seeds the engine's buffer with initial text.
func WithContent(content string) Option {
	return func(e *Engine) { e.initContent = content }
}

// WithTabWidth overrides the default tab width. Non-positive widths are
// ignored.
func WithTabWidth(width int) Option {
	return func(e *Engine) {
		if width > 0 {
			e.tabWidth = width
		}
	}
}

// WithLineEnding picks the line ending style the buffer normalises
// loaded and inserted text to.
func WithLineEnding(ending buffer.LineEnding) Option {
	return func(e *Engine) { e.lineEnding = ending }
}

// WithMaxUndoEntries bounds the command log's retained depth.
// Non-positive values are ignored.
func WithMaxUndoEntries(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxUndoEntries = n
		}
	}
}

// WithReadOnly makes every mutating operation return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) { e.readOnly = true }
}
