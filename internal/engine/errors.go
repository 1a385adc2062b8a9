package engine

import (
	"errors"

	"github.com/JaakkoJSeppala/coreedit/internal/engine/history"
)

// Errors returned by engine operations. ErrNothingToUndo and ErrNothingToRedo
// are aliases of the history package's sentinels so callers can match either.
var (
	// ErrEditsOverlap indicates edits overlap or are not in reverse order.
	ErrEditsOverlap = errors.New("edits overlap or are not in reverse order")

	// ErrNothingToUndo indicates the undo history is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo history is empty.
	ErrNothingToRedo = history.ErrNothingToRedo

	// ErrReadOnly indicates an operation was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")
)
