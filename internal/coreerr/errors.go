// Package coreerr defines the error taxonomy shared by every core editing
// component: the piece buffer, command log, cursor set, finder, project
// search, indexer, tab manager, and session persistence.
//
// Every component wraps one of the sentinels below with fmt.Errorf and %w,
// so callers can use errors.Is against a stable, small vocabulary instead of
// matching on message text.
package coreerr

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error surfaced by a core component wraps one of
// these so callers can classify failures with errors.Is.
var (
	// ErrOutOfRange indicates an offset, line, or column fell outside the
	// valid bounds of the buffer or viewport it was applied to.
	ErrOutOfRange = errors.New("out of range")

	// ErrInvalidArgument indicates a caller-supplied argument was
	// structurally invalid (empty query, negative count, malformed glob).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIoError indicates a filesystem operation failed.
	ErrIoError = errors.New("io error")

	// ErrCancelled indicates a long-running operation was cancelled by its
	// own initiator; it is a normal completion, not a fault.
	ErrCancelled = errors.New("cancelled")

	// ErrNotFound indicates a tab, file, snapshot, or revision could not
	// be located.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates an operation could not complete because of the
	// current state of the target (e.g. undo with nothing to undo).
	ErrConflict = errors.New("conflict")

	// ErrAlreadyExists indicates a tab, folder, or file already exists
	// where a caller expected to create one.
	ErrAlreadyExists = errors.New("already exists")
)

// IoError carries the filesystem path a wrapped I/O failure occurred
// against, alongside the underlying OS error.
type IoError struct {
	Path string
	Kind error
}

// NewIoError wraps err as an IoError rooted at path.
func NewIoError(path string, err error) *IoError {
	return &IoError{Path: path, Kind: err}
}

func (e *IoError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("io error: %s: %v", e.Path, e.Kind)
}

func (e *IoError) Unwrap() error {
	if e == nil {
		return nil
	}
	return ErrIoError
}

// Is reports whether target is ErrIoError, so errors.Is(err, ErrIoError)
// matches without needing to unwrap the underlying OS error too.
func (e *IoError) Is(target error) bool {
	return target == ErrIoError
}

// Wrap annotates err with op ("insert", "undo", "open-tab", ...) and wraps
// sentinel so errors.Is(result, sentinel) continues to hold.
func Wrap(sentinel error, op string, err error) error {
	if err == nil {
		return fmt.Errorf("%s: %w", op, sentinel)
	}
	return fmt.Errorf("%s: %w: %v", op, sentinel, err)
}
