package tabs

import (
	"strings"

	"github.com/JaakkoJSeppala/coreedit/internal/engine"
	"github.com/JaakkoJSeppala/coreedit/internal/engine/viewport"
)

// defaultViewportWidth/Height size a new tab's viewport before the
// presentation layer resizes it to the actual terminal/window dimensions.
const (
	defaultViewportWidth  = 80
	defaultViewportHeight = 24
)

// Tab represents a single open document.
type Tab struct {
	Engine   *engine.Engine
	Viewport *viewport.Viewport

	FilePath    string
	DisplayName string
	dirty       bool

	// CursorPos and ScrollOffset mirror the Engine/Viewport's live state as
	// of the last time this tab lost focus (see Manager.captureActiveLocked).
	// While the tab is active they may lag; read Engine/Viewport directly
	// for current position.
	CursorPos    engine.ByteOffset
	ScrollOffset uint32
}

func newTab(content, path string, engineOpts []engine.Option) *Tab {
	opts := make([]engine.Option, 0, len(engineOpts)+1)
	opts = append(opts, engineOpts...)
	opts = append(opts, engine.WithContent(content))

	eng := engine.New(opts...)
	vp := viewport.New(defaultViewportWidth, defaultViewportHeight)
	vp.SetDocument(eng.Buffer())

	return &Tab{
		Engine:      eng,
		Viewport:    vp,
		FilePath:    path,
		DisplayName: displayName(path),
	}
}

// IsDirty reports whether the tab has unsaved changes.
func (t *Tab) IsDirty() bool { return t.dirty }

// MarkDirty flags the tab as having unsaved changes.
func (t *Tab) MarkDirty() { t.dirty = true }

// MarkClean clears the tab's unsaved-changes flag, typically after a save.
func (t *Tab) MarkClean() { t.dirty = false }

// captureState snapshots the tab's live cursor/scroll position into its
// cached fields, called as the tab loses focus.
func (t *Tab) captureState() {
	t.CursorPos = t.Engine.PrimaryCursor()
	t.ScrollOffset = t.Viewport.TopLine()
}

// displayName extracts the file name from a path, or "Untitled" if empty.
func displayName(path string) string {
	if path == "" {
		return "Untitled"
	}
	if idx := strings.LastIndexAny(path, "/\\"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
