// Package viewport implements virtual scrolling over a buffer: it tracks
// which lines and columns are currently visible and materializes only that
// slice of text, so presentation layers can render documents of any size
// without touching the whole buffer.
//
// A Viewport is bound to a buffer.Buffer via SetDocument. Scrolling
// (ScrollTo, ScrollUp, ScrollDown, paging, EnsureVisible) only moves the
// top line or left column, always clamped so the window never runs past
// the end of the document; VisibleLines reads the bound buffer on demand
// and truncates each line to the visible column window on
// grapheme-cluster boundaries.
package viewport
