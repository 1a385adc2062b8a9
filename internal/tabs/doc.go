// Package tabs manages multiple open documents. A Manager always holds at
// least one Tab; each Tab owns its own engine.Engine and viewport.Viewport,
// so switching the active tab never discards editing state. Manager still
// captures state as a tab loses focus (recording its cursor position and
// scroll offset) so that session persistence can read every tab's
// last-known position without reaching into a live Engine for each one.
package tabs
