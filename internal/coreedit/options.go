package coreedit

import "github.com/JaakkoJSeppala/coreedit/internal/engine"

// Option configures a Facade during creation.
type Option func(*Facade)

// WithClipboard overrides the default in-memory Clipboard.
func WithClipboard(c Clipboard) Option {
	return func(f *Facade) { f.clipboard = c }
}

// WithClosePolicy overrides the default always-discard ClosePolicy.
func WithClosePolicy(p ClosePolicy) Option {
	return func(f *Facade) { f.closePolicy = p }
}

// WithEngineOptions passes engine.Option values through to every tab's
// engine.Engine (tab width, line ending, undo depth, read-only mode).
func WithEngineOptions(opts ...engine.Option) Option {
	return func(f *Facade) { f.engineOpts = opts }
}

// WithConfigDir overrides the per-user config directory session state is
// stored under (see session.DefaultConfigDir).
func WithConfigDir(dir string) Option {
	return func(f *Facade) { f.configDir = dir }
}
