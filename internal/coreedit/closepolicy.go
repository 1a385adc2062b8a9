package coreedit

import "github.com/JaakkoJSeppala/coreedit/internal/tabs"

// Decision is the presentation layer's answer to a close-confirmation
// prompt for a dirty tab.
type Decision int

const (
	// DecisionSave saves the tab's content before closing it.
	DecisionSave Decision = iota
	// DecisionDiscard closes the tab without saving.
	DecisionDiscard
	// DecisionCancel aborts the close entirely.
	DecisionCancel
)

// ClosePolicy is consulted before closing a tab with unsaved changes.
type ClosePolicy interface {
	ConfirmDiscard(tab *tabs.Tab) (Decision, error)
}

// AlwaysDiscardPolicy is a ClosePolicy that never prompts: it discards
// unsaved changes unconditionally. Used as the Facade's default so callers
// that don't care about confirmation prompts aren't forced to supply one.
type AlwaysDiscardPolicy struct{}

// ConfirmDiscard always returns DecisionDiscard.
func (AlwaysDiscardPolicy) ConfirmDiscard(*tabs.Tab) (Decision, error) {
	return DecisionDiscard, nil
}
