package event

import "github.com/JaakkoJSeppala/coreedit/internal/engine"

// DocumentChanged fires after an edit has been applied to a tab's buffer.
type DocumentChanged struct {
	TabIndex   int
	RevisionID engine.RevisionID
}

// SelectionChanged fires when the active tab's selection set changes.
type SelectionChanged struct {
	TabIndex int
}

// CursorMoved fires when the active tab's primary cursor moves without a
// broader selection change (e.g. plain navigation).
type CursorMoved struct {
	TabIndex int
	Position engine.ByteOffset
}

// TabOpened fires when a new tab is created.
type TabOpened struct {
	TabIndex int
	FilePath string
}

// TabClosed fires when a tab is closed.
type TabClosed struct {
	TabIndex int
}

// SearchProgress fires as a project search accumulates results.
type SearchProgress struct {
	JobID        string
	ResultsSoFar int
}

// SearchCompleted fires once a project search's worker pool has finished.
type SearchCompleted struct {
	JobID        string
	TotalResults int
}
