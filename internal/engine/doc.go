// Package engine ties one document's pieces together: the piece-table
// buffer, the cursor set, and the reversible command log, behind a
// single mutex-guarded facade. Each open tab owns one Engine.
//
// Positional edits (Insert, Delete, Replace, ApplyEdit) and multi-cursor
// edits (TypeText, DeleteLeft, DeleteRight) all funnel through the same
// path: build a command, execute it through the log, shift the cursors
// across the resulting edits, and tag the log record with cursor
// snapshots so Undo and Redo put the cursors back.
//
// Multi-cursor commands are composites whose children run from the
// highest position down, so an earlier child cannot invalidate a later
// child's recorded position.
//
//	e := engine.New(engine.WithContent("foo foo foo"))
//	e.SetPrimarySelection(cursor.Span(0, 3))
//	e.AddNextOccurrence()
//	e.AddNextOccurrence()
//	e.TypeText("bar") // all three occurrences replaced atomically
//	e.Undo()          // back to "foo foo foo"
package engine
