// Package cursor tracks where edits happen: one primary selection plus
// any number of extra selections for multi-cursor editing.
//
// A Selection is an (anchor, head) pair. The head is the cursor, where
// typing happens; the anchor marks where the selection began, so the
// pair can run in either direction. Anchor == head is a bare cursor.
//
// A Set owns the primary and the extras. Extras stay sorted by position
// and deduplicated, which is what lets group mutations walk All() from
// the highest position down without an edit at one cursor invalidating
// the recorded position of the next. After the owning engine applies an
// edit it calls Set.ApplyEdit to shift every member across the change.
//
// AddNextOccurrence is the multi-cursor growth primitive: it selects the
// next occurrence of the primary selection's text (or the word under a
// bare cursor) and makes it the new primary.
package cursor
