// Package buffer stores text as a piece table: an immutable original
// byte sequence, a single append-only add buffer, and an ordered piece
// list whose concatenation is the logical document. Edits split, trim,
// or drop pieces; the underlying bytes never move, so the cost of an
// edit scales with the pieces it touches rather than the file size.
//
// Line queries go through a lazily rebuilt line-start cache: one linear
// pass after a mutation, O(1) per queried line afterwards.
//
//	buf := buffer.NewBufferFromString("Hello, World!")
//	buf.Insert(7, "Beautiful ") // "Hello, Beautiful World!"
//	buf.Delete(0, 7)            // "Beautiful World!"
//
// Buffer methods are guarded by a sync.RWMutex and safe for concurrent
// use; for a consistent view across several reads, take a Snapshot(),
// which never changes after creation and can be handed to another
// goroutine without locking.
package buffer
