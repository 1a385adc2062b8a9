// Package history is the reversible command log layered on a buffer.
//
// A Command is a tagged record: an insert, a delete, or a composite of
// children. Deletes capture the exact bytes they remove the first time
// they run, so undo restores the literal text no matter what later
// commands did elsewhere. Composites group the per-cursor edits of one
// multi-cursor action; children are ordered from the highest position
// down and reverted in the opposite order.
//
// The Log keeps executed commands as a single ordered list plus a
// current index. Undo walks the index left, redo walks it right, and
// executing a new command truncates the undone tail, which is how a
// fresh edit discards redo state. A configurable depth bound drops the
// oldest records from the front.
package history
