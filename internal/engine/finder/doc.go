// Package finder implements in-buffer find and replace: all-matches and
// directional search over a string, with case-sensitive/regex options, plus
// an optional current-match cursor for cycling through a previously
// computed result set.
//
// Matches are stamped with the buffer.RevisionID they were found against
// (via FindAllInBuffer) so a collaborator can detect staleness with a single
// comparison instead of diffing buffer content: a match is invalidated by
// any mutation at or before its end, which in practice means any revision
// change at all once the caller has re-run the search.
package finder
