// Package projectsearch implements project-wide find and replace: a single
// producer enumerates a directory tree, a worker pool scans each file for
// every non-overlapping occurrence of a query, and matching Results stream
// into a shared, lock-guarded slice that callers may snapshot at any time.
//
// A Job is the unit of work returned by Start. It can be cancelled
// mid-walk, polled for completion, and asked to rewrite every file that
// currently holds a result via ReplaceInFiles.
package projectsearch
