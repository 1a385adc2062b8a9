// Package vfs is the filesystem collaborator the core reads and writes
// through. Narrowing it to one interface keeps every package hermetic
// under test: MemFS stands in for the disk, OSFS is the real thing.
package vfs

import "io/fs"

// VFS covers the file operations the editor core needs: whole-file
// reads and writes, existence checks, directory creation, a recursive
// walk for project search, and the path arithmetic that has to agree
// with whichever backend is in use.
type VFS interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
	Exists(path string) bool
	MkdirAll(path string, perm fs.FileMode) error

	// WalkDir visits every entry under root. Entries the user cannot
	// read are skipped, not surfaced as errors.
	WalkDir(root string, fn WalkFunc) error

	Join(elem ...string) string
	Dir(path string) string
	Rel(base, target string) (string, error)
}

// DirEntry describes one entry seen during WalkDir.
type DirEntry struct {
	Name  string
	IsDir bool
}

// WalkFunc is called once per visited entry. Returning SkipDir skips a
// directory's contents; returning SkipAll ends the walk.
type WalkFunc func(path string, entry DirEntry, err error) error

// SkipDir, when returned from a WalkFunc for a directory, skips its
// contents.
var SkipDir = fs.SkipDir

// SkipAll, when returned from a WalkFunc, ends the walk early.
var SkipAll = fs.SkipAll
