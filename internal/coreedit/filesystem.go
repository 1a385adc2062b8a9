package coreedit

import (
	"github.com/JaakkoJSeppala/coreedit/internal/coreerr"
	"github.com/JaakkoJSeppala/coreedit/internal/project/vfs"
)

// FileSystem is the narrow collaborator interface the core reads and
// writes files through. It is satisfied by vfsFileSystem, an adapter over
// the richer vfs.VFS the rest of the core (session persistence, project
// search, indexing) already uses.
type FileSystem interface {
	ReadAll(path string) ([]byte, bool)
	WriteAll(path string, data []byte) bool
	Exists(path string) bool
	ListRecursive(path string) []string
}

// vfsFileSystem adapts a vfs.VFS to the FileSystem interface.
type vfsFileSystem struct {
	fsys vfs.VFS
}

// NewFileSystem wraps fsys as a FileSystem.
func NewFileSystem(fsys vfs.VFS) FileSystem {
	return &vfsFileSystem{fsys: fsys}
}

func (f *vfsFileSystem) ReadAll(path string) ([]byte, bool) {
	data, err := f.fsys.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

func (f *vfsFileSystem) WriteAll(path string, data []byte) bool {
	return f.fsys.WriteFile(path, data, 0o644) == nil
}

func (f *vfsFileSystem) Exists(path string) bool {
	return f.fsys.Exists(path)
}

// ListRecursive lists every file (not directory) reachable under path,
// skipping entries the walk cannot read rather than aborting.
func (f *vfsFileSystem) ListRecursive(path string) []string {
	var out []string
	_ = f.fsys.WalkDir(path, func(p string, d vfs.DirEntry, err error) error {
		if err != nil || d.IsDir {
			return nil
		}
		out = append(out, p)
		return nil
	})
	return out
}

// wrapIO classifies a raw filesystem error into the coreerr taxonomy.
func wrapIO(path string, err error) error {
	if err == nil {
		return nil
	}
	return coreerr.NewIoError(path, err)
}
