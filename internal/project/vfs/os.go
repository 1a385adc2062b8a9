package vfs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// OSFS backs VFS with the real filesystem.
type OSFS struct{}

// NewOSFS returns a VFS over the operating system's filesystem.
func NewOSFS() *OSFS {
	return &OSFS{}
}

func (*OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (*OSFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (*OSFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (*OSFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

// WalkDir wraps filepath.WalkDir, swallowing permission errors so an
// unreadable subtree is skipped rather than aborting the walk.
func (*OSFS) WalkDir(root string, fn WalkFunc) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			return fn(path, DirEntry{}, err)
		}
		return fn(path, DirEntry{Name: d.Name(), IsDir: d.IsDir()}, nil)
	})
}

func (*OSFS) Join(elem ...string) string {
	return filepath.Join(elem...)
}

func (*OSFS) Dir(path string) string {
	return filepath.Dir(path)
}

func (*OSFS) Rel(base, target string) (string, error) {
	return filepath.Rel(base, target)
}
