package session

import (
	"strings"
	"sync"

	"github.com/JaakkoJSeppala/coreedit/internal/project/vfs"
)

// Default bounds for the recent-files and recent-workspaces MRU lists.
const (
	DefaultMaxRecentFiles      = 20
	DefaultMaxRecentWorkspaces = 10
)

// MRUList is a most-recently-used list of paths, persisted as one path
// per line. Adding an existing entry moves it to the front rather than
// duplicating it.
type MRUList struct {
	mu      sync.Mutex
	path    string
	maxSize int
	items   []string
}

// NewMRUList creates an MRU list backed by the file at path, bounded to
// maxSize entries.
func NewMRUList(path string, maxSize int) *MRUList {
	return &MRUList{path: path, maxSize: maxSize}
}

// Add moves item to the front of the list, inserting it if absent, and
// trims the list to its configured bound.
func (l *MRUList) Add(item string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	filtered := l.items[:0:0]
	for _, existing := range l.items {
		if existing != item {
			filtered = append(filtered, existing)
		}
	}
	l.items = append([]string{item}, filtered...)
	if len(l.items) > l.maxSize {
		l.items = l.items[:l.maxSize]
	}
}

// Items returns a copy of the current list, most recent first.
func (l *MRUList) Items() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}

// Clear empties the list.
func (l *MRUList) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
}

// Load reads the list from disk, silently dropping entries whose path no
// longer exists, per the load policy.
func (l *MRUList) Load(fsys vfs.VFS) error {
	data, err := fsys.ReadFile(l.path)
	if err != nil {
		if !fsys.Exists(l.path) {
			return nil
		}
		return err
	}

	var items []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !fsys.Exists(line) {
			continue
		}
		items = append(items, line)
		if len(items) >= l.maxSize {
			break
		}
	}

	l.mu.Lock()
	l.items = items
	l.mu.Unlock()
	return nil
}

// Save writes the list to disk, one path per line.
func (l *MRUList) Save(fsys vfs.VFS) error {
	l.mu.Lock()
	items := make([]string, len(l.items))
	copy(items, l.items)
	l.mu.Unlock()

	if dir := fsys.Dir(l.path); dir != "" && dir != "." {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return fsys.WriteFile(l.path, []byte(strings.Join(items, "\n")+"\n"), 0o644)
}
