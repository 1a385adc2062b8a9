package session

import (
	"os"
	"path/filepath"

	"github.com/JaakkoJSeppala/coreedit/internal/project/vfs"
)

const (
	configDirAppName     = "coreedit"
	recentFilesFileName  = "recent_files"
	recentWorkspacesFile = "recent_workspaces"
)

// Manager coordinates recent-files/workspaces MRU lists and the active
// workspace's root folders, backed by a per-user config directory.
type Manager struct {
	fsys             vfs.VFS
	RecentFiles      *MRUList
	RecentWorkspaces *MRUList
	Folders          *FolderSet
}

// NewManager creates a Manager whose MRU lists are stored under
// configDir, a per-user configuration directory (see DefaultConfigDir).
func NewManager(fsys vfs.VFS, configDir string) *Manager {
	folders, _ := NewFolderSet()
	return &Manager{
		fsys:             fsys,
		RecentFiles:      NewMRUList(fsys.Join(configDir, recentFilesFileName), DefaultMaxRecentFiles),
		RecentWorkspaces: NewMRUList(fsys.Join(configDir, recentWorkspacesFile), DefaultMaxRecentWorkspaces),
		Folders:          folders,
	}
}

// DefaultConfigDir returns the per-user config directory for the editor,
// e.g. ~/.config/coreedit, creating nothing itself.
func DefaultConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, configDirAppName), nil
}

// Load reads both MRU lists from disk.
func (m *Manager) Load() error {
	if err := m.RecentFiles.Load(m.fsys); err != nil {
		return err
	}
	return m.RecentWorkspaces.Load(m.fsys)
}

// OpenFile records filePath as recently opened and persists the list.
func (m *Manager) OpenFile(filePath string) error {
	m.RecentFiles.Add(filePath)
	return m.RecentFiles.Save(m.fsys)
}

// OpenWorkspace records workspaceDir as recently opened and persists the
// list.
func (m *Manager) OpenWorkspace(workspaceDir string) error {
	m.RecentWorkspaces.Add(workspaceDir)
	return m.RecentWorkspaces.Save(m.fsys)
}

// SaveWorkspace saves the given workspace state under workspaceDir,
// overwriting state.RootFolders with the Manager's current FolderSet, and
// records workspaceDir in the recent-workspaces list.
func (m *Manager) SaveWorkspace(workspaceDir string, state WorkspaceState) error {
	state.RootFolders = m.Folders.Paths()
	if err := SaveWorkspace(m.fsys, workspaceDir, state); err != nil {
		return err
	}
	return m.OpenWorkspace(workspaceDir)
}

// LoadWorkspace loads the workspace state under workspaceDir, replaces the
// Manager's FolderSet with the roots it records, and records workspaceDir
// in the recent-workspaces list.
func (m *Manager) LoadWorkspace(workspaceDir string) (WorkspaceState, error) {
	state, err := LoadWorkspace(m.fsys, workspaceDir)
	if err != nil {
		return WorkspaceState{}, err
	}
	folders, err := NewFolderSet(state.RootFolders...)
	if err != nil {
		return state, err
	}
	m.Folders = folders
	if err := m.OpenWorkspace(workspaceDir); err != nil {
		return state, err
	}
	return state, nil
}

// AddFolder adds path as an additional root folder of the active
// workspace, making it a multi-root workspace if it wasn't already one.
func (m *Manager) AddFolder(path string) (Folder, error) {
	return m.Folders.AddFolder(path)
}

// RemoveFolder removes path from the active workspace's root folders.
func (m *Manager) RemoveFolder(path string) (Folder, error) {
	return m.Folders.RemoveFolder(path)
}
