package session

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/JaakkoJSeppala/coreedit/internal/project/vfs"
)

// workspaceDirName and workspaceFileName locate the workspace file at
// <workspace>/.coreedit/workspace.
const (
	workspaceDirName  = ".coreedit"
	workspaceFileName = "workspace"
)

// FileState records one open file's position within its tab.
type FileState struct {
	Path         string
	CursorPos    int
	ScrollOffset int
}

// WorkspaceState is the complete persisted state of a workspace.
type WorkspaceState struct {
	RootDirectory  string
	RootFolders    []string
	OpenFiles      []FileState
	ActiveTabIndex int
}

// WorkspaceFilePath returns the workspace file path for a workspace
// directory.
func WorkspaceFilePath(fsys vfs.VFS, workspaceDir string) string {
	return fsys.Join(workspaceDir, workspaceDirName, workspaceFileName)
}

// SaveWorkspace writes state to <workspaceDir>/.coreedit/workspace,
// creating the directory if necessary.
func SaveWorkspace(fsys vfs.VFS, workspaceDir string, state WorkspaceState) error {
	dir := fsys.Join(workspaceDir, workspaceDirName)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	doc := "{}"
	var err error
	doc, err = sjson.Set(doc, "root_directory", state.RootDirectory)
	if err != nil {
		return err
	}
	for i, folder := range state.RootFolders {
		if doc, err = sjson.Set(doc, fmt.Sprintf("root_folders.%d", i), folder); err != nil {
			return err
		}
	}
	for i, f := range state.OpenFiles {
		if doc, err = sjson.Set(doc, fmt.Sprintf("open_files.%d.path", i), f.Path); err != nil {
			return err
		}
		if doc, err = sjson.Set(doc, fmt.Sprintf("open_files.%d.cursor_pos", i), f.CursorPos); err != nil {
			return err
		}
		if doc, err = sjson.Set(doc, fmt.Sprintf("open_files.%d.scroll_offset", i), f.ScrollOffset); err != nil {
			return err
		}
	}
	if doc, err = sjson.Set(doc, "active_tab_index", state.ActiveTabIndex); err != nil {
		return err
	}

	return fsys.WriteFile(WorkspaceFilePath(fsys, workspaceDir), []byte(doc), 0o644)
}

// LoadWorkspace reads the workspace file for workspaceDir. Unknown JSON
// fields are ignored. Per the load policy, open files whose path no
// longer exists are skipped, and an active-tab index left out of range by
// that filtering clamps to the last remaining tab.
func LoadWorkspace(fsys vfs.VFS, workspaceDir string) (WorkspaceState, error) {
	data, err := fsys.ReadFile(WorkspaceFilePath(fsys, workspaceDir))
	if err != nil {
		return WorkspaceState{}, err
	}

	doc := gjson.ParseBytes(data)
	state := WorkspaceState{
		RootDirectory:  doc.Get("root_directory").String(),
		ActiveTabIndex: int(doc.Get("active_tab_index").Int()),
	}

	for _, folder := range doc.Get("root_folders").Array() {
		state.RootFolders = append(state.RootFolders, folder.String())
	}

	for _, entry := range doc.Get("open_files").Array() {
		path := entry.Get("path").String()
		if path == "" || !fsys.Exists(path) {
			continue
		}
		state.OpenFiles = append(state.OpenFiles, FileState{
			Path:         path,
			CursorPos:    int(entry.Get("cursor_pos").Int()),
			ScrollOffset: int(entry.Get("scroll_offset").Int()),
		})
	}

	if state.ActiveTabIndex >= len(state.OpenFiles) {
		state.ActiveTabIndex = len(state.OpenFiles) - 1
	}
	if state.ActiveTabIndex < 0 {
		state.ActiveTabIndex = 0
	}

	return state, nil
}
