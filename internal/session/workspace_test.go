package session

import (
	"testing"

	"github.com/JaakkoJSeppala/coreedit/internal/project/vfs"
)

func TestSaveLoadWorkspaceRoundTrip(t *testing.T) {
	fsys := vfs.NewMemFS()
	if err := fsys.AddFile("/proj/main.go", "package main\n"); err != nil {
		t.Fatal(err)
	}
	if err := fsys.AddFile("/proj/util.go", "package main\n"); err != nil {
		t.Fatal(err)
	}

	state := WorkspaceState{
		RootDirectory: "/proj",
		RootFolders:   []string{"/proj", "/proj/vendor"},
		OpenFiles: []FileState{
			{Path: "/proj/main.go", CursorPos: 10, ScrollOffset: 2},
			{Path: "/proj/util.go", CursorPos: 0, ScrollOffset: 0},
		},
		ActiveTabIndex: 1,
	}

	if err := SaveWorkspace(fsys, "/proj", state); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := LoadWorkspace(fsys, "/proj")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.RootDirectory != "/proj" {
		t.Errorf("got root directory %q", loaded.RootDirectory)
	}
	if len(loaded.RootFolders) != 2 || loaded.RootFolders[1] != "/proj/vendor" {
		t.Errorf("unexpected root folders: %+v", loaded.RootFolders)
	}
	if len(loaded.OpenFiles) != 2 {
		t.Fatalf("got %d open files, want 2", len(loaded.OpenFiles))
	}
	if loaded.OpenFiles[0].CursorPos != 10 || loaded.OpenFiles[0].ScrollOffset != 2 {
		t.Errorf("unexpected first file state: %+v", loaded.OpenFiles[0])
	}
	if loaded.ActiveTabIndex != 1 {
		t.Errorf("got active tab index %d, want 1", loaded.ActiveTabIndex)
	}
}

func TestLoadWorkspaceSkipsMissingPaths(t *testing.T) {
	fsys := vfs.NewMemFS()
	if err := fsys.AddFile("/proj/exists.go", "x"); err != nil {
		t.Fatal(err)
	}

	state := WorkspaceState{
		RootDirectory: "/proj",
		OpenFiles: []FileState{
			{Path: "/proj/exists.go"},
			{Path: "/proj/gone.go"},
		},
		ActiveTabIndex: 1,
	}
	if err := SaveWorkspace(fsys, "/proj", state); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := LoadWorkspace(fsys, "/proj")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded.OpenFiles) != 1 {
		t.Fatalf("expected missing file to be skipped, got %+v", loaded.OpenFiles)
	}
	if loaded.ActiveTabIndex != 0 {
		t.Errorf("expected active tab index clamped to 0, got %d", loaded.ActiveTabIndex)
	}
}

func TestEscapedCharactersRoundTrip(t *testing.T) {
	fsys := vfs.NewMemFS()
	tricky := "a\\b\"c\nd\re\tf"
	if err := fsys.AddFile(tricky, "x"); err != nil {
		t.Fatal(err)
	}

	state := WorkspaceState{
		RootDirectory: tricky,
		OpenFiles:     []FileState{{Path: tricky}},
	}
	if err := SaveWorkspace(fsys, "/proj", state); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := LoadWorkspace(fsys, "/proj")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.RootDirectory != tricky {
		t.Errorf("got %q, want %q", loaded.RootDirectory, tricky)
	}
}
