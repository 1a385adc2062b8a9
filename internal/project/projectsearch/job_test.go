package projectsearch

import (
	"testing"

	"github.com/JaakkoJSeppala/coreedit/internal/project/vfs"
)

func newTestFS(t *testing.T) *vfs.MemFS {
	t.Helper()
	fsys := vfs.NewMemFS()
	if err := fsys.AddFile("/proj/a.go", "package a\n\nfunc Foo() { foo() }\n"); err != nil {
		t.Fatal(err)
	}
	if err := fsys.AddFile("/proj/b.go", "package b\n\nfunc Bar() { foo(); foo() }\n"); err != nil {
		t.Fatal(err)
	}
	if err := fsys.AddFile("/proj/vendor/c.go", "func foo() {}\n"); err != nil {
		t.Fatal(err)
	}
	if err := fsys.AddFile("/proj/readme.md", "no matches here\n"); err != nil {
		t.Fatal(err)
	}
	return fsys
}

func TestStartFindsMatchesAcrossFiles(t *testing.T) {
	fsys := newTestFS(t)
	job := Start(fsys, Options{Root: "/proj", Query: "foo"})
	job.Wait()

	results := job.Snapshot()
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4: %+v", len(results), results)
	}
}

func TestStartRespectsExcludeGlob(t *testing.T) {
	fsys := newTestFS(t)
	job := Start(fsys, Options{Root: "/proj", Query: "foo", ExcludeGlobs: "vendor/*"})
	job.Wait()

	for _, r := range job.Snapshot() {
		if r.FilePath == "/proj/vendor/c.go" {
			t.Errorf("expected vendor/c.go to be excluded, got result: %+v", r)
		}
	}
}

func TestStartRespectsIncludeGlob(t *testing.T) {
	fsys := newTestFS(t)
	job := Start(fsys, Options{Root: "/proj", Query: "foo", IncludeGlobs: "*.go"})
	job.Wait()

	for _, r := range job.Snapshot() {
		if r.FilePath == "/proj/readme.md" {
			t.Errorf("expected readme.md to be excluded by include glob, got result: %+v", r)
		}
	}
}

func TestStartEmptyQueryMatchesEveryByte(t *testing.T) {
	fsys := vfs.NewMemFS()
	if err := fsys.AddFile("/proj/small.txt", "abc"); err != nil {
		t.Fatal(err)
	}
	job := Start(fsys, Options{Root: "/proj", Query: ""})
	job.Wait()

	results := job.Snapshot()
	if len(results) != 3 {
		t.Fatalf("got %d results for empty query, want 3 (one per byte): %+v", len(results), results)
	}
}

func TestCancelStopsJob(t *testing.T) {
	fsys := newTestFS(t)
	job := Start(fsys, Options{Root: "/proj", Query: "foo"})
	job.Cancel()
	job.Wait()

	if job.InProgress() {
		t.Error("expected job to have stopped after cancel")
	}
}

func TestReplaceInFilesRewritesMatchingFiles(t *testing.T) {
	fsys := vfs.NewMemFS()
	if err := fsys.AddFile("/proj/a.txt", "foo foo foo"); err != nil {
		t.Fatal(err)
	}
	if err := fsys.AddFile("/proj/b.txt", "nothing here"); err != nil {
		t.Fatal(err)
	}

	job := Start(fsys, Options{Root: "/proj", Query: "foo"})
	job.Wait()

	filesTouched, occurrences, err := job.ReplaceInFiles(fsys, "foo", "bar")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filesTouched != 1 {
		t.Errorf("expected 1 file touched, got %d", filesTouched)
	}
	if occurrences != 3 {
		t.Errorf("expected 3 occurrences replaced, got %d", occurrences)
	}

	data, err := fsys.ReadFile("/proj/a.txt")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "bar bar bar" {
		t.Errorf("got %q, want %q", string(data), "bar bar bar")
	}

	if len(job.Snapshot()) != 0 {
		t.Errorf("expected no remaining matches after replace, got %+v", job.Snapshot())
	}
}

func TestReplaceNonCascading(t *testing.T) {
	result, count := replaceNonCascading("aaa", "a", "aa")
	if count != 3 {
		t.Fatalf("expected 3 replacements, got %d", count)
	}
	if result != "aaaaaa" {
		t.Errorf("got %q, want %q", result, "aaaaaa")
	}
}

func TestLineColOf(t *testing.T) {
	text := "abc\ndef\nghi"
	line, col := lineColOf(text, 6)
	if line != 1 || col != 2 {
		t.Errorf("got line=%d col=%d, want line=1 col=2", line, col)
	}
}

func TestLineTextAt(t *testing.T) {
	text := "abc\ndef\nghi"
	if got := lineTextAt(text, 5); got != "def" {
		t.Errorf("got %q, want %q", got, "def")
	}
}
