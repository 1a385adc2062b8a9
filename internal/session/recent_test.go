package session

import (
	"testing"

	"github.com/JaakkoJSeppala/coreedit/internal/project/vfs"
)

func TestMRUListAddMovesToFront(t *testing.T) {
	l := NewMRUList("/cfg/recent", 10)
	l.Add("a")
	l.Add("b")
	l.Add("a")

	items := l.Items()
	want := []string{"a", "b"}
	if len(items) != len(want) {
		t.Fatalf("got %v, want %v", items, want)
	}
	for i := range want {
		if items[i] != want[i] {
			t.Errorf("got %v, want %v", items, want)
			break
		}
	}
}

func TestMRUListTrimsToMaxSize(t *testing.T) {
	l := NewMRUList("/cfg/recent", 2)
	l.Add("a")
	l.Add("b")
	l.Add("c")

	items := l.Items()
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0] != "c" || items[1] != "b" {
		t.Errorf("unexpected order: %v", items)
	}
}

func TestMRUListSaveLoadSkipsMissing(t *testing.T) {
	fsys := vfs.NewMemFS()
	if err := fsys.AddFile("/a.txt", "x"); err != nil {
		t.Fatal(err)
	}

	l := NewMRUList("/cfg/recent", 10)
	l.Add("/gone.txt")
	l.Add("/a.txt")
	if err := l.Save(fsys); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	l2 := NewMRUList("/cfg/recent", 10)
	if err := l2.Load(fsys); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	items := l2.Items()
	if len(items) != 1 || items[0] != "/a.txt" {
		t.Errorf("expected only existing path to survive load, got %v", items)
	}
}

func TestMRUListClear(t *testing.T) {
	l := NewMRUList("/cfg/recent", 10)
	l.Add("a")
	l.Clear()
	if len(l.Items()) != 0 {
		t.Error("expected empty list after clear")
	}
}
