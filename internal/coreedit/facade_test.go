package coreedit

import (
	"testing"

	"github.com/JaakkoJSeppala/coreedit/internal/engine"
	"github.com/JaakkoJSeppala/coreedit/internal/event"
	"github.com/JaakkoJSeppala/coreedit/internal/project/projectsearch"
	"github.com/JaakkoJSeppala/coreedit/internal/project/vfs"
	"github.com/JaakkoJSeppala/coreedit/internal/tabs"
)

func engineSpan(anchor, head engine.ByteOffset) engine.Selection {
	return engine.Selection{Anchor: anchor, Head: head}
}

func newTestFacade(t *testing.T) *Facade {
	t.Helper()
	fsys := vfs.NewMemFS()
	f, err := New(fsys, WithConfigDir("/cfg"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f
}

func TestNewFacadeHasOneBlankTab(t *testing.T) {
	f := newTestFacade(t)
	if f.TabCount() != 1 {
		t.Errorf("expected 1 tab, got %d", f.TabCount())
	}
}

func TestInsertPublishesDocumentChanged(t *testing.T) {
	f := newTestFacade(t)
	var got event.DocumentChanged
	event.Subscribe(f.Bus, func(e event.DocumentChanged) { got = e })

	if _, err := f.Insert(0, "hello"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if got.TabIndex != 0 {
		t.Errorf("expected TabIndex 0, got %d", got.TabIndex)
	}

	tab := f.tabsMgr.Active()
	if !tab.IsDirty() {
		t.Errorf("expected tab to be dirty after insert")
	}
	if tab.Engine.Text() != "hello" {
		t.Errorf("expected buffer text %q, got %q", "hello", tab.Engine.Text())
	}
}

func TestUndoRevertsInsert(t *testing.T) {
	f := newTestFacade(t)
	if _, err := f.Insert(0, "hello"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := f.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if text := f.tabsMgr.Active().Engine.Text(); text != "" {
		t.Errorf("expected empty text after undo, got %q", text)
	}
}

func TestOpenTabPublishesTabOpened(t *testing.T) {
	f := newTestFacade(t)
	var got event.TabOpened
	event.Subscribe(f.Bus, func(e event.TabOpened) { got = e })

	idx := f.OpenTab("content", "/a.txt")
	if idx != 1 {
		t.Errorf("expected second tab at index 1, got %d", idx)
	}
	if got.FilePath != "/a.txt" {
		t.Errorf("expected FilePath /a.txt, got %q", got.FilePath)
	}
}

func TestCloseLastTabReplacesWithBlank(t *testing.T) {
	f := newTestFacade(t)
	if err := f.CloseTab(0); err != nil {
		t.Fatalf("CloseTab: %v", err)
	}
	if f.TabCount() != 1 {
		t.Errorf("expected 1 tab after closing the last one, got %d", f.TabCount())
	}
	if f.tabsMgr.Active().Engine.Text() != "" {
		t.Errorf("expected replacement tab to be blank")
	}
}

func TestCloseDirtyTabWithCancelPolicy(t *testing.T) {
	f := newTestFacade(t)
	f.OpenTab("x", "/b.txt")
	f.tabsMgr.Active().MarkDirty()
	f.closePolicy = cancelPolicy{}

	err := f.CloseTab(f.ActiveTabIndex())
	if err == nil {
		t.Fatalf("expected CloseTab to fail when policy cancels")
	}
}

type cancelPolicy struct{}

func (cancelPolicy) ConfirmDiscard(tab *tabs.Tab) (Decision, error) {
	return DecisionCancel, nil
}

func TestMultiCursorTypeReplacesEveryOccurrence(t *testing.T) {
	f := newTestFacade(t)
	if _, err := f.Insert(0, "foo foo foo"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	tab := f.tabsMgr.Active()
	tab.Engine.SetPrimarySelection(engineSpan(0, 3))

	for i := 0; i < 2; i++ {
		grown, err := f.AddNextOccurrence()
		if err != nil {
			t.Fatalf("AddNextOccurrence: %v", err)
		}
		if !grown {
			t.Fatalf("AddNextOccurrence %d did not grow", i)
		}
	}

	if err := f.Type("bar"); err != nil {
		t.Fatalf("Type: %v", err)
	}
	if got := tab.Engine.Text(); got != "bar bar bar" {
		t.Errorf("text = %q, want %q", got, "bar bar bar")
	}
}

func TestCopyCutPasteRoundTrip(t *testing.T) {
	f := newTestFacade(t)
	if _, err := f.Insert(0, "hello world"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	tab := f.tabsMgr.Active()

	// Copy with no selection is a no-op.
	if copied, err := f.Copy(); err != nil || copied {
		t.Fatalf("Copy without selection: copied=%v err=%v", copied, err)
	}

	tab.Engine.SetPrimarySelection(engineSpan(5, 11))
	cut, err := f.Cut()
	if err != nil || !cut {
		t.Fatalf("Cut: cut=%v err=%v", cut, err)
	}
	if got := tab.Engine.Text(); got != "hello" {
		t.Fatalf("after cut: %q", got)
	}
	if data, ok := f.Clipboard().Get(); !ok || string(data) != " world" {
		t.Fatalf("clipboard = %q, %v", data, ok)
	}

	tab.Engine.SetPrimaryCursor(0)
	pasted, err := f.Paste()
	if err != nil || !pasted {
		t.Fatalf("Paste: pasted=%v err=%v", pasted, err)
	}
	if got := tab.Engine.Text(); got != " worldhello" {
		t.Errorf("after paste: %q", got)
	}
}

func TestDeleteLeftPublishesDocumentChanged(t *testing.T) {
	f := newTestFacade(t)
	if _, err := f.Insert(0, "abc"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	f.tabsMgr.Active().Engine.SetPrimaryCursor(3)

	events := 0
	event.Subscribe(f.Bus, func(e event.DocumentChanged) { events++ })

	if err := f.DeleteLeft(); err != nil {
		t.Fatalf("DeleteLeft: %v", err)
	}
	if got := f.tabsMgr.Active().Engine.Text(); got != "ab" {
		t.Errorf("text = %q, want ab", got)
	}
	if events != 1 {
		t.Errorf("DocumentChanged fired %d times, want 1", events)
	}
}

func TestSelectAllThenCopy(t *testing.T) {
	f := newTestFacade(t)
	if _, err := f.Insert(0, "abc"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := f.SelectAll(); err != nil {
		t.Fatalf("SelectAll: %v", err)
	}
	if copied, err := f.Copy(); err != nil || !copied {
		t.Fatalf("Copy: %v %v", copied, err)
	}
	if data, _ := f.Clipboard().Get(); string(data) != "abc" {
		t.Errorf("clipboard = %q", data)
	}
}

func TestSearchEmitsProgressAndCompletion(t *testing.T) {
	fsys := vfs.NewMemFS()
	if err := fsys.MkdirAll("/proj", 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := fsys.WriteFile("/proj/a.txt", []byte("foo foo"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, err := New(fsys, WithConfigDir("/cfg"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	progressCount := 0
	event.Subscribe(f.Bus, func(e event.SearchProgress) { progressCount++ })
	completed := false
	var total int
	event.Subscribe(f.Bus, func(e event.SearchCompleted) {
		completed = true
		total = e.TotalResults
	})

	job := f.StartSearch(projectsearch.Options{Root: "/proj", Query: "foo"})
	job.Wait()

	if !completed {
		t.Fatalf("expected SearchCompleted to fire")
	}
	if total != 2 {
		t.Errorf("expected 2 total results, got %d", total)
	}
	if progressCount != 2 {
		t.Errorf("expected 2 progress events, got %d", progressCount)
	}
}
