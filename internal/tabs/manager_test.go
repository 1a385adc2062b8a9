package tabs

import "testing"

func TestNewManagerHasOneTab(t *testing.T) {
	m := NewManager()
	if m.TabCount() != 1 {
		t.Fatalf("expected 1 tab, got %d", m.TabCount())
	}
	if m.Active().DisplayName != "Untitled" {
		t.Errorf("expected Untitled tab, got %q", m.Active().DisplayName)
	}
}

func TestNewTabBecomesActive(t *testing.T) {
	m := NewManager()
	idx := m.NewTab("hello", "/tmp/a.txt")
	if idx != 1 {
		t.Fatalf("expected index 1, got %d", idx)
	}
	if m.ActiveIndex() != 1 {
		t.Errorf("expected active index 1, got %d", m.ActiveIndex())
	}
	if m.Active().Engine.Text() != "hello" {
		t.Errorf("unexpected content: %q", m.Active().Engine.Text())
	}
	if m.Active().DisplayName != "a.txt" {
		t.Errorf("unexpected display name: %q", m.Active().DisplayName)
	}
}

func TestCloseTabFailsOnLastUnlessForced(t *testing.T) {
	m := NewManager()
	if m.CloseTab(0, false) {
		t.Fatal("expected close to fail without force on sole tab")
	}
	if m.TabCount() != 1 {
		t.Fatalf("expected tab to remain, got count %d", m.TabCount())
	}

	m.Active().Engine.Insert(0, "x")
	if !m.CloseTab(0, true) {
		t.Fatal("expected forced close to succeed")
	}
	if m.TabCount() != 1 {
		t.Fatalf("expected replacement blank tab, got count %d", m.TabCount())
	}
	if m.Active().Engine.Text() != "" {
		t.Errorf("expected blank replacement tab, got %q", m.Active().Engine.Text())
	}
}

func TestCloseTabAdjustsActiveIndex(t *testing.T) {
	m := NewManager()
	m.NewTab("", "")
	m.NewTab("", "")
	m.SetActive(2)

	if !m.CloseTab(2, false) {
		t.Fatal("expected close to succeed")
	}
	if m.ActiveIndex() != 1 {
		t.Errorf("expected active index to clamp to 1, got %d", m.ActiveIndex())
	}
}

func TestCloseAllLeavesOneBlankTab(t *testing.T) {
	m := NewManager()
	m.NewTab("", "")
	m.NewTab("", "")
	m.CloseAll()

	if m.TabCount() != 1 {
		t.Fatalf("expected 1 tab, got %d", m.TabCount())
	}
	if m.ActiveIndex() != 0 {
		t.Errorf("expected active index 0, got %d", m.ActiveIndex())
	}
}

func TestNextPreviousWrapAround(t *testing.T) {
	m := NewManager()
	m.NewTab("", "")
	m.NewTab("", "")

	m.SetActive(2)
	m.Next()
	if m.ActiveIndex() != 0 {
		t.Errorf("expected wraparound to 0, got %d", m.ActiveIndex())
	}

	m.Previous()
	if m.ActiveIndex() != 2 {
		t.Errorf("expected wraparound to 2, got %d", m.ActiveIndex())
	}
}

func TestSetActiveCapturesOutgoingState(t *testing.T) {
	m := NewManager()
	m.Active().Engine.Insert(0, "hello")
	m.Active().Engine.SetPrimaryCursor(3)

	m.NewTab("", "")
	m.SetActive(0)

	if m.Tab(0).CursorPos != 3 {
		t.Errorf("expected captured cursor pos 3, got %d", m.Tab(0).CursorPos)
	}
}

func TestMoveTabPreservesActiveTab(t *testing.T) {
	m := NewManager()
	m.NewTab("b", "")
	m.NewTab("c", "")
	m.SetActive(2) // the "c" tab

	if !m.MoveTab(2, 0) {
		t.Fatal("expected move to succeed")
	}
	if m.ActiveIndex() != 0 {
		t.Errorf("expected active index 0 after move, got %d", m.ActiveIndex())
	}
	if m.Active().Engine.Text() != "c" {
		t.Errorf("expected moved tab to remain active, got content %q", m.Active().Engine.Text())
	}
}

func TestMarkDirtyClean(t *testing.T) {
	tab := newTab("", "", nil)
	if tab.IsDirty() {
		t.Fatal("expected new tab to not be dirty")
	}
	tab.MarkDirty()
	if !tab.IsDirty() {
		t.Error("expected tab to be dirty")
	}
	tab.MarkClean()
	if tab.IsDirty() {
		t.Error("expected tab to be clean")
	}
}
