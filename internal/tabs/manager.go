package tabs

import (
	"sync"

	"github.com/JaakkoJSeppala/coreedit/internal/engine"
)

// Manager owns an ordered set of Tabs and tracks which one is active. It
// always contains at least one tab.
type Manager struct {
	mu         sync.Mutex
	tabs       []*Tab
	active     int
	engineOpts []engine.Option
}

// NewManager creates a Manager with a single blank tab. engineOpts are
// applied to every Engine the Manager subsequently constructs.
func NewManager(engineOpts ...engine.Option) *Manager {
	m := &Manager{engineOpts: engineOpts}
	m.tabs = []*Tab{newTab("", "", engineOpts)}
	return m
}

// NewTab creates a tab with the given initial content and file path,
// makes it active, and returns its index.
func (m *Manager) NewTab(content, path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.captureActiveLocked()
	m.tabs = append(m.tabs, newTab(content, path, m.engineOpts))
	m.active = len(m.tabs) - 1
	return m.active
}

// CloseTab closes the tab at index i. If i is the last remaining tab,
// CloseTab fails (returns false) unless force is true, in which case the
// sole tab is replaced with a fresh blank one so the invariant of at
// least one tab always holds.
func (m *Manager) CloseTab(i int, force bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i < 0 || i >= len(m.tabs) {
		return false
	}

	if len(m.tabs) == 1 {
		if !force {
			return false
		}
		m.tabs[0] = newTab("", "", m.engineOpts)
		m.active = 0
		return true
	}

	m.tabs = append(m.tabs[:i], m.tabs[i+1:]...)
	switch {
	case m.active >= len(m.tabs):
		m.active = len(m.tabs) - 1
	case m.active > i:
		m.active--
	}
	return true
}

// CloseAll closes every tab and replaces them with a single fresh blank
// tab.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tabs = []*Tab{newTab("", "", m.engineOpts)}
	m.active = 0
}

// Active returns the currently active tab.
func (m *Manager) Active() *Tab {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tabs[m.active]
}

// ActiveIndex returns the index of the currently active tab.
func (m *Manager) ActiveIndex() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// SetActive switches the active tab to index i, capturing the outgoing
// tab's cursor/scroll state first. Returns false if i is out of range.
func (m *Manager) SetActive(i int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.tabs) {
		return false
	}
	if i == m.active {
		return true
	}
	m.captureActiveLocked()
	m.active = i
	return true
}

// Next switches to the next tab, wrapping around to the first.
func (m *Manager) Next() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.tabs) == 0 {
		return
	}
	m.captureActiveLocked()
	m.active = (m.active + 1) % len(m.tabs)
}

// Previous switches to the previous tab, wrapping around to the last.
func (m *Manager) Previous() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.tabs) == 0 {
		return
	}
	m.captureActiveLocked()
	if m.active == 0 {
		m.active = len(m.tabs) - 1
	} else {
		m.active--
	}
}

// MoveTab moves the tab at index from to index to, a stable permutation
// that preserves which tab is active (not which index is active).
func (m *Manager) MoveTab(from, to int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if from < 0 || from >= len(m.tabs) || to < 0 || to >= len(m.tabs) {
		return false
	}
	if from == to {
		return true
	}

	activeTab := m.tabs[m.active]

	moved := m.tabs[from]
	m.tabs = append(m.tabs[:from], m.tabs[from+1:]...)
	m.tabs = append(m.tabs[:to], append([]*Tab{moved}, m.tabs[to:]...)...)

	for idx, t := range m.tabs {
		if t == activeTab {
			m.active = idx
			break
		}
	}
	return true
}

// TabCount returns the number of open tabs.
func (m *Manager) TabCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tabs)
}

// Tabs returns a copy of the current tab list, in order.
func (m *Manager) Tabs() []*Tab {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Tab, len(m.tabs))
	copy(out, m.tabs)
	return out
}

// Tab returns the tab at index i, or nil if out of range.
func (m *Manager) Tab(i int) *Tab {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.tabs) {
		return nil
	}
	return m.tabs[i]
}

// captureActiveLocked snapshots the currently active tab's live
// cursor/scroll position. Callers must hold m.mu.
func (m *Manager) captureActiveLocked() {
	if len(m.tabs) == 0 {
		return
	}
	m.tabs[m.active].captureState()
}
