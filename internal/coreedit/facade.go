package coreedit

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/JaakkoJSeppala/coreedit/internal/coreerr"
	"github.com/JaakkoJSeppala/coreedit/internal/engine"
	"github.com/JaakkoJSeppala/coreedit/internal/event"
	"github.com/JaakkoJSeppala/coreedit/internal/indexer"
	"github.com/JaakkoJSeppala/coreedit/internal/project/projectsearch"
	"github.com/JaakkoJSeppala/coreedit/internal/project/vfs"
	"github.com/JaakkoJSeppala/coreedit/internal/session"
	"github.com/JaakkoJSeppala/coreedit/internal/tabs"
)

// Facade is the Core API Facade: the single entry point the presentation
// layer drives the editor through. Every mutation is routed through the
// active tab's engine.Engine, which guarantees (i) the command log
// receiving an edit is always the active tab's, (ii) a matching event is
// published on Bus, and (iii) failures surface as coreerr sentinels.
type Facade struct {
	mu sync.Mutex

	tabsMgr    *tabs.Manager
	sessionMgr *session.Manager
	fsys       vfs.VFS
	Bus        *event.Bus

	indexer *indexer.Indexer

	clipboard   Clipboard
	closePolicy ClosePolicy
	engineOpts  []engine.Option
	configDir   string
}

// New creates a Facade backed by fsys, with one blank tab open. configDir
// (session state's per-user directory) defaults to session.DefaultConfigDir
// unless overridden with WithConfigDir.
func New(fsys vfs.VFS, opts ...Option) (*Facade, error) {
	f := &Facade{
		fsys:        fsys,
		Bus:         event.NewBus(),
		indexer:     indexer.New(),
		clipboard:   NewMemClipboard(),
		closePolicy: AlwaysDiscardPolicy{},
	}
	for _, opt := range opts {
		opt(f)
	}

	f.tabsMgr = tabs.NewManager(f.engineOpts...)

	if f.configDir == "" {
		dir, err := session.DefaultConfigDir()
		if err != nil {
			return nil, coreerr.Wrap(coreerr.ErrIoError, "resolve-config-dir", err)
		}
		f.configDir = dir
	}
	f.sessionMgr = session.NewManager(fsys, f.configDir)
	if err := f.sessionMgr.Load(); err != nil {
		return nil, coreerr.Wrap(coreerr.ErrIoError, "load-session", err)
	}

	return f, nil
}

// Clipboard returns the Facade's current Clipboard collaborator.
func (f *Facade) Clipboard() Clipboard { return f.clipboard }

// Session returns the underlying session.Manager, for callers that need
// direct access to recent lists, root folders, or workspace save/load.
func (f *Facade) Session() *session.Manager { return f.sessionMgr }

// Indexer returns the background word indexer.
func (f *Facade) Indexer() *indexer.Indexer { return f.indexer }

// activeTab returns the active tab, or an ErrNotFound wrap if there is no
// active tab (which cannot happen once New has run, but dispatch still
// checks rather than assume).
func (f *Facade) activeTab() (*tabs.Tab, error) {
	tab := f.tabsMgr.Active()
	if tab == nil {
		return nil, coreerr.Wrap(coreerr.ErrNotFound, "active-tab", nil)
	}
	return tab, nil
}

// OpenTab opens a new tab over content (empty string for a blank buffer)
// and makes it the active tab, publishing TabOpened.
func (f *Facade) OpenTab(content, path string) int {
	f.mu.Lock()
	idx := f.tabsMgr.NewTab(content, path)
	f.mu.Unlock()

	event.Publish(f.Bus, event.TabOpened{TabIndex: idx, FilePath: path})
	return idx
}

// OpenFile reads path through the Facade's filesystem and opens it as a
// new tab.
func (f *Facade) OpenFile(path string) (int, error) {
	data, err := f.fsys.ReadFile(path)
	if err != nil {
		return 0, wrapIO(path, err)
	}
	idx := f.OpenTab(string(data), path)
	if err := f.sessionMgr.OpenFile(path); err != nil {
		return idx, coreerr.Wrap(coreerr.ErrIoError, "record-recent-file", err)
	}
	return idx, nil
}

// CloseTab closes tab i. If the tab is dirty, the Facade's ClosePolicy is
// consulted first; DecisionCancel aborts the close and returns
// coreerr.ErrConflict, DecisionSave writes the tab's content to its
// FilePath before closing. Closing the last remaining tab always succeeds,
// replacing it with a fresh blank tab.
func (f *Facade) CloseTab(i int) error {
	f.mu.Lock()
	tab := f.tabsMgr.Tab(i)
	f.mu.Unlock()
	if tab == nil {
		return coreerr.Wrap(coreerr.ErrNotFound, "close-tab", nil)
	}

	if tab.IsDirty() {
		decision, err := f.closePolicy.ConfirmDiscard(tab)
		if err != nil {
			return coreerr.Wrap(coreerr.ErrIoError, "confirm-discard", err)
		}
		switch decision {
		case DecisionCancel:
			return coreerr.Wrap(coreerr.ErrConflict, "close-tab", nil)
		case DecisionSave:
			if err := f.saveTab(tab); err != nil {
				return err
			}
		}
	}

	f.mu.Lock()
	f.tabsMgr.CloseTab(i, true)
	f.mu.Unlock()

	event.Publish(f.Bus, event.TabClosed{TabIndex: i})
	return nil
}

// NextTab / PreviousTab cycle the active tab.
func (f *Facade) NextTab() {
	f.mu.Lock()
	f.tabsMgr.Next()
	f.mu.Unlock()
}

func (f *Facade) PreviousTab() {
	f.mu.Lock()
	f.tabsMgr.Previous()
	f.mu.Unlock()
}

// SetActiveTab switches the active tab to index i.
func (f *Facade) SetActiveTab(i int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tabsMgr.SetActive(i)
}

// MoveTab relocates the tab at from to position to, preserving which tab
// is active.
func (f *Facade) MoveTab(from, to int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tabsMgr.MoveTab(from, to)
}

// TabCount returns the number of open tabs.
func (f *Facade) TabCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tabsMgr.TabCount()
}

// ActiveTabIndex returns the index of the active tab.
func (f *Facade) ActiveTabIndex() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tabsMgr.ActiveIndex()
}

// SaveActiveTab writes the active tab's content to its FilePath.
func (f *Facade) SaveActiveTab() error {
	tab, err := f.activeTab()
	if err != nil {
		return err
	}
	return f.saveTab(tab)
}

func (f *Facade) saveTab(tab *tabs.Tab) error {
	if tab.FilePath == "" {
		return coreerr.Wrap(coreerr.ErrInvalidArgument, "save-tab", fmt.Errorf("tab has no file path"))
	}
	if err := f.fsys.WriteFile(tab.FilePath, []byte(tab.Engine.Text()), 0o644); err != nil {
		return wrapIO(tab.FilePath, err)
	}
	tab.MarkClean()
	return nil
}

// Insert inserts text at offset in the active tab and publishes
// DocumentChanged.
func (f *Facade) Insert(offset engine.ByteOffset, text string) (engine.ByteOffset, error) {
	tab, err := f.activeTab()
	if err != nil {
		return 0, err
	}
	pos, editErr := tab.Engine.Insert(offset, text)
	if editErr != nil {
		return 0, coreerr.Wrap(coreerr.ErrOutOfRange, "insert", editErr)
	}
	tab.MarkDirty()
	f.publishDocumentChanged(tab)
	return pos, nil
}

// Delete removes [start, end) in the active tab and publishes
// DocumentChanged.
func (f *Facade) Delete(start, end engine.ByteOffset) error {
	tab, err := f.activeTab()
	if err != nil {
		return err
	}
	if editErr := tab.Engine.Delete(start, end); editErr != nil {
		return coreerr.Wrap(coreerr.ErrOutOfRange, "delete", editErr)
	}
	tab.MarkDirty()
	f.publishDocumentChanged(tab)
	return nil
}

// Replace replaces [start, end) with text in the active tab and publishes
// DocumentChanged.
func (f *Facade) Replace(start, end engine.ByteOffset, text string) (engine.ByteOffset, error) {
	tab, err := f.activeTab()
	if err != nil {
		return 0, err
	}
	pos, editErr := tab.Engine.Replace(start, end, text)
	if editErr != nil {
		return 0, coreerr.Wrap(coreerr.ErrOutOfRange, "replace", editErr)
	}
	tab.MarkDirty()
	f.publishDocumentChanged(tab)
	return pos, nil
}

// Undo reverts the active tab's most recent command and publishes
// DocumentChanged.
func (f *Facade) Undo() error {
	tab, err := f.activeTab()
	if err != nil {
		return err
	}
	if undoErr := tab.Engine.Undo(); undoErr != nil {
		return coreerr.Wrap(coreerr.ErrConflict, "undo", undoErr)
	}
	tab.MarkDirty()
	f.publishDocumentChanged(tab)
	return nil
}

// Redo reapplies the active tab's most recently undone command and
// publishes DocumentChanged.
func (f *Facade) Redo() error {
	tab, err := f.activeTab()
	if err != nil {
		return err
	}
	if redoErr := tab.Engine.Redo(); redoErr != nil {
		return coreerr.Wrap(coreerr.ErrConflict, "redo", redoErr)
	}
	tab.MarkDirty()
	f.publishDocumentChanged(tab)
	return nil
}

// SetPrimaryCursor moves the active tab's primary cursor and publishes
// CursorMoved.
func (f *Facade) SetPrimaryCursor(offset engine.ByteOffset) error {
	tab, err := f.activeTab()
	if err != nil {
		return err
	}
	tab.Engine.SetPrimaryCursor(offset)
	event.Publish(f.Bus, event.CursorMoved{TabIndex: f.tabsMgr.ActiveIndex(), Position: offset})
	return nil
}

// SetPrimarySelection sets the active tab's primary selection and
// publishes SelectionChanged.
func (f *Facade) SetPrimarySelection(sel engine.Selection) error {
	tab, err := f.activeTab()
	if err != nil {
		return err
	}
	tab.Engine.SetPrimarySelection(sel)
	event.Publish(f.Bus, event.SelectionChanged{TabIndex: f.tabsMgr.ActiveIndex()})
	return nil
}

// Type inserts text at every cursor of the active tab as one undoable
// action, replacing any selected text, and publishes DocumentChanged.
func (f *Facade) Type(text string) error {
	tab, err := f.activeTab()
	if err != nil {
		return err
	}
	if editErr := tab.Engine.TypeText(text); editErr != nil {
		return coreerr.Wrap(coreerr.ErrOutOfRange, "type", editErr)
	}
	tab.MarkDirty()
	f.publishDocumentChanged(tab)
	return nil
}

// DeleteLeft removes one byte before every cursor (or the selected text)
// in the active tab and publishes DocumentChanged.
func (f *Facade) DeleteLeft() error {
	tab, err := f.activeTab()
	if err != nil {
		return err
	}
	if editErr := tab.Engine.DeleteLeft(1); editErr != nil {
		return coreerr.Wrap(coreerr.ErrOutOfRange, "delete-left", editErr)
	}
	tab.MarkDirty()
	f.publishDocumentChanged(tab)
	return nil
}

// DeleteRight removes one byte after every cursor (or the selected text)
// in the active tab and publishes DocumentChanged.
func (f *Facade) DeleteRight() error {
	tab, err := f.activeTab()
	if err != nil {
		return err
	}
	if editErr := tab.Engine.DeleteRight(1); editErr != nil {
		return coreerr.Wrap(coreerr.ErrOutOfRange, "delete-right", editErr)
	}
	tab.MarkDirty()
	f.publishDocumentChanged(tab)
	return nil
}

// SelectAll selects the active tab's whole document and publishes
// SelectionChanged.
func (f *Facade) SelectAll() error {
	tab, err := f.activeTab()
	if err != nil {
		return err
	}
	tab.Engine.SelectAll()
	event.Publish(f.Bus, event.SelectionChanged{TabIndex: f.tabsMgr.ActiveIndex()})
	return nil
}

// CollapseSelections collapses every selection in the active tab to a
// bare cursor and publishes SelectionChanged.
func (f *Facade) CollapseSelections() error {
	tab, err := f.activeTab()
	if err != nil {
		return err
	}
	tab.Engine.CollapseSelections()
	event.Publish(f.Bus, event.SelectionChanged{TabIndex: f.tabsMgr.ActiveIndex()})
	return nil
}

// AddCursor adds an extra cursor at offset in the active tab and
// publishes CursorMoved.
func (f *Facade) AddCursor(offset engine.ByteOffset) error {
	tab, err := f.activeTab()
	if err != nil {
		return err
	}
	tab.Engine.AddCursor(offset)
	event.Publish(f.Bus, event.CursorMoved{TabIndex: f.tabsMgr.ActiveIndex(), Position: offset})
	return nil
}

// ClearExtraCursors drops every extra cursor in the active tab, keeping
// the primary, and publishes SelectionChanged.
func (f *Facade) ClearExtraCursors() error {
	tab, err := f.activeTab()
	if err != nil {
		return err
	}
	tab.Engine.ClearSecondary()
	event.Publish(f.Bus, event.SelectionChanged{TabIndex: f.tabsMgr.ActiveIndex()})
	return nil
}

// AddNextOccurrence grows the active tab's cursor set with the next
// occurrence of the current selection, publishing SelectionChanged on
// success. Returns false when there is nothing further to select.
func (f *Facade) AddNextOccurrence() (bool, error) {
	tab, err := f.activeTab()
	if err != nil {
		return false, err
	}
	grown := tab.Engine.AddNextOccurrence()
	if grown {
		event.Publish(f.Bus, event.SelectionChanged{TabIndex: f.tabsMgr.ActiveIndex()})
	}
	return grown, nil
}

// Copy puts the active tab's selected text on the clipboard. No-op
// returning false when nothing is selected.
func (f *Facade) Copy() (bool, error) {
	tab, err := f.activeTab()
	if err != nil {
		return false, err
	}
	text, ok := tab.Engine.SelectionText()
	if !ok {
		return false, nil
	}
	f.clipboard.Set([]byte(text))
	return true, nil
}

// Cut copies the active tab's selected text to the clipboard and removes
// it as one undoable action. No-op returning false when nothing is
// selected.
func (f *Facade) Cut() (bool, error) {
	copied, err := f.Copy()
	if err != nil || !copied {
		return false, err
	}
	tab, err := f.activeTab()
	if err != nil {
		return false, err
	}
	if editErr := tab.Engine.DeleteSelections(); editErr != nil {
		return false, coreerr.Wrap(coreerr.ErrOutOfRange, "cut", editErr)
	}
	tab.MarkDirty()
	f.publishDocumentChanged(tab)
	return true, nil
}

// Paste inserts the clipboard contents at every cursor of the active
// tab. No-op returning false when the clipboard is empty.
func (f *Facade) Paste() (bool, error) {
	data, ok := f.clipboard.Get()
	if !ok || len(data) == 0 {
		return false, nil
	}
	if err := f.Type(string(data)); err != nil {
		return false, err
	}
	return true, nil
}

func (f *Facade) publishDocumentChanged(tab *tabs.Tab) {
	event.Publish(f.Bus, event.DocumentChanged{
		TabIndex:   f.tabsMgr.ActiveIndex(),
		RevisionID: tab.Engine.RevisionID(),
	})
}

// IndexFile reads path through the Facade's filesystem and adds it to the
// background word index, logging and skipping on read failure rather than
// returning an error.
func (f *Facade) IndexFile(path string) {
	data, err := f.fsys.ReadFile(path)
	if err != nil {
		slog.Warn("indexer: skipping unreadable file", "path", path, "error", err)
		return
	}
	f.indexer.IndexFile(path, string(data))
}

// IndexPaths indexes every path in paths, skipping files that fail to
// read.
func (f *Facade) IndexPaths(paths []string) {
	for _, p := range paths {
		f.IndexFile(p)
	}
}

// StartSearch launches a project-wide search, forwarding its progress and
// completion as SearchProgress/SearchCompleted events on Bus.
func (f *Facade) StartSearch(opts projectsearch.Options) *projectsearch.Job {
	return projectsearch.StartWithCallbacks(f.fsys, opts,
		func(jobID string, count int) {
			event.Publish(f.Bus, event.SearchProgress{JobID: jobID, ResultsSoFar: count})
		},
		func(jobID string, total int) {
			event.Publish(f.Bus, event.SearchCompleted{JobID: jobID, TotalResults: total})
		},
	)
}
