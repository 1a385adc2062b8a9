package indexer

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// pollInterval is how often the background worker wakes to check the stop
// flag. The worker performs no indexing work itself; it exists to reserve
// a goroutine for future push-based reindexing.
const pollInterval = 200 * time.Millisecond

// Location is a single occurrence of an indexed word.
type Location struct {
	FilePath string
	Line     int
	Column   int
}

// Hit is a search result: a location plus the line text it occurred in.
type Hit struct {
	FilePath string
	Line     int
	Column   int
	LineText string
}

// Indexer maintains an inverted word index over a set of files, plus a
// line cache used to recover match context. Every operation on the maps
// holds a single mutex, so they are never observed mid-update; the worker
// lifecycle (Start/Stop/IsIndexing) uses atomic flags instead.
type Indexer struct {
	mu    sync.Mutex
	index map[string][]Location
	lines map[string][]string

	indexing atomic.Bool
	stop     atomic.Bool
	done     chan struct{}
}

// New creates an empty Indexer. The background worker is not started
// until Start is called.
func New() *Indexer {
	return &Indexer{
		index: make(map[string][]Location),
		lines: make(map[string][]string),
	}
}

// Start launches the background worker goroutine. Calling Start while
// already running is a no-op.
func (ix *Indexer) Start() {
	if !ix.indexing.CompareAndSwap(false, true) {
		return
	}
	ix.stop.Store(false)
	ix.done = make(chan struct{})
	go ix.run(ix.done)
}

// Stop signals the worker to exit and waits for it to do so. Calling Stop
// when not running is a no-op.
func (ix *Indexer) Stop() {
	if !ix.indexing.Load() {
		return
	}
	ix.stop.Store(true)
	<-ix.done
}

func (ix *Indexer) run(done chan struct{}) {
	defer close(done)
	defer ix.indexing.Store(false)
	for !ix.stop.Load() {
		time.Sleep(pollInterval)
	}
}

// IsIndexing reports whether the background worker is running.
func (ix *Indexer) IsIndexing() bool {
	return ix.indexing.Load()
}

// IndexedFileCount returns the number of files currently in the line
// cache.
func (ix *Indexer) IndexedFileCount() int {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return len(ix.lines)
}

// IndexFile (re)indexes a file: every existing location for path is
// removed, then content is tokenized and its words inserted.
func (ix *Indexer) IndexFile(path, content string) {
	lines := strings.Split(content, "\n")

	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.removeLocationsLocked(path)
	ix.lines[path] = lines

	for lineNo, line := range lines {
		for _, w := range tokenize(line) {
			word := strings.ToLower(w.text)
			ix.index[word] = append(ix.index[word], Location{
				FilePath: path,
				Line:     lineNo,
				Column:   w.column,
			})
		}
	}
}

// RemoveFile removes path's inverted-index locations and its line cache
// entry.
func (ix *Indexer) RemoveFile(path string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.removeLocationsLocked(path)
	delete(ix.lines, path)
}

// removeLocationsLocked deletes every location for path from the inverted
// index. Callers must hold ix.mu.
func (ix *Indexer) removeLocationsLocked(path string) {
	for word, locs := range ix.index {
		filtered := locs[:0]
		for _, loc := range locs {
			if loc.FilePath != path {
				filtered = append(filtered, loc)
			}
		}
		if len(filtered) == 0 {
			delete(ix.index, word)
		} else {
			ix.index[word] = filtered
		}
	}
}

// Search looks up the lowercased query in the inverted index and returns
// up to maxResults hits, each carrying the recovered line text.
func (ix *Indexer) Search(query string, maxResults int) []Hit {
	query = strings.ToLower(query)

	ix.mu.Lock()
	defer ix.mu.Unlock()

	locs := ix.index[query]
	if maxResults <= 0 || maxResults > len(locs) {
		maxResults = len(locs)
	}

	hits := make([]Hit, 0, maxResults)
	for i := 0; i < maxResults; i++ {
		loc := locs[i]
		lineText := ""
		if fileLines, ok := ix.lines[loc.FilePath]; ok && loc.Line < len(fileLines) {
			lineText = fileLines[loc.Line]
		}
		hits = append(hits, Hit{
			FilePath: loc.FilePath,
			Line:     loc.Line,
			Column:   loc.Column,
			LineText: lineText,
		})
	}
	return hits
}

type token struct {
	text   string
	column int
}

// tokenize splits line into maximal runs of [A-Za-z0-9_] of length at
// least 3, recording each run's starting column.
func tokenize(line string) []token {
	var tokens []token
	start := -1
	for i := 0; i <= len(line); i++ {
		var isWordByte bool
		if i < len(line) {
			isWordByte = isWordChar(line[i])
		}
		if isWordByte {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if i-start >= 3 {
				tokens = append(tokens, token{text: line[start:i], column: start})
			}
			start = -1
		}
	}
	return tokens
}

func isWordChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '_':
		return true
	}
	return false
}
