package projectsearch

import (
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/JaakkoJSeppala/coreedit/internal/project/vfs"
)

// Result is a single occurrence of a query string within a project file.
type Result struct {
	FilePath string
	Line     int
	Column   int
	LineText string
}

// Options configures a project-wide search.
type Options struct {
	// Root is the directory the search is rooted at.
	Root string

	// Query is the literal text to search for. An empty query matches at
	// every byte position in every admitted file.
	Query string

	// IncludeGlobs is a semicolon- or comma-separated pattern list; a file
	// is admitted only if no include patterns are given or at least one
	// matches. See matchesPattern for the glob language.
	IncludeGlobs string

	// ExcludeGlobs is a semicolon- or comma-separated pattern list; a file
	// is rejected if any pattern matches, regardless of IncludeGlobs.
	ExcludeGlobs string
}

// Job is a single project search in flight or completed. It streams
// Results into a lock-guarded slice that Snapshot exposes as a point-in-time
// copy, and can be cancelled mid-walk via Cancel.
type Job struct {
	id   string
	opts Options

	cancelled  atomic.Bool
	inProgress atomic.Bool

	mu      sync.Mutex
	results []Result

	wg sync.WaitGroup

	onResult   func(jobID string, count int)
	onComplete func(jobID string, total int)
}

// Start launches a project search over fsys rooted at opts.Root and returns
// immediately with a Job the caller can poll, snapshot, or cancel. The
// search runs in background goroutines; InProgress reports false once every
// worker has finished.
func Start(fsys vfs.VFS, opts Options) *Job {
	return StartWithCallbacks(fsys, opts, nil, nil)
}

// StartWithCallbacks behaves like Start, but additionally invokes onResult
// after every match is recorded (with the job's ID and the running total)
// and onComplete once the worker pool has finished (with the job's ID and
// the final total). Both callbacks may be nil. The job ID is passed
// explicitly rather than via the returned *Job, since both callbacks can
// fire on a search worker goroutine before Start's own caller receives
// that value. They run synchronously, so callers forwarding them to an
// event bus must not block in them.
func StartWithCallbacks(fsys vfs.VFS, opts Options, onResult func(jobID string, count int), onComplete func(jobID string, total int)) *Job {
	j := &Job{
		id:         uuid.NewString(),
		opts:       opts,
		onResult:   onResult,
		onComplete: onComplete,
	}
	j.inProgress.Store(true)

	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		defer j.inProgress.Store(false)
		j.run(fsys)
		if j.onComplete != nil {
			j.mu.Lock()
			total := len(j.results)
			j.mu.Unlock()
			j.onComplete(j.id, total)
		}
	}()

	return j
}

// ID returns the job's unique identifier.
func (j *Job) ID() string { return j.id }

// Cancel requests that the job stop scanning as soon as possible. It does
// not block until the job has actually stopped; poll InProgress for that.
func (j *Job) Cancel() {
	j.cancelled.Store(true)
}

// InProgress reports whether the job's worker pool is still running.
func (j *Job) InProgress() bool {
	return j.inProgress.Load()
}

// Wait blocks until the job's worker pool has finished.
func (j *Job) Wait() {
	j.wg.Wait()
}

// Snapshot returns a copy of the results found so far.
func (j *Job) Snapshot() []Result {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Result, len(j.results))
	copy(out, j.results)
	return out
}

func (j *Job) addResult(r Result) {
	j.mu.Lock()
	j.results = append(j.results, r)
	count := len(j.results)
	j.mu.Unlock()
	if j.onResult != nil {
		j.onResult(j.id, count)
	}
}

// run enumerates every admitted file under opts.Root, then fans the list
// out to a worker pool that scans each file for occurrences of opts.Query.
func (j *Job) run(fsys vfs.VFS) {
	includeGlobs := splitPatternList(j.opts.IncludeGlobs)
	excludeGlobs := splitPatternList(j.opts.ExcludeGlobs)

	var paths []string
	_ = fsys.WalkDir(j.opts.Root, func(path string, d vfs.DirEntry, err error) error {
		if j.cancelled.Load() {
			return vfs.SkipAll
		}
		if err != nil || d.IsDir {
			return nil
		}
		rel := path
		if r, relErr := fsys.Rel(j.opts.Root, path); relErr == nil {
			rel = r
		}
		rel = filepathToSlash(rel)
		if admitted(rel, includeGlobs, excludeGlobs) {
			paths = append(paths, path)
		}
		return nil
	})

	if len(paths) == 0 || j.cancelled.Load() {
		return
	}

	workers := runtime.GOMAXPROCS(0)
	if workers < 2 {
		workers = 2
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	var cursor int64 = -1
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				if j.cancelled.Load() {
					return
				}
				idx := atomic.AddInt64(&cursor, 1)
				if int(idx) >= len(paths) {
					return
				}
				j.scanFile(fsys, paths[idx])
			}
		}()
	}
	wg.Wait()
}

// scanFile scans a single file for every non-overlapping occurrence of the
// job's query, appending a Result for each. An empty query matches at every
// byte position, advancing one byte at a time so the scan terminates.
func (j *Job) scanFile(fsys vfs.VFS, path string) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		slog.Warn("project search: skipping unreadable file", "path", path, "error", err)
		return
	}
	text := string(data)
	query := j.opts.Query

	pos := 0
	for pos <= len(text) {
		if j.cancelled.Load() {
			return
		}

		var matchAt int
		if query == "" {
			if pos >= len(text) {
				break
			}
			matchAt = pos
		} else {
			idx := strings.Index(text[pos:], query)
			if idx < 0 {
				break
			}
			matchAt = pos + idx
		}

		line, col := lineColOf(text, matchAt)
		j.addResult(Result{
			FilePath: path,
			Line:     line,
			Column:   col,
			LineText: lineTextAt(text, matchAt),
		})

		if query == "" {
			pos = matchAt + 1
		} else {
			pos = matchAt + len(query)
		}
	}
}

// lineColOf returns the zero-based line and column of a byte position
// within text.
func lineColOf(text string, position int) (line, column int) {
	prefix := text[:position]
	line = strings.Count(prefix, "\n")
	if idx := strings.LastIndexByte(prefix, '\n'); idx >= 0 {
		column = position - idx - 1
	} else {
		column = position
	}
	return line, column
}

// lineTextAt returns the full line of text containing position, without
// its trailing newline.
func lineTextAt(text string, position int) string {
	start := strings.LastIndexByte(text[:position], '\n') + 1
	end := strings.IndexByte(text[position:], '\n')
	if end < 0 {
		return text[start:]
	}
	return text[start : position+end]
}

// filepathToSlash normalizes path separators to '/' for glob matching.
func filepathToSlash(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}

// ReplaceInFiles rewrites every file currently holding a result, replacing
// each occurrence of query with replacement left to right without
// cascading (a replacement's own text is never rescanned). It returns the
// number of distinct files touched and the total number of occurrences
// replaced, then refreshes the job's results by re-running the search.
func (j *Job) ReplaceInFiles(fsys vfs.VFS, query, replacement string) (filesTouched, occurrences int, err error) {
	paths := j.distinctResultPaths()

	for _, path := range paths {
		data, readErr := fsys.ReadFile(path)
		if readErr != nil {
			slog.Warn("project search: skipping unreadable file during replace", "path", path, "error", readErr)
			err = readErr
			continue
		}
		original := string(data)
		updated, n := replaceNonCascading(original, query, replacement)
		if n == 0 {
			continue
		}
		if writeErr := fsys.WriteFile(path, []byte(updated), 0o644); writeErr != nil {
			slog.Warn("project search: failed to write replacement", "path", path, "error", writeErr)
			err = writeErr
			continue
		}
		filesTouched++
		occurrences += n
	}

	fresh := Start(fsys, j.opts)
	fresh.Wait()
	j.mu.Lock()
	j.results = fresh.Snapshot()
	j.mu.Unlock()

	return filesTouched, occurrences, err
}

// distinctResultPaths returns the sorted, deduplicated set of file paths
// appearing in the job's current results.
func (j *Job) distinctResultPaths() []string {
	j.mu.Lock()
	seen := make(map[string]struct{})
	for _, r := range j.results {
		seen[r.FilePath] = struct{}{}
	}
	j.mu.Unlock()

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// replaceNonCascading replaces every non-overlapping occurrence of query in
// text with replacement, scanning left to right without rescanning
// replaced text. It returns the updated text and the number of
// replacements made.
func replaceNonCascading(text, query, replacement string) (string, int) {
	if query == "" {
		return text, 0
	}
	var b strings.Builder
	count := 0
	pos := 0
	for {
		idx := strings.Index(text[pos:], query)
		if idx < 0 {
			break
		}
		start := pos + idx
		b.WriteString(text[pos:start])
		b.WriteString(replacement)
		pos = start + len(query)
		count++
	}
	if count == 0 {
		return text, 0
	}
	b.WriteString(text[pos:])
	return b.String(), count
}
