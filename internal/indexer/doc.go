// Package indexer implements a background word index over project files:
// an inverted mapping from lowercased word to every location it occurs at,
// alongside a per-file line cache used to recover matched line text for
// display. Index maintenance (IndexFile, RemoveFile) and lookup (Search)
// are synchronous and safe for concurrent use; Start/Stop manage a worker
// goroutine kept for lifecycle symmetry with future push-based reindexing.
package indexer
