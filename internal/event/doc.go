// Package event defines the Facade's event types and a minimal
// synchronous publish/subscribe bus. It is a deliberately scaled-down
// re-expression of a much larger pub/sub subsystem: seven typed events,
// delivered synchronously to every subscriber on the publishing
// goroutine, with no topic trie, envelope metadata, or async dispatch
// queue, since the Facade never needs more than that.
package event
