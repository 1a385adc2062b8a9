// Package coreedit is the Core API Facade: the narrow surface the
// presentation layer drives the editor through. Every mutation is routed
// through a Facade value so it can enforce that only the active tab's
// engine receives the command, emit the corresponding event on its Bus,
// and surface errors through the coreerr taxonomy.
//
// A Facade owns a tabs.Manager (one engine.Engine + viewport.Viewport per
// open tab), a session.Manager (recent files/workspaces, root folders,
// settings persistence), and an event.Bus. Project-wide search and
// background indexing are exposed as separate, longer-lived operations
// since both outlive any single dispatched command.
package coreedit
