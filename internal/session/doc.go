// Package session persists editor state across restarts: a per-workspace
// workspace file recording root folders, open files, and their cursor/
// scroll positions; a per-user settings file; and MRU lists of recently
// opened files and workspaces.
//
// The workspace file is read with github.com/tidwall/gjson and written
// with github.com/tidwall/sjson rather than encoding/json structs: gjson's
// path lookups naturally ignore unknown fields on read, and sjson's
// patch-style writer owns JSON string escaping for the four documented
// fields without a permissive struct-tag scheme. Recent-files/workspaces
// lists and the settings file remain plain line-oriented text, matching
// their simpler formats.
package session
