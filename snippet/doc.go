// Package snippet stores named code snippets in SQLite so they can be
// retrieved later by numeric id or by name.
//
// A Store is an explicit, lifetime-scoped handle: open it, pass it to
// whoever needs it, close it. There is no package-level session.
//
// The store knows nothing about parsing. Callers that want to check a
// snippet before saving it parse it themselves.
package snippet
