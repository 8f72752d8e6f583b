// Package surface provides the host side of the editor: it owns the current
// document state, feeds edits to the trigger engine and serializes concurrent
// callers (HTTP handlers, MCP tools, a terminal loop).
package surface
