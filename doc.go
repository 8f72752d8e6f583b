/*
Package draftkit is a rich-text editing core that turns markdown-style markers into formatting.

Typing or pasting "# ", "* ", "** ", "*** " or "``` " does not insert the marker.
Instead the engine applies the matching transform: a header, bold, the custom
red color, underline, or a new code block. Every committed change is persisted
as a serialized content tree under a single key of a pluggable BlobStore.

# Concept

The host ("Surface") owns the current document state and reports every change
to the engine. The engine matches the caret block against an ordered pattern
table (first match wins), dispatches the transform to the document engine and
writes the result. Storage, locking and the document model are ports, so the
same core runs in a CLI, behind an HTTP API or as an MCP tool server.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/draftkit"
		"github.com/aretw0/draftkit/pkg/adapters/memory"
	)

	func main() {
		eng, err := draftkit.New("", draftkit.WithStore(memory.NewStore()))
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		state := eng.Mount(ctx)

		// The host inserts each keystroke and reports the new state.
		for _, r := range "# Title" {
			next, err := eng.Document().InsertText(state, string(r))
			if err != nil {
				log.Fatal(err)
			}
			state = eng.OnChange(ctx, next)
		}

		log.Println(state.CaretBlock().Type()) // header-one
	}

Most hosts should use pkg/surface, which does this bookkeeping and serializes
concurrent events.
*/
package draftkit
