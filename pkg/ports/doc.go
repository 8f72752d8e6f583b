/*
Package ports defines the driven ports (interfaces) for the draftkit engine.

These interfaces decouple the autoformat core from the document engine and
from the storage backend, so the same core runs against an in-memory store in
tests, a JSON file in the CLI, or Redis behind the HTTP server.

# Key Interfaces

  - DocumentEngine: the rich-text buffer, selection and serialization model.
  - BlobStore: get/set a string blob by key.
  - Locker: optional distributed lock around writes of a key.
*/
package ports
