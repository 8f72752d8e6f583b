/*
Package domain contains the core vocabulary shared by the draftkit engine,
its ports and its adapters.

It defines the results returned to the host surface, the error taxonomy of
the autoformat engine and the lifecycle events used for observability. The
document model itself lives in package document; this package is kept free
of I/O so that adapters can depend on it without pulling in the engine.

# Key Entities

  - HandleResult: tells the host whether default processing must be suppressed.
  - TransformError: a block or style transform the document engine rejected.
  - DeserializeError: a persisted blob that could not be restored.
  - LifecycleHooks: callbacks fired on triggers, saves and restores.
*/
package domain
