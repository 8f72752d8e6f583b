package draftkit

// Version is the library and CLI version. Overridden at build time with
// -ldflags "-X github.com/aretw0/draftkit.Version=...".
var Version = "0.1.0"
