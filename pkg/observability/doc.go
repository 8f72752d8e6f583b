/*
Package observability provides tools for monitoring the draftkit engine.

It turns lifecycle hooks into Prometheus metrics (triggers fired, rejected
transforms, saves and restores) and into structured log lines.
*/
package observability
