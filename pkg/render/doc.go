// Package render turns document content into text for display: ANSI for
// terminals, Markdown, and HTML. The engine knows nothing about rendering;
// decorators map style predicates to annotations here.
package render
