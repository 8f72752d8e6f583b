/*
Package autoformat holds the ordered table of markdown-style trigger markers
and the matcher that picks, from a block's text or a pasted payload, the
transform to apply.

The table is evaluated top to bottom and the first match wins. Markers made of
a run of '*' of different lengths are listed longest first; Validate rejects
tables where a shorter marker would shadow a longer one.
*/
package autoformat
