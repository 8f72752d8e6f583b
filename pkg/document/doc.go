/*
Package document implements the rich-text document engine used by draftkit.

A document is an ordered list of blocks. Each block carries a type tag
(paragraph, header, code block, list item...), its text, and one StyleSet per
character. Values are immutable: every edit returns a new Content or State and
never touches the one it was derived from, so a host can keep the previous
state around and fall back to it when an edit is rejected.

# Key Types

  - Block: a structural unit with a BlockType, text and per-character styles.
  - Content: the ordered blocks plus the selections before and after the last edit.
  - State: a Content, the current Selection and the pending inline style override.
  - Engine: the edit operations (insert, split, retype, toggle styles) and the
    conversion to and from the Raw serializable tree.

Offsets are expressed in runes, both in selections and in the Raw format.
*/
package document
