package render

import (
	"html"
	"strconv"
	"strings"

	"github.com/aretw0/draftkit/pkg/document"
)

var headerTags = [...]string{"", "h1", "h2", "h3", "h4", "h5", "h6"}

// HTML renders content as an HTML fragment. Code blocks carry the class
// returned by BlockClass; list items carry their depth as a class.
func HTML(c *document.Content, decorators ...Decorator) string {
	decorators = decoratorsOrDefault(decorators)
	var sb strings.Builder
	openList := ""

	for _, b := range c.Blocks() {
		t := b.Type()
		listTag := ""
		switch t {
		case document.UnorderedListItem:
			listTag = "ul"
		case document.OrderedListItem:
			listTag = "ol"
		}
		if openList != "" && openList != listTag {
			sb.WriteString("</" + openList + ">\n")
			openList = ""
		}
		if listTag != "" && openList == "" {
			sb.WriteString("<" + listTag + ">\n")
			openList = listTag
		}

		inner := inlineHTML(b, decorators)
		switch {
		case t.HeaderLevel() > 0:
			tag := headerTags[t.HeaderLevel()]
			sb.WriteString("<" + tag + ">" + inner + "</" + tag + ">\n")
		case t == document.Blockquote:
			sb.WriteString("<blockquote>" + inner + "</blockquote>\n")
		case t == document.CodeBlock:
			sb.WriteString(`<pre class="` + BlockClass(b) + `"><code>` + inner + "</code></pre>\n")
		case listTag != "":
			sb.WriteString(`<li class="depth-` + strconv.Itoa(b.Depth()) + `">` + inner + "</li>\n")
		default:
			sb.WriteString("<p>" + inner + "</p>\n")
		}
	}
	if openList != "" {
		sb.WriteString("</" + openList + ">\n")
	}
	return sb.String()
}

func inlineHTML(b *document.Block, decorators []Decorator) string {
	var sb strings.Builder
	for _, seg := range Segments(b, decorators...) {
		text := html.EscapeString(seg.Text)
		if seg.Styles.Has(document.Code) {
			text = "<code>" + text + "</code>"
		}
		if seg.Styles.Has(document.Strikethrough) {
			text = "<s>" + text + "</s>"
		}
		if seg.Styles.Has(document.Underline) {
			text = "<u>" + text + "</u>"
		}
		if seg.Styles.Has(document.Italic) {
			text = "<em>" + text + "</em>"
		}
		if seg.Styles.Has(document.Bold) {
			text = "<strong>" + text + "</strong>"
		}
		if color := seg.Color(); color != "" {
			text = `<span style="color: ` + html.EscapeString(color) + `">` + text + "</span>"
		}
		sb.WriteString(text)
	}
	return sb.String()
}
