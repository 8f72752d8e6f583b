package render

import (
	"strconv"
	"strings"

	"github.com/aretw0/draftkit/pkg/document"
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"~", `\~`,
	"<", "&lt;",
)

// Markdown renders content as CommonMark with inline HTML for styles that
// Markdown lacks (underline, colors). Consecutive code blocks share one fence.
func Markdown(c *document.Content, decorators ...Decorator) string {
	decorators = decoratorsOrDefault(decorators)
	var sb strings.Builder
	counters := newListCounters()
	blocks := c.Blocks()
	fence := ""
	prev := document.BlockType("")

	for i, b := range blocks {
		t := b.Type()
		inCode := fence != ""
		if inCode && t != document.CodeBlock {
			sb.WriteString(fence + "\n")
			fence, inCode = "", false
		}
		if i > 0 && !inCode && !(t.IsList() && prev.IsList()) {
			sb.WriteByte('\n')
		}
		if !t.IsList() {
			counters.reset()
		}
		prev = t

		switch {
		case t == document.CodeBlock:
			if !inCode {
				fence = codeFence(blocks[i:])
				sb.WriteString(fence + "\n")
			}
			sb.WriteString(b.Text())
			sb.WriteByte('\n')
			continue
		case t.HeaderLevel() > 0:
			sb.WriteString(strings.Repeat("#", t.HeaderLevel()) + " ")
		case t == document.Blockquote:
			sb.WriteString("> ")
		case t == document.UnorderedListItem:
			sb.WriteString(strings.Repeat("  ", b.Depth()) + "- ")
		case t == document.OrderedListItem:
			sb.WriteString(strings.Repeat("   ", b.Depth()) + strconv.Itoa(counters.next(b)) + ". ")
		}

		text := inlineMarkdown(b, decorators)
		if t == document.Unstyled && startsBlockSyntax(text) {
			text = `\` + text
		}
		sb.WriteString(text)
		sb.WriteByte('\n')
	}
	if fence != "" {
		sb.WriteString(fence + "\n")
	}
	return sb.String()
}

// codeFence returns a fence longer than any backtick run in the code blocks
// at the head of blocks.
func codeFence(blocks []*document.Block) string {
	longest := 0
	for _, b := range blocks {
		if b.Type() != document.CodeBlock {
			break
		}
		longest = max(longest, longestBacktickRun(b.Text()))
	}
	return strings.Repeat("`", max(3, longest+1))
}

// codeSpan wraps text in a backtick string that cannot occur inside it. Text
// that begins or ends with a backtick is padded, since CommonMark strips one
// space from each side of a span.
func codeSpan(text string) string {
	ticks := strings.Repeat("`", longestBacktickRun(text)+1)
	if strings.HasPrefix(text, "`") || strings.HasSuffix(text, "`") {
		text = " " + text + " "
	}
	return ticks + text + ticks
}

func longestBacktickRun(text string) int {
	longest, run := 0, 0
	for _, r := range text {
		if r != '`' {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	return longest
}

func inlineMarkdown(b *document.Block, decorators []Decorator) string {
	var sb strings.Builder
	for _, seg := range Segments(b, decorators...) {
		if seg.Styles.Has(document.Code) {
			sb.WriteString(wrap(seg, codeSpan(seg.Text)))
			continue
		}
		sb.WriteString(wrap(seg, markdownEscaper.Replace(seg.Text)))
	}
	return sb.String()
}

// wrap surrounds text with the markers for the segment styles. Leading and
// trailing spaces stay outside the markers so emphasis remains valid.
func wrap(seg Segment, text string) string {
	core := strings.TrimSpace(text)
	if core == "" {
		return text
	}
	lead := text[:strings.Index(text, core)]
	trail := text[len(lead)+len(core):]

	if seg.Styles.Has(document.Strikethrough) {
		core = "~~" + core + "~~"
	}
	if seg.Styles.Has(document.Italic) {
		core = "*" + core + "*"
	}
	if seg.Styles.Has(document.Bold) {
		core = "**" + core + "**"
	}
	if seg.Styles.Has(document.Underline) {
		core = "<u>" + core + "</u>"
	}
	if color := seg.Color(); color != "" {
		core = `<span style="color: ` + color + `">` + core + "</span>"
	}
	return lead + core + trail
}

// startsBlockSyntax reports whether a paragraph would be read as another block type.
func startsBlockSyntax(text string) bool {
	for _, p := range []string{"#", ">", "- ", "+ ", "```"} {
		if strings.HasPrefix(text, p) {
			return true
		}
	}
	return false
}
