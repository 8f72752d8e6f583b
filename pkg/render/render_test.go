package render_test

import (
	"strings"
	"testing"

	"github.com/aretw0/draftkit/pkg/document"
	"github.com/aretw0/draftkit/pkg/render"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func content(t *testing.T, blocks ...*document.Block) *document.Content {
	t.Helper()
	c, err := document.NewContent(blocks...)
	require.NoError(t, err)
	return c
}

func TestSegments(t *testing.T) {
	b := document.NewBlock("a", document.Unstyled, "plain red bold").
		WithStyle(document.RedColor, 6, 14).
		WithStyle(document.Bold, 10, 14)

	segs := render.Segments(b, render.RedColor)
	require.Len(t, segs, 3)

	assert.Equal(t, "plain ", segs[0].Text)
	assert.Empty(t, segs[0].Decorations)

	assert.Equal(t, "red ", segs[1].Text)
	assert.Equal(t, "red", segs[1].Color())

	assert.Equal(t, "bold", segs[2].Text)
	assert.True(t, segs[2].Styles.Has(document.Bold))
	assert.Equal(t, "red", segs[2].Color())

	assert.Nil(t, render.Segments(document.NewBlock("e", document.Unstyled, "")))
}

func TestBlockClass(t *testing.T) {
	assert.Equal(t, "code-block-style", render.BlockClass(document.NewBlock("a", document.CodeBlock, "")))
	assert.Equal(t, "", render.BlockClass(document.NewBlock("a", document.HeaderOne, "")))
}

func TestMarkdown(t *testing.T) {
	c := content(t,
		document.NewBlock("h", document.HeaderOne, "Title"),
		document.NewBlock("p", document.Unstyled, "some bold and red").
			WithStyle(document.Bold, 5, 9).
			WithStyle(document.RedColor, 14, 17),
		document.NewBlock("c1", document.CodeBlock, "x := 1"),
		document.NewBlock("c2", document.CodeBlock, "y := *x"),
		document.NewBlock("l1", document.UnorderedListItem, "one"),
		document.NewBlock("l2", document.UnorderedListItem, "two").WithDepth(1),
		document.NewBlock("e", document.Unstyled, "# not a header"),
	)

	want := strings.Join([]string{
		"# Title",
		"",
		`some **bold** and <span style="color: red">red</span>`,
		"",
		"```",
		"x := 1",
		"y := *x",
		"```",
		"",
		"- one",
		"  - two",
		"",
		`\# not a header`,
		"",
	}, "\n")
	assert.Equal(t, want, render.Markdown(c))
}

func TestMarkdown_BackticksInCode(t *testing.T) {
	t.Run("Code block fence outgrows its content", func(t *testing.T) {
		c := content(t,
			document.NewBlock("c1", document.CodeBlock, "```go"),
			document.NewBlock("c2", document.CodeBlock, "````"),
			document.NewBlock("p", document.Unstyled, "after"),
			document.NewBlock("c3", document.CodeBlock, "plain"),
		)
		want := strings.Join([]string{
			"`````",
			"```go",
			"````",
			"`````",
			"",
			"after",
			"",
			"```",
			"plain",
			"```",
			"",
		}, "\n")
		assert.Equal(t, want, render.Markdown(c))
	})

	tests := []struct {
		name string
		text string
		want string
	}{
		{"Plain", "x := 1", "`x := 1`"},
		{"Inner backtick", "a`b", "``a`b``"},
		{"Double run", "a``b", "```a``b```"},
		{"Edge backtick", "`tick`", "`` `tick` ``"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := 4 + len([]rune(tt.text))
			c := content(t, document.NewBlock("p", document.Unstyled, "see "+tt.text).WithStyle(document.Code, 4, n))
			assert.Equal(t, "see "+tt.want+"\n", render.Markdown(c))
		})
	}
}

func TestHTML(t *testing.T) {
	c := content(t,
		document.NewBlock("h", document.HeaderTwo, "A & B"),
		document.NewBlock("c", document.CodeBlock, "<tag>"),
		document.NewBlock("o", document.OrderedListItem, "first").WithStyle(document.Underline, 0, 5),
		document.NewBlock("p", document.Unstyled, "end"),
	)

	want := strings.Join([]string{
		"<h2>A &amp; B</h2>",
		`<pre class="code-block-style"><code>&lt;tag&gt;</code></pre>`,
		"<ol>",
		`<li class="depth-0"><u>first</u></li>`,
		"</ol>",
		"<p>end</p>",
		"",
	}, "\n")
	assert.Equal(t, want, render.HTML(c))
}

func TestTerminal(t *testing.T) {
	c := content(t,
		document.NewBlock("h", document.HeaderOne, "Title"),
		document.NewBlock("o1", document.OrderedListItem, "a"),
		document.NewBlock("o2", document.OrderedListItem, "b"),
		document.NewBlock("r", document.Unstyled, "red").WithStyle(document.RedColor, 0, 3),
	)

	t.Run("Ascii", func(t *testing.T) {
		assert.Equal(t, "# Title\n1. a\n2. b\nred", render.Terminal(c, termenv.Ascii))
	})

	t.Run("TrueColor", func(t *testing.T) {
		out := render.Terminal(c, termenv.TrueColor)
		assert.Contains(t, out, "\x1b[")
		assert.Contains(t, out, "Title")
		assert.NotEqual(t, render.Terminal(c, termenv.Ascii), out)
	})
}
