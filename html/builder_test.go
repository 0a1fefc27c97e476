package html_test

import (
	"testing"

	"github.com/fwojciec/htmltree"
	"github.com/fwojciec/htmltree/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Builder implements htmltree.Builder at compile time.
var _ htmltree.Builder = (*html.Builder)(nil)

func build(t *testing.T, src string, opts ...html.Option) *htmltree.Tree {
	t.Helper()

	tree, err := html.NewBuilder(opts...).Build(src)
	require.NoError(t, err)
	require.NotNil(t, tree)
	return tree
}

func paragraph(t *testing.T, n htmltree.Node) *htmltree.Paragraph {
	t.Helper()

	p, ok := n.(*htmltree.Paragraph)
	require.True(t, ok, "expected *htmltree.Paragraph, got %T", n)
	return p
}

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	t.Run("returns empty tree for empty input", func(t *testing.T) {
		t.Parallel()

		tree := build(t, "")

		assert.Empty(t, tree.Children)
		assert.Equal(t, 0, tree.SourceEnd)
	})

	t.Run("paragraph without inline elements has no formatting", func(t *testing.T) {
		t.Parallel()

		tree := build(t, "<p>Just text</p>")

		require.Len(t, tree.Children, 1)
		p := paragraph(t, tree.Children[0])
		assert.Equal(t, "Just text", p.Text)
		assert.Empty(t, p.Formatting)
		assert.Equal(t, htmltree.SourceRange{SourceStart: 0, SourceEnd: 16}, p.SourceRange)
		assert.Equal(t, 16, tree.SourceEnd)
	})

	t.Run("computes text offsets of a single inline element", func(t *testing.T) {
		t.Parallel()

		tree := build(t, "<p>Hello <strong>world</strong>!</p>")

		require.Len(t, tree.Children, 1)
		p := paragraph(t, tree.Children[0])
		assert.Equal(t, "Hello world!", p.Text)
		require.Len(t, p.Formatting, 1)

		strong := p.Formatting[0]
		assert.Equal(t, "strong", strong.Type)
		assert.Equal(t, 6, strong.TextStart)
		assert.Equal(t, 11, strong.TextEnd)
		assert.Equal(t, htmltree.SourceRange{SourceStart: 9, SourceEnd: 31}, strong.SourceRange)
		assert.Equal(t, htmltree.SourceRange{SourceStart: 0, SourceEnd: 36}, p.SourceRange)
	})

	t.Run("accounts for nested inline elements", func(t *testing.T) {
		t.Parallel()

		tree := build(t, "<p><em>a<strong>b</strong>c</em></p>")

		p := paragraph(t, tree.Children[0])
		assert.Equal(t, "abc", p.Text)
		require.Len(t, p.Formatting, 2)

		em, strong := p.Formatting[0], p.Formatting[1]
		assert.Equal(t, "em", em.Type)
		assert.Equal(t, 0, em.TextStart)
		assert.Equal(t, 3, em.TextEnd)
		assert.Equal(t, htmltree.SourceRange{SourceStart: 3, SourceEnd: 32}, em.SourceRange)

		assert.Equal(t, "strong", strong.Type)
		assert.Equal(t, 1, strong.TextStart)
		assert.Equal(t, 2, strong.TextEnd)
		assert.Equal(t, htmltree.SourceRange{SourceStart: 8, SourceEnd: 26}, strong.SourceRange)
	})

	t.Run("excludes irrelevant inline content from text", func(t *testing.T) {
		t.Parallel()

		tree := build(t, "<p>before<script>ignored</script>after</p>")

		p := paragraph(t, tree.Children[0])
		assert.Equal(t, "beforeafter", p.Text)
		require.Len(t, p.Formatting, 1)

		script := p.Formatting[0]
		assert.Equal(t, "script", script.Type)
		assert.Equal(t, 6, script.TextStart)
		assert.Equal(t, 6, script.TextEnd)
		assert.Equal(t, htmltree.SourceRange{SourceStart: 9, SourceEnd: 33}, script.SourceRange)
	})

	t.Run("does not shift elements after irrelevant inline content", func(t *testing.T) {
		t.Parallel()

		tree := build(t, "<p>a<code>x()</code>b<em>c</em></p>")

		p := paragraph(t, tree.Children[0])
		assert.Equal(t, "abc", p.Text)
		require.Len(t, p.Formatting, 2)

		code, em := p.Formatting[0], p.Formatting[1]
		assert.Equal(t, 1, code.TextStart)
		assert.Equal(t, 1, code.TextEnd)
		assert.Equal(t, 2, em.TextStart)
		assert.Equal(t, 3, em.TextEnd)
	})

	t.Run("closes siblings independently", func(t *testing.T) {
		t.Parallel()

		tree := build(t, "<p><b>x</b> <i>y</i></p>")

		p := paragraph(t, tree.Children[0])
		assert.Equal(t, "x y", p.Text)
		require.Len(t, p.Formatting, 2)
		assert.Equal(t, 0, p.Formatting[0].TextStart)
		assert.Equal(t, 1, p.Formatting[0].TextEnd)
		assert.Equal(t, 2, p.Formatting[1].TextStart)
		assert.Equal(t, 3, p.Formatting[1].TextEnd)
	})

	t.Run("builds headings with level", func(t *testing.T) {
		t.Parallel()

		tree := build(t, "<h2>Title <em>here</em></h2>")

		require.Len(t, tree.Children, 1)
		h, ok := tree.Children[0].(*htmltree.Heading)
		require.True(t, ok)
		assert.Equal(t, 2, h.Level)
		assert.Equal(t, "Title here", h.Text)
		require.Len(t, h.Formatting, 1)
		assert.Equal(t, 6, h.Formatting[0].TextStart)
		assert.Equal(t, 10, h.Formatting[0].TextEnd)
	})

	t.Run("maps text offsets past entity references", func(t *testing.T) {
		t.Parallel()

		tree := build(t, "<p>a &amp; b <em>c</em></p>")

		p := paragraph(t, tree.Children[0])
		assert.Equal(t, "a & b c", p.Text)
		require.Len(t, p.Formatting, 1)
		assert.Equal(t, 6, p.Formatting[0].TextStart)
		assert.Equal(t, 7, p.Formatting[0].TextEnd)
	})

	t.Run("maps text offsets past comments", func(t *testing.T) {
		t.Parallel()

		tree := build(t, "<p>a<!--x--><b>y</b></p>")

		p := paragraph(t, tree.Children[0])
		assert.Equal(t, "ay", p.Text)
		require.Len(t, p.Formatting, 1)
		assert.Equal(t, 1, p.Formatting[0].TextStart)
		assert.Equal(t, 2, p.Formatting[0].TextEnd)
	})

	t.Run("gives void elements zero width", func(t *testing.T) {
		t.Parallel()

		tree := build(t, "<p>a<br>b</p>")

		p := paragraph(t, tree.Children[0])
		assert.Equal(t, "ab", p.Text)
		require.Len(t, p.Formatting, 1)

		br := p.Formatting[0]
		assert.Equal(t, "br", br.Type)
		assert.Equal(t, htmltree.SourceRange{SourceStart: 4, SourceEnd: 8}, br.SourceRange)
		assert.Equal(t, 1, br.TextStart)
		assert.Equal(t, 1, br.TextEnd)
	})

	t.Run("keeps content of structured irrelevant blocks verbatim", func(t *testing.T) {
		t.Parallel()

		tree := build(t, "<pre><b>raw</b></pre><p>after</p>")

		require.Len(t, tree.Children, 2)
		pre, ok := tree.Children[0].(*htmltree.StructuredIrrelevant)
		require.True(t, ok)
		assert.Equal(t, "pre", pre.Tag)
		assert.Equal(t, "<b>raw</b>", pre.Content)
		assert.Equal(t, htmltree.SourceRange{SourceStart: 0, SourceEnd: 21}, pre.SourceRange)

		p := paragraph(t, tree.Children[1])
		assert.Equal(t, "after", p.Text)
		assert.Equal(t, 33, tree.SourceEnd)
	})

	t.Run("closes paragraphs implicitly", func(t *testing.T) {
		t.Parallel()

		tree := build(t, "<p>one<p>two")

		require.Len(t, tree.Children, 2)
		first, second := paragraph(t, tree.Children[0]), paragraph(t, tree.Children[1])
		assert.Equal(t, "one", first.Text)
		assert.Equal(t, htmltree.SourceRange{SourceStart: 0, SourceEnd: 6}, first.SourceRange)
		assert.Equal(t, "two", second.Text)
		assert.Equal(t, htmltree.SourceRange{SourceStart: 6, SourceEnd: 12}, second.SourceRange)
		assert.Equal(t, 12, tree.SourceEnd)
	})

	t.Run("keeps paragraphs nested in generic blocks", func(t *testing.T) {
		t.Parallel()

		tree := build(t, "<div><p>in</p></div>")

		require.Len(t, tree.Children, 1)
		div, ok := tree.Children[0].(*htmltree.Block)
		require.True(t, ok)
		assert.Equal(t, "div", div.Tag)
		assert.Equal(t, htmltree.SourceRange{SourceStart: 0, SourceEnd: 20}, div.SourceRange)

		require.Len(t, div.Children, 1)
		p := paragraph(t, div.Children[0])
		assert.Equal(t, "in", p.Text)
		assert.Equal(t, htmltree.SourceRange{SourceStart: 5, SourceEnd: 14}, p.SourceRange)
	})

	t.Run("drops text outside of headings and paragraphs", func(t *testing.T) {
		t.Parallel()

		tree := build(t, "loose <div>text</div>")

		require.Len(t, tree.Children, 1)
		div, ok := tree.Children[0].(*htmltree.Block)
		require.True(t, ok)
		assert.Empty(t, div.Children)
	})

	t.Run("uses configured irrelevant tags", func(t *testing.T) {
		t.Parallel()

		tree := build(t, "<p>a<span>b</span>c<script>d</script></p>",
			html.WithIrrelevantTags(htmltree.NewTagSet("span")))

		p := paragraph(t, tree.Children[0])
		assert.Equal(t, "acd", p.Text)
		require.Len(t, p.Formatting, 2)

		span, script := p.Formatting[0], p.Formatting[1]
		assert.Equal(t, 1, span.TextStart)
		assert.Equal(t, 1, span.TextEnd)
		assert.Equal(t, 2, script.TextStart)
		assert.Equal(t, 3, script.TextEnd)
	})

	t.Run("does not record elements inside irrelevant inline elements", func(t *testing.T) {
		t.Parallel()

		tree := build(t, "<p>see <code>a<b>b</b></code> now</p>")

		p := paragraph(t, tree.Children[0])
		assert.Equal(t, "see  now", p.Text)
		require.Len(t, p.Formatting, 1)
		assert.Equal(t, "code", p.Formatting[0].Type)
		assert.Equal(t, 4, p.Formatting[0].TextStart)
		assert.Equal(t, 4, p.Formatting[0].TextEnd)
	})

	t.Run("builds the same tree twice", func(t *testing.T) {
		t.Parallel()

		src := "<h1>T<em>i</em>tle</h1><div><p>a <a href=\"#\">b</a></p><pre>x</pre></div>"

		first := build(t, src)
		second := build(t, src)

		assert.Equal(t, first, second)
	})
}

func TestBuilder_Build_Invariants(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"plain text",
		"<p>Hello <strong>world</strong>!</p>",
		"<p><b>x<i>y</b>z</i></p>",
		"<h1>Title<p>para",
		"<ul><li>one<li>two</ul>",
		"<p>unclosed <em>em",
		"<div><p>a</div>b",
		"<b>bold</b> outside",
		"</p><p>stray</p>",
		"<p>x &lt; y <a href=\"#\">link</a></p>",
		"<table><tr><td><p>cell</p></td></tr></table>",
		"<svg><path/></svg><p>ok</p>",
		"<p>a<!-- c --><em>b<br/>c</em>d</p>",
		"<h2>a<h3>b</h2>c",
		"<p>before<script>if (a < b) {}</script><em>after</em></p>",
		"<body><p>in body</p></body>",
		"<p>café <b>crème</b></p>",
	}

	for _, src := range inputs {
		t.Run(src, func(t *testing.T) {
			t.Parallel()

			tree := build(t, src)

			assert.GreaterOrEqual(t, tree.SourceEnd, 0)
			assert.LessOrEqual(t, tree.SourceEnd, len(src))

			htmltree.Walk(tree.Children, func(n htmltree.Node) bool {
				r := n.Range()
				assert.GreaterOrEqual(t, r.SourceStart, 0, "%s start", n.Kind())
				assert.LessOrEqual(t, r.SourceStart, r.SourceEnd, "%s range", n.Kind())
				assert.LessOrEqual(t, r.SourceEnd, len(src), "%s end", n.Kind())

				tb, ok := n.(htmltree.TextBearer)
				if !ok {
					return true
				}
				c := tb.Container()
				for _, el := range c.Formatting {
					assert.GreaterOrEqual(t, el.SourceStart, r.SourceStart, "<%s> start", el.Type)
					assert.LessOrEqual(t, el.SourceEnd, r.SourceEnd, "<%s> end", el.Type)
					assert.GreaterOrEqual(t, el.TextStart, 0, "<%s> text start", el.Type)
					assert.LessOrEqual(t, el.TextStart, el.TextEnd, "<%s> text range", el.Type)
					assert.LessOrEqual(t, el.TextEnd, len(c.Text), "<%s> text end", el.Type)
				}
				return true
			})
		})
	}
}
