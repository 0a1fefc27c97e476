// Package htmltomarkdown renders the text bearers of a tree as Markdown.
package htmltomarkdown

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/fwojciec/htmltree"
)

// Ensure Encoder implements htmltree.Encoder at compile time.
var _ htmltree.Encoder = (*Encoder)(nil)

// inlineTags are the formatting types with a Markdown equivalent. Other
// formatting elements are rendered as their plain text.
var inlineTags = map[string]bool{
	"b":      true,
	"strong": true,
	"i":      true,
	"em":     true,
	"code":   true,
}

// Encoder writes headings and paragraphs as Markdown. Markup is rebuilt from
// each container's text and the text offsets of its formatting, then
// converted with html-to-markdown. Irrelevant blocks are left out.
type Encoder struct {
	conv *converter.Converter
}

// NewEncoder creates a new Encoder.
func NewEncoder() *Encoder {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	return &Encoder{conv: conv}
}

// Encode writes the Markdown rendering of tree to w. An empty tree writes
// nothing.
func (e *Encoder) Encode(w io.Writer, tree *htmltree.Tree) error {
	if tree == nil {
		return htmltree.Errorf(htmltree.EINVALID, "nil tree")
	}

	var b strings.Builder
	htmltree.Walk(tree.Children, func(n htmltree.Node) bool {
		switch n := n.(type) {
		case *htmltree.Heading:
			level := min(max(n.Level, 1), 6)
			fmt.Fprintf(&b, "<h%d>%s</h%d>", level, containerHTML(&n.TextContainer), level)
		case *htmltree.Paragraph:
			fmt.Fprintf(&b, "<p>%s</p>", containerHTML(&n.TextContainer))
		}
		return true
	})
	if b.Len() == 0 {
		return nil
	}

	md, err := e.conv.ConvertString(b.String())
	if err != nil {
		return htmltree.Errorf(htmltree.EINTERNAL, "html-to-markdown: %v", err)
	}
	md = strings.TrimSpace(md)
	if md == "" {
		return nil
	}
	_, err = io.WriteString(w, md+"\n")
	return err
}

// containerHTML rebuilds inline markup from a container's text and the text
// ranges of its formatting elements. Ranges that cross an enclosing range or
// fall outside the text are rendered as plain text.
func containerHTML(c *htmltree.TextContainer) string {
	var b strings.Builder
	var open []*htmltree.FormattingElement
	pos := 0

	emit := func(to int) {
		b.WriteString(html.EscapeString(c.Text[pos:to]))
		pos = to
	}
	closeTo := func(at int) {
		for len(open) > 0 && open[len(open)-1].TextEnd <= at {
			top := open[len(open)-1]
			emit(top.TextEnd)
			b.WriteString("</" + top.Type + ">")
			open = open[:len(open)-1]
		}
	}

	for _, f := range c.Formatting {
		if !inlineTags[f.Type] || f.TextStart >= f.TextEnd || f.TextEnd > len(c.Text) {
			continue
		}
		closeTo(f.TextStart)
		if f.TextStart < pos {
			continue
		}
		if len(open) > 0 && f.TextEnd > open[len(open)-1].TextEnd {
			continue
		}
		emit(f.TextStart)
		b.WriteString("<" + f.Type + ">")
		open = append(open, f)
	}
	closeTo(len(c.Text))
	emit(len(c.Text))
	return b.String()
}
