// Package etree renders trees as XML documents using beevik/etree.
package etree

import (
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/htmltree"
)

// Ensure Encoder implements htmltree.Encoder.
var _ htmltree.Encoder = (*Encoder)(nil)

// Encoder writes a tree as an XML document. Every node becomes an element
// named after its kind, with source offsets as attributes.
type Encoder struct {
	indent int
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithIndent sets the number of spaces per nesting level. Zero writes the
// document on a single line.
func WithIndent(spaces int) Option {
	return func(e *Encoder) {
		e.indent = spaces
	}
}

// NewEncoder creates a new Encoder indenting with two spaces.
func NewEncoder(opts ...Option) *Encoder {
	e := &Encoder{indent: 2}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode writes tree to w.
func (e *Encoder) Encode(w io.Writer, tree *htmltree.Tree) error {
	if tree == nil {
		return htmltree.Errorf(htmltree.EINVALID, "nil tree")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("tree")
	setInt(root, "sourceEnd", tree.SourceEnd)
	for _, n := range tree.Children {
		encodeNode(root, n)
	}

	if e.indent > 0 {
		doc.Indent(e.indent)
	}
	if _, err := doc.WriteTo(w); err != nil {
		return err
	}
	return nil
}

func encodeNode(parent *etree.Element, n htmltree.Node) {
	el := parent.CreateElement(string(n.Kind()))
	switch n := n.(type) {
	case *htmltree.Heading:
		setInt(el, "level", n.Level)
		setRange(el, n.SourceRange)
		encodeContainer(el, &n.TextContainer)
	case *htmltree.Paragraph:
		setRange(el, n.SourceRange)
		encodeContainer(el, &n.TextContainer)
	case *htmltree.StructuredIrrelevant:
		el.CreateAttr("tag", n.Tag)
		setRange(el, n.SourceRange)
		createCData(el, n.Content)
	case *htmltree.Block:
		el.CreateAttr("tag", n.Tag)
		setRange(el, n.SourceRange)
		for _, c := range n.Children {
			encodeNode(el, c)
		}
	}
}

// createCData writes content as CDATA sections, splitting it after every
// "]]" that is followed by ">" so no section contains the terminator.
func createCData(el *etree.Element, content string) {
	for content != "" {
		i := strings.Index(content, "]]>")
		if i < 0 {
			el.CreateCData(content)
			return
		}
		el.CreateCData(content[:i+2])
		content = content[i+2:]
	}
}

func encodeContainer(el *etree.Element, c *htmltree.TextContainer) {
	el.CreateElement("text").SetText(c.Text)
	for _, f := range c.Formatting {
		fe := el.CreateElement("formatting")
		fe.CreateAttr("type", f.Type)
		setRange(fe, f.SourceRange)
		setInt(fe, "textStart", f.TextStart)
		setInt(fe, "textEnd", f.TextEnd)
	}
}

func setRange(el *etree.Element, r htmltree.SourceRange) {
	setInt(el, "sourceStart", r.SourceStart)
	setInt(el, "sourceEnd", r.SourceEnd)
}

func setInt(el *etree.Element, key string, v int) {
	el.CreateAttr(key, strconv.Itoa(v))
}
