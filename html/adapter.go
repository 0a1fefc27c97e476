package html

import (
	"strings"

	"github.com/fwojciec/htmltree"
)

// Ensure treeAdapter implements TreeAdapter at compile time.
var _ TreeAdapter = (*treeAdapter)(nil)

// rawNode is a node under construction. It keeps the parser's location
// payload until the annotator converts it to its public htmltree type.
type rawNode struct {
	kind     rawKind
	tag      string
	loc      *Location
	text     string
	children []*rawNode

	// container is owned by headings and paragraphs and shared with the
	// formatting elements inside them.
	container *rawContainer

	// irrelevant marks a formatting element whose tag is irrelevant.
	irrelevant bool

	textStart int
	textEnd   int
}

// rawContainer accumulates the text and formatting of a heading or paragraph.
type rawContainer struct {
	text       strings.Builder
	formatting []*rawNode

	// hidden lists source bytes inside the container that are neither tags
	// of its formatting elements nor text: comments, ignored tags and the
	// difference between raw and decoded character data.
	hidden []pendingOffset
}

func (n *rawNode) scope() scope {
	switch n.kind {
	case kindHeading, kindParagraph:
		return textScope
	case kindFormatting:
		if n.irrelevant {
			return opaqueScope
		}
		return textScope
	case kindIrrelevant, kindOpaque:
		return opaqueScope
	}
	return blockScope
}

// treeAdapter turns construction requests into classified raw nodes.
type treeAdapter struct {
	root       *rawNode
	irrelevant htmltree.TagSet
}

func newTreeAdapter(irrelevant htmltree.TagSet) *treeAdapter {
	return &treeAdapter{
		root:       &rawNode{kind: kindFragment},
		irrelevant: irrelevant,
	}
}

func (a *treeAdapter) Root() any {
	return a.root
}

func (a *treeAdapter) CreateElement(tag string, loc *Location) any {
	return &rawNode{tag: tag, loc: loc}
}

func (a *treeAdapter) AppendChild(parent, child any) {
	p, c := parent.(*rawNode), child.(*rawNode)

	c.kind = classify(c.tag, p.scope(), a.irrelevant)
	switch c.kind {
	case kindOpaque:
		return
	case kindHeading, kindParagraph:
		c.container = &rawContainer{}
	case kindFormatting:
		c.container = p.container
		c.irrelevant = a.irrelevant.Has(c.tag)
		c.container.formatting = append(c.container.formatting, c)
	}
	p.children = append(p.children, c)
}

func (a *treeAdapter) InsertText(parent any, text string, loc *Location) {
	p := parent.(*rawNode)
	if p.scope() != textScope {
		return
	}

	p.container.text.WriteString(text)
	p.children = append(p.children, &rawNode{kind: kindText, text: text, loc: loc})
	if loc == nil {
		return
	}
	// Entity references and newline normalization change the length.
	if d := loc.Len() - len(text); d != 0 {
		p.container.hidden = append(p.container.hidden, pendingOffset{end: loc.End, length: d})
	}
}

func (a *treeAdapter) SkipMarkup(parent any, loc *Location) {
	p := parent.(*rawNode)
	if p.scope() != textScope || loc == nil {
		return
	}
	p.container.hidden = append(p.container.hidden, pendingOffset{end: loc.End, length: loc.Len()})
}
