package html

import "github.com/fwojciec/htmltree"

// rawKind is the variant a constructed node is classified as.
type rawKind int

const (
	kindUnclassified rawKind = iota
	kindFragment
	kindHeading
	kindParagraph
	kindIrrelevant
	kindBlock
	kindFormatting
	kindText
	kindOpaque
)

// scope describes what a node's children are classified as.
type scope int

const (
	// blockScope is the fragment root and generic blocks.
	blockScope scope = iota
	// textScope is the inside of a heading, paragraph or relevant
	// formatting element.
	textScope
	// opaqueScope is the inside of an irrelevant element. Nothing below it
	// is classified or contributes text.
	opaqueScope
)

// blockKinds maps the tags with a dedicated block variant.
var blockKinds = map[string]rawKind{
	"h1": kindHeading,
	"h2": kindHeading,
	"h3": kindHeading,
	"h4": kindHeading,
	"h5": kindHeading,
	"h6": kindHeading,
	"p":  kindParagraph,
}

// classify returns the kind of an element with the given tag appended to a
// parent with the given scope.
func classify(tag string, s scope, irrelevant htmltree.TagSet) rawKind {
	switch s {
	case opaqueScope:
		return kindOpaque
	case textScope:
		return kindFormatting
	}
	if kind, ok := blockKinds[tag]; ok {
		return kind
	}
	if irrelevant.Has(tag) {
		return kindIrrelevant
	}
	return kindBlock
}

// headingLevel returns 1-6 for h1-h6.
func headingLevel(tag string) int {
	if len(tag) != 2 || tag[0] != 'h' {
		return 0
	}
	level := int(tag[1] - '0')
	if level < 1 || level > 6 {
		return 0
	}
	return level
}
