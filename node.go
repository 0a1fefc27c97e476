package htmltree

import "encoding/json"

// Kind identifies the variant of a Node.
type Kind string

// Kind constants for the node variants.
const (
	KindHeading              Kind = "heading"
	KindParagraph            Kind = "paragraph"
	KindStructuredIrrelevant Kind = "structured-irrelevant"
	KindBlock                Kind = "block"
)

// SourceRange is a half-open byte range into the original HTML.
type SourceRange struct {
	SourceStart int `json:"sourceStart"`
	SourceEnd   int `json:"sourceEnd"`
}

// Range returns r. It lets every node type satisfy Node through embedding.
func (r SourceRange) Range() SourceRange {
	return r
}

// Len returns the number of source bytes covered by r.
func (r SourceRange) Len() int {
	return r.SourceEnd - r.SourceStart
}

// Node is a block-level node of a Tree. The set of implementations is
// closed: *Heading, *Paragraph, *StructuredIrrelevant and *Block.
type Node interface {
	Kind() Kind
	Range() SourceRange

	node()
}

// TextBearer is implemented by the nodes that own a TextContainer.
type TextBearer interface {
	Node
	Container() *TextContainer
}

// TextContainer is the plain text of a heading or paragraph together with
// the inline formatting spans found inside it.
type TextContainer struct {
	// Text is the block's content with all markup and irrelevant inline
	// content removed.
	Text string `json:"text"`

	// Formatting is ordered by source start offset.
	Formatting []*FormattingElement `json:"formatting"`
}

// FormattingElement is an inline element located inside a TextContainer.
// The source range covers the whole element including its tags.
// TextStart and TextEnd are offsets into the owning TextContainer's Text.
type FormattingElement struct {
	Type string `json:"type"`
	SourceRange
	TextStart int `json:"textStart"`
	TextEnd   int `json:"textEnd"`
}

// Heading is an h1-h6 element.
type Heading struct {
	SourceRange
	Level int `json:"level"`

	TextContainer `json:"textContainer"`
}

func (*Heading) Kind() Kind {
	return KindHeading
}

func (h *Heading) Container() *TextContainer {
	return &h.TextContainer
}

func (*Heading) node() {}

// MarshalJSON encodes the heading with its kind discriminator.
func (h *Heading) MarshalJSON() ([]byte, error) {
	type heading Heading
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*heading
	}{KindHeading, (*heading)(h)})
}

// Paragraph is a p element.
type Paragraph struct {
	SourceRange

	TextContainer `json:"textContainer"`
}

func (*Paragraph) Kind() Kind {
	return KindParagraph
}

func (p *Paragraph) Container() *TextContainer {
	return &p.TextContainer
}

func (*Paragraph) node() {}

// MarshalJSON encodes the paragraph with its kind discriminator.
func (p *Paragraph) MarshalJSON() ([]byte, error) {
	type paragraph Paragraph
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*paragraph
	}{KindParagraph, (*paragraph)(p)})
}

// StructuredIrrelevant is a block excluded from content analysis, such as a
// script or a code listing. Content holds the verbatim markup between its
// start and end tags.
type StructuredIrrelevant struct {
	SourceRange
	Tag     string `json:"tag"`
	Content string `json:"content"`
}

func (*StructuredIrrelevant) Kind() Kind {
	return KindStructuredIrrelevant
}

func (*StructuredIrrelevant) node() {}

// MarshalJSON encodes the node with its kind discriminator.
func (s *StructuredIrrelevant) MarshalJSON() ([]byte, error) {
	type structuredIrrelevant StructuredIrrelevant
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*structuredIrrelevant
	}{KindStructuredIrrelevant, (*structuredIrrelevant)(s)})
}

// Block is any other element. It only carries its source range and the
// block nodes found inside it.
type Block struct {
	SourceRange
	Tag      string `json:"tag"`
	Children []Node `json:"children"`
}

func (*Block) Kind() Kind {
	return KindBlock
}

func (*Block) node() {}

// MarshalJSON encodes the block with its kind discriminator.
func (b *Block) MarshalJSON() ([]byte, error) {
	type block Block
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*block
	}{KindBlock, (*block)(b)})
}
