package html

import "github.com/fwojciec/htmltree"

// pendingOffset is source length that does not appear in a container's text
// and has not been subtracted yet. It is subtracted once the scan reaches
// end.
type pendingOffset struct {
	end    int
	length int
}

// annotate converts the raw tree below root into the public tree, assigning
// source offsets to every node and text offsets to every formatting element.
func annotate(root *rawNode, src string) *htmltree.Tree {
	tree := &htmltree.Tree{Children: []htmltree.Node{}}
	for _, c := range root.children {
		n := convert(c, src)
		if n == nil {
			continue
		}
		tree.Children = append(tree.Children, n)
		tree.SourceEnd = max(tree.SourceEnd, n.Range().SourceEnd)
	}
	return tree
}

func convert(n *rawNode, src string) htmltree.Node {
	switch n.kind {
	case kindHeading:
		return &htmltree.Heading{
			SourceRange:   sourceRange(n.loc),
			Level:         headingLevel(n.tag),
			TextContainer: convertContainer(n),
		}
	case kindParagraph:
		return &htmltree.Paragraph{
			SourceRange:   sourceRange(n.loc),
			TextContainer: convertContainer(n),
		}
	case kindIrrelevant:
		return &htmltree.StructuredIrrelevant{
			SourceRange: sourceRange(n.loc),
			Tag:         n.tag,
			Content:     innerContent(n.loc, src),
		}
	case kindBlock:
		b := &htmltree.Block{
			SourceRange: sourceRange(n.loc),
			Tag:         n.tag,
			Children:    []htmltree.Node{},
		}
		for _, c := range n.children {
			if child := convert(c, src); child != nil {
				b.Children = append(b.Children, child)
			}
		}
		return b
	}
	return nil
}

func convertContainer(n *rawNode) htmltree.TextContainer {
	setTextOffsets(n)

	formatting := make([]*htmltree.FormattingElement, 0, len(n.container.formatting))
	for _, el := range n.container.formatting {
		formatting = append(formatting, &htmltree.FormattingElement{
			Type:        el.tag,
			SourceRange: sourceRange(el.loc),
			TextStart:   el.textStart,
			TextEnd:     el.textEnd,
		})
	}
	return htmltree.TextContainer{
		Text:       n.container.text.String(),
		Formatting: formatting,
	}
}

// sourceRange returns the final source range for a location. Nodes without a
// location keep a zero range.
func sourceRange(loc *Location) htmltree.SourceRange {
	if loc == nil {
		return htmltree.SourceRange{}
	}
	end := loc.End
	if loc.EndTag != nil {
		end = loc.EndTag.End
	}
	return htmltree.SourceRange{SourceStart: loc.Start, SourceEnd: end}
}

// innerSpan returns the span between an element's start and end tags.
func innerSpan(loc *Location) Span {
	s := loc.Span
	if loc.StartTag != nil {
		s.Start = loc.StartTag.End
	}
	if loc.EndTag != nil {
		s.End = loc.EndTag.Start
	}
	return s
}

func innerContent(loc *Location, src string) string {
	if loc == nil {
		return ""
	}
	s := innerSpan(loc)
	if s.Start < 0 || s.End > len(src) || s.Start > s.End {
		return ""
	}
	return src[s.Start:s.End]
}

// textLength returns the length of the text below n, leaving out irrelevant
// elements.
func textLength(n *rawNode) int {
	length := 0
	for _, c := range n.children {
		switch {
		case c.kind == kindText:
			length += len(c.text)
		case c.kind == kindFormatting && !c.irrelevant:
			length += textLength(c)
		}
	}
	return length
}

// setTextOffsets computes TextStart and TextEnd of every formatting element of
// a heading or paragraph in one left-to-right sweep over the elements.
//
// total is the source length before the current element that is not part of
// the container's text. An offset in the text is therefore the source offset
// minus total. pending holds end tags and hidden markup not yet passed by the
// scan; an entry is subtracted as soon as the scan is at or past its end,
// regardless of nesting order.
func setTextOffsets(n *rawNode) {
	formatting := n.container.formatting
	if len(formatting) == 0 {
		return
	}
	if n.loc == nil || n.loc.StartTag == nil {
		return
	}

	total := n.loc.StartTag.End
	pending := append([]pendingOffset(nil), n.container.hidden...)

	for _, el := range formatting {
		if el.loc == nil || el.loc.StartTag == nil {
			continue
		}

		pending, total = flushPending(pending, el.loc.Start, total)

		startTag := el.loc.StartTag
		total += startTag.Len()

		el.textStart = startTag.End - total
		el.textEnd = el.textStart + textLength(el)

		if endTag := el.loc.EndTag; endTag != nil {
			pending = append(pending, pendingOffset{end: endTag.End, length: endTag.Len()})
		}

		if el.irrelevant {
			el.textEnd = el.textStart
			total += innerSpan(el.loc).Len()
		}
	}
}

// flushPending subtracts every pending entry that ends at or before pos.
func flushPending(pending []pendingOffset, pos, total int) ([]pendingOffset, int) {
	kept := pending[:0]
	for _, p := range pending {
		if p.end <= pos {
			total += p.length
			continue
		}
		kept = append(kept, p)
	}
	return kept, total
}
