// Package html builds htmltree trees from HTML fragments using the
// golang.org/x/net/html tokenizer.
package html

import (
	"errors"
	"io"
	"strings"

	"github.com/fwojciec/htmltree"
	"golang.org/x/net/html"
)

// Span is a half-open byte range into the parsed source.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by s.
func (s Span) Len() int {
	return s.End - s.Start
}

// Location is the source location payload attached to every constructed
// node. For elements, Span covers the whole element and StartTag/EndTag the
// individual tags; EndTag is nil for void, self-closing and implicitly
// closed elements. For text nodes only Span is set.
//
// The parser owns the payload and finalizes End and EndTag in place when the
// element is closed, after CreateElement has returned.
type Location struct {
	Span
	StartTag *Span
	EndTag   *Span
}

// TreeAdapter receives node construction requests from ParseFragment.
// Handles returned by CreateElement are opaque to the parser.
type TreeAdapter interface {
	// Root returns the handle of the fragment root.
	Root() any

	// CreateElement creates a detached element for the lower-case tag name.
	CreateElement(tag string, loc *Location) any

	// AppendChild appends an element created by CreateElement to parent.
	AppendChild(parent, child any)

	// InsertText appends character data to parent.
	InsertText(parent any, text string, loc *Location)

	// SkipMarkup reports source inside parent that produces no node:
	// comments, doctypes and ignored tags.
	SkipMarkup(parent any, loc *Location)
}

type openElement struct {
	tag    string
	handle any
	loc    *Location
}

// fragmentParser is the tree construction state of one ParseFragment call.
type fragmentParser struct {
	adapter TreeAdapter
	stack   []openElement
}

// ParseFragment tokenizes src and reports its element structure to adapter.
// It applies the subset of HTML5 tree construction that affects block
// structure: implied end tags for paragraphs, list items and headings,
// void elements, and closing of misnested elements. It never fails on
// malformed markup.
func ParseFragment(src string, adapter TreeAdapter) error {
	p := &fragmentParser{
		adapter: adapter,
		stack:   []openElement{{handle: adapter.Root()}},
	}

	z := html.NewTokenizer(strings.NewReader(src))
	offset := 0
	for {
		tt := z.Next()
		// Raw must be measured before Text or TagName rewrite the buffer.
		start := offset
		offset += len(z.Raw())
		tok := Span{Start: start, End: offset}

		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				p.closeAll(len(src))
				return nil
			}
			return htmltree.Errorf(htmltree.EINTERNAL, "tokenize html: %v", z.Err())
		case html.TextToken:
			p.adapter.InsertText(p.current().handle, string(z.Text()), &Location{Span: tok})
		case html.StartTagToken:
			name, _ := z.TagName()
			p.startTag(string(name), tok, false)
		case html.SelfClosingTagToken:
			name, _ := z.TagName()
			p.startTag(string(name), tok, true)
		case html.EndTagToken:
			name, _ := z.TagName()
			p.endTag(string(name), tok)
		case html.CommentToken, html.DoctypeToken:
			p.skip(tok)
		}
	}
}

func (p *fragmentParser) current() openElement {
	return p.stack[len(p.stack)-1]
}

func (p *fragmentParser) skip(tok Span) {
	p.adapter.SkipMarkup(p.current().handle, &Location{Span: tok})
}

func (p *fragmentParser) startTag(tag string, tok Span, selfClosing bool) {
	switch tag {
	case "html", "head", "body":
		p.skip(tok)
		return
	}

	p.closeImplied(tag, tok.Start)

	startTag := tok
	loc := &Location{Span: tok, StartTag: &startTag}
	handle := p.adapter.CreateElement(tag, loc)
	p.adapter.AppendChild(p.current().handle, handle)

	if isVoid(tag) || (selfClosing && p.inForeignContent(tag)) {
		return
	}
	p.stack = append(p.stack, openElement{tag: tag, handle: handle, loc: loc})
}

func (p *fragmentParser) endTag(tag string, tok Span) {
	switch tag {
	case "html", "head", "body":
		p.skip(tok)
		return
	case "br":
		p.startTag("br", tok, false)
		return
	}

	i := p.indexOf(tag)
	if i < 0 && isHeading(tag) {
		i = p.lastIndex(isHeading)
	}
	if i < 0 {
		p.skip(tok)
		return
	}

	p.popTo(i, tok.Start)
	el := p.stack[len(p.stack)-1]
	endTag := tok
	el.loc.EndTag = &endTag
	el.loc.End = tok.End
	p.stack = p.stack[:len(p.stack)-1]
}

// closeImplied pops the elements that the start of tag closes implicitly.
func (p *fragmentParser) closeImplied(tag string, pos int) {
	switch tag {
	case "li":
		if i := p.inScope("li", listItemScope); i >= 0 {
			p.popTo(i-1, pos)
		}
	case "dt", "dd":
		if i := p.lastIndexInScope(isDefinitionItem, defaultScope); i >= 0 {
			p.popTo(i-1, pos)
		}
	case "option", "optgroup":
		if p.current().tag == "option" {
			p.popTo(len(p.stack)-2, pos)
		}
	}

	if tag == "p" || closesParagraph(tag) {
		if i := p.inScope("p", buttonScope); i >= 0 {
			p.popTo(i-1, pos)
		}
	}
	if isHeading(tag) && isHeading(p.current().tag) {
		p.popTo(len(p.stack)-2, pos)
	}
}

// popTo pops every element above index i, closing them at pos without an
// end tag.
func (p *fragmentParser) popTo(i, pos int) {
	for len(p.stack)-1 > i && len(p.stack) > 1 {
		el := p.stack[len(p.stack)-1]
		el.loc.End = pos
		p.stack = p.stack[:len(p.stack)-1]
	}
}

func (p *fragmentParser) closeAll(pos int) {
	p.popTo(0, pos)
}

func (p *fragmentParser) indexOf(tag string) int {
	return p.lastIndex(func(t string) bool { return t == tag })
}

func (p *fragmentParser) lastIndex(match func(string) bool) int {
	for i := len(p.stack) - 1; i > 0; i-- {
		if match(p.stack[i].tag) {
			return i
		}
	}
	return -1
}

// inScope returns the stack index of the innermost tag element that is in
// the given scope, or -1.
func (p *fragmentParser) inScope(tag string, scope func(string) bool) int {
	return p.lastIndexInScope(func(t string) bool { return t == tag }, scope)
}

func (p *fragmentParser) lastIndexInScope(match func(string) bool, scope func(string) bool) int {
	for i := len(p.stack) - 1; i > 0; i-- {
		t := p.stack[i].tag
		if match(t) {
			return i
		}
		if scope(t) {
			return -1
		}
	}
	return -1
}

func (p *fragmentParser) inForeignContent(tag string) bool {
	if tag == "svg" || tag == "math" {
		return true
	}
	return p.lastIndex(func(t string) bool { return t == "svg" || t == "math" }) >= 0
}

func isHeading(tag string) bool {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

func isDefinitionItem(tag string) bool {
	return tag == "dt" || tag == "dd"
}

func isVoid(tag string) bool {
	switch tag {
	case "area", "base", "br", "col", "embed", "hr", "img", "input", "link", "meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}

// closesParagraph reports whether the start of tag closes an open p element.
func closesParagraph(tag string) bool {
	switch tag {
	case "address", "article", "aside", "blockquote", "center", "details", "dialog", "dir", "div", "dl",
		"fieldset", "figcaption", "figure", "footer", "form", "h1", "h2", "h3", "h4", "h5", "h6",
		"header", "hgroup", "hr", "li", "listing", "main", "menu", "nav", "ol", "pre", "section",
		"summary", "table", "ul", "xmp", "dd", "dt", "plaintext":
		return true
	}
	return false
}

func defaultScope(tag string) bool {
	switch tag {
	case "applet", "caption", "html", "table", "td", "th", "marquee", "object", "template", "svg", "math":
		return true
	}
	return false
}

func buttonScope(tag string) bool {
	return tag == "button" || defaultScope(tag)
}

func listItemScope(tag string) bool {
	return tag == "ol" || tag == "ul" || defaultScope(tag)
}
