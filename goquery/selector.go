package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/htmltree"
)

// Ensure Selector implements htmltree.Extractor at compile time.
var _ htmltree.Extractor = (*Selector)(nil)

// fallbackSelectors are tried in order when no framework is detected.
var fallbackSelectors = []string{"main, article", "body"}

// Selector extracts the outer HTML of every element matching a CSS selector.
// A Selector without a selector detects the documentation framework of each
// page and uses its content selector instead.
type Selector struct {
	matcher  goquery.Matcher
	detector *Detector
}

// NewSelector creates a Selector for the CSS selector group sel. An empty
// sel enables framework detection. Invalid selectors are rejected with
// EINVALID.
func NewSelector(sel string) (*Selector, error) {
	s := &Selector{detector: NewDetector()}
	if strings.TrimSpace(sel) == "" {
		return s, nil
	}

	m, err := cascadia.Compile(sel)
	if err != nil {
		return nil, htmltree.Errorf(htmltree.EINVALID, "invalid selector %q: %v", sel, err)
	}
	s.matcher = m
	return s, nil
}

// Extract returns the concatenated outer HTML of the matched elements in
// document order. Matches nested inside other matches are left out, as
// they are already part of their ancestor's markup.
func (s *Selector) Extract(rawHTML string) (*htmltree.ExtractResult, error) {
	if rawHTML == "" {
		return nil, htmltree.Errorf(htmltree.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, htmltree.Errorf(htmltree.EINVALID, "failed to parse HTML: %v", err)
	}

	matches := s.find(doc)
	if matches.Length() == 0 {
		return nil, htmltree.Errorf(htmltree.ENOTFOUND, "no element matches the content selector")
	}

	var b strings.Builder
	var renderErr error
	matches.Each(func(_ int, sel *goquery.Selection) {
		if renderErr != nil || sel.Parents().FilterSelection(matches).Length() > 0 {
			return
		}
		outer, err := goquery.OuterHtml(sel)
		if err != nil {
			renderErr = err
			return
		}
		b.WriteString(outer)
	})
	if renderErr != nil {
		return nil, htmltree.Errorf(htmltree.EINTERNAL, "render content: %v", renderErr)
	}

	return &htmltree.ExtractResult{
		Title:       strings.TrimSpace(doc.Find("title").First().Text()),
		ContentHTML: b.String(),
	}, nil
}

func (s *Selector) find(doc *goquery.Document) *goquery.Selection {
	if s.matcher != nil {
		return doc.FindMatcher(s.matcher)
	}

	if sel := ContentSelector(s.detector.detect(doc)); sel != "" {
		if matches := doc.Find(sel); matches.Length() > 0 {
			return matches
		}
	}
	for _, sel := range fallbackSelectors {
		if matches := doc.Find(sel); matches.Length() > 0 {
			return matches
		}
	}
	return doc.Selection.Slice(0, 0)
}
