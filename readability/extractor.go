// Package readability selects the main content of a page with go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/htmltree"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements htmltree.Extractor at compile time.
var _ htmltree.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to select the article fragment of a page.
type Extractor struct {
	pageURL *url.URL
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithPageURL sets the URL the page was fetched from. Readability uses it
// to resolve relative links in the extracted fragment.
func WithPageURL(u *url.URL) Option {
	return func(e *Extractor) {
		e.pageURL = u
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the article fragment of rawHTML.
func (e *Extractor) Extract(rawHTML string) (*htmltree.ExtractResult, error) {
	if rawHTML == "" {
		return nil, htmltree.Errorf(htmltree.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), e.pageURL)
	if err != nil {
		return nil, htmltree.Errorf(htmltree.EINTERNAL, "readability: %v", err)
	}

	return &htmltree.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
