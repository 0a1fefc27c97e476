// Package trafilatura selects the main content of a page with go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/htmltree"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements htmltree.Extractor at compile time.
var _ htmltree.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to select the main content of a page.
type Extractor struct {
	opts trafilatura.Options
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLinks keeps a elements in the extracted fragment so they show up as
// formatting elements in the tree.
func WithLinks(include bool) Option {
	return func(e *Extractor) {
		e.opts.IncludeLinks = include
	}
}

// WithTables controls whether tables are kept in the extracted fragment.
func WithTables(include bool) Option {
	return func(e *Extractor) {
		e.opts.ExcludeTables = !include
	}
}

// NewExtractor creates a new Extractor. Fallback extraction is enabled.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		opts: trafilatura.Options{
			EnableFallback: true,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the main content fragment of rawHTML.
func (e *Extractor) Extract(rawHTML string) (*htmltree.ExtractResult, error) {
	if rawHTML == "" {
		return nil, htmltree.Errorf(htmltree.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, htmltree.Errorf(htmltree.EINTERNAL, "trafilatura: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &htmltree.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", htmltree.Errorf(htmltree.EINTERNAL, "render content: %v", err)
	}
	return buf.String(), nil
}
