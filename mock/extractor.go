package mock

import "github.com/fwojciec/htmltree"

var _ htmltree.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of htmltree.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*htmltree.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*htmltree.ExtractResult, error) {
	return e.ExtractFn(html)
}
