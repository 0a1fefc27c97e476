package html

import "github.com/fwojciec/htmltree"

// Ensure Builder implements htmltree.Builder at compile time.
var _ htmltree.Builder = (*Builder)(nil)

// Builder builds htmltree trees from HTML fragments. It is safe for
// concurrent use.
type Builder struct {
	irrelevant htmltree.TagSet
}

// Option configures a Builder.
type Option func(*Builder)

// WithIrrelevantTags sets the tags whose content is excluded from content
// analysis. The default is htmltree.DefaultIrrelevantTags.
func WithIrrelevantTags(tags htmltree.TagSet) Option {
	return func(b *Builder) {
		b.irrelevant = tags
	}
}

// NewBuilder creates a new Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{irrelevant: htmltree.DefaultIrrelevantTags()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build parses html and returns its annotated tree.
func (b *Builder) Build(html string) (*htmltree.Tree, error) {
	adapter := newTreeAdapter(b.irrelevant)
	if err := ParseFragment(html, adapter); err != nil {
		return nil, err
	}
	return annotate(adapter.root, html), nil
}
