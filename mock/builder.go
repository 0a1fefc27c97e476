package mock

import "github.com/fwojciec/htmltree"

var _ htmltree.Builder = (*Builder)(nil)

// Builder is a mock implementation of htmltree.Builder.
type Builder struct {
	BuildFn func(html string) (*htmltree.Tree, error)
}

func (b *Builder) Build(html string) (*htmltree.Tree, error) {
	return b.BuildFn(html)
}
