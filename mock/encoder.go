package mock

import (
	"io"

	"github.com/fwojciec/htmltree"
)

var _ htmltree.Encoder = (*Encoder)(nil)

// Encoder is a mock implementation of htmltree.Encoder.
type Encoder struct {
	EncodeFn func(w io.Writer, tree *htmltree.Tree) error
}

func (e *Encoder) Encode(w io.Writer, tree *htmltree.Tree) error {
	return e.EncodeFn(w, tree)
}
