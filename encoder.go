package htmltree

import (
	"encoding/json"
	"io"
)

// Encoder writes a serialized representation of a tree.
type Encoder interface {
	Encode(w io.Writer, tree *Tree) error
}

// Ensure the built-in encoders implement Encoder.
var (
	_ Encoder = (*JSONEncoder)(nil)
	_ Encoder = (*TextEncoder)(nil)
)

// JSONEncoder writes a tree as indented JSON. Nodes carry a "kind" field
// naming their variant.
type JSONEncoder struct{}

func (JSONEncoder) Encode(w io.Writer, tree *Tree) error {
	if tree == nil {
		return Errorf(EINVALID, "nil tree")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tree)
}

// TextEncoder writes the outline produced by FormatTree.
type TextEncoder struct{}

func (TextEncoder) Encode(w io.Writer, tree *Tree) error {
	if tree == nil {
		return Errorf(EINVALID, "nil tree")
	}
	out := FormatTree(tree)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
