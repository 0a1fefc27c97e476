package htmltree

// Tree is the result of building an HTML fragment.
type Tree struct {
	// Children are the top-level block nodes in source order.
	Children []Node `json:"children"`

	// SourceEnd is the largest SourceEnd of the top-level children,
	// or 0 for an empty fragment.
	SourceEnd int `json:"sourceEnd"`
}

// Builder builds a Tree from an HTML fragment.
type Builder interface {
	// Build parses html with fragment semantics and returns its tree.
	// Malformed markup is recovered from, never reported.
	Build(html string) (*Tree, error)
}

// Walk visits nodes depth-first in source order. Children of a Block are
// visited after the block itself. Returning false from fn skips the
// children of the visited node.
func Walk(nodes []Node, fn func(Node) bool) {
	for _, n := range nodes {
		if !fn(n) {
			continue
		}
		if b, ok := n.(*Block); ok {
			Walk(b.Children, fn)
		}
	}
}

// TextBearers returns every heading and paragraph of the tree in source order.
func (t *Tree) TextBearers() []TextBearer {
	var out []TextBearer
	Walk(t.Children, func(n Node) bool {
		if tb, ok := n.(TextBearer); ok {
			out = append(out, tb)
		}
		return true
	})
	return out
}
