package htmltree

import (
	"fmt"
	"strings"
)

// FormatTree renders a tree as an indented plain-text outline, one node or
// formatting element per line. Source ranges are printed as [start,end)
// and text ranges of formatting elements as text[start,end).
func FormatTree(tree *Tree) string {
	if tree == nil || len(tree.Children) == 0 {
		return ""
	}

	var b strings.Builder
	formatNodes(&b, tree.Children, 0)
	return strings.TrimSuffix(b.String(), "\n")
}

func formatNodes(b *strings.Builder, nodes []Node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		r := n.Range()
		switch n := n.(type) {
		case *Heading:
			fmt.Fprintf(b, "%sh%d [%d,%d) %q\n", indent, n.Level, r.SourceStart, r.SourceEnd, n.Text)
			formatFormatting(b, n.Formatting, indent+"  ")
		case *Paragraph:
			fmt.Fprintf(b, "%sp [%d,%d) %q\n", indent, r.SourceStart, r.SourceEnd, n.Text)
			formatFormatting(b, n.Formatting, indent+"  ")
		case *StructuredIrrelevant:
			fmt.Fprintf(b, "%s%s (irrelevant) [%d,%d)\n", indent, n.Tag, r.SourceStart, r.SourceEnd)
		case *Block:
			fmt.Fprintf(b, "%s%s [%d,%d)\n", indent, n.Tag, r.SourceStart, r.SourceEnd)
			formatNodes(b, n.Children, depth+1)
		}
	}
}

func formatFormatting(b *strings.Builder, elements []*FormattingElement, indent string) {
	for _, el := range elements {
		fmt.Fprintf(b, "%s<%s> [%d,%d) text[%d,%d)\n", indent, el.Type,
			el.SourceStart, el.SourceEnd, el.TextStart, el.TextEnd)
	}
}
