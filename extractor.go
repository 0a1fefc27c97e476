package htmltree

// ExtractResult holds the content fragment selected from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata, if any.
	Title string

	// ContentHTML is the fragment to build a tree from.
	ContentHTML string
}

// Extractor selects the content fragment of a full HTML page, so that
// boilerplate (navigation, footers, sidebars) does not end up in the tree.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
