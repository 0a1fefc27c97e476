package htmltree

import "context"

// Fetcher retrieves the HTML of a page by URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
	Close() error
}
