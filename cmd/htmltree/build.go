package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/fwojciec/htmltree"
	"github.com/fwojciec/htmltree/bloom"
	"github.com/fwojciec/htmltree/cache"
	"github.com/fwojciec/htmltree/etree"
	"github.com/fwojciec/htmltree/fs"
	"github.com/fwojciec/htmltree/goquery"
	"github.com/fwojciec/htmltree/html"
	"github.com/fwojciec/htmltree/htmltomarkdown"
	hthttp "github.com/fwojciec/htmltree/http"
	"github.com/fwojciec/htmltree/readability"
	"github.com/fwojciec/htmltree/rod"
	htslog "github.com/fwojciec/htmltree/slog"
	"github.com/fwojciec/htmltree/trafilatura"
	"golang.org/x/sync/errgroup"
)

// pipeline turns one source into a tree.
type pipeline struct {
	builder   htmltree.Builder
	extractor htmltree.Extractor
	fetcher   htmltree.Fetcher

	// stdin is the input shared by every "-" source.
	stdin string
}

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	sources := c.Sources
	if len(sources) == 0 {
		sources = []string{"-"}
	}

	p := &pipeline{}
	if slices.Contains(sources, "-") {
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		p.stdin = string(data)
	}

	var builder htmltree.Builder = html.NewBuilder(html.WithIrrelevantTags(deps.Irrelevant))
	var cached *cache.Builder
	if c.Cache > 0 {
		cached = cache.NewBuilder(builder,
			cache.WithCapacity(c.Cache),
			cache.WithDoorkeeper(bloom.NewFilter(uint(max(c.Cache*8, 1024)), 0.01)),
		)
		builder = cached
	}
	p.builder = htslog.NewLoggingBuilder(builder, deps.Logger)

	extractor, err := c.newExtractor()
	if err != nil {
		return err
	}
	if extractor != nil {
		p.extractor = htslog.NewLoggingExtractor(extractor, c.Extract, deps.Logger)
	}

	if hasURL(sources) {
		fetcher, err := c.newFetcher(deps)
		if err != nil {
			return err
		}
		defer fetcher.Close()
		p.fetcher = htslog.NewLoggingFetcher(fetcher, deps.Logger)
	}

	encoder, ext := newEncoder(c.Format)

	trees := make([]*htmltree.Tree, len(sources))
	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(max(c.Concurrency, 1))
	for i, source := range sources {
		g.Go(func() error {
			tree, err := p.run(ctx, source)
			if err != nil {
				return fmt.Errorf("%s: %w", source, err)
			}
			trees[i] = tree
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if cached != nil {
		stats := cached.Stats()
		deps.Logger.Info("cache",
			"hits", stats.Hits,
			"misses", stats.Misses,
			"entries", stats.Entries,
		)
	}

	if c.Out != "" {
		return writeStore(deps, fs.NewTreeStore(c.Out, c.Name, encoder, ext), sources, trees)
	}

	for i, tree := range trees {
		if c.Format == "text" && len(sources) > 1 {
			fmt.Fprintf(deps.Stdout, "# %s\n", sources[i])
		}
		if err := encoder.Encode(deps.Stdout, tree); err != nil {
			return fmt.Errorf("encode %s: %w", sources[i], err)
		}
	}
	return nil
}

func (c *BuildCmd) newExtractor() (htmltree.Extractor, error) {
	switch c.Extract {
	case "selector":
		s, err := goquery.NewSelector(c.Selector)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "readability":
		return readability.NewExtractor(), nil
	case "trafilatura":
		return trafilatura.NewExtractor(trafilatura.WithLinks(true)), nil
	}
	return nil, nil
}

func (c *BuildCmd) newFetcher(deps *Dependencies) (htmltree.Fetcher, error) {
	if deps.Fetcher != nil {
		return deps.Fetcher, nil
	}
	if c.Render {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(c.Timeout))
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed for --render")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return f, nil
	}
	return hthttp.NewFetcher(
		hthttp.WithTimeout(c.Timeout),
		hthttp.WithRateLimit(c.Rate),
	), nil
}

func newEncoder(format string) (htmltree.Encoder, string) {
	switch format {
	case "xml":
		return etree.NewEncoder(), ".xml"
	case "text":
		return htmltree.TextEncoder{}, ".txt"
	case "markdown":
		return htmltomarkdown.NewEncoder(), ".md"
	}
	return htmltree.JSONEncoder{}, ".json"
}

func writeStore(deps *Dependencies, store *fs.TreeStore, sources []string, trees []*htmltree.Tree) error {
	for i, tree := range trees {
		path, err := store.Save(deps.Ctx, sources[i], tree)
		if err != nil {
			_ = store.Abort()
			return fmt.Errorf("%s: %w", sources[i], err)
		}
		fmt.Fprintln(deps.Stdout, path)
	}
	return store.Commit()
}

// run reads, extracts and builds a single source.
func (p *pipeline) run(ctx context.Context, source string) (*htmltree.Tree, error) {
	raw, err := p.read(ctx, source)
	if err != nil {
		return nil, err
	}

	if p.extractor != nil {
		result, err := p.extractor.Extract(raw)
		if err != nil {
			return nil, err
		}
		raw = result.ContentHTML
	}

	return p.builder.Build(raw)
}

func (p *pipeline) read(ctx context.Context, source string) (string, error) {
	switch {
	case source == "-":
		return p.stdin, nil
	case isURL(source):
		return p.fetcher.Fetch(ctx, source)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		if os.IsNotExist(err) {
			return "", htmltree.Errorf(htmltree.ENOTFOUND, "file not found")
		}
		return "", err
	}
	return string(data), nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func hasURL(sources []string) bool {
	for _, s := range sources {
		if isURL(s) {
			return true
		}
	}
	return false
}
