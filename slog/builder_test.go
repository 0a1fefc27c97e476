package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/htmltree"
	"github.com/fwojciec/htmltree/mock"
	htslog "github.com/fwojciec/htmltree/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingBuilder_Build(t *testing.T) {
	t.Parallel()

	t.Run("logs input size, block count and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		want := &htmltree.Tree{
			Children: []htmltree.Node{
				&htmltree.Paragraph{SourceRange: htmltree.SourceRange{SourceStart: 0, SourceEnd: 8}},
			},
			SourceEnd: 8,
		}
		inner := &mock.Builder{
			BuildFn: func(html string) (*htmltree.Tree, error) {
				return want, nil
			},
		}

		b := htslog.NewLoggingBuilder(inner, logger)
		tree, err := b.Build("<p>x</p>")

		require.NoError(t, err)
		assert.Same(t, want, tree)
		output := buf.String()
		assert.Contains(t, output, "build tree")
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "bytes=8")
		assert.Contains(t, output, "blocks=1")
		assert.Contains(t, output, "textBearers=1")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs errors at error level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Builder{
			BuildFn: func(html string) (*htmltree.Tree, error) {
				return nil, htmltree.Errorf(htmltree.EINTERNAL, "boom")
			},
		}

		b := htslog.NewLoggingBuilder(inner, logger)
		_, err := b.Build("<p>")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=ERROR")
		assert.Contains(t, output, "boom")
		assert.NotContains(t, output, "blocks=")
	})
}

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs extractor name and content size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(html string) (*htmltree.ExtractResult, error) {
				return &htmltree.ExtractResult{ContentHTML: "<p>main</p>"}, nil
			},
		}

		e := htslog.NewLoggingExtractor(inner, "readability", logger)
		result, err := e.Extract("<body><p>main</p></body>")

		require.NoError(t, err)
		assert.Equal(t, "<p>main</p>", result.ContentHTML)
		output := buf.String()
		assert.Contains(t, output, "extract content")
		assert.Contains(t, output, "extractor=readability")
		assert.Contains(t, output, "bytes=24")
		assert.Contains(t, output, "contentBytes=11")
	})

	t.Run("logs failed extraction", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(html string) (*htmltree.ExtractResult, error) {
				return nil, htmltree.Errorf(htmltree.ENOTFOUND, "no match")
			},
		}

		e := htslog.NewLoggingExtractor(inner, "selector", logger)
		_, err := e.Extract("<p>x</p>")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "contentBytes=0")
		assert.Contains(t, output, "no match")
	})
}
