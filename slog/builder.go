// Package slog provides logging decorators for htmltree services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/htmltree"
)

// Ensure LoggingBuilder implements htmltree.Builder.
var _ htmltree.Builder = (*LoggingBuilder)(nil)

// LoggingBuilder wraps a Builder with debug logging.
type LoggingBuilder struct {
	next   htmltree.Builder
	logger *slog.Logger
}

// NewLoggingBuilder creates a new LoggingBuilder.
func NewLoggingBuilder(next htmltree.Builder, logger *slog.Logger) *LoggingBuilder {
	return &LoggingBuilder{next: next, logger: logger}
}

// Build delegates to the wrapped builder and logs the operation.
func (b *LoggingBuilder) Build(html string) (tree *htmltree.Tree, err error) {
	defer func(begin time.Time) {
		if err != nil {
			b.logger.Error("build tree",
				"bytes", len(html),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		b.logger.Info("build tree",
			"bytes", len(html),
			"blocks", len(tree.Children),
			"textBearers", len(tree.TextBearers()),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return b.next.Build(html)
}
