package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/htmltree"
)

// Ensure LoggingExtractor implements htmltree.Extractor.
var _ htmltree.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   htmltree.Extractor
	name   string
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor. name identifies the
// wrapped extractor in log records.
func NewLoggingExtractor(next htmltree.Extractor, name string, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, name: name, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(html string) (result *htmltree.ExtractResult, err error) {
	defer func(begin time.Time) {
		contentBytes := 0
		if result != nil {
			contentBytes = len(result.ContentHTML)
		}
		e.logger.Info("extract content",
			"extractor", e.name,
			"bytes", len(html),
			"contentBytes", contentBytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}
