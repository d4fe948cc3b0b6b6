// Package slog provides log/slog decorators for voicenav services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/voicenav"
)

// Ensure LoggingExtractor implements voicenav.Extractor.
var _ voicenav.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   voicenav.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next voicenav.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the element counts.
func (e *LoggingExtractor) Extract(uploads []voicenav.Upload) (result *voicenav.ExtractResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"documents", len(uploads),
			"duration", time.Since(begin),
		}
		if result != nil {
			attrs = append(attrs,
				"buttons", len(result.Catalog.Buttons),
				"anchors", len(result.Catalog.Anchors),
				"nav_anchors", len(result.Catalog.NavAnchors),
			)
		}
		if err != nil {
			attrs = append(attrs, "code", voicenav.ErrorCode(err), "err", err)
			e.logger.Warn("extract", attrs...)
			return
		}
		e.logger.Info("extract", attrs...)
	}(time.Now())
	return e.next.Extract(uploads)
}
