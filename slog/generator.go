package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/voicenav"
)

// Ensure LoggingGenerator implements voicenav.Generator.
var _ voicenav.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with logging.
type LoggingGenerator struct {
	next   voicenav.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next voicenav.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate delegates to the wrapped generator and logs the script size.
func (g *LoggingGenerator) Generate(selections []voicenav.Selection) (script string, err error) {
	defer func(begin time.Time) {
		g.logger.Info("generate",
			"selections", len(selections),
			"bytes", len(script),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(selections)
}
