package slog

import (
	"log/slog"
	"time"

	"github.com/fcolombo/mirrorkit"
)

// Ensure LoggingExtractor implements mirrorkit.Extractor.
var _ mirrorkit.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   mirrorkit.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next mirrorkit.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractBlocks delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) ExtractBlocks(content string, minSize int) (blocks []mirrorkit.Block, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("block extraction",
			"size", len(content),
			"blocks", len(blocks),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractBlocks(content, minSize)
}
