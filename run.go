package mirrorkit

import (
	"context"
	"time"
)

// Default engine tunables.
const (
	DefaultMinBlockSize        = 50
	DefaultSimilarityThreshold = 0.9
	DefaultMinOccurrences      = 2
)

// Config carries the engine tunables.
type Config struct {
	// MinBlockSize is the minimum size in characters for a block to be
	// considered.
	MinBlockSize int

	// SimilarityThreshold is the minimum ratio for two blocks to be
	// considered near-duplicates.
	SimilarityThreshold float64

	// MinOccurrences is the minimum member count for a cluster to be
	// retained.
	MinOccurrences int

	// Verbose enables diagnostic output. It has no behavioral effect.
	Verbose bool
}

// DefaultConfig returns a Config with the default tunables.
func DefaultConfig() Config {
	return Config{
		MinBlockSize:        DefaultMinBlockSize,
		SimilarityThreshold: DefaultSimilarityThreshold,
		MinOccurrences:      DefaultMinOccurrences,
	}
}

// Validate returns an error if the config contains invalid fields.
func (c Config) Validate() error {
	if c.MinBlockSize <= 0 {
		return Errorf(EINVALID, "minimum block size must be positive")
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return Errorf(EINVALID, "similarity threshold must be in [0, 1]")
	}
	if c.MinOccurrences < 2 {
		return Errorf(EINVALID, "minimum occurrences must be at least 2")
	}
	return nil
}

// Replacement records the outcome of one occurrence rewrite.
type Replacement struct {
	ClusterID string
	Path      string
	Tier      string // tier that succeeded; empty when unresolved
	Resolved  bool
}

// Summary aggregates the counts of one refactor run.
type Summary struct {
	FilesScanned     int
	ClustersRetained int
	Replacements     int
	Unresolved       int
}

// Run is one recorded refactor run.
type Run struct {
	ID         string
	Root       string
	Config     Config
	Summary    Summary
	Records    []Replacement
	StartedAt  time.Time
	FinishedAt time.Time
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.Root == "" {
		return Errorf(EINVALID, "run root required")
	}
	return nil
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	Root *string

	Offset int
	Limit  int
}

// RunRecorder persists refactor runs for later inspection.
type RunRecorder interface {
	// RecordRun records a completed run and its replacement records.
	RecordRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run, including its replacement records.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, most recent first,
	// without replacement records.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
}

// Converter converts HTML to Markdown. Used for human-readable include
// previews in run reports.
type Converter interface {
	Convert(html string) (string, error)
}
