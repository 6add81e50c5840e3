package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fcolombo/mirrorkit"
	"github.com/fcolombo/mirrorkit/sqlite"
	"github.com/fcolombo/mirrorkit/transform"
	"github.com/fcolombo/mirrorkit/wget"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Config  mirrorkit.Config
	FileCfg FileConfig

	DB   *sqlite.DB
	Runs mirrorkit.RunRecorder

	Store     mirrorkit.PageStore
	Extractor mirrorkit.Extractor
	Scorer    mirrorkit.Scorer
	Locator   mirrorkit.Locator
	Artifacts mirrorkit.ArtifactWriter
	Converter mirrorkit.Converter

	Transformer *transform.Transformer
	Wget        *wget.Runner
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"c" help:"Path to the YAML config file" default:"mirrorkit.yml"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Refactor RefactorCmd `cmd:"" help:"Extract duplicate blocks into shared includes"`
	Mirror   MirrorCmd   `cmd:"" help:"Mirror a website with wget"`
	Attrs    AttrsCmd    `cmd:"" help:"Check lazy-load attributes for extra resource URLs"`
	Fixquery FixqueryCmd `cmd:"" help:"Clean query-string suffixes from mirrored filenames"`

	Normalize NormalizeCmd `cmd:"" help:"Normalize internal links to rooted paths"`
	Rename    RenameCmd    `cmd:"" help:"Rename .html files to .php and update references"`
	Pretty    PrettyCmd    `cmd:"" help:"Re-indent page files"`
	Sitemap   SitemapCmd   `cmd:"" help:"Generate a sitemap.xml for the tree"`
	History   HistoryCmd   `cmd:"" help:"Show recorded refactor runs"`
}

// RefactorCmd is the "refactor" subcommand.
type RefactorCmd struct {
	Dir string `arg:"" help:"Mirrored site directory"`

	MinBlockSize        *int     `help:"Minimum block size in characters"`
	SimilarityThreshold *float64 `help:"Minimum similarity ratio in [0, 1]"`
	MinOccurrences      *int     `help:"Minimum occurrences for a cluster"`

	Report    string `help:"Write a Markdown report to this path"`
	NoHistory bool   `help:"Skip recording the run in the history database"`
}

// MirrorCmd is the "mirror" subcommand.
type MirrorCmd struct {
	Domain string  `arg:"" help:"Site URL to mirror"`
	Dest   string  `short:"d" default:"." help:"Destination directory"`
	Rate   float64 `default:"2" help:"Max requests per second per host for extra fetches"`
}

// AttrsCmd is the "attrs" subcommand.
type AttrsCmd struct {
	Domain string `arg:"" help:"Original site URL"`
	Dir    string `arg:"" help:"Mirrored site directory"`
	Attrs  string `help:"Comma-separated attributes to check"`
	Fetch  bool   `help:"Download the discovered URLs into the tree"`
}

// FixqueryCmd is the "fixquery" subcommand.
type FixqueryCmd struct {
	Dir string `arg:"" help:"Mirrored site directory"`
}

// NormalizeCmd is the "normalize" subcommand.
type NormalizeCmd struct {
	Domain string `arg:"" help:"Original site URL"`
	Dir    string `arg:"" help:"Mirrored site directory"`
}

// RenameCmd is the "rename" subcommand.
type RenameCmd struct {
	Dir string `arg:"" help:"Mirrored site directory"`
}

// PrettyCmd is the "pretty" subcommand.
type PrettyCmd struct {
	Dir string `arg:"" help:"Mirrored site directory"`
}

// SitemapCmd is the "sitemap" subcommand.
type SitemapCmd struct {
	Domain string `arg:"" help:"Public site URL used in locations"`
	Dir    string `arg:"" help:"Mirrored site directory"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	ID     string `arg:"" optional:"" help:"Show one run in detail"`
	Root   string `help:"Filter runs by site directory"`
	Limit  int    `default:"10" help:"Maximum runs to list"`
	Offset int    `help:"Runs to skip"`
}
