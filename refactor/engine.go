// Package refactor implements the duplicate-block refactoring pipeline:
// scan, extract, cluster, materialize, rewrite.
package refactor

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fcolombo/mirrorkit"
)

// Engine runs the refactoring pipeline over a mirrored site tree.
type Engine struct {
	Store     mirrorkit.PageStore
	Extractor mirrorkit.Extractor
	Scorer    mirrorkit.Scorer
	Locator   mirrorkit.Locator
	Artifacts mirrorkit.ArtifactWriter

	// Recorder persists the run when set.
	Recorder mirrorkit.RunRecorder

	// Logger receives progress diagnostics. Discarded when nil.
	Logger *slog.Logger

	Config mirrorkit.Config
}

// Result is the outcome of one engine run.
type Result struct {
	Summary   mirrorkit.Summary
	Run       *mirrorkit.Run
	Clusters  []*mirrorkit.Cluster
	Artifacts map[string]*mirrorkit.Artifact
}

// Run executes the full pipeline against the page files under root.
// Pages are scanned once in lexical path order and every downstream
// phase preserves that order, so repeated runs over the same tree make
// the same decisions.
func (e *Engine) Run(ctx context.Context, root string) (*Result, error) {
	if err := e.Config.Validate(); err != nil {
		return nil, err
	}
	startedAt := time.Now()

	pages, err := e.Store.Scan(ctx, root)
	if err != nil {
		return nil, err
	}
	e.logger().Info("scan complete", "root", root, "files", len(pages))

	blocks := e.extract(pages)
	clusters := BuildClusters(blocks, e.Scorer, e.Config.SimilarityThreshold, e.Config.MinOccurrences)
	e.logger().Info("clustering complete", "candidates", len(blocks), "clusters", len(clusters))

	artifacts, err := Materialize(ctx, root, clusters, e.Artifacts)
	if err != nil {
		return nil, err
	}

	index := make(map[string]*mirrorkit.Page, len(pages))
	for _, p := range pages {
		index[p.Path] = p
	}

	records, err := e.rewrite(ctx, clusters, artifacts, index)
	if err != nil {
		return nil, err
	}

	summary := mirrorkit.Summary{
		FilesScanned:     len(pages),
		ClustersRetained: len(clusters),
	}
	for _, rec := range records {
		if rec.Resolved {
			summary.Replacements++
		} else {
			summary.Unresolved++
		}
	}

	run := &mirrorkit.Run{
		Root:       root,
		Config:     e.Config,
		Summary:    summary,
		Records:    records,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
	}
	if e.Recorder != nil {
		if err := e.Recorder.RecordRun(ctx, run); err != nil {
			return nil, err
		}
	}

	return &Result{
		Summary:   summary,
		Run:       run,
		Clusters:  clusters,
		Artifacts: artifacts,
	}, nil
}

// extract collects candidate blocks from every page in scan order and
// stamps each block with its owning path. Per-page parse failures are
// logged and do not abort the run.
func (e *Engine) extract(pages []*mirrorkit.Page) []mirrorkit.Block {
	var blocks []mirrorkit.Block
	for _, page := range pages {
		extracted, err := e.Extractor.ExtractBlocks(page.Content, e.Config.MinBlockSize)
		if err != nil {
			e.logger().Warn("extraction incomplete", "path", page.Path, "error", err)
		}
		for i := range extracted {
			extracted[i].Path = page.Path
		}
		blocks = append(blocks, extracted...)
	}
	return blocks
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
