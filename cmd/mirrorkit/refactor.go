package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/fcolombo/mirrorkit"
	"github.com/fcolombo/mirrorkit/refactor"
)

// Run executes the refactor command.
func (c *RefactorCmd) Run(deps *Dependencies) error {
	cfg := deps.Config
	if c.MinBlockSize != nil {
		cfg.MinBlockSize = *c.MinBlockSize
	}
	if c.SimilarityThreshold != nil {
		cfg.SimilarityThreshold = *c.SimilarityThreshold
	}
	if c.MinOccurrences != nil {
		cfg.MinOccurrences = *c.MinOccurrences
	}

	engine := &refactor.Engine{
		Store:     deps.Store,
		Extractor: deps.Extractor,
		Scorer:    deps.Scorer,
		Locator:   deps.Locator,
		Artifacts: deps.Artifacts,
		Logger:    deps.Logger,
		Config:    cfg,
	}
	if !c.NoHistory {
		engine.Recorder = deps.Runs
	}

	result, err := engine.Run(deps.Ctx, c.Dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mirrorkit.ErrorMessage(err))
		return err
	}

	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	fmt.Fprintf(deps.Stdout, "%s\n", bold.Sprintf("Refactored %s", c.Dir))
	fmt.Fprintf(deps.Stdout, "  files scanned:     %d\n", result.Summary.FilesScanned)
	fmt.Fprintf(deps.Stdout, "  clusters retained: %d\n", result.Summary.ClustersRetained)
	fmt.Fprintf(deps.Stdout, "  replacements:      %s\n", green.Sprintf("%d", result.Summary.Replacements))
	if result.Summary.Unresolved > 0 {
		fmt.Fprintf(deps.Stdout, "  unresolved:        %s\n", yellow.Sprintf("%d", result.Summary.Unresolved))
	}
	for _, cl := range result.Clusters {
		artifact := result.Artifacts[cl.ID]
		fmt.Fprintf(deps.Stdout, "  %s -> %s (%d occurrences)\n", cl.ID, artifact.Path, len(cl.Blocks))
	}

	if c.Report != "" {
		report := refactor.BuildReport(result, deps.Converter)
		if err := os.WriteFile(c.Report, []byte(report), 0644); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "report written to %s\n", c.Report)
	}

	return nil
}
