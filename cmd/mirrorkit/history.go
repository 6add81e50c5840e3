package main

import (
	"fmt"
	"time"

	"github.com/fcolombo/mirrorkit"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if c.ID != "" {
		return c.show(deps)
	}

	filter := mirrorkit.RunFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Root != "" {
		filter.Root = &c.Root
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mirrorkit.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Use 'mirrorkit refactor' to create one.")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %d replaced, %d unresolved\n",
			run.ID, run.StartedAt.Local().Format(time.DateTime), run.Root,
			run.Summary.Replacements, run.Summary.Unresolved)
	}

	return nil
}

func (c *HistoryCmd) show(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mirrorkit.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Run %s\n", run.ID)
	fmt.Fprintf(deps.Stdout, "  root:      %s\n", run.Root)
	fmt.Fprintf(deps.Stdout, "  started:   %s\n", run.StartedAt.Local().Format(time.DateTime))
	fmt.Fprintf(deps.Stdout, "  finished:  %s\n", run.FinishedAt.Local().Format(time.DateTime))
	fmt.Fprintf(deps.Stdout, "  config:    min size %d, threshold %.2f, min occurrences %d\n",
		run.Config.MinBlockSize, run.Config.SimilarityThreshold, run.Config.MinOccurrences)
	fmt.Fprintf(deps.Stdout, "  summary:   %d files, %d clusters, %d replaced, %d unresolved\n",
		run.Summary.FilesScanned, run.Summary.ClustersRetained,
		run.Summary.Replacements, run.Summary.Unresolved)

	if len(run.Records) > 0 {
		fmt.Fprintln(deps.Stdout, "  records:")
		for _, rec := range run.Records {
			status := rec.Tier
			if !rec.Resolved {
				status = "unresolved"
			}
			fmt.Fprintf(deps.Stdout, "    %-14s %-12s %s\n", rec.ClusterID, status, rec.Path)
		}
	}

	return nil
}
