package refactor

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fcolombo/mirrorkit"
)

const previewLimit = 400

// BuildReport renders a human-readable Markdown summary of a run. The
// converter turns each cluster's canonical HTML into a short readable
// preview; conversion failures fall back to the raw content.
func BuildReport(result *Result, converter mirrorkit.Converter) string {
	run := result.Run
	id := run.ID
	if id == "" {
		id = uuid.NewString()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Refactor run %s\n\n", id)
	fmt.Fprintf(&b, "- Root: `%s`\n", run.Root)
	fmt.Fprintf(&b, "- Date: %s\n", run.FinishedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- Files scanned: %d\n", result.Summary.FilesScanned)
	fmt.Fprintf(&b, "- Clusters retained: %d\n", result.Summary.ClustersRetained)
	fmt.Fprintf(&b, "- Replacements: %d\n", result.Summary.Replacements)
	fmt.Fprintf(&b, "- Unresolved: %d\n\n", result.Summary.Unresolved)

	for _, c := range result.Clusters {
		artifact := result.Artifacts[c.ID]
		fmt.Fprintf(&b, "## %s\n\n", c.ID)
		if artifact != nil {
			fmt.Fprintf(&b, "Include: `%s`\n\n", artifact.Path)
		}
		fmt.Fprintf(&b, "Members (%d):\n\n", len(c.Blocks))
		for _, m := range c.Blocks {
			fmt.Fprintf(&b, "- `%s`\n", m.Path)
		}
		b.WriteString("\n")

		preview := c.Canonical().Content
		if converter != nil {
			if md, err := converter.Convert(preview); err == nil && strings.TrimSpace(md) != "" {
				preview = md
			}
		}
		preview = strings.TrimSpace(preview)
		if len(preview) > previewLimit {
			preview = preview[:previewLimit] + "…"
		}
		fmt.Fprintf(&b, "```\n%s\n```\n\n", preview)
	}

	return b.String()
}
