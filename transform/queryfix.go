package transform

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// FixQueryNames cleans up files whose names carry a query-string
// suffix after the mirroring tool's escaping, e.g. "style.css@v=3"
// becomes "style.css". When the clean name already exists the suffixed
// file is removed instead. References in page and stylesheet files are
// updated to the clean names. Returns the number of renamed files.
func (t *Transformer) FixQueryNames(ctx context.Context, root string) (int, error) {
	suffixed, err := walkFiles(root, func(name string) bool {
		return strings.Contains(name, "@")
	})
	if err != nil {
		return 0, err
	}

	mapping := make(map[string]string, len(suffixed))
	for _, path := range suffixed {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		name := filepath.Base(path)
		clean := strings.SplitN(name, "@", 2)[0]
		cleanPath := filepath.Join(filepath.Dir(path), clean)

		if _, err := os.Stat(cleanPath); err == nil {
			if err := os.Remove(path); err != nil {
				return 0, err
			}
		} else if err := os.Rename(path, cleanPath); err != nil {
			return 0, err
		}
		mapping[name] = clean
		t.logger().Debug("query name fixed", "from", name, "to", clean)
	}

	if len(mapping) == 0 {
		return 0, nil
	}

	// Update references wherever the suffixed names can appear.
	targets, err := walkFiles(root, func(name string) bool {
		return hasSuffixAny(name, ".html", ".css")
	})
	if err != nil {
		return 0, err
	}

	err = t.forEachFile(ctx, targets, func(path string) error {
		content, err := readFile(path)
		if err != nil {
			return err
		}
		updated := content
		for old, clean := range mapping {
			updated = strings.ReplaceAll(updated, old, clean)
		}
		if updated == content {
			return nil
		}
		return writeFile(path, updated)
	})
	if err != nil {
		return 0, err
	}

	return len(mapping), nil
}
