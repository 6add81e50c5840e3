// Package wget shells out to the wget binary to mirror a website into
// a local directory tree.
package wget

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"os/exec"

	"github.com/fcolombo/mirrorkit"
)

// Runner invokes wget for full-site mirrors and individual resource
// fetches.
type Runner struct {
	// Bin is the wget executable. "wget" when empty.
	Bin string

	// Limiter throttles per-host resource fetches when set.
	Limiter mirrorkit.DomainLimiter

	// Logger receives progress diagnostics. Discarded when nil.
	Logger *slog.Logger

	// Output receives wget's combined output when set.
	Output io.Writer
}

// MirrorArgs returns the wget arguments for a full recursive mirror of
// domain into dest: converted links, adjusted extensions, page
// requisites, and filenames restricted to portable characters.
func MirrorArgs(domain, dest string) []string {
	return []string{
		"--mirror",
		"--convert-links",
		"--adjust-extension",
		"--page-requisites",
		"--no-parent",
		"--restrict-file-names=ascii,windows",
		"-P", dest,
		domain,
	}
}

// FetchArgs returns the wget arguments for fetching a single resource
// into dest, preserving the server directory structure.
func FetchArgs(dest, resource string) []string {
	return []string{"-x", "-P", dest, resource}
}

// Mirror downloads the full site at domain into dest.
func (r *Runner) Mirror(ctx context.Context, domain, dest string) error {
	r.logger().Info("mirroring site", "domain", domain, "dest", dest)

	cmd := exec.CommandContext(ctx, r.bin(), MirrorArgs(domain, dest)...)
	cmd.Stdout = r.Output
	cmd.Stderr = r.Output
	if err := cmd.Run(); err != nil {
		return mirrorkit.Errorf(mirrorkit.EINTERNAL, "wget mirror of %q: %v", domain, err)
	}
	return nil
}

// FetchResources downloads each URL into dest, preserving directory
// structure. Individual fetch failures are logged and skipped so one
// dead resource does not abort the batch. Returns the number of
// successful fetches.
func (r *Runner) FetchResources(ctx context.Context, dest string, urls []string) (int, error) {
	fetched := 0
	for _, resource := range urls {
		if err := ctx.Err(); err != nil {
			return fetched, err
		}

		if r.Limiter != nil {
			host := resource
			if u, err := url.Parse(resource); err == nil && u.Host != "" {
				host = u.Host
			}
			if err := r.Limiter.Wait(ctx, host); err != nil {
				return fetched, err
			}
		}

		cmd := exec.CommandContext(ctx, r.bin(), FetchArgs(dest, resource)...)
		cmd.Stdout = r.Output
		cmd.Stderr = r.Output
		if err := cmd.Run(); err != nil {
			r.logger().Warn("resource fetch failed", "url", resource, "error", err)
			continue
		}
		fetched++
	}

	r.logger().Info("resource fetch complete", "requested", len(urls), "fetched", fetched)
	return fetched, nil
}

func (r *Runner) bin() string {
	if r.Bin != "" {
		return r.Bin
	}
	return "wget"
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
