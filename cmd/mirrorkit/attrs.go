package main

import (
	"fmt"

	"github.com/fcolombo/mirrorkit/transform"
)

// Run executes the attrs command.
func (c *AttrsCmd) Run(deps *Dependencies) error {
	attrs := c.Attrs
	if attrs == "" {
		attrs = deps.FileCfg.Attrs
	}
	if attrs == "" {
		attrs = transform.DefaultAttrs
	}

	urls, err := deps.Transformer.CheckAttrs(deps.Ctx, c.Domain, c.Dir, attrs)
	if err != nil {
		return err
	}

	if len(urls) == 0 {
		fmt.Fprintln(deps.Stdout, "no extra resource URLs found")
		return nil
	}
	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}

	if c.Fetch {
		fetched, err := deps.Wget.FetchResources(deps.Ctx, c.Dir, urls)
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "fetched %d of %d resources\n", fetched, len(urls))
	}

	return nil
}
