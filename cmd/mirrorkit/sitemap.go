package main

import (
	"fmt"

	"github.com/fcolombo/mirrorkit/etree"
)

// Run executes the sitemap command.
func (c *SitemapCmd) Run(deps *Dependencies) error {
	if err := etree.NewGenerator(c.Domain).Write(c.Dir); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "sitemap written to %s/%s\n", c.Dir, etree.SitemapFilename)
	return nil
}
