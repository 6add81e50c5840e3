package main

import (
	"fmt"
)

// Run executes the fixquery command.
func (c *FixqueryCmd) Run(deps *Dependencies) error {
	fixed, err := deps.Transformer.FixQueryNames(deps.Ctx, c.Dir)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "fixed %d query-string filenames\n", fixed)
	return nil
}
