package main

import (
	"fmt"
)

// Run executes the normalize command.
func (c *NormalizeCmd) Run(deps *Dependencies) error {
	if err := deps.Transformer.NormalizeLinks(deps.Ctx, c.Domain, c.Dir); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "normalized links under %s\n", c.Dir)
	return nil
}
