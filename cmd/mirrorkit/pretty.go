package main

import (
	"fmt"
)

// Run executes the pretty command.
func (c *PrettyCmd) Run(deps *Dependencies) error {
	processed, err := deps.Transformer.PrettyPrint(deps.Ctx, c.Dir)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "pretty printed %d files\n", processed)
	return nil
}
