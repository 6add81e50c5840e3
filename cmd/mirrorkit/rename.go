package main

import (
	"fmt"
)

// Run executes the rename command.
func (c *RenameCmd) Run(deps *Dependencies) error {
	renamed, err := deps.Transformer.RenameExtensions(deps.Ctx, c.Dir)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "renamed %d files to .php\n", renamed)
	return nil
}
