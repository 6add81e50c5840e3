package main

import (
	"fmt"
)

// Run executes the mirror command.
func (c *MirrorCmd) Run(deps *Dependencies) error {
	if err := deps.Wget.Mirror(deps.Ctx, c.Domain, c.Dest); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "mirrored %s into %s\n", c.Domain, c.Dest)
	return nil
}
