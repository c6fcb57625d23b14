package main

import (
	"fmt"

	"github.com/shibukawa/snapjs"
)

// InitCmd represents the init command
type InitCmd struct {
	Force bool `short:"f" help:"Overwrite an existing configuration file"`
}

// Run executes the init command
func (cmd *InitCmd) Run(ctx *Context) error {
	if ctx.Verbose {
		status(ctx, colorInfo, "Writing default configuration to %s", ctx.Config)
	}

	if err := snapjs.WriteDefaultConfig(ctx.Config, cmd.Force); err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	status(ctx, colorOK, "Created %s", ctx.Config)

	return nil
}
