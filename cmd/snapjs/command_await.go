package main

import (
	"fmt"

	"github.com/shibukawa/snapjs/transform"
)

// AwaitCmd represents the await command
type AwaitCmd struct {
	Input  string `arg:"" optional:"" help:"Input file (default: stdin)"`
	Output string `short:"o" help:"Output file (default: stdout)"`
	Write  bool   `short:"w" help:"Write result to input file instead of stdout"`
	Strict bool   `help:"Exit 1 when the snippet is not wrapped"`
}

// Run executes the await command
func (cmd *AwaitCmd) Run(ctx *Context) error {
	config, err := ctx.loadConfig()
	if err != nil {
		return err
	}

	src, err := readSource(ctx, cmd.Input)
	if err != nil {
		return err
	}

	pipeline := ctx.pipeline(config, transform.WithSlices(false), transform.WithTopLevelAwait(true))

	result, err := pipeline.Run(string(src.data))
	if err != nil {
		return fmt.Errorf("failed to wrap %s: %w", src.name, err)
	}

	if !result.Wrapped {
		if cmd.Strict {
			return fmt.Errorf("%w: %s", ErrNotWrapped, src.name)
		}

		if ctx.Verbose {
			status(ctx, colorWarn, "%s: nothing to wrap", src.name)
		}
	}

	return writeResult(ctx, src, withNewline(result.Code, src.data), cmd.Output, cmd.Write)
}
