package main

import (
	"fmt"

	"github.com/shibukawa/snapjs/transform"
)

// SliceCmd represents the slice command
type SliceCmd struct {
	Input  string `arg:"" optional:"" help:"Input file (default: stdin)"`
	Output string `short:"o" help:"Output file (default: stdout)"`
	Write  bool   `short:"w" help:"Write result to input file instead of stdout"`
}

// Run executes the slice command
func (cmd *SliceCmd) Run(ctx *Context) error {
	config, err := ctx.loadConfig()
	if err != nil {
		return err
	}

	src, err := readSource(ctx, cmd.Input)
	if err != nil {
		return err
	}

	pipeline := ctx.pipeline(config, transform.WithSlices(true), transform.WithTopLevelAwait(false))

	result, err := pipeline.Run(string(src.data))
	if err != nil {
		return fmt.Errorf("failed to lower slices in %s: %w", src.name, err)
	}

	return writeResult(ctx, src, withNewline(result.Code, src.data), cmd.Output, cmd.Write)
}

// Help returns help text for the slice command
func (cmd *SliceCmd) Help() string {
	return `Lower Python-style slices to plain JavaScript.

A subscript slice becomes a call to slice():

  a[1:3]     ->  a.slice(1, 3)
  a?.[:n]    ->  a?.slice(undefined, n)

Any other slice becomes a generator producing the indices, so it can be spread
or iterated:

  [...1:5]       ->  [1, 2, 3, 4]
  [...5:1:-1]    ->  [5, 4, 3, 2]

Input without slices is written back unchanged.`
}
