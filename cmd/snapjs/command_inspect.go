package main

import (
	"bytes"
	"fmt"

	"github.com/shibukawa/snapjs/inspect"
)

// InspectCmd represents the inspect command
type InspectCmd struct {
	Input  string `arg:"" optional:"" help:"Input file (default: stdin)"`
	Output string `short:"o" help:"Output file (default: stdout)"`
	Tokens bool   `help:"Show the token stream"`
	Tree   bool   `help:"Show the syntax tree"`
	Slices bool   `help:"Parse with slice syntax enabled"`
	Format string `short:"f" enum:"yaml,json,csv" default:"yaml" help:"Output format (yaml, json, csv)"`
	Pretty bool   `help:"Indent JSON output"`
}

// Run executes the inspect command
func (cmd *InspectCmd) Run(ctx *Context) error {
	src, err := readSource(ctx, cmd.Input)
	if err != nil {
		return err
	}

	res, err := inspect.Inspect(bytes.NewReader(src.data), inspect.InspectOptions{
		Tokens: cmd.Tokens,
		Tree:   cmd.Tree,
		Slices: cmd.Slices,
		Pretty: cmd.Pretty,
	})
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", src.name, err)
	}

	out, err := inspect.Marshal(res, cmd.Format, cmd.Pretty)
	if err != nil {
		return err
	}

	if ctx.Verbose {
		for _, note := range res.Notes {
			status(ctx, colorInfo, "%s", note)
		}
	}

	return writeResult(ctx, src, withNewline(string(out), []byte("\n")), cmd.Output, false)
}
