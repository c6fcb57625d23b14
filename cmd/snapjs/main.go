package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/shibukawa/snapjs"
	"github.com/shibukawa/snapjs/transform"
)

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// loadConfig loads the configuration file; --verbose raises the log level to debug.
func (c *Context) loadConfig() (*snapjs.Config, error) {
	config, err := snapjs.LoadConfig(c.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if c.Verbose {
		config.Log.Level = "debug"
	}

	return config, nil
}

// pipeline builds the transform pipeline described by config, logging to stderr.
func (c *Context) pipeline(config *snapjs.Config, opts ...transform.PipelineOption) *transform.Pipeline {
	logger := snapjs.NewLogger(c.Stderr, config.Log)

	options := append(config.PipelineOptions(), transform.WithLogger(logger))

	return transform.NewPipeline(append(options, opts...)...)
}

// CLI represents the command-line interface
var CLI struct {
	Config  string     `help:"Configuration file path" default:"snapjs.yaml"`
	Verbose bool       `help:"Enable verbose output" short:"v"`
	Quiet   bool       `help:"Suppress output" short:"q"`
	Slice   SliceCmd   `cmd:"" help:"Lower slice syntax to plain JavaScript"`
	Await   AwaitCmd   `cmd:"" help:"Wrap a snippet using top-level await in an async function"`
	Rewrite RewriteCmd `cmd:"" help:"Run the full pipeline over snippets and Markdown files"`
	Inspect InspectCmd `cmd:"" help:"Show the tokens and syntax tree of a snippet"`
	Init    InitCmd    `cmd:"" help:"Write a default snapjs.yaml"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintln(ctx.Stdout, "snapjs v0.1.0")
	return err
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("snapjs"),
		kong.Description("Slice syntax and top-level await for JavaScript snippets"),
		kong.UsageOnError(),
	)

	appCtx := &Context{
		Config:  CLI.Config,
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
