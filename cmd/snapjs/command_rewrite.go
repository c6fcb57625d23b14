package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/shibukawa/snapjs/markdown"
	"github.com/shibukawa/snapjs/transform"
)

// RewriteCmd represents the rewrite command
type RewriteCmd struct {
	Input  string `arg:"" optional:"" help:"Input file or directory (default: stdin)"`
	Output string `short:"o" help:"Output file (default: stdout)"`
	Write  bool   `short:"w" help:"Write result to input file instead of stdout"`
	Check  bool   `short:"c" help:"Check whether files would be rewritten (exit 1 if so)"`
	Diff   bool   `short:"d" help:"Show diff instead of rewriting files"`
}

// rewriter holds the configured pipeline and Markdown rewriter for one run.
type rewriter struct {
	pipeline *transform.Pipeline
	markdown *markdown.Rewriter
}

// Run executes the rewrite command
func (cmd *RewriteCmd) Run(ctx *Context) error {
	config, err := ctx.loadConfig()
	if err != nil {
		return err
	}

	pipeline := ctx.pipeline(config)
	rw := &rewriter{
		pipeline: pipeline,
		markdown: markdown.NewRewriter(pipeline, config.Markdown.Languages...),
	}

	if cmd.Input == "" || cmd.Input == "-" {
		src, err := readSource(ctx, cmd.Input)
		if err != nil {
			return err
		}

		return cmd.rewriteSource(ctx, rw, src)
	}

	info, err := os.Stat(cmd.Input)
	if err != nil {
		return fmt.Errorf("failed to stat input: %w", err)
	}

	if info.IsDir() {
		return cmd.rewriteDirectory(ctx, rw, cmd.Input)
	}

	src, err := readSource(ctx, cmd.Input)
	if err != nil {
		return err
	}

	return cmd.rewriteSource(ctx, rw, src)
}

// rewrite runs the pipeline over a snippet, or over the code blocks of a Markdown file.
// A Markdown file with failing blocks still yields the document with the other blocks
// rewritten, alongside the error; out is nil when there is nothing to apply.
func (rw *rewriter) rewrite(src source) ([]byte, error) {
	if isMarkdownFile(src.name) {
		out, err := rw.markdown.Rewrite(src.data)
		if err != nil {
			return out, fmt.Errorf("failed to rewrite Markdown in %s: %w", src.name, err)
		}

		return out, nil
	}

	result, err := rw.pipeline.Run(string(src.data))
	if err != nil {
		return nil, fmt.Errorf("failed to rewrite %s: %w", src.name, err)
	}

	if !result.Changed() {
		return src.data, nil
	}

	return withNewline(result.Code, src.data), nil
}

// rewriteSource rewrites one document and reports, diffs or writes the result.
func (cmd *RewriteCmd) rewriteSource(ctx *Context, rw *rewriter, src source) error {
	out, err := rw.rewrite(src)
	if out == nil {
		return err
	}

	return errors.Join(cmd.apply(ctx, src, out), err)
}

// apply reports, diffs or writes the rewritten content of src.
func (cmd *RewriteCmd) apply(ctx *Context, src source, out []byte) error {
	changed := !bytes.Equal(src.data, out)

	switch {
	case cmd.Check:
		if changed {
			status(ctx, colorWarn, "%s would be rewritten", src.name)
			return ErrFileNeedsRewrite
		}

		return nil
	case cmd.Diff:
		return showDiff(ctx.Stdout, src.name, src.data, out)
	case cmd.Write && !changed:
		return nil
	}

	if err := writeResult(ctx, src, out, cmd.Output, cmd.Write); err != nil {
		return err
	}

	if cmd.Write {
		status(ctx, colorOK, "Rewrote: %s", src.name)
	}

	return nil
}

// fileResult is the outcome of rewriting one file of a directory.
type fileResult struct {
	src source
	out []byte
	err error
}

// rewriteDirectory rewrites every snippet and Markdown file under dirPath. Files are
// transformed concurrently and reported in walk order; failures are reported per file and
// processing continues.
func (cmd *RewriteCmd) rewriteDirectory(ctx *Context, rw *rewriter, dirPath string) error {
	if !cmd.Write && !cmd.Check && !cmd.Diff {
		return ErrDirectoryNeedsWrite
	}

	if cmd.Output != "" {
		return ErrOutputWithDirectory
	}

	var paths []string

	err := filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && isRewritableFile(path) {
			paths = append(paths, path)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk directory: %w", err)
	}

	results := make([]fileResult, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		g.Go(func() error {
			src, err := readSource(ctx, path)
			if err == nil {
				results[i].out, err = rw.rewrite(src)
			}

			results[i].src = src
			results[i].err = err

			return nil
		})
	}

	_ = g.Wait()

	var hasErrors, needsRewrite bool

	for i, res := range results {
		if res.out != nil {
			switch err := cmd.apply(ctx, res.src, res.out); {
			case err == nil:
			case cmd.Check && errors.Is(err, ErrFileNeedsRewrite):
				needsRewrite = true
			default:
				status(ctx, colorFail, "Error rewriting %s: %v", paths[i], err)

				hasErrors = true
			}
		}

		if res.err != nil {
			status(ctx, colorFail, "Error rewriting %s: %v", paths[i], res.err)

			hasErrors = true
		}
	}

	if hasErrors {
		return ErrRewriteErrors
	}

	if needsRewrite {
		return ErrFileNeedsRewrite
	}

	return nil
}

// isRewritableFile checks if a file is a JavaScript snippet or a Markdown file
func isRewritableFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".js", ".mjs", ".md":
		return true
	default:
		return false
	}
}

// isMarkdownFile checks if a file is a Markdown file
func isMarkdownFile(filename string) bool {
	return strings.ToLower(filepath.Ext(filename)) == ".md"
}

// Help returns help text for the rewrite command
func (cmd *RewriteCmd) Help() string {
	return `Rewrite JavaScript snippets and the JavaScript code blocks of Markdown files.

Slices are lowered first, then snippets using top-level await are wrapped in an
async arrow function whose last expression is returned. Snippets that need
neither are left byte for byte as they are.

Examples:
  # Rewrite a snippet and print to stdout
  snapjs rewrite snippet.js

  # Rewrite the code blocks of a document in place
  snapjs rewrite -w README.md

  # Rewrite all .js, .mjs and .md files in a directory
  snapjs rewrite -w ./snippets/

  # Check whether anything would be rewritten
  snapjs rewrite -c ./snippets/

  # Show a diff of what would be rewritten
  snapjs rewrite -d snippet.js

  # Rewrite from stdin
  echo 'await fetch(url)' | snapjs rewrite`
}
