package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

const stdinName = "<stdin>"

// Status line colors.
const (
	colorOK   = color.FgGreen
	colorInfo = color.FgBlue
	colorWarn = color.FgYellow
	colorFail = color.FgRed
)

// source is one input document.
type source struct {
	name string
	data []byte
}

// readSource reads input, or stdin when input is empty or "-".
func readSource(ctx *Context, input string) (source, error) {
	if input == "" || input == "-" {
		data, err := io.ReadAll(ctx.Stdin)
		if err != nil {
			return source{}, fmt.Errorf("failed to read input: %w", err)
		}

		return source{name: stdinName, data: data}, nil
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return source{}, fmt.Errorf("failed to read %s: %w", input, err)
	}

	return source{name: input, data: data}, nil
}

// writeResult writes out back to the input file with write, to output when set and to
// stdout otherwise.
func writeResult(ctx *Context, src source, out []byte, output string, write bool) error {
	switch {
	case write:
		if src.name == stdinName {
			return ErrWriteRequiresFile
		}

		return replaceFile(src.name, out)
	case output != "":
		if err := os.WriteFile(output, out, 0644); err != nil {
			return fmt.Errorf("failed to write output file %s: %w", output, err)
		}

		return nil
	default:
		_, err := ctx.Stdout.Write(out)
		return err
	}
}

// replaceFile writes data to a temporary file next to path and renames it over path.
func replaceFile(path string, data []byte) (err error) {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), ".snapjs-rewrite-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	defer func() {
		if err != nil {
			os.Remove(tempFile.Name())
		}
	}()

	if _, err = tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err = tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err = os.Chmod(tempFile.Name(), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	if err = os.Rename(tempFile.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}

// withNewline terminates code with a newline when the input was terminated.
func withNewline(code string, input []byte) []byte {
	if len(input) > 0 && input[len(input)-1] == '\n' && (code == "" || code[len(code)-1] != '\n') {
		code += "\n"
	}

	return []byte(code)
}

// showDiff writes a unified diff between the original and rewritten content.
func showDiff(w io.Writer, name string, original, rewritten []byte) error {
	if string(original) == string(rewritten) {
		return nil
	}

	edits := myers.ComputeEdits(span.URIFromPath(name), string(original), string(rewritten))
	unified := gotextdiff.ToUnified(name+" (original)", name+" (rewritten)", string(original), edits)

	_, err := fmt.Fprint(w, unified)

	return err
}

// status prints a colored status line to stderr unless --quiet is set.
func status(ctx *Context, attr color.Attribute, format string, args ...any) {
	if ctx.Quiet {
		return
	}

	color.New(attr).Fprintf(ctx.Stderr, format+"\n", args...)
}
