// Package markdown rewrites JavaScript code blocks inside Markdown documents.
package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/shibukawa/snapjs/tokenizer"
	"github.com/shibukawa/snapjs/transform"
)

// ErrBlockRewrite wraps the failure of a single code block. The other blocks are still
// rewritten.
var ErrBlockRewrite = errors.New("code block rewrite failed")

// DefaultLanguages are the fence info strings treated as JavaScript.
var DefaultLanguages = []string{"js", "javascript", "mjs", "node"}

// Rewriter runs a transform pipeline over the fenced JavaScript blocks of a document
type Rewriter struct {
	pipeline  *transform.Pipeline
	languages map[string]bool
}

// NewRewriter creates a rewriter for the given fence languages, or DefaultLanguages
// when none are given.
func NewRewriter(pipeline *transform.Pipeline, languages ...string) *Rewriter {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}

	known := lo.SliceToMap(languages, func(lang string) (string, bool) {
		return strings.ToLower(lang), true
	})

	return &Rewriter{pipeline: pipeline, languages: known}
}

// Rewrite rewrites the js, javascript, mjs and node blocks of src with p.
func Rewrite(src []byte, p *transform.Pipeline) ([]byte, error) {
	return NewRewriter(p).Rewrite(src)
}

// codeBlock is the byte range of a fenced block's content. container is the prefix
// Markdown strips from every line (list indentation, "> "); common is the indentation the
// code itself shares.
type codeBlock struct {
	start, stop int
	container   string
	common      string
	code        string
	line        int
}

// Rewrite returns src with every matching block replaced by the pipeline output. Blocks
// the pipeline leaves unchanged keep their original bytes. Failed blocks are left as they
// are and reported together in the returned error, alongside the rewritten document.
func (r *Rewriter) Rewrite(src []byte) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(src))

	var (
		out    bytes.Buffer
		errs   []error
		cursor int
	)

	for _, block := range r.collect(doc, src) {
		result, err := r.pipeline.Run(block.code)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w at line %d: %w", ErrBlockRewrite, block.line, err))
			continue
		}

		if !result.Changed() {
			continue
		}

		out.Write(src[cursor:block.start])
		out.WriteString(indent(result.Code, block.container, block.common))

		if strings.HasSuffix(block.code, "\n") {
			out.WriteString("\n")
		}

		cursor = block.stop
	}

	out.Write(src[cursor:])

	return out.Bytes(), errors.Join(errs...)
}

// RewriteFromReader rewrites a document from reader into writer.
func (r *Rewriter) RewriteFromReader(reader io.Reader, writer io.Writer) error {
	input, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	output, err := r.Rewrite(input)
	if _, werr := writer.Write(output); werr != nil {
		return werr
	}

	return err
}

// collect finds the fenced blocks in matching languages, in document order.
func (r *Rewriter) collect(doc ast.Node, src []byte) []codeBlock {
	var blocks []codeBlock

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		if r.languages[strings.ToLower(string(fenced.Language(src)))] {
			if block, ok := blockContent(fenced, src); ok {
				blocks = append(blocks, block)
			}
		}

		return ast.WalkSkipChildren, nil
	})

	return blocks
}

// blockContent extracts the content of a fenced block. Blocks nested in containers are
// supported when every line shares the same prefix (list indentation, "> " quoting);
// blocks whose lines carry tab padding or differing prefixes are skipped.
func blockContent(n *ast.FencedCodeBlock, src []byte) (codeBlock, bool) {
	lines := n.Lines()
	if lines.Len() == 0 {
		return codeBlock{}, false
	}

	var (
		code   strings.Builder
		prefix string
	)

	first := lines.At(0)
	lineStart := bytes.LastIndexByte(src[:first.Start], '\n') + 1

	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		if seg.Padding > 0 {
			return codeBlock{}, false
		}

		start := bytes.LastIndexByte(src[:seg.Start], '\n') + 1
		p := string(src[start:seg.Start])

		if i == 0 {
			prefix = p
		} else if p != prefix {
			return codeBlock{}, false
		}

		code.Write(seg.Value(src))
	}

	if strings.TrimSpace(code.String()) == "" {
		return codeBlock{}, false
	}

	return codeBlock{
		start:     lineStart,
		stop:      lines.At(lines.Len() - 1).Stop,
		container: prefix,
		common:    commonIndent(code.String()),
		code:      code.String(),
		line:      bytes.Count(src[:first.Start], []byte("\n")) + 1,
	}, true
}

// indent puts the block prefixes back on printed code. Every line gets the container
// prefix, blank lines without its trailing spaces. Lines continuing a template literal are
// part of the string value and do not get the common indentation.
func indent(code, container, common string) string {
	continued := templateLines(code)
	blank := strings.TrimRight(container, " ")

	lines := strings.Split(code, "\n")
	for i, line := range lines {
		switch {
		case line == "":
			lines[i] = blank
		case continued[i]:
			lines[i] = container + line
		default:
			lines[i] = container + common + line
		}
	}

	return strings.Join(lines, "\n")
}

// templateLines returns the indexes of the lines of code that start inside a template
// literal chunk.
func templateLines(code string) map[int]bool {
	continued := map[int]bool{}

	tokens, err := tokenizer.NewTokenizer(code).AllTokens()
	if err != nil {
		return continued
	}

	for _, tok := range tokens {
		switch tok.Type {
		case tokenizer.TEMPLATE, tokenizer.TEMPLATE_HEAD, tokenizer.TEMPLATE_MIDDLE, tokenizer.TEMPLATE_TAIL:
			first := strings.Count(code[:tok.Position.Offset], "\n")
			n := strings.Count(code[tok.Position.Offset:tok.End], "\n")

			for i := 1; i <= n; i++ {
				continued[first+i] = true
			}
		}
	}

	return continued
}

// commonIndent returns the leading spaces shared by every non-blank line of code.
func commonIndent(code string) string {
	common := -1

	for _, line := range strings.Split(code, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		n := len(line) - len(strings.TrimLeft(line, " "))
		if common < 0 || n < common {
			common = n
		}
	}

	return strings.Repeat(" ", max(common, 0))
}
