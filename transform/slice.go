// Package transform rewrites JavaScript snippets: slice syntax is lowered to plain
// JavaScript and snippets using top-level await are wrapped in an async function.
package transform

import (
	"errors"
	"fmt"

	"github.com/shibukawa/snapjs/ast"
	"github.com/shibukawa/snapjs/parser"
	"github.com/shibukawa/snapjs/printer"
)

// ErrSliceParse is returned when a snippet cannot be parsed with slice syntax enabled.
var ErrSliceParse = errors.New("slice parse failed")

// LowerSlices rewrites every slice in src.
//
// A subscript slice obj[start:end:step] becomes obj.slice(start, end); the step is not
// representable by Array.prototype.slice and is dropped. Any other slice becomes an
// immediately invoked generator yielding the indices. Parse failures wrap ErrSliceParse
// and parser.ErrSyntax.
func LowerSlices(src string) (string, error) {
	code, _, err := lowerSlices(src, printer.Options{})
	return code, err
}

func lowerSlices(src string, opts printer.Options) (string, int, error) {
	// Snippets are evaluator bodies, so await and return are accepted at the top level
	// and left for the wrapper to judge.
	program, err := parser.Parse(src, parser.Options{
		Slices:                     true,
		AllowAwaitOutsideFunction:  true,
		AllowReturnOutsideFunction: true,
	})
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", ErrSliceParse, err)
	}

	count := lowerSliceNodes(program)

	return printer.Print(program, opts), count, nil
}

// lowerSliceNodes rewrites the slices under root bottom-up and returns how many it
// rewrote.
func lowerSliceNodes(root ast.Node) int {
	count := 0

	ast.Apply(root, nil, func(c *ast.Cursor) bool {
		switch n := c.Node().(type) {
		case *ast.MemberExpression:
			if slice, ok := n.Property.(*ast.SliceExpression); ok && n.Computed {
				c.Replace(sliceCall(n, slice))
				count++
			}
		case *ast.SliceExpression:
			if isSubscript(c) {
				// Rewritten with its member expression.
				return true
			}

			c.Replace(rangeCall(n))
			count++
		}

		return true
	})

	return count
}

func isSubscript(c *ast.Cursor) bool {
	m, ok := c.Parent().(*ast.MemberExpression)
	return ok && m.Computed && c.Name() == "Property"
}

// sliceCall builds obj.slice(start, end), keeping an optional link.
func sliceCall(m *ast.MemberExpression, s *ast.SliceExpression) *ast.CallExpression {
	callee := ast.Member(m.Object, "slice")
	callee.Optional = m.Optional
	callee.Span = m.Span

	call := ast.Call(callee, ast.ExprOrUndefined(s.StartIndex), ast.ExprOrUndefined(s.EndIndex))
	call.Span = m.Span

	return call
}

// rangeCall builds the generator invocation for a free-standing slice:
//
//	(function* (si, ei, step) {
//	  if (step < 0) {
//	    if (si > ei) {
//	      for (let i = si; i > ei; i += step) yield i;
//	    } else {
//	      for (let i = ei + step; i >= si; i += step) yield i;
//	    }
//	  } else {
//	    for (let i = si; i < ei; i += step) yield i;
//	  }
//	})(start, end, step)
//
// A negative step counts down from start when start is above end (5:1:-1 yields 5 4 3 2)
// and otherwise walks start:end backwards (1:5:-1 yields 4 3 2 1).
func rangeCall(s *ast.SliceExpression) *ast.CallExpression {
	step := s.Step
	if step == nil {
		step = ast.Number(1)
	}

	countDown := &ast.IfStatement{
		Test:       ast.Binary(">", ast.Ident("si"), ast.Ident("ei")),
		Consequent: ast.Block(yieldLoop(ast.Ident("si"), ">", ast.Ident("ei"))),
		Alternate:  ast.Block(yieldLoop(ast.Binary("+", ast.Ident("ei"), ast.Ident("step")), ">=", ast.Ident("si"))),
	}

	body := ast.Block(&ast.IfStatement{
		Test:       ast.Binary("<", ast.Ident("step"), ast.Number(0)),
		Consequent: ast.Block(countDown),
		Alternate:  ast.Block(yieldLoop(ast.Ident("si"), "<", ast.Ident("ei"))),
	})

	generator := &ast.FunctionExpression{
		Params:    ast.Params("si", "ei", "step"),
		Body:      body,
		Generator: true,
	}

	call := ast.Call(generator, ast.ExprOrUndefined(s.StartIndex), ast.ExprOrUndefined(s.EndIndex), step)
	call.Span = s.Span

	return call
}

// yieldLoop builds: for (let i = from; i <op> bound; i += step) yield i;
func yieldLoop(from ast.Expr, op string, bound ast.Expr) *ast.ForStatement {
	return &ast.ForStatement{
		Init:   ast.Let("i", from),
		Test:   ast.Binary(op, ast.Ident("i"), bound),
		Update: ast.Assign("+=", ast.Ident("i"), ast.Ident("step")),
		Body:   ast.ExprStmt(ast.Yield(ast.Ident("i"))),
	}
}
