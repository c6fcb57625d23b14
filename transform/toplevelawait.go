package transform

import (
	"github.com/shibukawa/snapjs/ast"
	"github.com/shibukawa/snapjs/parser"
	"github.com/shibukawa/snapjs/printer"
)

// WrapTopLevelAwait wraps a snippet that awaits at its top level in an immediately
// invoked async arrow function, returning the value of its last expression statement:
//
//	await foo()  =>  (async () => { return await foo(); })()
//
// The second result is false, and the string empty, when the snippet does not parse,
// has no top-level await or for await, or contains a top-level return.
func WrapTopLevelAwait(src string) (string, bool) {
	return wrapTopLevelAwait(src, printer.Options{})
}

func wrapTopLevelAwait(src string, opts printer.Options) (string, bool) {
	program, err := parser.Parse(src, parser.Options{
		AllowAwaitOutsideFunction:  true,
		AllowReturnOutsideFunction: true,
	})
	if err != nil {
		return "", false
	}

	scan := scanTopLevel(program)
	if !scan.await || scan.returns {
		return "", false
	}

	body := program.Body
	if last, ok := body[len(body)-1].(*ast.ExpressionStatement); ok {
		body[len(body)-1] = &ast.ReturnStatement{Span: last.Span, Argument: last.Expression}
	}

	wrapper := ast.Call(&ast.ArrowFunctionExpression{Body: ast.Block(body...), Async: true})

	return printer.Print(wrapper, opts), true
}

type topLevelScan struct {
	await   bool
	returns bool
}

// scanTopLevel looks for suspension points and return statements outside any function
// body. Function subtrees are skipped; their siblings are still scanned.
func scanTopLevel(program *ast.Program) topLevelScan {
	var scan topLevelScan

	ast.Inspect(program, func(n ast.Node) bool {
		if ast.IsFunction(n) {
			return false
		}

		switch n := n.(type) {
		case *ast.AwaitExpression:
			scan.await = true
		case *ast.ForOfStatement:
			if n.Await {
				scan.await = true
			}
		case *ast.ReturnStatement:
			scan.returns = true
		}

		return true
	})

	return scan
}
