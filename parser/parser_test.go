package parser_test

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/snapjs/ast"
	"github.com/shibukawa/snapjs/parser"
	"github.com/shibukawa/snapjs/printer"
	"github.com/shibukawa/snapjs/tokenizer"
)

func TestParseStatements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "variable declarations",
			input: "var a = 1, b;",
			want:  "var a = 1, b;",
		},
		{
			name:  "destructuring",
			input: "let {a, b: [c = 1, ...d], ...e} = obj",
			want:  "let { a, b: [c = 1, ...d], ...e } = obj;",
		},
		{
			name:  "array destructuring assignment",
			input: "[a, , ...b] = c",
			want:  "[a, , ...b] = c;",
		},
		{
			name:  "object destructuring assignment",
			input: "({a, b: c.d, ...f} = g)",
			want:  "({ a, b: c.d, ...f } = g);",
		},
		{
			name:  "async arrow",
			input: "const f = async (x, y = 2) => { await x }",
			want:  "const f = async (x, y = 2) => {\n  await x;\n};",
		},
		{
			name:  "generator",
			input: "function* g() { yield* h(); yield }",
			want:  "function* g() {\n  yield* h();\n  yield;\n}",
		},
		{
			name:  "class",
			input: "class A extends B { #x = 1; static y; constructor() { super() } get z() { return this.#x } static { init() } }",
			want: `class A extends B {
  #x = 1;
  static y;
  constructor() {
    super();
  }
  get z() {
    return this.#x;
  }
  static {
    init();
  }
}`,
		},
		{
			name:  "if else chain",
			input: "if (a) b(); else if (c) d(); else { e() }",
			want:  "if (a) {\n  b();\n} else if (c) {\n  d();\n} else {\n  e();\n}",
		},
		{
			name:  "for loop",
			input: "for (let i = 0; i < n; i++) sum += i",
			want:  "for (let i = 0; i < n; i++) sum += i;",
		},
		{
			name:  "for in",
			input: "for (const k in o) {}",
			want:  "for (const k in o) {}",
		},
		{
			name:  "labeled for of",
			input: "outer: for (const x of xs) { continue outer }",
			want:  "outer: for (const x of xs) {\n  continue outer;\n}",
		},
		{
			name:  "do while",
			input: "do x++; while (x < 5)",
			want:  "do x++;\nwhile (x < 5);",
		},
		{
			name:  "try catch finally",
			input: "try { a() } catch { b() } finally { c() }",
			want:  "try {\n  a();\n} catch {\n  b();\n} finally {\n  c();\n}",
		},
		{
			name:  "switch",
			input: "switch (x) { case 1: a(); break; default: b() }",
			want:  "switch (x) {\n  case 1:\n    a();\n    break;\n  default:\n    b();\n}",
		},
		{
			name:  "semicolon insertion",
			input: "a = 1\nb = 2",
			want:  "a = 1;\nb = 2;",
		},
		{
			name:  "throw",
			input: "throw new Error('x')",
			want:  "throw new Error('x');",
		},
		{
			name:  "nested conditional",
			input: "x = a ? b : c ? d : e",
			want:  "x = a ? b : c ? d : e;",
		},
		{
			name:  "comments are dropped",
			input: "// lead\na /* inner */ + b",
			want:  "a + b;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, err := parser.Parse(tt.input, parser.Options{})
			assert.NoError(t, err)
			assert.Equal(t, tt.want, printer.Print(program))
		})
	}
}

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "precedence", input: "a + b * c", want: "a + b * c"},
		{name: "grouping", input: "(a + b) * c", want: "(a + b) * c"},
		{name: "exponent right associative", input: "a ** b ** c", want: "a ** b ** c"},
		{name: "exponent grouped left", input: "(a ** b) ** c", want: "(a ** b) ** c"},
		{name: "unary base of exponent", input: "(-a) ** b", want: "(-a) ** b"},
		{name: "nullish with logical", input: "a ?? (b || c)", want: "a ?? (b || c)"},
		{name: "optional chain", input: "a?.b.c()", want: "a?.b.c()"},
		{name: "optional computed", input: "a?.[0]", want: "a?.[0]"},
		{name: "parenthesized chain", input: "(a?.b).c", want: "(a?.b).c"},
		{name: "new with call callee", input: "new (foo())()", want: "new (foo())()"},
		{name: "new without arguments", input: "new Foo", want: "new Foo()"},
		{name: "immediately invoked", input: "(function () {})()", want: "(function() {})()"},
		{name: "arrow object body", input: "(() => ({}))", want: "() => ({})"},
		{name: "curried arrows", input: "x => y => x + y", want: "(x) => (y) => x + y"},
		{name: "tagged template", input: "tag`a${b}c`", want: "tag`a${b}c`"},
		{name: "double negation", input: "- -x", want: "- -x"},
		{name: "typeof", input: "typeof x === 'string'", want: "typeof x === 'string'"},
		{name: "array holes", input: "[a, , b,,]", want: "[a, , b, ,]"},
		{
			name:  "object literal",
			input: "{a, b: 1, [c]: 2, ...d, m() {}, get x() { return 1 }}",
			want:  "{ a, b: 1, [c]: 2, ...d, m() {}, get x() {\n  return 1;\n} }",
		},
		{name: "number member", input: "(1).toString()", want: "(1).toString()"},
		{name: "fraction member", input: "1..toString()", want: "1..toString()"},
		{name: "dynamic import", input: "import('x')", want: "import('x')"},
		{name: "chained assignment", input: "a = b = c", want: "a = b = c"},
		{name: "sequence", input: "(a, b)", want: "a, b"},
		{name: "sequence argument", input: "f(...args, (a, b))", want: "f(...args, (a, b))"},
		{name: "async function expression", input: "async function () {}", want: "async function() {}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := parser.ParseExpression(tt.input, parser.Options{})
			assert.NoError(t, err)
			assert.Equal(t, tt.want, printer.Print(expr))
		})
	}
}

func TestParseSlices(t *testing.T) {
	tests := []struct {
		name  string
		input string
		start string
		end   string
		step  string
	}{
		{name: "start and end", input: "1:3", start: "1", end: "3"},
		{name: "end only", input: ":3", end: "3"},
		{name: "start only", input: "1:", start: "1"},
		{name: "step only", input: "::2", step: "2"},
		{name: "empty", input: ":"},
		{name: "all empty with step colon", input: "::"},
		{name: "all parts", input: "1:10:2", start: "1", end: "10", step: "2"},
		{name: "negative step", input: "5:1:-1", start: "5", end: "1", step: "-1"},
		{name: "conditional start", input: "c ? 1 : 2 : 3", start: "c ? 1 : 2", end: "3"},
		{name: "expression parts", input: "a + 1:b * 2", start: "a + 1", end: "b * 2"},
	}

	part := func(e ast.Expr) string {
		if e == nil {
			return ""
		}

		return printer.Print(e)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := parser.ParseExpression(tt.input, parser.Options{Slices: true})
			assert.NoError(t, err)

			slice, ok := expr.(*ast.SliceExpression)
			assert.True(t, ok, "got %T", expr)
			assert.Equal(t, tt.start, part(slice.StartIndex))
			assert.Equal(t, tt.end, part(slice.EndIndex))
			assert.Equal(t, tt.step, part(slice.Step))
		})
	}
}

func TestParseSubscriptSlices(t *testing.T) {
	for _, input := range []string{"a[1:3]", "a[:3]", "a[1:]", "a[::2]", "a[:]", "a?.[1:2:3]"} {
		t.Run(input, func(t *testing.T) {
			program, err := parser.Parse(input, parser.Options{Slices: true})
			assert.NoError(t, err)

			stmt := program.Body[0].(*ast.ExpressionStatement)
			expr := stmt.Expression

			if chain, ok := expr.(*ast.ChainExpression); ok {
				expr = chain.Expression
			}

			member, ok := expr.(*ast.MemberExpression)
			assert.True(t, ok, "got %T", expr)
			assert.True(t, member.Computed)

			_, ok = member.Property.(*ast.SliceExpression)
			assert.True(t, ok, "got %T", member.Property)
			assert.Equal(t, input+";", printer.Print(program))
		})
	}
}

func TestSlicesLeaveOtherColonsAlone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "conditional", input: "x = c ? a : b", want: "x = c ? a : b;"},
		{name: "nested conditional", input: "c ? d ? 1 : 2 : 3", want: "c ? d ? 1 : 2 : 3;"},
		{name: "object literal", input: "o = {a: 1, b: c}", want: "o = { a: 1, b: c };"},
		{name: "switch case", input: "switch (x) { case a: b() }", want: "switch (x) {\n  case a:\n    b();\n}"},
		{name: "label before loop", input: "loop: for (;;) break loop", want: "loop: for (;;) break loop;"},
		{name: "label before block", input: "done: { f() }", want: "done: {\n  f();\n}"},
		{name: "slice at statement start", input: "a:b", want: "a:b;"},
		{name: "conditional inside slice", input: "x[c ? 1 : 2 : 3]", want: "x[c ? 1 : 2:3];"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, err := parser.Parse(tt.input, parser.Options{Slices: true})
			assert.NoError(t, err)
			assert.Equal(t, tt.want, printer.Print(program))
		})
	}
}

func TestLabelsWithoutSlices(t *testing.T) {
	program, err := parser.Parse("a: b", parser.Options{})
	assert.NoError(t, err)

	_, ok := program.Body[0].(*ast.LabeledStatement)
	assert.True(t, ok)
}

func TestAwaitAndReturnOptions(t *testing.T) {
	t.Run("await at top level", func(t *testing.T) {
		program, err := parser.Parse("await x", parser.Options{AllowAwaitOutsideFunction: true})
		assert.NoError(t, err)

		stmt := program.Body[0].(*ast.ExpressionStatement)
		_, ok := stmt.Expression.(*ast.AwaitExpression)
		assert.True(t, ok)
	})

	t.Run("for await at top level", func(t *testing.T) {
		program, err := parser.Parse("for await (const x of xs) {}", parser.Options{AllowAwaitOutsideFunction: true})
		assert.NoError(t, err)

		loop := program.Body[0].(*ast.ForOfStatement)
		assert.True(t, loop.Await)
	})

	t.Run("await is an identifier without the option", func(t *testing.T) {
		program, err := parser.Parse("await(1)", parser.Options{})
		assert.NoError(t, err)

		stmt := program.Body[0].(*ast.ExpressionStatement)
		_, ok := stmt.Expression.(*ast.CallExpression)
		assert.True(t, ok)
	})

	t.Run("await stays disallowed in plain functions", func(t *testing.T) {
		_, err := parser.Parse("function f() { await x }", parser.Options{AllowAwaitOutsideFunction: true})
		assert.IsError(t, err, parser.ErrSyntax)
	})

	t.Run("return at top level", func(t *testing.T) {
		program, err := parser.Parse("return 1", parser.Options{AllowReturnOutsideFunction: true})
		assert.NoError(t, err)

		_, ok := program.Body[0].(*ast.ReturnStatement)
		assert.True(t, ok)
	})

	t.Run("return without the option", func(t *testing.T) {
		_, err := parser.Parse("return 1", parser.Options{})
		assert.IsError(t, err, parser.ErrSyntax)
	})
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  parser.Options
	}{
		{name: "unclosed slice", input: "a[1:3", opts: parser.Options{Slices: true}},
		{name: "colon without slices", input: "a[1:3]"},
		{name: "missing binding", input: "let = ;"},
		{name: "unclosed paren", input: "("},
		{name: "dangling operator", input: "a +"},
		{name: "await without async", input: "await x"},
		{name: "for await outside async", input: "for await (x of y) {}"},
		{name: "module import", input: "import x from 'y'"},
		{name: "rest not last", input: "function f(...a, b) {}"},
		{name: "invalid assignment target", input: "1 = 2"},
		{name: "call in destructuring target", input: "[f()] = x"},
		{name: "slice assignment target", input: "a[1:2] = x", opts: parser.Options{Slices: true}},
		{name: "slice compound assignment", input: "a[:] += x", opts: parser.Options{Slices: true}},
		{name: "slice update", input: "a[1:2]++", opts: parser.Options{Slices: true}},
		{name: "slice prefix update", input: "--a[1:]", opts: parser.Options{Slices: true}},
		{name: "slice for-of target", input: "for (a[1:2] of b);", opts: parser.Options{Slices: true}},
		{name: "slice in array pattern", input: "[a[1:2]] = y", opts: parser.Options{Slices: true}},
		{name: "slice in object pattern", input: "({k: a[1:2]} = o)", opts: parser.Options{Slices: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(tt.input, tt.opts)
			assert.IsError(t, err, parser.ErrSyntax)

			var perr *parser.Error
			assert.True(t, errors.As(err, &perr))
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := parser.Parse("a = 1;\nb = ;", parser.Options{})

	var perr *parser.Error
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, 2, perr.Pos.Line)
	assert.Contains(t, err.Error(), "line 2")
}

func TestTokenizerErrorsKeepTheirSentinel(t *testing.T) {
	_, err := parser.Parse("'abc", parser.Options{})
	assert.IsError(t, err, parser.ErrSyntax)
	assert.IsError(t, err, tokenizer.ErrUnterminatedString)
}
