package transform

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/dop251/goja"

	"github.com/shibukawa/snapjs/parser"
	"github.com/shibukawa/snapjs/printer"
)

func TestLowerSubscriptSlices(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "start and end", input: "a[1:3]", want: "a.slice(1, 3);"},
		{name: "missing start", input: "a[:3]", want: "a.slice(undefined, 3);"},
		{name: "missing end", input: "a[1:]", want: "a.slice(1, undefined);"},
		{name: "step is dropped", input: "a[1:10:2]", want: "a.slice(1, 10);"},
		{name: "only step", input: "a[::2]", want: "a.slice(undefined, undefined);"},
		{name: "optional member", input: "a?.[1:2]", want: "a?.slice(1, 2);"},
		{name: "chained", input: "a[1:2][3:4]", want: "a.slice(1, 2).slice(3, 4);"},
		{name: "nested in start", input: "a[b[1:2]:3]", want: "a.slice(b.slice(1, 2), 3);"},
		{name: "call object", input: "f()[n - 1:]", want: "f().slice(n - 1, undefined);"},
		{name: "inside function", input: "const g = (s) => s[1:-1]", want: "const g = (s) => s.slice(1, -1);"},
		{name: "plain index", input: "a[1]", want: "a[1];"},
		{name: "conditional", input: "x = cond ? a : b", want: "x = cond ? a : b;"},
		{name: "conditional index", input: "a[c ? 1 : 2]", want: "a[c ? 1 : 2];"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LowerSlices(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLowerFreeStandingSlice(t *testing.T) {
	got, err := LowerSlices("1:5")
	assert.NoError(t, err)

	want := `(function* (si, ei, step) {
  if (step < 0) {
    if (si > ei) {
      for (let i = si; i > ei; i += step) yield i;
    } else {
      for (let i = ei + step; i >= si; i += step) yield i;
    }
  } else {
    for (let i = si; i < ei; i += step) yield i;
  }
})(1, 5, 1);`
	assert.Equal(t, want, got)
}

func TestLowerFreeStandingSliceDefaults(t *testing.T) {
	got, err := LowerSlices(":")
	assert.NoError(t, err)
	assert.Contains(t, got, "})(undefined, undefined, 1);")

	got, err = LowerSlices("::-1")
	assert.NoError(t, err)
	assert.Contains(t, got, "})(undefined, undefined, -1);")
}

func TestLoweredRangesRun(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "1:5", want: "[1,2,3,4]"},
		{input: "5:1:-1", want: "[5,4,3,2]"},
		{input: "1:10:3", want: "[1,4,7]"},
		{input: "1:5:-1", want: "[4,3,2,1]"},
		{input: "0:10:20", want: "[0]"},
		{input: "3:3", want: "[]"},
		{input: "n - 2:n", want: "[8,9]"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			code, err := LowerSlices("JSON.stringify(Array.from(" + tt.input + "))")
			assert.NoError(t, err)

			vm := goja.New()
			assert.NoError(t, vm.Set("n", 10))

			v, err := vm.RunString(code)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestLoweredSubscriptsRun(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "[1, 2, 3, 4][1:3]", want: "[2,3]"},
		{input: "[1, 2, 3, 4][:-1]", want: "[1,2,3]"},
		{input: "[1, 2, 3, 4][2:]", want: "[3,4]"},
		{input: "'hello'[1:4]", want: `"ell"`},
		{input: "null?.[1:2]", want: "undefined"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			code, err := LowerSlices("String(JSON.stringify(" + tt.input + "))")
			assert.NoError(t, err)

			v, err := goja.New().RunString(code)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

// A '/' that opens a statement after a control head or a block is a regular expression.
func TestLowerSlicesRegExpStatements(t *testing.T) {
	sources := []string{
		"var x = 'abc'; if (x) /b/.test(x)",
		"var n = 0; while (n++ < 1) /a/.exec('a')",
		"for (;false;) /a/;",
		"{}\n/a/.test('a')",
		"function f(){}\n/a/.test('a')",
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			got, err := LowerSlices(src)
			assert.NoError(t, err)

			want, err := goja.New().RunString(src)
			assert.NoError(t, err)

			v, err := goja.New().RunString(got)
			assert.NoError(t, err)
			assert.Equal(t, want.Export(), v.Export())
		})
	}
}

// Without slice syntax the output re-parses to the same program.
func TestLowerSlicesWithoutSlicesIsNoop(t *testing.T) {
	sources := []string{
		"const x = cond ? a : b;",
		"switch (k) { case 1: f(); break; default: g() }",
		"loop: for (const v of vs) { if (v) continue loop }",
		"o = { a: 1, get b() { return 2 } }",
		"async function f() { return await g() }",
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			got, err := LowerSlices(src)
			assert.NoError(t, err)

			original, err := parser.Parse(src, parser.Options{})
			assert.NoError(t, err)

			lowered, err := parser.Parse(got, parser.Options{})
			assert.NoError(t, err)
			assert.Equal(t, printer.Print(original), printer.Print(lowered))
		})
	}
}

func TestLowerSlicesParseError(t *testing.T) {
	inputs := []string{
		"a[1:3", "a[(1:2]", "1 +", "f(:",
		"a[1:2] = x", "a[1:2]++", "for (a[1:2] of b);", "[a[1:2]] = y",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got, err := LowerSlices(input)
			assert.IsError(t, err, ErrSliceParse)
			assert.IsError(t, err, parser.ErrSyntax)
			assert.Equal(t, "", got)
		})
	}
}
