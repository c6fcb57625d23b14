package transform

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineRun(t *testing.T) {
	tests := []struct {
		name    string
		opts    []PipelineOption
		input   string
		want    string
		lowered bool
		wrapped bool
	}{
		{
			name:  "untouched input keeps its layout",
			input: "const  x = 1",
			want:  "const  x = 1",
		},
		{
			name:    "slice only",
			input:   "a[1:2]",
			want:    "a.slice(1, 2);",
			lowered: true,
		},
		{
			name:    "await only",
			input:   "await f()",
			want:    "(async () => {\n  return await f();\n})()",
			wrapped: true,
		},
		{
			name:    "slice and await",
			input:   "(await f())[1:]",
			want:    "(async () => {\n  return (await f()).slice(1, undefined);\n})()",
			lowered: true,
			wrapped: true,
		},
		{
			name:  "slices disabled",
			opts:  []PipelineOption{WithSlices(false)},
			input: "await f()",
			want:  "(async () => {\n  return await f();\n})()",
			// The wrapper still applies.
			wrapped: true,
		},
		{
			name:    "await disabled",
			opts:    []PipelineOption{WithTopLevelAwait(false)},
			input:   "await a[1:2]",
			want:    "await a.slice(1, 2);",
			lowered: true,
		},
		{
			name:    "custom indent",
			opts:    []PipelineOption{WithIndent("\t")},
			input:   "await f()",
			want:    "(async () => {\n\treturn await f();\n})()",
			wrapped: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewPipeline(tt.opts...).Run(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Code)
			assert.Equal(t, tt.lowered, result.Lowered)
			assert.Equal(t, tt.wrapped, result.Wrapped)
			assert.Equal(t, tt.lowered || tt.wrapped, result.Changed())
		})
	}
}

func TestPipelineSliceError(t *testing.T) {
	_, err := NewPipeline().Run("a[1:")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSliceParse)
}

func TestPipelineSlicesDisabledPassesColonsThrough(t *testing.T) {
	result, err := NewPipeline(WithSlices(false)).Run("a[1:2]")
	require.NoError(t, err)
	assert.Equal(t, "a[1:2]", result.Code)
	assert.False(t, result.Changed())
}

func TestPipelineLogs(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := NewPipeline(WithLogger(logger)).Run("await a[1:2]")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "slices=1")
	assert.Contains(t, buf.String(), "wrapped=true")
}

func TestPipelineRunsGeneratedCode(t *testing.T) {
	result, err := NewPipeline().Run("const xs = await Promise.resolve([10, 20, 30, 40]);\n[...xs[1:3], ...(0:2)]")
	require.NoError(t, err)
	require.True(t, result.Lowered)
	require.True(t, result.Wrapped)

	v, err := goja.New().RunString(result.Code)
	require.NoError(t, err)

	promise, ok := v.Export().(*goja.Promise)
	require.True(t, ok)
	require.Equal(t, goja.PromiseStateFulfilled, promise.State())
	assert.Equal(t, []any{int64(20), int64(30), int64(0), int64(1)}, promise.Result().Export())
}

func TestPipelineIsSafeForConcurrentUse(t *testing.T) {
	p := NewPipeline()

	var wg sync.WaitGroup

	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			result, err := p.Run("await a[1:2]")
			assert.NoError(t, err)
			assert.True(t, result.Wrapped)
		}()
	}

	wg.Wait()
}

func TestPipelineCache(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := NewPipeline(WithCacheSize(2), WithLogger(logger))

	first, err := p.Run("a[1:2]")
	require.NoError(t, err)

	second, err := p.Run("a[1:2]")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, strings.Count(buf.String(), "pipeline cache hit"))

	// Failures are not cached.
	_, err = p.Run("a[1:")
	require.Error(t, err)
	_, err = p.Run("a[1:")
	require.Error(t, err)
	assert.Equal(t, 1, strings.Count(buf.String(), "pipeline cache hit"))
}
