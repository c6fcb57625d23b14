package transform

import (
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/shibukawa/snapjs/printer"
)

// Result is the outcome of Pipeline.Run.
type Result struct {
	// Code is the rewritten snippet, or the input when nothing applied.
	Code string
	// Lowered reports whether at least one slice was rewritten.
	Lowered bool
	// Wrapped reports whether the snippet was wrapped for top-level await.
	Wrapped bool
}

// Changed reports whether any transformer applied.
func (r Result) Changed() bool {
	return r.Lowered || r.Wrapped
}

type pipelineConfig struct {
	slices        bool
	topLevelAwait bool
	indent        string
	cacheSize     int
	logger        *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*pipelineConfig)

// WithSlices enables or disables slice lowering. Enabled by default.
func WithSlices(enabled bool) PipelineOption {
	return func(cfg *pipelineConfig) {
		cfg.slices = enabled
	}
}

// WithTopLevelAwait enables or disables the top-level await wrapper. Enabled by default.
func WithTopLevelAwait(enabled bool) PipelineOption {
	return func(cfg *pipelineConfig) {
		cfg.topLevelAwait = enabled
	}
}

// WithIndent sets the indentation used when printing rewritten code.
func WithIndent(indent string) PipelineOption {
	return func(cfg *pipelineConfig) {
		cfg.indent = indent
	}
}

// WithCacheSize keeps the results of the last size distinct inputs. Zero disables the
// cache.
func WithCacheSize(size int) PipelineOption {
	return func(cfg *pipelineConfig) {
		cfg.cacheSize = size
	}
}

// WithLogger sets the logger receiving debug records for each step.
func WithLogger(logger *slog.Logger) PipelineOption {
	return func(cfg *pipelineConfig) {
		cfg.logger = logger
	}
}

// Pipeline runs slice lowering followed by the top-level await wrapper. A Pipeline may be
// shared between goroutines.
type Pipeline struct {
	cfg   pipelineConfig
	cache *lru.Cache[string, Result]
}

// NewPipeline creates a pipeline with both transformers enabled unless opts say otherwise.
func NewPipeline(opts ...PipelineOption) *Pipeline {
	cfg := pipelineConfig{
		slices:        true,
		topLevelAwait: true,
		indent:        printer.DefaultIndent,
		logger:        slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Pipeline{cfg: cfg}

	if cfg.cacheSize > 0 {
		// New only fails for a non-positive size.
		p.cache, _ = lru.New[string, Result](cfg.cacheSize)
	}

	return p
}

// Run transforms src. Slices are lowered first because the wrapper parses with the plain
// grammar. A slice parse failure is returned as an error wrapping ErrSliceParse; a snippet
// the wrapper does not apply to is passed through.
func (p *Pipeline) Run(src string) (Result, error) {
	if p.cache != nil {
		if cached, ok := p.cache.Get(src); ok {
			p.cfg.logger.Debug("pipeline cache hit")
			return cached, nil
		}
	}

	result, err := p.run(src)
	if err == nil && p.cache != nil {
		p.cache.Add(src, result)
	}

	return result, err
}

func (p *Pipeline) run(src string) (Result, error) {
	result := Result{Code: src}
	opts := printer.Options{Indent: p.cfg.indent}
	log := p.cfg.logger

	if p.cfg.slices {
		code, count, err := lowerSlices(src, opts)
		if err != nil {
			log.Debug("slice lowering failed", slog.Any("error", err))
			return Result{}, err
		}

		// Untouched input keeps its original layout.
		if count > 0 {
			result.Code = code
			result.Lowered = true
		}

		log.Debug("slice lowering", slog.Int("slices", count))
	}

	if p.cfg.topLevelAwait {
		code, ok := wrapTopLevelAwait(result.Code, opts)
		if ok {
			result.Code = code
			result.Wrapped = true
		}

		log.Debug("top-level await", slog.Bool("wrapped", ok))
	}

	return result, nil
}
