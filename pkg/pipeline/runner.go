package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/labelforge/labelforge/pkg/batch"
	"github.com/labelforge/labelforge/pkg/cache"
	"github.com/labelforge/labelforge/pkg/label"
	"github.com/labelforge/labelforge/pkg/observability"
	"github.com/labelforge/labelforge/pkg/record"
	"github.com/labelforge/labelforge/pkg/sink"
	"github.com/labelforge/labelforge/pkg/symbol"
)

// Result is the output of one pipeline run.
type Result struct {
	// Artifact is the sealed output, or nil for printer output.
	Artifact []byte

	// Batch details the per-record outcome. Nil when the artifact came
	// from the cache.
	Batch *batch.Result

	// CacheHit is true when the artifact was served from the cache.
	CacheHit bool

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contain pipeline execution statistics.
type Stats struct {
	Records    int
	ReadTime   time.Duration
	RenderTime time.Duration
}

// Runner executes the pipeline with artifact caching. It is stateless apart
// from the cache and logger, so one Runner can serve many runs.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil logger
// disables logging.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute reads records from input and renders them per opts.
//
// Fully successful buffering runs are cached keyed on the input bytes and
// the render options; a later identical run returns the artifact without
// re-composing. Runs with failures or printer output always render.
func (r *Runner) Execute(ctx context.Context, input io.Reader, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	readStart := time.Now()
	raw, err := io.ReadAll(input)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	src, err := record.ReadCSV(bytes.NewReader(raw))
	readTime := time.Since(readStart)
	observability.Pipeline().OnReadComplete(ctx, srcLen(src), readTime, err)
	if err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}

	fields := opts.Fields
	if len(fields) == 0 {
		fields = src.Fields()
	}

	result := &Result{Stats: Stats{Records: src.Len(), ReadTime: readTime}}
	r.Logger.Info("read records", "count", src.Len(), "fields", fields, "duration", readTime)

	key := r.artifactKey(raw, fields, opts)
	if opts.Buffers() && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnHit(ctx, key)
			r.Logger.Debug("artifact cache hit", "bytes", len(data))
			result.Artifact = data
			result.CacheHit = true
			return result, nil
		}
		observability.Cache().OnMiss(ctx, key)
	}

	composer, err := buildComposer(opts)
	if err != nil {
		return nil, err
	}
	out, err := buildSink(opts)
	if err != nil {
		return nil, err
	}

	renderStart := time.Now()
	br, err := batch.NewRenderer(composer, r.Logger).Render(ctx, src.Records(), fields, out)
	result.Batch = br
	result.Stats.RenderTime = time.Since(renderStart)
	if br != nil {
		for _, f := range br.Failures {
			observability.Pipeline().OnRecordSkipped(ctx, f.Index, f.ID, f.Err)
		}
		observability.Pipeline().OnRenderComplete(ctx, opts.Format,
			br.Succeeded, len(br.Failures), result.Stats.RenderTime, err)
	}
	if err != nil {
		return result, err
	}
	result.Artifact = br.Artifact

	r.Logger.Info("rendered batch",
		"format", opts.Format,
		"succeeded", br.Succeeded,
		"failed", len(br.Failures),
		"duration", result.Stats.RenderTime)

	// Cache only clean, complete buffering runs: a cached artifact carries
	// no failure detail, so partial outcomes must always re-render.
	if opts.Buffers() && len(br.Failures) == 0 && !br.Partial {
		_ = r.Cache.Set(ctx, key, br.Artifact, cache.TTLArtifact)
	}

	return result, nil
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func srcLen(s *record.Source) int {
	if s == nil {
		return 0
	}
	return s.Len()
}

// artifactKey derives the cache key from the input bytes and every option
// that shapes the artifact.
func (r *Runner) artifactKey(raw []byte, fields []string, opts Options) string {
	return cache.ArtifactKey(cache.Hash(raw), cache.ArtifactKeyOpts{
		Format: opts.Format,
		Mode:   opts.Mode,
		Anchor: opts.Anchor,
		Fields: fields,
		Border: opts.Border,
		Geometry: fmt.Sprintf("%gx%g/%g/%g/%g/%g/%g/%s",
			opts.Geometry.WidthCM, opts.Geometry.HeightCM, opts.Geometry.SymbolCM,
			opts.Geometry.Padding, opts.Geometry.TextOffset, opts.Geometry.FontSize,
			opts.Geometry.Pitch(), opts.Recovery),
	})
}

// buildComposer assembles the encoder and composer from validated options.
func buildComposer(opts Options) (*label.Composer, error) {
	recovery, err := symbol.ParseRecovery(opts.Recovery)
	if err != nil {
		return nil, err
	}
	anchor, err := label.ParseAnchor(opts.Anchor)
	if err != nil {
		return nil, err
	}
	enc := symbol.New(symbol.WithRecovery(recovery))
	return label.NewComposer(enc, opts.Geometry, anchor), nil
}

// buildSink assembles the sink from validated options.
func buildSink(opts Options) (sink.Sink, error) {
	switch opts.Format {
	case FormatSVG:
		return sink.NewSVG(opts.Geometry), nil
	case FormatPDF:
		pdfOpts := []sink.PDFOption{sink.WithMode(opts.Mode)}
		if opts.Border {
			pdfOpts = append(pdfOpts, sink.WithBorder())
		}
		if opts.PageWidthMM > 0 && opts.PageHeightMM > 0 {
			pdfOpts = append(pdfOpts, sink.WithPageSize(opts.PageWidthMM, opts.PageHeightMM))
		}
		if opts.MarginMM > 0 {
			pdfOpts = append(pdfOpts, sink.WithMargin(opts.MarginMM))
		}
		if opts.GapMM > 0 {
			pdfOpts = append(pdfOpts, sink.WithGap(opts.GapMM))
		}
		return sink.NewPDF(opts.Geometry, pdfOpts...), nil
	case FormatZPL:
		return sink.NewZPL(opts.Geometry, opts.Destination), nil
	default:
		return nil, fmt.Errorf("unknown format: %s", opts.Format)
	}
}
