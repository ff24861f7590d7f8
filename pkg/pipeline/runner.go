package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/qrtile/pkg/cache"
	"github.com/matzehuels/qrtile/pkg/encoder"
	"github.com/matzehuels/qrtile/pkg/errors"
	"github.com/matzehuels/qrtile/pkg/observability"
	"github.com/matzehuels/qrtile/pkg/render"
	"github.com/matzehuels/qrtile/pkg/render/sink"
)

// Request describes one encode → render → serialize run.
type Request struct {
	// Text is the payload to encode.
	Text string `json:"text"`

	// Encoder options.
	Level   encoder.Level `json:"level,omitempty"`
	Version int           `json:"version,omitempty"`
	Border  bool          `json:"border,omitempty"`

	// Config is the render configuration.
	Config Config `json:"config"`

	// Formats lists the artifacts to produce. Empty means png for the
	// bitmap backend and html otherwise.
	Formats []string `json:"formats,omitempty"`

	// Title wraps HTML artifacts in a standalone document when non-empty.
	Title string `json:"title,omitempty"`

	// Refresh bypasses cache reads. Results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	validated bool
}

// ValidateAndSetDefaults checks the request and applies defaults.
// It is idempotent.
func (q *Request) ValidateAndSetDefaults() error {
	if q.validated {
		return nil
	}
	if err := errors.ValidatePayload(q.Text); err != nil {
		return err
	}
	if q.Level == 0 {
		q.Level = encoder.DefaultLevel
	}
	if err := (encoder.Options{Level: q.Level, Version: q.Version}).Validate(); err != nil {
		return err
	}

	q.Config.SetDefaults()
	if err := q.Config.Validate(); err != nil {
		return err
	}

	if len(q.Formats) == 0 {
		q.Formats = []string{DefaultFormat(q.Config.Backend)}
	}
	seen := make(map[string]bool, len(q.Formats))
	formats := q.Formats[:0:0]
	for _, f := range q.Formats {
		format, err := sink.ParseFormat(f)
		if err != nil {
			return err
		}
		if err := sink.Compatible(format, q.Config.Backend); err != nil {
			return err
		}
		if !seen[format] {
			seen[format] = true
			formats = append(formats, format)
		}
	}
	q.Formats = formats
	q.validated = true
	return nil
}

// DefaultFormat returns the artifact format produced when none is requested.
func DefaultFormat(b render.Backend) string {
	if b == render.BackendBitmap || b == "" {
		return sink.FormatPNG
	}
	return sink.FormatHTML
}

// ArtifactKeyOpts returns cache key options for one format.
func (q *Request) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	var title string
	if format == sink.FormatHTML {
		title = q.Title
	}
	return cache.ArtifactKeyOpts{
		Level:      q.Level.String(),
		Version:    q.Version,
		Border:     q.Border,
		Width:      q.Config.Width,
		Height:     q.Config.Height,
		Backend:    string(q.Config.Backend),
		Foreground: render.Hex(q.Config.Foreground),
		Background: render.Hex(q.Config.Background),
		Format:     format,
		Title:      title,
	}
}

// Runner executes requests with caching.
//
// The Runner holds no per-request state; multiple goroutines can share one.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses [cache.DefaultKeyer] and a nil logger discards output.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute encodes the payload, renders it and serializes each requested
// format. Fully cached requests skip encoding and rendering.
func (r *Runner) Execute(ctx context.Context, req Request) (*Result, error) {
	if err := req.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	result := &Result{
		ID:        uuid.NewString(),
		Artifacts: make(map[string][]byte, len(req.Formats)),
	}
	logger := r.Logger.With("id", result.ID)

	keys := make(map[string]string, len(req.Formats))
	for _, f := range req.Formats {
		keys[f] = r.Keyer.ArtifactKey(req.Text, req.ArtifactKeyOpts(f))
	}

	if !req.Refresh {
		for _, f := range req.Formats {
			if data, ok := r.cached(ctx, keys[f]); ok {
				result.Artifacts[f] = data
			}
		}
		if len(result.Artifacts) == len(req.Formats) {
			result.CacheHit = true
			logger.Info("served from cache", "formats", req.Formats)
			return result, nil
		}
	}

	// Stage 1: Encode
	encodeStart := time.Now()
	observability.Render().OnEncodeStart(ctx, req.Level.String(), len(req.Text))
	g, err := encoder.Encode(req.Text, encoder.Options{Level: req.Level, Version: req.Version, Border: req.Border})
	result.Stats.EncodeTime = time.Since(encodeStart)
	modules := 0
	if g != nil {
		modules = g.Size()
	}
	observability.Render().OnEncodeComplete(ctx, req.Level.String(), modules, result.Stats.EncodeTime, err)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	result.Grid = g
	result.Stats.Modules = modules

	logger.Debug("encoded payload",
		"bytes", len(req.Text),
		"level", req.Level,
		"modules", modules,
		"duration", result.Stats.EncodeTime)

	// Stage 2: Render
	renderStart := time.Now()
	observability.Render().OnRenderStart(ctx, string(req.Config.Backend), modules)
	out, layout, err := RenderWithLayout(g, req.Config)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Render().OnRenderComplete(ctx, string(req.Config.Backend), result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Output = out
	result.Layout = layout
	result.Stats.Width, result.Stats.Height = out.Size()

	logger.Info("rendered",
		"backend", req.Config.Backend,
		"modules", modules,
		"size", fmt.Sprintf("%dx%d", result.Stats.Width, result.Stats.Height),
		"duration", result.Stats.RenderTime)

	// Stage 3: Serialize
	sinkStart := time.Now()
	in := sink.Input{Grid: g, Layout: layout, Colors: req.Config.Colors(), Output: out}
	var opts sink.Options
	if req.Title != "" {
		opts.HTML = append(opts.HTML, sink.WithDocument(req.Title))
	}
	for _, f := range req.Formats {
		if _, ok := result.Artifacts[f]; ok {
			continue
		}
		data, err := sink.Encode(f, in, opts)
		if err != nil {
			return nil, fmt.Errorf("serialize %s: %w", f, err)
		}
		result.Artifacts[f] = data
		r.store(ctx, keys[f], data, logger)
	}
	result.Stats.SinkTime = time.Since(sinkStart)

	logger.Debug("serialized artifacts",
		"formats", req.Formats,
		"duration", result.Stats.SinkTime)

	return result, nil
}

func (r *Runner) cached(ctx context.Context, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "artifact")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "artifact")
	return data, true
}

// store writes an artifact back. Cache failures never fail the request.
func (r *Runner) store(ctx context.Context, key string, data []byte, logger *log.Logger) {
	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "artifact", len(data))
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
