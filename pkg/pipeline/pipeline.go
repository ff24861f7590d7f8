// Package pipeline turns payloads into rendered QR artifacts.
//
// The package has two layers:
//
//  1. [Render] is the dispatch core: it validates a [Config], computes the
//     column and row spans once with [tile.Build], and hands them to the
//     selected backend strategy.
//  2. [Runner] wraps the full encode → render → serialize flow with an
//     artifact cache, structured logging and observability hooks. Both the
//     CLI and the HTTP server use it.
//
// # Usage
//
// Render a precomputed grid:
//
//	cfg := pipeline.DefaultConfig()
//	cfg.Backend = render.BackendTable
//	out, err := pipeline.Render(g, cfg)
//
// Run the whole flow:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Request{
//	    Text:    "https://example.com",
//	    Config:  pipeline.DefaultConfig(),
//	    Formats: []string{sink.FormatPNG},
//	})
//	png := result.Artifacts[sink.FormatPNG]
package pipeline

import (
	"image/color"
	"math"
	"time"

	"github.com/matzehuels/qrtile/pkg/errors"
	"github.com/matzehuels/qrtile/pkg/grid"
	"github.com/matzehuels/qrtile/pkg/render"
	"github.com/matzehuels/qrtile/pkg/tile"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default output width in pixels.
	DefaultWidth = 256.0

	// DefaultHeight is the default output height in pixels.
	DefaultHeight = 256.0

	// DefaultBackend is the default rendering backend.
	DefaultBackend = render.BackendBitmap
)

// =============================================================================
// Config - Render Configuration
// =============================================================================

// Config is the per-call render configuration.
//
// Width and Height are never defaulted: zero, negative and non-finite
// values are rejected. An empty Backend means [DefaultBackend], and a
// zero-valued color means the corresponding default color.
type Config struct {
	Width      float64        `json:"width" toml:"width"`
	Height     float64        `json:"height" toml:"height"`
	Foreground color.RGBA     `json:"-" toml:"-"`
	Background color.RGBA     `json:"-" toml:"-"`
	Backend    render.Backend `json:"backend" toml:"backend"`
}

// DefaultConfig returns a 256×256 bitmap configuration with black modules
// on white.
func DefaultConfig() Config {
	return Config{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Foreground: render.DefaultForeground,
		Background: render.DefaultBackground,
		Backend:    DefaultBackend,
	}
}

// SetDefaults fills the backend and colors when they are unset.
func (c *Config) SetDefaults() {
	if c.Backend == "" {
		c.Backend = DefaultBackend
	}
	if c.Foreground == (color.RGBA{}) {
		c.Foreground = render.DefaultForeground
	}
	if c.Background == (color.RGBA{}) {
		c.Background = render.DefaultBackground
	}
}

// Validate checks geometry, then backend, then colors. It does not apply
// defaults; call SetDefaults first.
func (c Config) Validate() error {
	if err := validateExtent("width", c.Width); err != nil {
		return err
	}
	if err := validateExtent("height", c.Height); err != nil {
		return err
	}
	if !c.Backend.Valid() {
		return errors.New(errors.ErrCodeUnsupportedBackend, "unsupported backend: %q", string(c.Backend))
	}
	if c.Foreground.A != 0xff {
		return errors.New(errors.ErrCodeInvalidColor, "foreground color must be opaque")
	}
	if c.Background.A != 0xff {
		return errors.New(errors.ErrCodeInvalidColor, "background color must be opaque")
	}
	return nil
}

// Colors returns the module colors.
func (c Config) Colors() render.Colors {
	return render.Colors{Foreground: c.Foreground, Background: c.Background}
}

func validateExtent(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.New(errors.ErrCodeInvalidGeometry, "%s must be finite", name)
	}
	if v <= 0 {
		return errors.New(errors.ErrCodeInvalidGeometry, "%s must be positive, got %g", name, v)
	}
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a runner execution.
type Result struct {
	// ID identifies this execution in logs and HTTP responses.
	ID string

	// Grid is the encoded module grid. Nil when every artifact was served
	// from cache.
	Grid *grid.Matrix

	// Output is the backend output. Nil when every artifact was served
	// from cache.
	Output render.Output

	// Layout holds the spans the output was rendered with.
	Layout tile.Layout

	// Artifacts contains serialized outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit is true when every artifact came from the cache.
	CacheHit bool
}

// Stats contains execution statistics.
type Stats struct {
	Modules    int
	Width      int
	Height     int
	EncodeTime time.Duration
	RenderTime time.Duration
	SinkTime   time.Duration
}
