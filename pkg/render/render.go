package render

import (
	"image/color"
	"strings"

	"github.com/matzehuels/qrtile/pkg/errors"
	"github.com/matzehuels/qrtile/pkg/grid"
	"github.com/matzehuels/qrtile/pkg/tile"
)

// Backend selects a rendering strategy.
type Backend string

// Supported backends.
const (
	BackendBitmap  Backend = "bitmap"
	BackendTable   Backend = "table"
	BackendBoxGrid Backend = "boxgrid"
)

// Backends lists every supported backend in a stable order.
var Backends = []Backend{BackendBitmap, BackendTable, BackendBoxGrid}

// ParseBackend resolves a backend name case-insensitively. The historical
// names "canvas" and "divs" are accepted as aliases for bitmap and boxgrid.
// Anything else is an UNSUPPORTED_BACKEND error; there is no fallback.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bitmap", "canvas":
		return BackendBitmap, nil
	case "table":
		return BackendTable, nil
	case "boxgrid", "box-grid", "divs":
		return BackendBoxGrid, nil
	}
	return "", errors.New(errors.ErrCodeUnsupportedBackend, "unsupported backend: %q (must be one of: bitmap, table, boxgrid)", s)
}

// Valid reports whether b is one of the supported backends.
func (b Backend) Valid() bool {
	switch b {
	case BackendBitmap, BackendTable, BackendBoxGrid:
		return true
	}
	return false
}

// Colors holds the two module colors. Both must be opaque.
type Colors struct {
	Foreground color.RGBA // dark modules
	Background color.RGBA // light modules
}

// For returns the color of a module.
func (c Colors) For(dark bool) color.RGBA {
	if dark {
		return c.Foreground
	}
	return c.Background
}

// Output is a rendered QR code owned by the caller.
type Output interface {
	// Backend reports which strategy produced the output.
	Backend() Backend

	// Size returns the pixel extent of the output.
	Size() (width, height int)

	// ColorAt returns the color covering pixel (x, y), or false if the
	// pixel lies outside the output.
	ColorAt(x, y int) (color.RGBA, bool)
}

// Strategy renders a grid using spans computed by [tile.Build].
// Implementations are pure: they never retain g, cols or rows.
type Strategy interface {
	Render(g grid.Grid, cols, rows tile.Spans, colors Colors) (Output, error)
}

// StrategyFunc adapts a function to the Strategy interface.
type StrategyFunc func(g grid.Grid, cols, rows tile.Spans, colors Colors) (Output, error)

// Render calls f.
func (f StrategyFunc) Render(g grid.Grid, cols, rows tile.Spans, colors Colors) (Output, error) {
	return f(g, cols, rows, colors)
}

// CheckPreconditions verifies the invariants a backend relies on: a
// non-empty grid, one span per module on both axes, no negative spans and
// opaque colors.
func CheckPreconditions(g grid.Grid, cols, rows tile.Spans, colors Colors) error {
	if g == nil || g.Size() < 1 {
		return errors.New(errors.ErrCodePreconditionViolation, "backend received an empty grid")
	}
	n := g.Size()
	if len(cols) != n || len(rows) != n {
		return errors.New(errors.ErrCodePreconditionViolation,
			"span length mismatch: grid has %d modules, got %d columns and %d rows", n, len(cols), len(rows))
	}
	for i := range n {
		if cols[i] < 0 || rows[i] < 0 {
			return errors.New(errors.ErrCodePreconditionViolation, "negative span at index %d", i)
		}
	}
	if colors.Foreground.A != 0xff || colors.Background.A != 0xff {
		return errors.New(errors.ErrCodePreconditionViolation, "colors must be opaque")
	}
	return nil
}
