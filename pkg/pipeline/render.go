package pipeline

import (
	"github.com/matzehuels/qrtile/pkg/errors"
	"github.com/matzehuels/qrtile/pkg/grid"
	"github.com/matzehuels/qrtile/pkg/render"
	"github.com/matzehuels/qrtile/pkg/render/bitmap"
	"github.com/matzehuels/qrtile/pkg/render/boxgrid"
	"github.com/matzehuels/qrtile/pkg/render/table"
	"github.com/matzehuels/qrtile/pkg/tile"
)

// strategies is read-only after init.
var strategies = map[render.Backend]render.Strategy{
	render.BackendBitmap:  bitmap.Strategy{},
	render.BackendTable:   table.Strategy{},
	render.BackendBoxGrid: boxgrid.Strategy{},
}

// StrategyFor returns the strategy registered for b.
func StrategyFor(b render.Backend) (render.Strategy, error) {
	s, ok := strategies[b]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupportedBackend, "unsupported backend: %q", string(b))
	}
	return s, nil
}

// Render draws g according to cfg. On error no output is returned.
func Render(g grid.Grid, cfg Config) (render.Output, error) {
	out, _, err := RenderWithLayout(g, cfg)
	return out, err
}

// RenderWithLayout is [Render] that also returns the spans it computed.
func RenderWithLayout(g grid.Grid, cfg Config) (render.Output, tile.Layout, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, tile.Layout{}, err
	}
	if err := grid.Validate(g); err != nil {
		return nil, tile.Layout{}, err
	}
	strategy, err := StrategyFor(cfg.Backend)
	if err != nil {
		return nil, tile.Layout{}, err
	}

	layout, err := tile.Build(g.Size(), cfg.Width, cfg.Height)
	if err != nil {
		return nil, tile.Layout{}, err
	}
	out, err := strategy.Render(g, layout.Cols, layout.Rows, cfg.Colors())
	if err != nil {
		return nil, tile.Layout{}, err
	}
	return out, layout, nil
}
