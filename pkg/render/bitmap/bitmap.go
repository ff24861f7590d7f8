// Package bitmap renders a module grid onto a raster surface.
//
// Every cell is painted, light ones included, so the surface is fully
// opaque regardless of what the underlying buffer held before. Cells are
// painted in row-major order with [draw.Src]; order has no visible effect
// because nothing blends.
package bitmap

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/matzehuels/qrtile/pkg/grid"
	"github.com/matzehuels/qrtile/pkg/render"
	"github.com/matzehuels/qrtile/pkg/tile"
)

// Surface is a rendered raster. Image is owned by the caller.
type Surface struct {
	Image *image.RGBA
}

// Strategy is the bitmap [render.Strategy].
type Strategy struct{}

// Render allocates a cols.Sum() × rows.Sum() surface and paints it.
func (Strategy) Render(g grid.Grid, cols, rows tile.Spans, colors render.Colors) (render.Output, error) {
	s, err := Render(g, cols, rows, colors)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Render is the function form of [Strategy.Render].
func Render(g grid.Grid, cols, rows tile.Spans, colors render.Colors) (*Surface, error) {
	if err := render.CheckPreconditions(g, cols, rows, colors); err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, cols.Sum(), rows.Sum()))
	Paint(img, g, cols, rows, colors)
	return &Surface{Image: img}, nil
}

// Paint fills dst with the grid, starting at dst.Bounds().Min. It paints
// over whatever dst already contains. Cells outside dst are clipped.
// Callers are responsible for preconditions.
func Paint(dst draw.Image, g grid.Grid, cols, rows tile.Spans, colors render.Colors) {
	origin := dst.Bounds().Min
	fg := image.NewUniform(colors.Foreground)
	bg := image.NewUniform(colors.Background)

	xs := cols.Boundaries()
	ys := rows.Boundaries()
	n := g.Size()
	for row := range n {
		for col := range n {
			src := bg
			if g.IsDark(row, col) {
				src = fg
			}
			cell := image.Rect(xs[col], ys[row], xs[col+1], ys[row+1]).Add(origin)
			draw.Draw(dst, cell, src, image.Point{}, draw.Src)
		}
	}
}

// Backend implements [render.Output].
func (s *Surface) Backend() render.Backend { return render.BackendBitmap }

// Size implements [render.Output].
func (s *Surface) Size() (width, height int) {
	b := s.Image.Bounds()
	return b.Dx(), b.Dy()
}

// ColorAt implements [render.Output].
func (s *Surface) ColorAt(x, y int) (color.RGBA, bool) {
	if !(image.Point{X: x, Y: y}).In(s.Image.Bounds()) {
		return color.RGBA{}, false
	}
	return s.Image.RGBAAt(x, y), true
}

var (
	_ render.Strategy = Strategy{}
	_ render.Output   = (*Surface)(nil)
)
