// Package boxgrid renders a module grid as absolutely positioned boxes.
//
// Each box carries its own width, height and absolute offset inside the
// container. Offsets are the running sums of the preceding column and row
// spans, computed once before any box is emitted, so a box's position never
// depends on the boxes placed before it.
package boxgrid

import (
	"image"
	"image/color"

	"github.com/matzehuels/qrtile/pkg/grid"
	"github.com/matzehuels/qrtile/pkg/render"
	"github.com/matzehuels/qrtile/pkg/tile"
)

// Container is the positioned root holding every box.
type Container struct {
	Width      int
	Height     int
	Background color.RGBA
	Modules    int   // modules per side
	Boxes      []Box // row-major, Modules*Modules entries
}

// Box is one module placed at an absolute offset.
type Box struct {
	Row, Col int
	X, Y     int
	W, H     int
	Color    color.RGBA
}

// Rect returns the pixel rectangle covered by b.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.W, b.Y+b.H)
}

// Strategy is the box-grid [render.Strategy].
type Strategy struct{}

// Render implements [render.Strategy].
func (Strategy) Render(g grid.Grid, cols, rows tile.Spans, colors render.Colors) (render.Output, error) {
	c, err := Render(g, cols, rows, colors)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Render emits one box per module in row-major order.
func Render(g grid.Grid, cols, rows tile.Spans, colors render.Colors) (*Container, error) {
	if err := render.CheckPreconditions(g, cols, rows, colors); err != nil {
		return nil, err
	}
	n := g.Size()
	xs := cols.Offsets()
	ys := rows.Offsets()

	c := &Container{
		Width:      cols.Sum(),
		Height:     rows.Sum(),
		Background: colors.Background,
		Modules:    n,
		Boxes:      make([]Box, 0, n*n),
	}
	for r := range n {
		for col := range n {
			c.Boxes = append(c.Boxes, Box{
				Row: r, Col: col,
				X: xs[col], Y: ys[r],
				W: cols[col], H: rows[r],
				Color: colors.For(g.IsDark(r, col)),
			})
		}
	}
	return c, nil
}

// Backend implements [render.Output].
func (c *Container) Backend() render.Backend { return render.BackendBoxGrid }

// Size implements [render.Output].
func (c *Container) Size() (width, height int) { return c.Width, c.Height }

// ColorAt implements [render.Output] by hit-testing the boxes.
func (c *Container) ColorAt(x, y int) (color.RGBA, bool) {
	p := image.Point{X: x, Y: y}
	for _, b := range c.Boxes {
		if p.In(b.Rect()) {
			return b.Color, true
		}
	}
	return color.RGBA{}, false
}

// Box returns the box for module (row, col).
func (c *Container) Box(row, col int) Box {
	return c.Boxes[row*c.Modules+col]
}

var (
	_ render.Strategy = Strategy{}
	_ render.Output   = (*Container)(nil)
)
