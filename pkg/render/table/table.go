// Package table renders a module grid as a fixed-layout table.
//
// The table declares its own width and height, every row declares its
// height and every cell declares its width. Cells carry no content, so the
// declared geometry alone determines the visual area and the result covers
// exactly the same rectangles as the bitmap backend.
package table

import (
	"image/color"

	"github.com/matzehuels/qrtile/pkg/grid"
	"github.com/matzehuels/qrtile/pkg/render"
	"github.com/matzehuels/qrtile/pkg/tile"
)

// Table is the root of a rendered table.
type Table struct {
	Width      int
	Height     int
	Background color.RGBA
	Rows       []Row
}

// Row is one grid row with its declared height.
type Row struct {
	Height int
	Cells  []Cell
}

// Cell is one module with its declared width.
type Cell struct {
	Width int
	Color color.RGBA
}

// Strategy is the table [render.Strategy].
type Strategy struct{}

// Render implements [render.Strategy].
func (Strategy) Render(g grid.Grid, cols, rows tile.Spans, colors render.Colors) (render.Output, error) {
	t, err := Render(g, cols, rows, colors)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Render builds a table with one row per grid row and one cell per module.
func Render(g grid.Grid, cols, rows tile.Spans, colors render.Colors) (*Table, error) {
	if err := render.CheckPreconditions(g, cols, rows, colors); err != nil {
		return nil, err
	}
	n := g.Size()
	t := &Table{
		Width:      cols.Sum(),
		Height:     rows.Sum(),
		Background: colors.Background,
		Rows:       make([]Row, n),
	}
	for r := range n {
		cells := make([]Cell, n)
		for c := range n {
			cells[c] = Cell{Width: cols[c], Color: colors.For(g.IsDark(r, c))}
		}
		t.Rows[r] = Row{Height: rows[r], Cells: cells}
	}
	return t, nil
}

// Backend implements [render.Output].
func (t *Table) Backend() render.Backend { return render.BackendTable }

// Size implements [render.Output].
func (t *Table) Size() (width, height int) { return t.Width, t.Height }

// ColorAt implements [render.Output]. Rows stack top to bottom and cells
// left to right, each occupying exactly its declared extent.
func (t *Table) ColorAt(x, y int) (color.RGBA, bool) {
	if x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return color.RGBA{}, false
	}
	top := 0
	for _, row := range t.Rows {
		if y >= top+row.Height {
			top += row.Height
			continue
		}
		left := 0
		for _, cell := range row.Cells {
			if x < left+cell.Width {
				return cell.Color, true
			}
			left += cell.Width
		}
		break
	}
	return color.RGBA{}, false
}

// Cell returns the cell at (row, col).
func (t *Table) Cell(row, col int) Cell { return t.Rows[row].Cells[col] }

var (
	_ render.Strategy = Strategy{}
	_ render.Output   = (*Table)(nil)
)
