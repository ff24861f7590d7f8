package boxgrid

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/matzehuels/qrtile/pkg/errors"
	"github.com/matzehuels/qrtile/pkg/grid"
	"github.com/matzehuels/qrtile/pkg/render"
	"github.com/matzehuels/qrtile/pkg/tile"
)

var colors = render.Colors{
	Foreground: color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff},
	Background: color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff},
}

func TestRenderCumulativeOffsets(t *testing.T) {
	g, _ := grid.Parse("#...\n.#..\n..#.\n...#")
	l, _ := tile.Build(4, 10, 10)

	c, err := Render(g, l.Cols, l.Rows, colors)
	if err != nil {
		t.Fatalf("Render error = %v", err)
	}
	if c.Width != 10 || c.Height != 10 {
		t.Errorf("container = %dx%d, want 10x10", c.Width, c.Height)
	}
	if len(c.Boxes) != 16 {
		t.Fatalf("boxes = %d, want 16", len(c.Boxes))
	}

	offsets := []int{0, 3, 5, 8}
	spans := []int{3, 2, 3, 2}
	for r := range 4 {
		for col := range 4 {
			b := c.Box(r, col)
			if b.Row != r || b.Col != col {
				t.Errorf("Box(%d,%d) reports (%d,%d)", r, col, b.Row, b.Col)
			}
			if b.X != offsets[col] || b.Y != offsets[r] {
				t.Errorf("Box(%d,%d) offset = (%d,%d), want (%d,%d)", r, col, b.X, b.Y, offsets[col], offsets[r])
			}
			if b.W != spans[col] || b.H != spans[r] {
				t.Errorf("Box(%d,%d) size = %dx%d, want %dx%d", r, col, b.W, b.H, spans[col], spans[r])
			}
			if want := colors.For(r == col); b.Color != want {
				t.Errorf("Box(%d,%d) color = %v, want %v", r, col, b.Color, want)
			}
		}
	}
}

func TestBoxesTileWithoutGapOrOverlap(t *testing.T) {
	g, _ := grid.Parse("#.#.#\n.#.#.\n#.#.#\n.#.#.\n#.#.#")
	l, _ := tile.Build(5, 23, 17)
	c, _ := Render(g, l.Cols, l.Rows, colors)

	covered := make([]int, c.Width*c.Height)
	for _, b := range c.Boxes {
		for y := b.Y; y < b.Y+b.H; y++ {
			for x := b.X; x < b.X+b.W; x++ {
				covered[y*c.Width+x]++
			}
		}
	}
	for i, n := range covered {
		if n != 1 {
			t.Fatalf("pixel (%d,%d) covered %d times", i%c.Width, i/c.Width, n)
		}
	}
}

func TestColorAt(t *testing.T) {
	g, _ := grid.Parse("#.\n.#")
	c, _ := Render(g, tile.Spans{3, 2}, tile.Spans{1, 4}, colors)

	if got, ok := c.ColorAt(4, 4); !ok || got != colors.Foreground {
		t.Errorf("ColorAt(4,4) = %v, %v", got, ok)
	}
	if got, ok := c.ColorAt(3, 0); !ok || got != colors.Background {
		t.Errorf("ColorAt(3,0) = %v, %v", got, ok)
	}
	if _, ok := c.ColorAt(5, 5); ok {
		t.Error("ColorAt outside container reported ok")
	}
}

func TestWriteHTML(t *testing.T) {
	g, _ := grid.Parse("#.\n.#")
	c, _ := Render(g, tile.Spans{3, 2}, tile.Spans{2, 3}, colors)

	var buf bytes.Buffer
	if err := c.WriteHTML(&buf); err != nil {
		t.Fatalf("WriteHTML error = %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"position:relative",
		"width:5px;height:5px",
		"position:absolute;left:0px;top:0px;width:3px;height:2px;background-color:#112233",
		"position:absolute;left:3px;top:0px;width:2px;height:2px;background-color:#eeeeee",
		"position:absolute;left:0px;top:2px;width:3px;height:3px;background-color:#eeeeee",
		"position:absolute;left:3px;top:2px;width:2px;height:3px;background-color:#112233",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q:\n%s", want, html)
		}
	}
	if strings.Contains(html, "float") {
		t.Error("HTML must not rely on floated layout")
	}
}

func TestRenderPreconditionViolation(t *testing.T) {
	g, _ := grid.Parse("#.\n.#")
	out, err := Strategy{}.Render(g, tile.Spans{1, 1}, tile.Spans{1, 1}, render.Colors{})
	if !errors.Is(err, errors.ErrCodePreconditionViolation) {
		t.Fatalf("Render error = %v, want PRECONDITION_VIOLATION", err)
	}
	if out != nil {
		t.Errorf("Render output = %v, want nil", out)
	}
}
