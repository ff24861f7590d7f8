package sink

import (
	"encoding/json"
	"strings"

	"github.com/matzehuels/qrtile/pkg/grid"
	"github.com/matzehuels/qrtile/pkg/render"
	"github.com/matzehuels/qrtile/pkg/tile"
)

// JSONOption configures JSON rendering.
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	indent  bool
	backend render.Backend
}

// WithIndent pretty-prints the output.
func WithIndent() JSONOption {
	return func(r *jsonRenderer) { r.indent = true }
}

// WithBackend records which backend the layout was rendered with.
func WithBackend(b render.Backend) JSONOption {
	return func(r *jsonRenderer) { r.backend = b }
}

// Document is the JSON layout export.
type Document struct {
	Modules       int            `json:"modules"`
	Width         int            `json:"width"`
	Height        int            `json:"height"`
	Backend       render.Backend `json:"backend,omitempty"`
	Foreground    string         `json:"foreground"`
	Background    string         `json:"background"`
	Cols          tile.Spans     `json:"cols"`
	Rows          tile.Spans     `json:"rows"`
	ColBoundaries []int          `json:"col_boundaries"`
	RowBoundaries []int          `json:"row_boundaries"`
	Dark          []string       `json:"dark"`
}

// NewDocument builds the export for g tiled by l.
func NewDocument(g grid.Grid, l tile.Layout, colors render.Colors) Document {
	n := g.Size()
	dark := make([]string, n)
	var sb strings.Builder
	for r := range n {
		sb.Reset()
		for c := range n {
			if g.IsDark(r, c) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		dark[r] = sb.String()
	}
	return Document{
		Modules:       n,
		Width:         l.Width(),
		Height:        l.Height(),
		Foreground:    render.Hex(colors.Foreground),
		Background:    render.Hex(colors.Background),
		Cols:          l.Cols,
		Rows:          l.Rows,
		ColBoundaries: l.Cols.Boundaries(),
		RowBoundaries: l.Rows.Boundaries(),
		Dark:          dark,
	}
}

// RenderJSON exports the tiling of g as JSON.
func RenderJSON(g grid.Grid, l tile.Layout, colors render.Colors, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	doc := NewDocument(g, l, colors)
	doc.Backend = r.backend
	if r.indent {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}
