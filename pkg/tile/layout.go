package tile

// Layout holds the column and row spans for one render call.
// Both sequences have one entry per module.
type Layout struct {
	Cols Spans `json:"cols"`
	Rows Spans `json:"rows"`
}

// Build computes the column spans from width and the row spans from height
// for an n-module symbol. Errors are those of [ComputeSpans].
func Build(n int, width, height float64) (Layout, error) {
	cols, err := ComputeSpans(n, width)
	if err != nil {
		return Layout{}, err
	}
	rows, err := ComputeSpans(n, height)
	if err != nil {
		return Layout{}, err
	}
	return Layout{Cols: cols, Rows: rows}, nil
}

// ModuleCount returns the number of modules per side.
func (l Layout) ModuleCount() int { return len(l.Cols) }

// Width returns the total pixel width.
func (l Layout) Width() int { return l.Cols.Sum() }

// Height returns the total pixel height.
func (l Layout) Height() int { return l.Rows.Sum() }
