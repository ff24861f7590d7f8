// Package grid defines the square module matrix that a QR symbol encoder
// produces and the renderer consumes.
//
// The renderer only reads modules through the [Grid] interface, so any
// encoder can supply its own representation. [Matrix] is the immutable
// concrete implementation used throughout qrtile.
package grid

import (
	"strings"

	"github.com/matzehuels/qrtile/pkg/errors"
)

// Grid is a read-only square matrix of modules.
// IsDark must be defined for all 0 <= row, col < Size().
type Grid interface {
	Size() int
	IsDark(row, col int) bool
}

// Matrix is an immutable n×n module matrix stored row-major.
type Matrix struct {
	n    int
	dark []bool
}

// New copies rows into a Matrix. It returns an INVALID_GRID error when rows
// is empty or not square.
func New(rows [][]bool) (*Matrix, error) {
	n := len(rows)
	if n == 0 {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "grid must have at least one module")
	}
	m := &Matrix{n: n, dark: make([]bool, n*n)}
	for r, row := range rows {
		if len(row) != n {
			return nil, errors.New(errors.ErrCodeInvalidGrid, "grid is not square: row %d has %d modules, want %d", r, len(row), n)
		}
		copy(m.dark[r*n:], row)
	}
	return m, nil
}

// Parse builds a Matrix from text, one line per row. '#' and '1' are dark,
// '.' and '0' are light. Blank lines and surrounding whitespace are ignored.
func Parse(s string) (*Matrix, error) {
	var rows [][]bool
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		row := make([]bool, 0, len(line))
		for i, ch := range line {
			switch ch {
			case '#', '1':
				row = append(row, true)
			case '.', '0':
				row = append(row, false)
			default:
				return nil, errors.New(errors.ErrCodeInvalidGrid, "row %d: invalid module %q at column %d", len(rows), ch, i)
			}
		}
		rows = append(rows, row)
	}
	return New(rows)
}

// From copies any Grid into a Matrix.
func From(g Grid) (*Matrix, error) {
	if g == nil || g.Size() < 1 {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "grid must have at least one module")
	}
	n := g.Size()
	m := &Matrix{n: n, dark: make([]bool, n*n)}
	for r := range n {
		for c := range n {
			m.dark[r*n+c] = g.IsDark(r, c)
		}
	}
	return m, nil
}

// Size returns the number of modules per side. A nil Matrix has size 0.
func (m *Matrix) Size() int {
	if m == nil {
		return 0
	}
	return m.n
}

// IsDark reports whether the module at (row, col) is dark.
// It panics if row or col is out of range.
func (m *Matrix) IsDark(row, col int) bool {
	if row < 0 || row >= m.n || col < 0 || col >= m.n {
		panic("grid: module index out of range")
	}
	return m.dark[row*m.n+col]
}

// Rows returns a copy of the matrix as a slice of rows.
func (m *Matrix) Rows() [][]bool {
	rows := make([][]bool, m.n)
	for r := range rows {
		rows[r] = make([]bool, m.n)
		copy(rows[r], m.dark[r*m.n:(r+1)*m.n])
	}
	return rows
}

// DarkCount returns the number of dark modules.
func (m *Matrix) DarkCount() int {
	count := 0
	for _, d := range m.dark {
		if d {
			count++
		}
	}
	return count
}

// String renders the matrix in the notation accepted by Parse.
func (m *Matrix) String() string {
	var b strings.Builder
	b.Grow(m.n * (m.n + 1))
	for r := range m.n {
		for c := range m.n {
			if m.dark[r*m.n+c] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Validate checks that g can be rendered: non-nil with at least one module.
func Validate(g Grid) error {
	if g == nil {
		return errors.New(errors.ErrCodeInvalidGrid, "grid is nil")
	}
	if n := g.Size(); n < 1 {
		return errors.New(errors.ErrCodeInvalidGrid, "grid must have at least one module, got size %d", n)
	}
	return nil
}

var _ Grid = (*Matrix)(nil)
