// Package tile maps a module count onto an integer pixel extent.
//
// A QR symbol of n modules per side must fill a target rectangle whose width
// and height are unrelated to n. Dividing the extent by n and rounding each
// cell on its own leaves the total a few pixels short or long, and the error
// shows up as gaps or overlaps between neighbouring modules. This package
// rounds the cumulative boundaries instead:
//
//	boundary(i) = round(extent * i / n)    for i in [0, n]
//	span(i)     = boundary(i+1) - boundary(i)
//
// The spans telescope, so they always sum to round(extent), and the right
// edge of cell i is exactly the left edge of cell i+1.
//
// # Usage
//
//	cols, err := tile.ComputeSpans(4, 10) // [3 2 3 2]
//	l, err := tile.Build(moduleCount, width, height)
//	x := l.Cols.Offsets()[col]
//
// Rounding is half away from zero ([math.Round]); for the non-negative
// extents accepted here that is round-half-up.
package tile
