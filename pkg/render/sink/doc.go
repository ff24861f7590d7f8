// Package sink serializes render outputs into artifact bytes.
//
// Raster formats (PNG, BMP, TIFF) take a [bitmap.Surface]. HTML takes a
// table or box-grid output. JSON exports the tiling itself (span
// sequences, boundaries and the dark-module matrix) and works with any
// backend.
//
// [Encode] dispatches by format name and enforces format/backend
// compatibility:
//
//	data, err := sink.Encode(sink.FormatPNG, sink.Input{
//	    Grid:   g,
//	    Layout: layout,
//	    Colors: colors,
//	    Output: out,
//	})
package sink
