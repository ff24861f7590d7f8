// Package render defines the contract shared by qrtile's rendering backends.
//
// # Overview
//
// A backend turns a module grid plus precomputed column and row spans into a
// concrete visual output. Three backends implement the same [Strategy]:
//
//   - [bitmap]: a raster surface with every cell painted
//   - [table]: a fixed-layout table of rows and cells
//   - [boxgrid]: a container of absolutely positioned boxes
//
// Spans are computed once by [tile.Build] and passed in, so the three
// backends cannot disagree about geometry. Every [Output] answers [Output.ColorAt]
// for any pixel, which is how their rectangles are compared.
//
// # Preconditions
//
// Backends receive already validated input. [CheckPreconditions] guards the
// boundary anyway and reports a mismatch as PRECONDITION_VIOLATION, which
// always indicates a programming error in the caller.
//
// # Serialization
//
// The [sink] subpackage turns outputs into bytes (PNG, BMP, TIFF, HTML, JSON).
//
// [bitmap]: github.com/matzehuels/qrtile/pkg/render/bitmap
// [table]: github.com/matzehuels/qrtile/pkg/render/table
// [boxgrid]: github.com/matzehuels/qrtile/pkg/render/boxgrid
// [sink]: github.com/matzehuels/qrtile/pkg/render/sink
// [tile.Build]: github.com/matzehuels/qrtile/pkg/tile.Build
package render
