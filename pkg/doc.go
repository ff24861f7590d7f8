// Package pkg provides the core libraries for qrtile.
//
// # Overview
//
// qrtile renders a QR module grid at exact, caller-chosen pixel dimensions.
// The pkg directory is organized into these areas:
//
//  1. [tile] - span computation: how many pixels each module row and column gets
//  2. [grid] - the module grid type
//  3. [render] - the backend strategy interface and its bitmap, table and
//     boxgrid implementations, plus sinks that serialize outputs
//  4. [encoder] - payload to module grid, backed by go-qrcode
//  5. [pipeline] - validated dispatch and the cached encode → render → serialize runner
//  6. [cache], [observability], [errors], [buildinfo] - supporting infrastructure
//
// # Architecture
//
//	payload
//	   ↓
//	[encoder] (module grid)
//	   ↓
//	[tile] (column and row spans, computed once)
//	   ↓
//	[render] strategy (bitmap surface, table, box grid)
//	   ↓
//	[render/sink] (PNG, BMP, TIFF, HTML, JSON)
//
// # Quick Start
//
//	g, _ := encoder.Encode("https://example.com", encoder.Options{})
//	out, _ := pipeline.Render(g, pipeline.DefaultConfig())
//	data, _ := sink.EncodePNG(out.(*bitmap.Surface))
//
// [tile]: github.com/matzehuels/qrtile/pkg/tile
// [grid]: github.com/matzehuels/qrtile/pkg/grid
// [render]: github.com/matzehuels/qrtile/pkg/render
// [encoder]: github.com/matzehuels/qrtile/pkg/encoder
// [pipeline]: github.com/matzehuels/qrtile/pkg/pipeline
// [cache]: github.com/matzehuels/qrtile/pkg/cache
// [observability]: github.com/matzehuels/qrtile/pkg/observability
// [errors]: github.com/matzehuels/qrtile/pkg/errors
// [buildinfo]: github.com/matzehuels/qrtile/pkg/buildinfo
package pkg
