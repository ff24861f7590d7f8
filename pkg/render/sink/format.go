package sink

import (
	"strings"

	"github.com/matzehuels/qrtile/pkg/errors"
	"github.com/matzehuels/qrtile/pkg/grid"
	"github.com/matzehuels/qrtile/pkg/render"
	"github.com/matzehuels/qrtile/pkg/render/bitmap"
	"github.com/matzehuels/qrtile/pkg/tile"
)

// Output formats.
const (
	FormatPNG  = "png"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
	FormatHTML = "html"
	FormatJSON = "json"
)

// Formats lists every supported format in a stable order.
var Formats = []string{FormatPNG, FormatBMP, FormatTIFF, FormatHTML, FormatJSON}

var contentTypes = map[string]string{
	FormatPNG:  "image/png",
	FormatBMP:  "image/bmp",
	FormatTIFF: "image/tiff",
	FormatHTML: "text/html; charset=utf-8",
	FormatJSON: "application/json",
}

// ParseFormat normalizes a format name. "tif" is accepted for TIFF.
func ParseFormat(s string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(s))
	if f == "tif" {
		f = FormatTIFF
	}
	if _, ok := contentTypes[f]; !ok {
		return "", errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", s, strings.Join(Formats, ", "))
	}
	return f, nil
}

// ContentType returns the MIME type for a format, or
// application/octet-stream for unknown formats.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Compatible reports whether format can be produced from backend's output.
// Raster formats need the bitmap backend, HTML needs table or boxgrid,
// JSON works with all of them.
func Compatible(format string, backend render.Backend) error {
	switch format {
	case FormatPNG, FormatBMP, FormatTIFF:
		if backend != render.BackendBitmap {
			return errors.New(errors.ErrCodeInvalidFormat, "format %s requires the bitmap backend, got %s", format, backend)
		}
	case FormatHTML:
		if backend != render.BackendTable && backend != render.BackendBoxGrid {
			return errors.New(errors.ErrCodeInvalidFormat, "format html requires the table or boxgrid backend, got %s", backend)
		}
	case FormatJSON:
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
	}
	return nil
}

// Input bundles everything a sink may need.
type Input struct {
	Grid   grid.Grid
	Layout tile.Layout
	Colors render.Colors
	Output render.Output
}

// Options configures [Encode]. The zero value uses each sink's defaults.
type Options struct {
	HTML []HTMLOption
	JSON []JSONOption
}

// Encode serializes in as format.
func Encode(format string, in Input, opts Options) ([]byte, error) {
	if in.Output == nil {
		return nil, errors.New(errors.ErrCodeInternal, "nothing to encode")
	}
	if err := Compatible(format, in.Output.Backend()); err != nil {
		return nil, err
	}
	switch format {
	case FormatPNG, FormatBMP, FormatTIFF:
		s, ok := in.Output.(*bitmap.Surface)
		if !ok {
			return nil, errors.New(errors.ErrCodeInternal, "bitmap backend produced %T", in.Output)
		}
		switch format {
		case FormatPNG:
			return EncodePNG(s)
		case FormatBMP:
			return EncodeBMP(s)
		default:
			return EncodeTIFF(s)
		}
	case FormatHTML:
		return RenderHTML(in.Output, opts.HTML...)
	default:
		return RenderJSON(in.Grid, in.Layout, in.Colors, append([]JSONOption{WithBackend(in.Output.Backend())}, opts.JSON...)...)
	}
}
