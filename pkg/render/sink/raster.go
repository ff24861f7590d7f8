package sink

import (
	"bytes"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/matzehuels/qrtile/pkg/render/bitmap"
)

// PNGOption configures PNG encoding.
type PNGOption func(*png.Encoder)

// WithCompression sets the PNG compression level.
func WithCompression(level png.CompressionLevel) PNGOption {
	return func(e *png.Encoder) { e.CompressionLevel = level }
}

// EncodePNG encodes the surface as PNG. Module grids compress extremely
// well, so the default is best compression.
func EncodePNG(s *bitmap.Surface, opts ...PNGOption) ([]byte, error) {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	for _, opt := range opts {
		opt(&enc)
	}
	var buf bytes.Buffer
	if err := enc.Encode(&buf, s.Image); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeBMP encodes the surface as an uncompressed BMP.
func EncodeBMP(s *bitmap.Surface) ([]byte, error) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, s.Image); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTIFF encodes the surface as a deflate-compressed TIFF.
func EncodeTIFF(s *bitmap.Surface) ([]byte, error) {
	var buf bytes.Buffer
	if err := tiff.Encode(&buf, s.Image, &tiff.Options{Compression: tiff.Deflate}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
