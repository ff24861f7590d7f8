package encoder

import (
	"github.com/skip2/go-qrcode"

	"github.com/matzehuels/qrtile/pkg/errors"
	"github.com/matzehuels/qrtile/pkg/grid"
)

// MaxVersion is the largest QR version.
const MaxVersion = 40

// Options configures symbol encoding.
type Options struct {
	// Level is the error-correction level. Zero means DefaultLevel.
	Level Level

	// Version forces a symbol version in [1, MaxVersion]. Zero selects the
	// smallest version that fits the payload.
	Version int

	// Border keeps the four-module quiet zone around the symbol.
	Border bool
}

// SetDefaults fills zero-valued fields.
func (o *Options) SetDefaults() {
	if o.Level == 0 {
		o.Level = DefaultLevel
	}
}

// Validate checks the options without encoding anything.
func (o Options) Validate() error {
	if o.Level != 0 && !o.Level.Valid() {
		return errors.New(errors.ErrCodeInvalidLevel, "invalid error correction level: %d", int(o.Level))
	}
	if o.Version < 0 || o.Version > MaxVersion {
		return errors.New(errors.ErrCodeInvalidInput, "version must be between 1 and %d (0 for automatic), got %d", MaxVersion, o.Version)
	}
	return nil
}

// Encode encodes text into a module matrix.
func Encode(text string, opts Options) (*grid.Matrix, error) {
	if err := errors.ValidatePayload(text); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts.SetDefaults()

	var (
		q   *qrcode.QRCode
		err error
	)
	if opts.Version > 0 {
		q, err = qrcode.NewWithForcedVersion(text, opts.Version, opts.Level.recovery())
	} else {
		q, err = qrcode.New(text, opts.Level.recovery())
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "encode %d bytes at level %s", len(text), opts.Level)
	}
	q.DisableBorder = !opts.Border

	return grid.New(q.Bitmap())
}

// ModuleCount returns the modules per side of a version, without border.
func ModuleCount(version int) int {
	return 17 + 4*version
}
