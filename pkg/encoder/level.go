package encoder

import (
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/matzehuels/qrtile/pkg/errors"
)

// Level is a QR error-correction level.
type Level int

// Error-correction levels, from lowest to highest redundancy.
const (
	LevelL Level = iota + 1 // ~7% recovery
	LevelM                  // ~15% recovery
	LevelQ                  // ~25% recovery
	LevelH                  // ~30% recovery
)

// DefaultLevel is the level used when none is specified.
const DefaultLevel = LevelH

// ParseLevel normalizes a level given as a letter (case-insensitive) or as
// a numeric code. Anything else is an INVALID_LEVEL error.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L", "1":
		return LevelL, nil
	case "M", "0":
		return LevelM, nil
	case "Q", "3":
		return LevelQ, nil
	case "H", "2":
		return LevelH, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidLevel, "invalid error correction level: %q (must be L, M, Q, H or 0-3)", s)
}

// String returns the level letter.
func (l Level) String() string {
	switch l {
	case LevelL:
		return "L"
	case LevelM:
		return "M"
	case LevelQ:
		return "Q"
	case LevelH:
		return "H"
	}
	return "?"
}

// Valid reports whether l is a known level.
func (l Level) Valid() bool { return l >= LevelL && l <= LevelH }

func (l Level) recovery() qrcode.RecoveryLevel {
	switch l {
	case LevelL:
		return qrcode.Low
	case LevelM:
		return qrcode.Medium
	case LevelQ:
		return qrcode.High
	default:
		return qrcode.Highest
	}
}
