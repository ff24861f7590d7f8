package encoder

import (
	"strings"
	"testing"

	"github.com/matzehuels/qrtile/pkg/errors"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"L", LevelL, false},
		{"l", LevelL, false},
		{"1", LevelL, false},
		{"M", LevelM, false},
		{"m", LevelM, false},
		{"0", LevelM, false},
		{"Q", LevelQ, false},
		{"q", LevelQ, false},
		{"3", LevelQ, false},
		{"H", LevelH, false},
		{" h ", LevelH, false},
		{"2", LevelH, false},

		{"", 0, true},
		{"X", 0, true},
		{"4", 0, true},
		{"low", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidLevel) {
				t.Errorf("ParseLevel(%q) error code = %q", tt.input, errors.GetCode(err))
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	for _, l := range []Level{LevelL, LevelM, LevelQ, LevelH} {
		back, err := ParseLevel(l.String())
		if err != nil || back != l {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", l.String(), back, err, l)
		}
	}
	if Level(9).String() != "?" {
		t.Errorf("Level(9).String() = %q", Level(9).String())
	}
}

func TestEncodeForcedVersion(t *testing.T) {
	tests := []struct {
		name   string
		opts   Options
		expect int
	}{
		{"version 1", Options{Level: LevelL, Version: 1}, 21},
		{"version 1 with border", Options{Level: LevelL, Version: 1, Border: true}, 29},
		{"version 5", Options{Level: LevelH, Version: 5}, 37},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Encode("hello", tt.opts)
			if err != nil {
				t.Fatalf("Encode error = %v", err)
			}
			if m.Size() != tt.expect {
				t.Errorf("Size() = %d, want %d", m.Size(), tt.expect)
			}
		})
	}
}

func TestEncodeFinderPattern(t *testing.T) {
	m, err := Encode("hello", Options{Level: LevelL, Version: 1})
	if err != nil {
		t.Fatalf("Encode error = %v", err)
	}
	// The top-left finder pattern is a dark 7x7 ring with a dark 3x3 core.
	for i := range 7 {
		if !m.IsDark(0, i) || !m.IsDark(6, i) || !m.IsDark(i, 0) || !m.IsDark(i, 6) {
			t.Fatalf("finder ring broken at %d:\n%s", i, m)
		}
	}
	if m.IsDark(1, 1) || !m.IsDark(3, 3) {
		t.Errorf("finder interior wrong:\n%s", m)
	}
}

func TestEncodeAutomaticVersion(t *testing.T) {
	short, err := Encode("hi", Options{})
	if err != nil {
		t.Fatalf("Encode error = %v", err)
	}
	long, err := Encode(strings.Repeat("x", 200), Options{})
	if err != nil {
		t.Fatalf("Encode error = %v", err)
	}
	if long.Size() <= short.Size() {
		t.Errorf("long payload size %d not larger than short payload size %d", long.Size(), short.Size())
	}
	if (short.Size()-17)%4 != 0 {
		t.Errorf("Size() = %d is not a QR module count", short.Size())
	}
}

func TestEncodeDeterministic(t *testing.T) {
	a, _ := Encode("deterministic", Options{Level: LevelQ})
	b, _ := Encode("deterministic", Options{Level: LevelQ})
	if a.String() != b.String() {
		t.Error("Encode is not deterministic")
	}
}

func TestEncodeInvalid(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts Options
		code errors.Code
	}{
		{"empty", "", Options{}, errors.ErrCodeInvalidInput},
		{"bad level", "x", Options{Level: 7}, errors.ErrCodeInvalidLevel},
		{"negative version", "x", Options{Version: -1}, errors.ErrCodeInvalidInput},
		{"version too large", "x", Options{Version: 41}, errors.ErrCodeInvalidInput},
		{"payload exceeds forced version", strings.Repeat("x", 100), Options{Version: 1}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Encode(tt.text, tt.opts)
			if err == nil {
				t.Fatalf("Encode() = %v, want error", m)
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error code = %q, want %q", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestModuleCount(t *testing.T) {
	if ModuleCount(1) != 21 || ModuleCount(40) != 177 {
		t.Errorf("ModuleCount(1)=%d ModuleCount(40)=%d", ModuleCount(1), ModuleCount(40))
	}
}
