// Package encoder produces module grids from text.
//
// Symbol encoding is delegated to github.com/skip2/go-qrcode; this package
// only normalizes the caller-facing options and converts the encoder's
// bitmap into a [grid.Matrix].
//
// # Error Correction Levels
//
// [ParseLevel] accepts the letters L, M, Q and H in any case, as well as the
// numeric codes used by the classic jQuery QR plugin (L=1, M=0, Q=3, H=2):
//
//	lvl, err := encoder.ParseLevel("q")  // LevelQ
//	lvl, err := encoder.ParseLevel("2")  // LevelH
//
// # Usage
//
//	m, err := encoder.Encode("https://example.com", encoder.Options{Level: encoder.LevelM})
//	fmt.Println(m.Size()) // 25
//
// [grid.Matrix]: github.com/matzehuels/qrtile/pkg/grid.Matrix
package encoder
