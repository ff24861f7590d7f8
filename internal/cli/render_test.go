package cli

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/qrtile/pkg/encoder"
	"github.com/matzehuels/qrtile/pkg/errors"
	"github.com/matzehuels/qrtile/pkg/render"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name   string
		flag   string
		output string
		want   []string
	}{
		{"empty defers to pipeline", "", "", nil},
		{"single format", "png", "", []string{"png"}},
		{"multiple formats", "png,json", "", []string{"png", "json"}},
		{"from extension", "", "out/code.html", []string{"html"}},
		{"tif extension", "", "code.tif", []string{"tiff"}},
		{"unknown extension", "", "code.svg", nil},
		{"flag wins over extension", "json", "code.png", []string{"json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.flag, tt.output)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q, %q) = %v, want %v", tt.flag, tt.output, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, want string
	}{
		{"", "qr"},
		{"code.png", "code"},
		{"out/code.json", "out/code"},
		{"code", "code"},
		{"code.final", "code.final"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output); got != tt.want {
			t.Errorf("basePath(%q) = %q, want %q", tt.output, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	got := outputPaths("custom.bin", []string{"png"})
	if got["png"] != "custom.bin" {
		t.Errorf("single format should use -o verbatim, got %v", got)
	}

	got = outputPaths("out/code.png", []string{"png", "json"})
	if got["png"] != "out/code.png" || got["json"] != "out/code.json" {
		t.Errorf("multiple formats = %v", got)
	}

	got = outputPaths("", []string{"html"})
	if got["html"] != "qr.html" {
		t.Errorf("default path = %v", got)
	}
}

func TestReadPayload(t *testing.T) {
	if got, _ := readPayload("hello", strings.NewReader("ignored")); got != "hello" {
		t.Errorf("readPayload(arg) = %q", got)
	}
	got, err := readPayload("-", strings.NewReader("from stdin\n"))
	if err != nil || got != "from stdin" {
		t.Errorf("readPayload(-) = %q, %v", got, err)
	}
}

// runCLI executes the root command with an isolated config and cache.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRenderCommandWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "code.png")
	if _, err := runCLI(t, "render", "https://example.com", "-o", path, "--width", "123", "--height", "45"); err != nil {
		t.Fatalf("render: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 123 || b.Dy() != 45 {
		t.Errorf("bounds = %v, want 123x45", b)
	}
}

func TestRenderCommandMultipleFormats(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "code")
	if _, err := runCLI(t, "render", "hello", "-o", base, "-b", "boxgrid", "-f", "html,json", "--title", "hi"); err != nil {
		t.Fatalf("render: %v", err)
	}
	html, err := os.ReadFile(base + ".html")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(html), "<title>hi</title>") {
		t.Error("html should be a full document")
	}
	if _, err := os.Stat(base + ".json"); err != nil {
		t.Errorf("json not written: %v", err)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"zero width", []string{"render", "x", "-o", filepath.Join(dir, "a.png"), "--width", "0"}, errors.ErrCodeInvalidGeometry},
		{"bad backend", []string{"render", "x", "-b", "svg"}, errors.ErrCodeUnsupportedBackend},
		{"bad color", []string{"render", "x", "--fg", "#12345"}, errors.ErrCodeInvalidColor},
		{"bad level", []string{"render", "x", "-l", "X"}, errors.ErrCodeInvalidLevel},
		{"png from table", []string{"render", "x", "-b", "table", "-f", "png"}, errors.ErrCodeInvalidFormat},
		{"directory output", []string{"render", "x", "-o", dir + "/"}, errors.ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("render %v = %v, want %s", tt.args, err, tt.code)
			}
		})
	}
}

func TestPreviewTable(t *testing.T) {
	g, err := encoder.Encode("hi", encoder.Options{Level: encoder.LevelL, Version: 1})
	if err != nil {
		t.Fatal(err)
	}
	tbl, err := previewTable(g, 2, render.DefaultColors())
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Width != 42 || tbl.Height != 21 {
		t.Errorf("size = %dx%d, want 42x21", tbl.Width, tbl.Height)
	}
	for _, row := range tbl.Rows {
		if row.Height != 1 {
			t.Fatalf("row height = %d, want 1", row.Height)
		}
		for _, cell := range row.Cells {
			if cell.Width != 2 {
				t.Fatalf("cell width = %d, want 2", cell.Width)
			}
		}
	}

	var buf bytes.Buffer
	if err := writeTerminal(&buf, tbl); err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(buf.String(), "\n"); lines != 21 {
		t.Errorf("preview has %d lines, want 21", lines)
	}
}

func TestPreviewCommand(t *testing.T) {
	out, err := runCLI(t, "preview", "hello", "--border=false")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if strings.Count(out, "\n") < 21 {
		t.Errorf("preview output too short:\n%s", out)
	}
}

func TestCachePathCommand(t *testing.T) {
	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), appName) {
		t.Errorf("cache path = %q", out)
	}
}
