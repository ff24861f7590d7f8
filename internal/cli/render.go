package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qrtile/pkg/encoder"
	"github.com/matzehuels/qrtile/pkg/errors"
	"github.com/matzehuels/qrtile/pkg/pipeline"
	"github.com/matzehuels/qrtile/pkg/render"
	"github.com/matzehuels/qrtile/pkg/render/sink"
)

// defaultOutputBase names output files when -o is not given.
const defaultOutputBase = "qr"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string  // output file path (or base path for multiple outputs)
	formats  string  // comma-separated output formats
	width    float64 // output width in pixels
	height   float64 // output height in pixels
	backend  string  // bitmap, table or boxgrid
	fg       string  // dark module color
	bg       string  // light module color
	level    string  // error correction level
	version  int     // forced symbol version, 0 for automatic
	border   bool    // keep the quiet zone
	title    string  // wrap HTML output in a document with this title
	noCache  bool    // disable the artifact cache
	refresh  bool    // ignore cached artifacts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render TEXT",
		Short: "Render text as a QR code file",
		Long: `Render encodes TEXT as a QR code and writes one file per format.

Use "-" as TEXT to read the payload from stdin. Without --format the format
is taken from the -o extension, or defaults to png for the bitmap backend and
html for the table and boxgrid backends.`,
		Example: `  qrtile render https://example.com -o code.png
  qrtile render "hello" --backend table --title hello -o code.html
  qrtile render "hello" --width 301 --height 301 -f png,json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readPayload(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			req, err := c.buildRequest(cmd, text, &opts)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), req, &opts)
		},
	}

	d := defaultFileConfig().Render
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): png, bmp, tiff, html, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", d.Width, "output width in pixels")
	cmd.Flags().Float64Var(&opts.height, "height", d.Height, "output height in pixels")
	cmd.Flags().StringVarP(&opts.backend, "backend", "b", d.Backend, "backend: bitmap, table, boxgrid")
	cmd.Flags().StringVar(&opts.fg, "fg", d.Foreground, "dark module color (#rgb or #rrggbb)")
	cmd.Flags().StringVar(&opts.bg, "bg", d.Background, "light module color (#rgb or #rrggbb)")
	cmd.Flags().StringVarP(&opts.level, "level", "l", d.Level, "error correction level: L, M, Q, H")
	cmd.Flags().IntVar(&opts.version, "version-number", 0, "force symbol version 1-40 (0 selects automatically)")
	cmd.Flags().BoolVar(&opts.border, "border", d.Border, "keep the 4-module quiet zone")
	cmd.Flags().StringVar(&opts.title, "title", "", "wrap HTML output in a document with this title")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts")

	_ = cmd.RegisterFlagCompletionFunc("backend", cobra.FixedCompletions(backendNames(), cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("level", cobra.FixedCompletions([]string{"L", "M", "Q", "H"}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(sink.Formats, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// readPayload returns arg, or stdin when arg is "-".
func readPayload(arg string, stdin io.Reader) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// buildRequest merges the config file with explicitly set flags.
func (c *CLI) buildRequest(cmd *cobra.Command, text string, opts *renderOpts) (pipeline.Request, error) {
	rs := c.config.Render
	flags := cmd.Flags()
	if flags.Changed("width") {
		rs.Width = opts.width
	}
	if flags.Changed("height") {
		rs.Height = opts.height
	}
	if flags.Changed("backend") {
		rs.Backend = opts.backend
	}
	if flags.Changed("fg") {
		rs.Foreground = opts.fg
	}
	if flags.Changed("bg") {
		rs.Background = opts.bg
	}
	if flags.Changed("level") {
		rs.Level = opts.level
	}
	if flags.Changed("border") {
		rs.Border = opts.border
	}

	cfg, err := rs.pipelineConfig()
	if err != nil {
		return pipeline.Request{}, err
	}
	level, err := encoder.ParseLevel(rs.Level)
	if err != nil {
		return pipeline.Request{}, err
	}

	req := pipeline.Request{
		Text:    text,
		Level:   level,
		Version: opts.version,
		Border:  rs.Border,
		Config:  cfg,
		Formats: parseFormats(opts.formats, opts.output),
		Title:   opts.title,
		Refresh: opts.refresh,
	}
	if err := req.ValidateAndSetDefaults(); err != nil {
		return pipeline.Request{}, err
	}
	return req, nil
}

// parseFormats splits the --format flag. When it is empty the extension of
// output decides; an empty result lets the pipeline pick the default.
func parseFormats(s, output string) []string {
	if s != "" {
		return strings.Split(s, ",")
	}
	if ext := strings.TrimPrefix(filepath.Ext(output), "."); ext != "" {
		if f, err := sink.ParseFormat(ext); err == nil {
			return []string{f}
		}
	}
	return nil
}

// basePath derives the base output path. A known format extension on
// output is stripped so multiple formats become base.png, base.json, ...
func basePath(output string) string {
	if output == "" {
		return defaultOutputBase
	}
	ext := filepath.Ext(output)
	if _, err := sink.ParseFormat(strings.TrimPrefix(ext, ".")); err == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to the file it is written to.
func outputPaths(output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

func (c *CLI) runRender(ctx context.Context, req pipeline.Request, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	paths := outputPaths(opts.output, req.Formats)
	for _, p := range paths {
		if err := errors.ValidateOutputPath(p); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, req)
	if err != nil {
		return err
	}
	prog.done("Rendered",
		"backend", req.Config.Backend,
		"size", fmt.Sprintf("%gx%g", req.Config.Width, req.Config.Height),
		"level", req.Level,
		"cached", result.CacheHit)

	for _, f := range req.Formats {
		path := paths[f]
		if err := writeFile(path, result.Artifacts[f]); err != nil {
			return err
		}
		logger.Debugf("Wrote %s: %d bytes", path, len(result.Artifacts[f]))
	}

	printSuccess("Rendered QR code")
	printStats(result.Stats.Modules, int(math.Round(req.Config.Width)), int(math.Round(req.Config.Height)), result.CacheHit)
	for _, f := range req.Formats {
		printFile(paths[f])
	}
	return nil
}

// writeFile creates parent directories as needed.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// backendNames lists the accepted --backend values.
func backendNames() []string {
	names := make([]string, len(render.Backends))
	for i, b := range render.Backends {
		names[i] = string(b)
	}
	return names
}
