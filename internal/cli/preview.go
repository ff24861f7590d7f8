package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/qrtile/pkg/encoder"
	"github.com/matzehuels/qrtile/pkg/grid"
	"github.com/matzehuels/qrtile/pkg/pipeline"
	"github.com/matzehuels/qrtile/pkg/render"
	"github.com/matzehuels/qrtile/pkg/render/table"
)

// previewOpts holds the flags for the preview command.
type previewOpts struct {
	level  string
	border bool
	scale  int    // terminal columns per module
	fg     string // dark module color
	bg     string // light module color
}

// previewCommand creates the preview command. It renders with the table
// backend at terminal resolution: one row per module and scale columns per
// module, which keeps modules roughly square in most terminal fonts.
func (c *CLI) previewCommand() *cobra.Command {
	opts := previewOpts{border: true, scale: 2}

	cmd := &cobra.Command{
		Use:   "preview TEXT",
		Short: "Print text as a QR code in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readPayload(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			return c.runPreview(cmd, text, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.level, "level", "l", "", "error correction level: L, M, Q, H")
	cmd.Flags().BoolVar(&opts.border, "border", opts.border, "keep the 4-module quiet zone")
	cmd.Flags().IntVar(&opts.scale, "scale", opts.scale, "terminal columns per module")
	cmd.Flags().StringVar(&opts.fg, "fg", "", "dark module color (default from config)")
	cmd.Flags().StringVar(&opts.bg, "bg", "", "light module color (default from config)")

	return cmd
}

func (c *CLI) runPreview(cmd *cobra.Command, text string, opts *previewOpts) error {
	logger := loggerFromContext(cmd.Context())

	if opts.scale < 1 {
		return fmt.Errorf("scale must be at least 1, got %d", opts.scale)
	}
	levelName := opts.level
	if levelName == "" {
		levelName = c.config.Render.Level
	}
	level, err := encoder.ParseLevel(levelName)
	if err != nil {
		return err
	}

	rs := c.config.Render
	if opts.fg != "" {
		rs.Foreground = opts.fg
	}
	if opts.bg != "" {
		rs.Background = opts.bg
	}
	fg, err := render.ParseColor(rs.Foreground)
	if err != nil {
		return err
	}
	bg, err := render.ParseColor(rs.Background)
	if err != nil {
		return err
	}

	g, err := encoder.Encode(text, encoder.Options{Level: level, Border: opts.border})
	if err != nil {
		return err
	}
	logger.Debug("encoded payload", "modules", g.Size(), "level", level)

	tbl, err := previewTable(g, opts.scale, render.Colors{Foreground: fg, Background: bg})
	if err != nil {
		return err
	}
	return writeTerminal(cmd.OutOrStdout(), tbl)
}

// previewTable renders g with the table backend at scale columns and one
// row per module.
func previewTable(g grid.Grid, scale int, colors render.Colors) (*table.Table, error) {
	n := g.Size()
	out, err := pipeline.Render(g, pipeline.Config{
		Width:      float64(n * scale),
		Height:     float64(n),
		Foreground: colors.Foreground,
		Background: colors.Background,
		Backend:    render.BackendTable,
	})
	if err != nil {
		return nil, err
	}
	return out.(*table.Table), nil
}

// writeTerminal paints each cell as background-colored spaces.
func writeTerminal(w io.Writer, t *table.Table) error {
	styles := make(map[string]lipgloss.Style)
	var sb strings.Builder
	for _, row := range t.Rows {
		for range row.Height {
			for _, cell := range row.Cells {
				hex := render.Hex(cell.Color)
				st, ok := styles[hex]
				if !ok {
					st = lipgloss.NewStyle().Background(lipgloss.Color(hex))
					styles[hex] = st
				}
				sb.WriteString(st.Render(strings.Repeat(" ", cell.Width)))
			}
			sb.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
