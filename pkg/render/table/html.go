package table

import (
	"bytes"
	"fmt"
	"io"

	"github.com/matzehuels/qrtile/pkg/render"
)

// WriteHTML writes t as a <table> element. Sizing is fully declared:
// fixed table layout, collapsed zero-width borders, px widths on cells and
// px heights on rows.
func (t *Table) WriteHTML(w io.Writer) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<table style="width:%dpx;height:%dpx;border:0px;border-collapse:collapse;border-spacing:0;table-layout:fixed;background-color:%s">`+"\n",
		t.Width, t.Height, render.Hex(t.Background))
	for _, row := range t.Rows {
		fmt.Fprintf(&buf, `  <tr style="height:%dpx">`, row.Height)
		for _, cell := range row.Cells {
			fmt.Fprintf(&buf, `<td style="width:%dpx;padding:0;border:0;background-color:%s"></td>`,
				cell.Width, render.Hex(cell.Color))
		}
		buf.WriteString("</tr>\n")
	}
	buf.WriteString("</table>\n")
	_, err := w.Write(buf.Bytes())
	return err
}
