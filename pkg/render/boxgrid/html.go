package boxgrid

import (
	"bytes"
	"fmt"
	"io"

	"github.com/matzehuels/qrtile/pkg/render"
)

// WriteHTML writes c as a relatively positioned <div> whose children are
// absolutely positioned at their precomputed offsets.
func (c *Container) WriteHTML(w io.Writer) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<div style="display:block;position:relative;overflow:hidden;width:%dpx;height:%dpx;border:0px;background-color:%s">`+"\n",
		c.Width, c.Height, render.Hex(c.Background))
	for _, b := range c.Boxes {
		fmt.Fprintf(&buf, `  <div style="position:absolute;left:%dpx;top:%dpx;width:%dpx;height:%dpx;background-color:%s"></div>`+"\n",
			b.X, b.Y, b.W, b.H, render.Hex(b.Color))
	}
	buf.WriteString("</div>\n")
	_, err := w.Write(buf.Bytes())
	return err
}
