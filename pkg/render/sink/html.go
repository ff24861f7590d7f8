package sink

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/matzehuels/qrtile/pkg/errors"
	"github.com/matzehuels/qrtile/pkg/render"
)

// HTMLOption configures HTML rendering.
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	document bool
	title    string
}

// WithDocument wraps the fragment in a standalone HTML document.
func WithDocument(title string) HTMLOption {
	return func(r *htmlRenderer) {
		r.document = true
		r.title = title
	}
}

type htmlWriter interface {
	WriteHTML(w io.Writer) error
}

// RenderHTML renders a table or box-grid output as HTML. By default only
// the element itself is written.
func RenderHTML(out render.Output, opts ...HTMLOption) ([]byte, error) {
	hw, ok := out.(htmlWriter)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupported, "%s output cannot be rendered as html", out.Backend())
	}
	r := htmlRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	if r.document {
		fmt.Fprintf(&buf, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n",
			html.EscapeString(r.title))
	}
	if err := hw.WriteHTML(&buf); err != nil {
		return nil, err
	}
	if r.document {
		buf.WriteString("</body>\n</html>\n")
	}
	return buf.Bytes(), nil
}
