package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Writer writes HTML fragments and keeps the first write error, so
// components read top to bottom and check Err once.
type Writer struct {
	w   io.Writer
	err error
}

func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

// Raw writes s unescaped.
func (h *Writer) Raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

// Text writes s escaped for element content or a quoted attribute.
func (h *Writer) Text(s string) { h.Raw(templ.EscapeString(s)) }

// URL sanitises s before escaping it for an attribute.
func (h *Writer) URL(s string) { h.Raw(templ.EscapeString(string(templ.URL(s)))) }

// Render writes a nested component.
func (h *Writer) Render(ctx context.Context, c templ.Component) {
	if h.err == nil && c != nil {
		h.err = c.Render(ctx, h.w)
	}
}

func (h *Writer) Err() error { return h.err }
