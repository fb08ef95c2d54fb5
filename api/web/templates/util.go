// Package templates renders the gallery pages and htmx fragments as templ
// components.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/aouyang1/mouseglass/gallery"
)

func imagePageURL(id int) string {
	return fmt.Sprintf("/gallery?image=%d", id)
}

func favoriteURL(rec gallery.ImageRecord) string {
	return fmt.Sprintf("/ui/favorites/%d", rec.ID)
}

func overlayURL(rec gallery.ImageRecord) string {
	return fmt.Sprintf("/ui/gallery/%d/overlay", rec.ID)
}

func downloadURL(rec gallery.ImageRecord) string {
	return fmt.Sprintf("/api/images/%d/download", rec.ID)
}

func filterURL(c gallery.Category) string {
	return fmt.Sprintf("/ui/gallery?category=%s", c)
}

func cardID(id int) string {
	return fmt.Sprintf("image-card-%d", id)
}

func esc(s string) string {
	return templ.EscapeString(s)
}

// html accumulates the first write error so components can emit markup
// without checking every call.
type html struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newHTML(ctx context.Context, w io.Writer) *html {
	return &html{ctx: ctx, w: w}
}

func (h *html) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *html) printf(format string, args ...any) {
	if h.err != nil {
		return
	}
	_, h.err = fmt.Fprintf(h.w, format, args...)
}

func (h *html) render(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

func component(fn func(h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(ctx, w)
		fn(h)
		return h.err
	})
}
