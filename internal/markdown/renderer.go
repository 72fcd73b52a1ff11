// internal/markdown/renderer.go
package markdown

import (
	"bytes"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer converts Markdown source to HTML. Posts are rendered once at
// create/update time; read paths only ever see stored HTML.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer builds the renderer with GitHub-flavored extensions enabled.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// Render converts Markdown text to HTML. It never fails: if goldmark rejects
// the input, the escaped source is returned instead.
func (r *Renderer) Render(text string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return html.EscapeString(text)
	}
	return buf.String()
}
