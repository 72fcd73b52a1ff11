package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/atshaw/quill/internal/domain"
	"github.com/atshaw/quill/internal/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData contains common fields used across all page templates.
type PageData struct {
	Title    string
	SignedIn bool
	UserName string
}

// FeedPageData is the template data for the feed page.
type FeedPageData struct {
	PageData
	Posts     []*domain.Post
	Bookmarks []domain.Bookmark
	Page      int
	HasNewer  bool
	HasOlder  bool
}

// PostPageData is the template data for a single post page.
type PostPageData struct {
	PageData
	Post *domain.Post
}

// ComposePageData is the template data for the compose form.
// Post is nil when composing a new entry.
type ComposePageData struct {
	PageData
	Post *domain.Post
}

// ErrorPageData is the template data for the error page.
type ErrorPageData struct {
	PageData
	StatusCode int
	Message    string
}

// Renderer manages template parsing and page rendering.
type Renderer struct {
	templates map[string]*template.Template
	logger    logger.Logger
}

// NewRenderer parses the embedded templates against the shared layout.
func NewRenderer(log logger.Logger) *Renderer {
	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"formatTime": func(t time.Time) string {
			return t.Format("January 2, 2006")
		},
		// Post HTML is produced by the markdown renderer at write time and is
		// the only thing ever passed through safeHTML.
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
		"field": func(b domain.Bookmark, key string) string {
			if v, ok := b[key]; ok {
				return fmt.Sprint(v)
			}
			return ""
		},
	}

	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}

	layout := template.Must(template.New("layout").Funcs(funcMap).ParseFS(sub, "layout.html"))

	pages := map[string]string{
		"feed":    "feed.html",
		"post":    "post.html",
		"compose": "compose.html",
		"error":   "error.html",
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		t := template.Must(layout.Clone())
		template.Must(t.ParseFS(sub, file))
		templates[name] = t
	}

	return &Renderer{
		templates: templates,
		logger:    log,
	}
}

// Page renders a named page template with the given data and status code.
func (r *Renderer) Page(w http.ResponseWriter, status int, name string, data any) {
	t, ok := r.templates[name]
	if !ok {
		r.logger.Errorf("template %q not found", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		r.logger.Error("template execution error",
			logger.String("template", name),
			logger.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// Error renders the error page with the given status and message.
func (r *Renderer) Error(w http.ResponseWriter, status int, message string, page PageData) {
	page.Title = http.StatusText(status)
	r.Page(w, status, "error", ErrorPageData{
		PageData:   page,
		StatusCode: status,
		Message:    message,
	})
}
