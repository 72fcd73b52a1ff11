package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atshaw/quill/internal/domain"
	"github.com/atshaw/quill/internal/httpserver/deps"
	"github.com/atshaw/quill/internal/logger"
	"github.com/atshaw/quill/internal/web"
)

// Post renders a single post permalink.
func Post(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		post, err := d.Blog.Post(r.Context(), slug)
		if err != nil {
			if errors.Is(err, domain.ErrPostNotFound) {
				d.Web.Error(w, http.StatusNotFound, "no such post", pageData(d, r))
				return
			}
			d.Logger.Error("failed to load post",
				logger.String("slug", slug),
				logger.Error(err))
			d.Web.Error(w, http.StatusInternalServerError, "the post store is unavailable", pageData(d, r))
			return
		}

		pd := pageData(d, r)
		pd.Title = post.Title
		d.Web.Page(w, http.StatusOK, "post", web.PostPageData{
			PageData: pd,
			Post:     post,
		})
	}
}
