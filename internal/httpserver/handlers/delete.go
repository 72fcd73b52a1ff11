package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atshaw/quill/internal/httpserver/deps"
	"github.com/atshaw/quill/internal/logger"
)

// DeletePost removes a post by slug and returns to the feed. Deleting an
// unknown slug is a silent no-op.
func DeletePost(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		if err := d.Blog.Delete(r.Context(), slug); err != nil {
			d.Logger.Error("failed to delete post",
				logger.String("slug", slug),
				logger.Error(err))
			d.Web.Error(w, http.StatusInternalServerError, "the post store is unavailable", pageData(d, r))
			return
		}

		http.Redirect(w, r, "/", http.StatusFound)
	}
}
