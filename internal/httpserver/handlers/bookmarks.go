package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/atshaw/quill/internal/domain"
	"github.com/atshaw/quill/internal/httpserver/deps"
	"github.com/atshaw/quill/internal/logger"
)

// BookmarkDelete removes a bookmark by id and returns to the feed.
func BookmarkDelete(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id := r.URL.Query().Get("id"); id != "" {
			if err := d.Blog.DeleteBookmark(r.Context(), id); err != nil {
				d.Logger.Error("failed to delete bookmark",
					logger.String("id", id),
					logger.Error(err))
				d.Web.Error(w, http.StatusInternalServerError, "the store is unavailable", pageData(d, r))
				return
			}
		}
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// BookmarkUpsert accepts a raw JSON document and upserts it by id. The
// endpoint is deliberately unauthenticated and does no schema validation
// beyond "is it a JSON object"; see the design notes.
func BookmarkUpsert(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc domain.Bookmark
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
		if err := dec.Decode(&doc); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		// A JSON null decodes into a nil map; store it as an empty document.
		if doc == nil {
			doc = domain.Bookmark{}
		}

		saved, err := d.Blog.UpsertBookmark(r.Context(), doc)
		if err != nil {
			d.Logger.Error("failed to upsert bookmark", logger.Error(err))
			http.Error(w, "store unavailable", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(saved)
	}
}
