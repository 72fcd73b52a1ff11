package handlers

import (
	"net/http"
	"strconv"

	"github.com/atshaw/quill/internal/httpserver/deps"
	"github.com/atshaw/quill/internal/logger"
	"github.com/atshaw/quill/internal/web"
)

// Feed renders the paginated reverse-chronological front page with the
// bookmarks sidebar.
func Feed(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		page := 0
		if raw := r.URL.Query().Get("page"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				d.Web.Error(w, http.StatusBadRequest, "page must be a non-negative integer", pageData(d, r))
				return
			}
			page = n
		}

		posts, total, err := d.Blog.Feed(ctx, page, d.PageSize)
		if err != nil {
			d.Logger.Error("failed to load feed", logger.Error(err))
			d.Web.Error(w, http.StatusInternalServerError, "the post store is unavailable", pageData(d, r))
			return
		}

		// A valid but empty page is a dead end, send the reader back to the top.
		if len(posts) == 0 && page > 0 {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		bookmarks, err := d.Blog.Bookmarks(ctx)
		if err != nil {
			// The sidebar is not worth failing the page over.
			d.Logger.Warn("failed to load bookmarks", logger.Error(err))
			bookmarks = nil
		}

		pd := pageData(d, r)
		pd.Title = "quill"
		d.Web.Page(w, http.StatusOK, "feed", web.FeedPageData{
			PageData:  pd,
			Posts:     posts,
			Bookmarks: bookmarks,
			Page:      page,
			HasNewer:  page > 0,
			HasOlder:  (page+1)*d.PageSize < total,
		})
	}
}
