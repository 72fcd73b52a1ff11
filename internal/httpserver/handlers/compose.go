package handlers

import (
	"errors"
	"net/http"

	"github.com/atshaw/quill/internal/domain"
	"github.com/atshaw/quill/internal/httpserver/deps"
	"github.com/atshaw/quill/internal/httpserver/mw"
	"github.com/atshaw/quill/internal/logger"
	"github.com/atshaw/quill/internal/web"
)

// ComposeForm renders the compose page. A ?post=<slug> query prefills the
// form with an existing post for editing.
func ComposeForm(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var post *domain.Post

		if slug := r.URL.Query().Get("post"); slug != "" {
			p, err := d.Blog.Post(r.Context(), slug)
			if err != nil {
				if errors.Is(err, domain.ErrPostNotFound) {
					d.Web.Error(w, http.StatusNotFound, "no such post", pageData(d, r))
					return
				}
				d.Logger.Error("failed to load post for editing",
					logger.String("slug", slug),
					logger.Error(err))
				d.Web.Error(w, http.StatusInternalServerError, "the post store is unavailable", pageData(d, r))
				return
			}
			post = p
		}

		pd := pageData(d, r)
		pd.Title = "Compose"
		d.Web.Page(w, http.StatusOK, "compose", web.ComposePageData{
			PageData: pd,
			Post:     post,
		})
	}
}

// ComposeSubmit creates or updates a post. A present post_id field selects
// update semantics, its absence create semantics; the handler decides before
// the service is ever called.
func ComposeSubmit(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			d.Web.Error(w, http.StatusBadRequest, "malformed form data", pageData(d, r))
			return
		}

		postID := r.PostFormValue("post_id")
		title := r.PostFormValue("post_title")
		text := r.PostFormValue("post_contents")

		var err error
		if postID != "" {
			_, err = d.Blog.Update(r.Context(), domain.UpdatePost{
				ID:    postID,
				Title: title,
				Text:  text,
			})
		} else {
			session, _ := mw.SessionFrom(r.Context())
			author := session.Name
			if author == "" {
				author = session.Email
			}
			_, err = d.Blog.Create(r.Context(), domain.CreatePost{
				Title:  title,
				Text:   text,
				Author: author,
			})
		}

		switch {
		case err == nil:
			http.Redirect(w, r, "/", http.StatusFound)
		case errors.Is(err, domain.ErrMissingField):
			d.Web.Error(w, http.StatusBadRequest, "title and contents are required", pageData(d, r))
		case errors.Is(err, domain.ErrPostNotFound):
			d.Web.Error(w, http.StatusNotFound, "no such post", pageData(d, r))
		default:
			d.Logger.Error("failed to save post", logger.Error(err))
			d.Web.Error(w, http.StatusInternalServerError, "the post store is unavailable", pageData(d, r))
		}
	}
}
