package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/atshaw/quill/internal/httpserver/deps"
	"github.com/atshaw/quill/internal/httpserver/handlers"
	"github.com/atshaw/quill/internal/httpserver/mw"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	// The JSON upsert endpoint stays open so the companion browser
	// extension can post bookmarks without a session.
	r.Post("/bookmark", handlers.BookmarkUpsert(d))
	r.With(mw.RequireSession(d.Sessions, d.Logger)).Get("/bookmark", handlers.BookmarkDelete(d))
}
