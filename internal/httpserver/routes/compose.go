package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/atshaw/quill/internal/httpserver/deps"
	"github.com/atshaw/quill/internal/httpserver/handlers"
	"github.com/atshaw/quill/internal/httpserver/mw"
)

func init() { Register(registerCompose) }

func registerCompose(r chi.Router, d deps.Deps) {
	gated := r.With(mw.RequireSession(d.Sessions, d.Logger))
	gated.Get("/compose", handlers.ComposeForm(d))
	gated.Post("/compose", handlers.ComposeSubmit(d))
	gated.Get("/delete/{slug}", handlers.DeletePost(d))
}
