package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/atshaw/quill/internal/httpserver/deps"
	"github.com/atshaw/quill/internal/httpserver/handlers"
)

func init() { Register(registerFeed) }

func registerFeed(r chi.Router, d deps.Deps) {
	r.Get("/", handlers.Feed(d))
	r.Get("/post/{slug}", handlers.Post(d))
}
