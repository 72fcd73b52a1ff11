package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/atshaw/quill/internal/httpserver/deps"
	"github.com/atshaw/quill/internal/httpserver/handlers"
	"github.com/atshaw/quill/internal/httpserver/mw"
)

func init() { Register(registerAuth) }

func registerAuth(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:      d.LoginBurst,
		PerMinute:  d.LoginPerMinute,
		TrustProxy: d.TrustProxy,
	})
	limited := r.With(limit)
	limited.Get("/login", handlers.Login(d))
	limited.Post("/login", handlers.Login(d))
	r.Get("/logout", handlers.Logout(d))
}
