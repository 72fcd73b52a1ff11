package handlers

import (
	"net/http"

	"github.com/atshaw/quill/internal/auth"
	"github.com/atshaw/quill/internal/httpserver/deps"
	"github.com/atshaw/quill/internal/logger"
)

// Login drives the identity-provider handshake. Without a code parameter it
// begins the handshake (redirect to the provider); with one it completes the
// callback leg. Nothing survives the suspension in between except the state
// nonce cookie and what the provider sends back.
func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			d.Gate.BeginHandshake(w, r)
			return
		}

		if !d.Gate.VerifyState(r, r.URL.Query().Get("state")) {
			d.Logger.Warn("login callback with bad state nonce")
			d.Web.Error(w, http.StatusInternalServerError, "authentication failed", pageData(d, r))
			return
		}

		identity, err := d.Gate.CompleteHandshake(r.Context(), code)
		if err != nil {
			d.Logger.Error("handshake failed", logger.Error(err))
			d.Web.Error(w, http.StatusInternalServerError, "authentication failed", pageData(d, r))
			return
		}

		if err := d.Sessions.SetCookie(w, auth.Session{Name: identity.Name, Email: identity.Email}); err != nil {
			d.Logger.Error("failed to issue session", logger.Error(err))
			d.Web.Error(w, http.StatusInternalServerError, "authentication failed", pageData(d, r))
			return
		}

		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// Logout clears the session cookie and returns to the feed.
func Logout(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Sessions.ClearCookie(w)
		http.Redirect(w, r, "/", http.StatusFound)
	}
}
