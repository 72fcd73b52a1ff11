package handlers

import (
	"net/http"

	"github.com/atshaw/quill/internal/auth"
	"github.com/atshaw/quill/internal/httpserver/deps"
	"github.com/atshaw/quill/internal/httpserver/mw"
	"github.com/atshaw/quill/internal/web"
)

// currentSession resolves the caller's session: from the context when the
// auth middleware already ran, otherwise straight from the cookie. Public
// pages use this to decide whether to show operator controls.
func currentSession(d deps.Deps, r *http.Request) (auth.Session, bool) {
	if s, ok := mw.SessionFrom(r.Context()); ok {
		return s, true
	}
	s, err := d.Sessions.FromRequest(r)
	if err != nil {
		return auth.Session{}, false
	}
	return s, true
}

// pageData builds the common template fields for the current request.
func pageData(d deps.Deps, r *http.Request) web.PageData {
	session, ok := currentSession(d, r)
	if !ok {
		return web.PageData{}
	}
	name := session.Name
	if name == "" {
		name = session.Email
	}
	return web.PageData{SignedIn: true, UserName: name}
}
