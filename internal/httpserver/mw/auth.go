package mw

import (
	"context"
	"net/http"

	"github.com/atshaw/quill/internal/auth"
	"github.com/atshaw/quill/internal/logger"
)

type ctxKey int

const sessionKey ctxKey = iota

// WithSession stores the authenticated session in the request context.
func WithSession(ctx context.Context, s auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFrom retrieves the authenticated session, if any.
func SessionFrom(ctx context.Context) (auth.Session, bool) {
	s, ok := ctx.Value(sessionKey).(auth.Session)
	return s, ok
}

// RequireSession gates mutating routes. Anonymous callers are redirected to
// the login entry point, not given an error page; a cookie that fails to
// decode counts as Anonymous.
func RequireSession(sessions *auth.SessionCodec, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := sessions.FromRequest(r)
			if err != nil {
				log.Debug("anonymous caller on gated route",
					logger.String("path", r.URL.Path))
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}
