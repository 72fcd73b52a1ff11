package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName carries the signed session token.
const SessionCookieName = "quill_session"

// ErrNoSession is returned when a request carries no decodable session.
// Callers treat it as Anonymous, not as a failure.
var ErrNoSession = errors.New("no session")

// Session is the validated payload of a session cookie. Anything that does
// not decode into this shape is treated as Anonymous.
type Session struct {
	Name  string
	Email string
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SessionCodec issues and verifies tamper-evident session tokens (HS256).
type SessionCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionCodec creates a codec signing with secret. Tokens expire after
// ttl; zero means 30 days.
func NewSessionCodec(secret []byte, ttl time.Duration) *SessionCodec {
	if ttl == 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &SessionCodec{secret: secret, ttl: ttl}
}

// Issue signs a token for the given session.
func (c *SessionCodec) Issue(s Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Name:  s.Name,
		Email: s.Email,
	})
	return token.SignedString(c.secret)
}

// Decode verifies a token and returns the session it carries.
func (c *SessionCodec) Decode(tokenString string) (Session, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Session{}, fmt.Errorf("invalid session token: %w", err)
	}
	if !token.Valid || claims.Email == "" {
		return Session{}, fmt.Errorf("invalid session token: %w", ErrNoSession)
	}
	return Session{Name: claims.Name, Email: claims.Email}, nil
}

// FromRequest extracts the session from the request cookie, or ErrNoSession.
func (c *SessionCodec) FromRequest(r *http.Request) (Session, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return Session{}, ErrNoSession
	}
	return c.Decode(cookie.Value)
}

// SetCookie attaches a signed session cookie for s to the response.
func (c *SessionCodec) SetCookie(w http.ResponseWriter, s Session) error {
	token, err := c.Issue(s)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearCookie removes the session cookie (logout).
func (c *SessionCodec) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
