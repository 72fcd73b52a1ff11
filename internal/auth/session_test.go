package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	codec := NewSessionCodec([]byte("test-secret"), time.Hour)

	token, err := codec.Issue(Session{Name: "A. Operator", Email: "op@example.com"})
	require.NoError(t, err)

	got, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "A. Operator", got.Name)
	assert.Equal(t, "op@example.com", got.Email)
}

func TestSessionTamperRejected(t *testing.T) {
	codec := NewSessionCodec([]byte("test-secret"), time.Hour)

	token, err := codec.Issue(Session{Name: "op", Email: "op@example.com"})
	require.NoError(t, err)

	_, err = codec.Decode(token + "x")
	assert.Error(t, err)

	other := NewSessionCodec([]byte("other-secret"), time.Hour)
	_, err = other.Decode(token)
	assert.Error(t, err)
}

func TestSessionExpired(t *testing.T) {
	codec := NewSessionCodec([]byte("test-secret"), -time.Minute)

	token, err := codec.Issue(Session{Name: "op", Email: "op@example.com"})
	require.NoError(t, err)

	_, err = codec.Decode(token)
	assert.Error(t, err)
}

func TestSessionFromRequest(t *testing.T) {
	codec := NewSessionCodec([]byte("test-secret"), time.Hour)

	// No cookie at all -> Anonymous.
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := codec.FromRequest(r)
	assert.ErrorIs(t, err, ErrNoSession)

	// Garbage cookie -> Anonymous, not a panic or a trusted session.
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "not-a-token"})
	_, err = codec.FromRequest(r)
	assert.Error(t, err)

	// Valid cookie decodes.
	w := httptest.NewRecorder()
	require.NoError(t, codec.SetCookie(w, Session{Name: "op", Email: "op@example.com"}))
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	got, err := codec.FromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, "op@example.com", got.Email)
}
