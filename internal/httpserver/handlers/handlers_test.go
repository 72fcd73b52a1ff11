package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atshaw/quill/internal/auth"
	"github.com/atshaw/quill/internal/blog"
	"github.com/atshaw/quill/internal/domain"
	"github.com/atshaw/quill/internal/httpserver/deps"
	"github.com/atshaw/quill/internal/httpserver/handlers"
	"github.com/atshaw/quill/internal/httpserver/mw"
	"github.com/atshaw/quill/internal/logger"
	"github.com/atshaw/quill/internal/markdown"
	"github.com/atshaw/quill/internal/store/memory"
	"github.com/atshaw/quill/internal/web"
)

type testEnv struct {
	router   chi.Router
	blog     *blog.Service
	sessions *auth.SessionCodec
}

// newEnv builds a router with the real route shape over the in-memory store.
func newEnv(t *testing.T) *testEnv {
	t.Helper()

	log := logger.Nop()
	svc := blog.NewService(memory.NewStore(), markdown.NewRenderer(), log)
	sessions := auth.NewSessionCodec([]byte("0123456789abcdef"), time.Hour)

	d := deps.Deps{
		Logger:    log,
		StartTime: time.Now(),
		TimeNow:   time.Now,
		Blog:      svc,
		Sessions:  sessions,
		Web:       web.NewRenderer(log),
		PageSize:  3,
	}

	r := chi.NewRouter()
	r.Get("/", handlers.Feed(d))
	r.Get("/post/{slug}", handlers.Post(d))
	gated := r.With(mw.RequireSession(sessions, log))
	gated.Get("/compose", handlers.ComposeForm(d))
	gated.Post("/compose", handlers.ComposeSubmit(d))
	gated.Get("/delete/{slug}", handlers.DeletePost(d))
	r.Post("/bookmark", handlers.BookmarkUpsert(d))
	gated.Get("/bookmark", handlers.BookmarkDelete(d))
	r.Get("/logout", handlers.Logout(d))

	return &testEnv{router: r, blog: svc, sessions: sessions}
}

func (e *testEnv) do(t *testing.T, req *http.Request, signedIn bool) *httptest.ResponseRecorder {
	t.Helper()
	if signedIn {
		token, err := e.sessions.Issue(auth.Session{Name: "Alex", Email: "alex@example.com"})
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) createPost(t *testing.T, title, text string) *domain.Post {
	t.Helper()
	post, err := e.blog.Create(context.Background(), domain.CreatePost{
		Title:  title,
		Text:   text,
		Author: "Alex",
	})
	require.NoError(t, err)
	return post
}

func TestFeedEmpty(t *testing.T) {
	env := newEnv(t)

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/", nil), false)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestFeedShowsPosts(t *testing.T) {
	env := newEnv(t)
	env.createPost(t, "Hello, World!", "# Hi")

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/", nil), false)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Hello, World!")
	assert.Contains(t, body, "/post/hello-world")
	// Stored HTML is emitted as markup, not re-escaped.
	assert.Contains(t, body, "<h1>Hi</h1>")
}

func TestFeedNonNumericPage(t *testing.T) {
	env := newEnv(t)

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/?page=abc", nil), false)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFeedPastTheEndRedirects(t *testing.T) {
	env := newEnv(t)
	env.createPost(t, "Only One", "body")

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/?page=7", nil), false)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestFeedPagination(t *testing.T) {
	env := newEnv(t)
	for i := 0; i < 4; i++ { // page size is 3
		env.createPost(t, "Post "+string(rune('A'+i)), "body")
	}

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/", nil), false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "page=1", "first page should link to older posts")

	rec = env.do(t, httptest.NewRequest(http.MethodGet, "/?page=1", nil), false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Post A", "oldest post lands on the second page")
}

func TestPostPage(t *testing.T) {
	env := newEnv(t)
	env.createPost(t, "Hello, World!", "# Hi\n\nSome *emphasis*.")

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/post/hello-world", nil), false)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h1>Hi</h1>")
	assert.Contains(t, body, "<em>emphasis</em>")
}

func TestPostNotFound(t *testing.T) {
	env := newEnv(t)

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/post/missing", nil), false)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestComposeRequiresSession(t *testing.T) {
	env := newEnv(t)

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/compose", nil), false)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestComposeSubmitAnonymousWritesNothing(t *testing.T) {
	env := newEnv(t)

	form := strings.NewReader("post_title=Sneaky&post_contents=nope")
	req := httptest.NewRequest(http.MethodPost, "/compose", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := env.do(t, req, false)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	_, total, err := env.blog.Feed(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total, "anonymous submit must not create a post")
}

func TestComposeSubmitCreates(t *testing.T) {
	env := newEnv(t)

	form := strings.NewReader("post_title=Hello, World!&post_contents=" +
		"%23 Hi") // "# Hi"
	req := httptest.NewRequest(http.MethodPost, "/compose", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := env.do(t, req, true)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	post, err := env.blog.Post(context.Background(), "hello-world")
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", post.Title)
	assert.Equal(t, "Alex", post.Author)
	assert.Contains(t, post.HTML, "<h1>Hi</h1>")
}

func TestComposeSubmitMissingTitle(t *testing.T) {
	env := newEnv(t)

	form := strings.NewReader("post_title=&post_contents=body")
	req := httptest.NewRequest(http.MethodPost, "/compose", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := env.do(t, req, true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestComposeSubmitUpdates(t *testing.T) {
	env := newEnv(t)
	post := env.createPost(t, "Hello, World!", "original")

	form := strings.NewReader("post_id=" + post.ID +
		"&post_title=Hello, World!&post_contents=revised")
	req := httptest.NewRequest(http.MethodPost, "/compose", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := env.do(t, req, true)

	require.Equal(t, http.StatusFound, rec.Code)

	got, err := env.blog.Post(context.Background(), "hello-world")
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)
	assert.Equal(t, "revised", got.Text)
	assert.Equal(t, post.Timestamp, got.Timestamp, "edits keep the original timestamp")
}

func TestComposeSubmitUpdateUnknownID(t *testing.T) {
	env := newEnv(t)

	form := strings.NewReader("post_id=nope&post_title=T&post_contents=b")
	req := httptest.NewRequest(http.MethodPost, "/compose", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := env.do(t, req, true)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestComposeFormPrefill(t *testing.T) {
	env := newEnv(t)
	post := env.createPost(t, "Hello, World!", "the original text")

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/compose?post=hello-world", nil), true)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, post.ID)
	assert.Contains(t, body, "the original text")
}

func TestDeletePost(t *testing.T) {
	env := newEnv(t)
	env.createPost(t, "Hello, World!", "body")

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/delete/hello-world", nil), true)
	require.Equal(t, http.StatusFound, rec.Code)

	_, err := env.blog.Post(context.Background(), "hello-world")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestDeletePostIdempotent(t *testing.T) {
	env := newEnv(t)

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/delete/never-existed", nil), true)

	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestBookmarkUpsertAndSidebar(t *testing.T) {
	env := newEnv(t)

	body := strings.NewReader(`{"title":"The Go Blog","url":"https://go.dev/blog"}`)
	req := httptest.NewRequest(http.MethodPost, "/bookmark", body)
	req.Header.Set("Content-Type", "application/json")
	rec := env.do(t, req, false) // deliberately anonymous

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id"`)

	feed := env.do(t, httptest.NewRequest(http.MethodGet, "/", nil), false)
	assert.Contains(t, feed.Body.String(), "The Go Blog")
}

func TestBookmarkUpsertBadJSON(t *testing.T) {
	env := newEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/bookmark", strings.NewReader("{not json"))
	rec := env.do(t, req, false)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookmarkUpsertNullBody(t *testing.T) {
	env := newEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/bookmark", strings.NewReader("null"))
	req.Header.Set("Content-Type", "application/json")
	rec := env.do(t, req, false)

	// null is valid JSON; it becomes an empty document with a fresh id.
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id"`)
}

func TestBookmarkDelete(t *testing.T) {
	env := newEnv(t)
	saved, err := env.blog.UpsertBookmark(context.Background(),
		domain.Bookmark{"title": "Doomed", "url": "https://example.com"})
	require.NoError(t, err)

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/bookmark?id="+saved.ID(), nil), true)
	require.Equal(t, http.StatusFound, rec.Code)

	bookmarks, err := env.blog.Bookmarks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bookmarks)
}

func TestLogoutClearsCookie(t *testing.T) {
	env := newEnv(t)

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/logout", nil), true)

	require.Equal(t, http.StatusFound, rec.Code)
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "logout should expire the session cookie")
}

func TestHealthzReportsUptime(t *testing.T) {
	log := logger.Nop()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := deps.Deps{
		Logger:    log,
		StartTime: start,
		TimeNow:   func() time.Time { return start.Add(90 * time.Second) },
		Web:       web.NewRenderer(log),
	}

	rec := httptest.NewRecorder()
	handlers.Healthz(d)(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"uptime_seconds":90`)
	// No redis client wired means the store check fails.
	assert.Contains(t, body, `"status":"degraded"`)
}

func TestFeedShowsOperatorControlsOnlyWhenSignedIn(t *testing.T) {
	env := newEnv(t)
	env.createPost(t, "Hello, World!", "body")

	anon := env.do(t, httptest.NewRequest(http.MethodGet, "/", nil), false)
	assert.NotContains(t, anon.Body.String(), "/delete/hello-world")

	signed := env.do(t, httptest.NewRequest(http.MethodGet, "/", nil), true)
	assert.Contains(t, signed.Body.String(), "/delete/hello-world")
}
