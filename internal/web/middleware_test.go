package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/gorilla/securecookie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chirp/internal/chirp"
	"chirp/internal/chirp/chirptest"
	"chirp/internal/render"
)

func newTestServer(t *testing.T) (*Server, *chirptest.Repo) {
	t.Helper()

	repo := chirptest.New()
	renderer, err := render.New()
	require.NoError(t, err)

	s := NewServer(Config{
		CookieHashKey: securecookie.GenerateRandomKey(32),
	}, repo, renderer)

	return s, repo
}

func authedRequest(r *http.Request, usr chirp.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), viewerKey, usr))
}

func TestRequireUser_AnonymousRedirects(t *testing.T) {
	s, _ := newTestServer(t)

	called := false
	wrapped := s.requireUser(func(w http.ResponseWriter, r *http.Request) error {
		called = true
		return nil
	})

	rec := httptest.NewRecorder()
	err := wrapped(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	assert.False(t, called)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/public", rec.Header().Get("Location"))
}

func TestRequireUser_AuthenticatedDelegates(t *testing.T) {
	s, _ := newTestServer(t)

	called := false
	wrapped := s.requireUser(func(w http.ResponseWriter, r *http.Request) error {
		called = true
		return nil
	})

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/", nil), chirp.User{ID: "u1"})
	err := wrapped(httptest.NewRecorder(), req)
	require.NoError(t, err)

	assert.True(t, called)
}

func TestRequireNoUser(t *testing.T) {
	s, _ := newTestServer(t)

	called := false
	wrapped := s.requireNoUser(func(w http.ResponseWriter, r *http.Request) error {
		called = true
		return nil
	})

	// Authenticated requests bounce home.
	rec := httptest.NewRecorder()
	req := authedRequest(httptest.NewRequest(http.MethodGet, "/login", nil), chirp.User{ID: "u1"})
	require.NoError(t, wrapped(rec, req))
	assert.False(t, called)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	// Anonymous requests go through.
	require.NoError(t, wrapped(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/login", nil)))
	assert.True(t, called)
}

func TestUserExists_NotFound(t *testing.T) {
	s, _ := newTestServer(t)

	called := false
	wrapped := s.userExists(func(w http.ResponseWriter, r *http.Request) error {
		called = true
		return nil
	})

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/t/ghost", nil), map[string]string{"username": "ghost"})
	rec := httptest.NewRecorder()
	require.NoError(t, wrapped(rec, req))

	assert.False(t, called)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User Not Found", rec.Body.String())
}

func TestUserExists_ResolvesProfile(t *testing.T) {
	s, repo := newTestServer(t)

	usr := chirp.User{ID: "u1", Username: "alice", Email: "alice@example.com"}
	require.NoError(t, repo.InsertUser(context.Background(), usr))

	var gotProfile chirp.User
	wrapped := s.userExists(func(w http.ResponseWriter, r *http.Request) error {
		gotProfile = profileUser(r)
		return nil
	})

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/t/alice", nil), map[string]string{"username": "alice"})
	require.NoError(t, wrapped(httptest.NewRecorder(), req))

	assert.Equal(t, usr, gotProfile)
}

func TestMiddlewareComposition_OutermostCheckFirst(t *testing.T) {
	s, _ := newTestServer(t)

	called := false
	wrapped := s.requireUser(s.userExists(func(w http.ResponseWriter, r *http.Request) error {
		called = true
		return nil
	}))

	// Anonymous against an unknown user: the auth check short-circuits
	// before the existence check can 404.
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/t/ghost/follow", nil), map[string]string{"username": "ghost"})
	rec := httptest.NewRecorder()
	require.NoError(t, wrapped(rec, req))

	assert.False(t, called)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/public", rec.Header().Get("Location"))
}
