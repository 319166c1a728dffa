package web

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteTable(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		method     string
		path       string
		wantStatus int
	}{
		{http.MethodGet, "/", http.StatusFound},    // anonymous → /public
		{http.MethodGet, "/public", http.StatusOK}, // no guard
		{http.MethodGet, "/login", http.StatusOK},
		{http.MethodGet, "/register", http.StatusOK},
		{http.MethodGet, "/logout", http.StatusFound},
		{http.MethodGet, "/t/ghost", http.StatusNotFound},          // userExists
		{http.MethodGet, "/t/ghost/follow", http.StatusFound},      // requireUser runs first
		{http.MethodGet, "/t/ghost/unfollow", http.StatusFound},    // requireUser runs first
		{http.MethodPost, "/message", http.StatusFound},            // requireUser
		{http.MethodGet, "/message", http.StatusMethodNotAllowed},  // POST-only
		{http.MethodPost, "/public", http.StatusMethodNotAllowed},  // GET-only
		{http.MethodGet, "/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.Server.Handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestPostLogin_MalformedBody(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("username=%zz"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	assert.Empty(t, rec.Body.String())
}

// A body with an apostrophe and an ampersand must render with exactly one
// round of HTML escaping, so the browser shows it as typed.
func TestPostMessage_BodyEscapedOnce(t *testing.T) {
	s, _ := newTestServer(t)
	srv := httptest.NewServer(s.Server.Handler)
	defer srv.Close()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	_, err = client.PostForm(srv.URL+"/register", url.Values{
		"username": {"alice"}, "email": {"alice@example.com"},
		"password": {"pw1"}, "password2": {"pw1"},
	})
	require.NoError(t, err)
	_, err = client.PostForm(srv.URL+"/login", url.Values{"username": {"alice"}, "password": {"pw1"}})
	require.NoError(t, err)

	_, err = client.PostForm(srv.URL+"/message", url.Values{"text": {"don't worry & be happy"}})
	require.NoError(t, err)

	resp, err := client.Get(srv.URL + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Contains(t, string(body), "don&#39;t worry &amp; be happy")
	assert.NotContains(t, string(body), "&amp;#39;")
	assert.NotContains(t, string(body), "&amp;amp;")
}

// Walks the whole surface end to end through real requests: register two
// users, post as one, follow and unfollow from the other.
func TestScenario_RegisterLoginPostFollow(t *testing.T) {
	s, _ := newTestServer(t)
	srv := httptest.NewServer(s.Server.Handler)
	defer srv.Close()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		// Redirects are assertions here, not plumbing.
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	postForm := func(t *testing.T, path string, form url.Values) (*http.Response, string) {
		t.Helper()
		resp, err := client.PostForm(srv.URL+path, form)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		resp.Body.Close()
		return resp, string(body)
	}
	get := func(t *testing.T, path string) (*http.Response, string) {
		t.Helper()
		resp, err := client.Get(srv.URL + path)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		resp.Body.Close()
		return resp, string(body)
	}

	// Register alice.
	resp, _ := postForm(t, "/register", url.Values{
		"username": {"alice"}, "email": {"alice@example.com"},
		"password": {"pw1"}, "password2": {"pw1"},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?r=1", resp.Header.Get("Location"))

	// Registering the same name again re-renders the form.
	resp, body := postForm(t, "/register", url.Values{
		"username": {"alice"}, "email": {"alice@example.com"},
		"password": {"pw1"}, "password2": {"pw1"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "The username is already taken")

	// The login form acknowledges the registration.
	resp, body = get(t, "/login?r=1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "You were successfully registered and can login now")

	// Wrong password re-renders, no session.
	resp, body = postForm(t, "/login", url.Values{"username": {"alice"}, "password": {"wrong"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Invalid password")

	// Real login lands on the personal timeline.
	resp, _ = postForm(t, "/login", url.Values{"username": {"alice"}, "password": {"pw1"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	// Post a message and see it on the personal timeline.
	resp, _ = postForm(t, "/message", url.Values{"text": {"hello from alice"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	resp, body = get(t, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "hello from alice")

	// Sign out; the personal timeline is gated again.
	resp, _ = get(t, "/logout")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/public", resp.Header.Get("Location"))
	resp, _ = get(t, "/")
	require.Equal(t, http.StatusFound, resp.StatusCode)

	// Bob signs up and follows alice.
	resp, _ = postForm(t, "/register", url.Values{
		"username": {"bob"}, "email": {"bob@example.com"},
		"password": {"pw2"}, "password2": {"pw2"},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	resp, _ = postForm(t, "/login", url.Values{"username": {"bob"}, "password": {"pw2"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)

	resp, _ = get(t, "/t/alice/follow")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/t/alice", resp.Header.Get("Location"))

	// Alice's posts now reach bob's personal timeline, and her profile
	// offers the unfollow link.
	resp, body = get(t, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "hello from alice")
	resp, body = get(t, "/t/alice")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Unfollow user")

	// And unfollowing takes them back out.
	resp, _ = get(t, "/t/alice/unfollow")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	resp, body = get(t, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, "hello from alice")
}
