package web

import (
	"errors"
	"log/slog"
	"net/http"
)

const sessionCookieName = "chirp_session"

// The cookie carries only the securecookie-encoded opaque token; the
// identity behind it lives in the session store.

// sessionToken extracts the token tied to the request, or "" for an
// anonymous request. Garbage cookies count as anonymous.
func (s *Server) sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if errors.Is(err, http.ErrNoCookie) {
		return ""
	}
	if err != nil {
		slog.Error("error fetching cookie", "err", err)
		return ""
	}

	var token string
	if err := s.secureCookie.Decode(sessionCookieName, cookie.Value, &token); err != nil {
		slog.Error("error decoding cookie", "err", err)
		return ""
	}

	return token
}

// setSessionCookie sets the token on the response; an empty token clears
// the cookie.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	if token == "" {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Secure:   s.httpsCookies,
			HttpOnly: true,
		})
		return
	}

	encoded, err := s.secureCookie.Encode(sessionCookieName, token)
	if err != nil {
		slog.Error("error encoding cookie", "err", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    encoded,
		Path:     "/",
		Secure:   s.httpsCookies,
		HttpOnly: true,
	})
}
