package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"chirp/internal/chirp"
	"chirp/logger"
)

type contextKey string

const (
	viewerKey  contextKey = "viewer"
	profileKey contextKey = "profile"
)

func accessLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Info("request received", "method", r.Method, "path", r.URL.Path)
		start := time.Now()

		writer := &respCodeWriter{ResponseWriter: w}
		next.ServeHTTP(writer, r)

		slog.Info("request completed",
			"method", r.Method,
			"url", r.URL.String(),
			"duration", time.Since(start),
			"status_code", writer.code,
		)
	})
}

// To trap the response status code for logging later.
type respCodeWriter struct {
	http.ResponseWriter
	code int
}

func (w *respCodeWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// sessionMiddleware resolves the request's session cookie to its user, if
// any, and attaches it to the context. Dead or missing tokens leave the
// request anonymous; the guards below only ever read the context.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := s.sessionToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		usr, err := s.auth.SessionUser(r.Context(), token)
		if err != nil {
			if !errors.Is(err, chirp.ErrNotFound) {
				slog.Error("error resolving session", "err", err)
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), viewerKey, usr)
		ctx = logger.Attach(ctx, slog.String("user", usr.Username))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// viewer returns the authenticated user attached to the request, if any.
func viewer(r *http.Request) (chirp.User, bool) {
	usr, ok := r.Context().Value(viewerKey).(chirp.User)
	return usr, ok
}

// profileUser returns the user resolved by the userExists middleware.
func profileUser(r *http.Request) chirp.User {
	usr, _ := r.Context().Value(profileKey).(chirp.User)
	return usr
}

// requireUser short-circuits anonymous requests with a redirect to the
// public timeline.
func (s *Server) requireUser(next HandlerFuncE) HandlerFuncE {
	return func(w http.ResponseWriter, r *http.Request) error {
		if _, ok := viewer(r); !ok {
			http.Redirect(w, r, "/public", http.StatusFound)
			return nil
		}

		return next(w, r)
	}
}

// requireNoUser short-circuits authenticated requests with a redirect home.
func (s *Server) requireNoUser(next HandlerFuncE) HandlerFuncE {
	return func(w http.ResponseWriter, r *http.Request) error {
		if _, ok := viewer(r); ok {
			http.Redirect(w, r, "/", http.StatusFound)
			return nil
		}

		return next(w, r)
	}
}

// userExists resolves the {username} path variable and 404s when no such
// user is registered. The resolved user rides along on the context.
func (s *Server) userExists(next HandlerFuncE) HandlerFuncE {
	return func(w http.ResponseWriter, r *http.Request) error {
		username := mux.Vars(r)["username"]

		usr, err := s.repo.UserByUsername(r.Context(), username)
		if errors.Is(err, chirp.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, "User Not Found")
			return nil
		}
		if err != nil {
			return err
		}

		return next(w, r.WithContext(context.WithValue(r.Context(), profileKey, usr)))
	}
}
