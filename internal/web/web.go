// Package web binds the HTTP surface: the route table, the session
// cookie, and the middleware that guards each route.
package web

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/securecookie"

	"chirp/internal/chirp"
	chirperrs "chirp/internal/errors"
)

type (
	// Server serves the site: timelines, profiles, and the account forms.
	Server struct {
		*http.Server

		repo      chirp.Repository
		auth      chirp.Auth
		social    chirp.SocialGraph
		timelines chirp.Timelines
		renderer  Renderer

		secureCookie *securecookie.SecureCookie
		httpsCookies bool // Whether or not HTTPS should be used for cookies
	}

	Config struct {
		Port           int
		CookieHashKey  []byte
		CookieBlockKey []byte
		HTTPSCookies   bool
	}

	// Renderer turns a view name and a data map into an HTML page.
	Renderer interface {
		Render(view string, data map[string]any) (string, error)
	}
)

// HandlerFuncE is a modified type of [http.HandlerFunc] that returns an error.
type HandlerFuncE func(w http.ResponseWriter, r *http.Request) error

func (f HandlerFuncE) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	err := f(w, r)
	if err == nil {
		return
	}

	// Either it's already a structured error, or coerce it to one
	cErr := &chirperrs.Error{}
	if !errors.As(err, &cErr) {
		slog.Error("handler error", "err", err)
		cErr = chirperrs.E(http.StatusInternalServerError, "internal server error")
	}

	w.WriteHeader(cErr.Status)
	if cErr.Err != nil {
		fmt.Fprintln(w, cErr.Err.Error())
	}
}

// errRouter is a newtype around a mux router that allows attaching handlers that return errors.
type errRouter struct {
	*mux.Router
}

func (r errRouter) HandleFuncE(path string, f HandlerFuncE) *mux.Route {
	return r.Handle(path, f)
}

func NewServer(config Config, repo chirp.Repository, renderer Renderer) *Server {
	r := errRouter{Router: mux.NewRouter()}

	// An empty block key would make securecookie reject every encode;
	// leaving it nil just disables encryption on top of the HMAC.
	var blockKey []byte
	if len(config.CookieBlockKey) > 0 {
		blockKey = config.CookieBlockKey
	}

	srvr := Server{
		repo:      repo,
		auth:      chirp.NewAuth(repo),
		social:    chirp.NewSocialGraph(repo),
		timelines: chirp.NewTimelines(repo),
		renderer:  renderer,

		secureCookie: securecookie.New(config.CookieHashKey, blockKey),
		httpsCookies: config.HTTPSCookies,

		Server: &http.Server{
			Addr:         fmt.Sprintf(":%d", config.Port),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			Handler:      handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(r),
		},
	}

	r.Use(accessLogMiddleware) // Log everything
	r.Use(srvr.sessionMiddleware)

	// The route table. Middleware wrap left-to-right: the outermost
	// check runs first.
	r.HandleFuncE("/", srvr.requireUser(srvr.getIndex)).Methods(http.MethodGet)
	r.HandleFuncE("/public", srvr.getPublicTimeline).Methods(http.MethodGet)
	r.HandleFuncE("/t/{username}/follow", srvr.requireUser(srvr.userExists(srvr.getFollow))).Methods(http.MethodGet)
	r.HandleFuncE("/t/{username}/unfollow", srvr.requireUser(srvr.userExists(srvr.getUnfollow))).Methods(http.MethodGet)
	r.HandleFuncE("/t/{username}", srvr.userExists(srvr.getUserTimeline)).Methods(http.MethodGet)
	r.HandleFuncE("/login", srvr.requireNoUser(srvr.getLoginForm)).Methods(http.MethodGet)
	r.HandleFuncE("/login", srvr.postLogin).Methods(http.MethodPost)
	r.HandleFuncE("/register", srvr.requireNoUser(srvr.getRegisterForm)).Methods(http.MethodGet)
	r.HandleFuncE("/register", srvr.postRegister).Methods(http.MethodPost)
	r.HandleFuncE("/message", srvr.requireUser(srvr.postMessage)).Methods(http.MethodPost)
	r.HandleFuncE("/logout", srvr.getLogout).Methods(http.MethodGet)

	slog.Debug("configured server", "port", config.Port)

	return &srvr
}

func (s *Server) renderHTML(w http.ResponseWriter, view string, data map[string]any) error {
	page, err := s.renderer.Render(view, data)
	if err != nil {
		return fmt.Errorf("error rendering view %q: %w", view, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = io.WriteString(w, page)

	return err
}
