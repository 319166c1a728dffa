package web

import (
	"net/http"

	"chirp/internal/chirp"
	chirperrs "chirp/internal/errors"
)

func (s *Server) getLoginForm(w http.ResponseWriter, r *http.Request) error {
	data := map[string]any{
		"pageTitle": "Sign In",
		"username":  "",
	}
	if r.URL.Query().Has("r") {
		data["message"] = "You were successfully registered and can login now"
	}

	return s.renderHTML(w, "login", data)
}

func (s *Server) postLogin(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return chirperrs.E(http.StatusNotImplemented)
	}
	username := r.PostForm.Get("username")

	result, err := s.auth.Login(r.Context(), username, r.PostForm.Get("password"))
	if err != nil {
		return err
	}

	if result.User != nil {
		token, err := s.auth.StartSession(r.Context(), result.User.ID)
		if err != nil {
			return err
		}
		s.setSessionCookie(w, token)
		http.Redirect(w, r, "/", http.StatusFound)
		return nil
	}

	return s.renderHTML(w, "login", map[string]any{
		"pageTitle": "Sign In",
		"error":     result.Error,
		"username":  username,
	})
}

func (s *Server) getRegisterForm(w http.ResponseWriter, r *http.Request) error {
	return s.renderHTML(w, "register", map[string]any{
		"pageTitle": "Sign Up",
		"username":  "",
		"email":     "",
	})
}

func (s *Server) postRegister(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return chirperrs.E(http.StatusNotImplemented)
	}

	reg := chirp.Registration{
		Username:  r.PostForm.Get("username"),
		Email:     r.PostForm.Get("email"),
		Password:  r.PostForm.Get("password"),
		Password2: r.PostForm.Get("password2"),
	}

	msg, err := s.auth.Register(r.Context(), reg)
	if err != nil {
		return err
	}
	if msg == "" {
		http.Redirect(w, r, "/login?r=1", http.StatusFound)
		return nil
	}

	return s.renderHTML(w, "register", map[string]any{
		"pageTitle": "Sign Up",
		"error":     msg,
		"username":  reg.Username,
		"email":     reg.Email,
	})
}

func (s *Server) getLogout(w http.ResponseWriter, r *http.Request) error {
	if token := s.sessionToken(r); token != "" {
		if err := s.auth.EndSession(r.Context(), token); err != nil {
			return err
		}
	}
	s.setSessionCookie(w, "")

	http.Redirect(w, r, "/public", http.StatusFound)
	return nil
}
