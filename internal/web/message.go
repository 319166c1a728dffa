package web

import (
	"net/http"

	chirperrs "chirp/internal/errors"
)

func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return chirperrs.E(http.StatusNotImplemented)
	}
	usr, _ := viewer(r)

	if err := s.timelines.Post(r.Context(), usr.ID, r.PostForm.Get("text")); err != nil {
		return err
	}

	http.Redirect(w, r, "/", http.StatusFound)
	return nil
}
