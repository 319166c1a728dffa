package web

import "net/http"

func (s *Server) getFollow(w http.ResponseWriter, r *http.Request) error {
	var (
		usr, _  = viewer(r)
		profile = profileUser(r)
	)

	if err := s.social.Follow(r.Context(), usr.ID, profile.ID); err != nil {
		return err
	}

	http.Redirect(w, r, "/t/"+profile.Username, http.StatusFound)
	return nil
}

func (s *Server) getUnfollow(w http.ResponseWriter, r *http.Request) error {
	var (
		usr, _  = viewer(r)
		profile = profileUser(r)
	)

	if err := s.social.Unfollow(r.Context(), usr.ID, profile.ID); err != nil {
		return err
	}

	http.Redirect(w, r, "/t/"+profile.Username, http.StatusFound)
	return nil
}
