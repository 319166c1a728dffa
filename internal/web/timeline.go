package web

import "net/http"

func (s *Server) getIndex(w http.ResponseWriter, r *http.Request) error {
	usr, _ := viewer(r)

	messages, err := s.timelines.Personal(r.Context(), usr.ID)
	if err != nil {
		return err
	}

	return s.renderHTML(w, "timeline", map[string]any{
		"pageTitle": "Timeline",
		"user":      usr,
		"messages":  messages,
	})
}

func (s *Server) getPublicTimeline(w http.ResponseWriter, r *http.Request) error {
	messages, err := s.timelines.Public(r.Context())
	if err != nil {
		return err
	}

	data := map[string]any{
		"pageTitle": "Public Timeline",
		"messages":  messages,
	}
	if usr, ok := viewer(r); ok {
		data["user"] = usr
	}

	return s.renderHTML(w, "timeline", data)
}

func (s *Server) getUserTimeline(w http.ResponseWriter, r *http.Request) error {
	var (
		ctx     = r.Context()
		profile = profileUser(r)
	)

	// Whether the viewer follows the profile only feeds the view's
	// follow/unfollow link; it never filters the messages.
	followed := false
	usr, authed := viewer(r)
	if authed {
		var err error
		followed, err = s.social.IsFollowing(ctx, usr.ID, profile.ID)
		if err != nil {
			return err
		}
	}

	messages, err := s.timelines.Profile(ctx, profile.ID)
	if err != nil {
		return err
	}

	data := map[string]any{
		"pageTitle":   profile.Username + "'s Timeline",
		"profileUser": profile,
		"followed":    followed,
		"messages":    messages,
	}
	if authed {
		data["user"] = usr
	}

	return s.renderHTML(w, "timeline", data)
}
