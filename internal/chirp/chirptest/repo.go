// Package chirptest holds an in-memory [chirp.Repository] for tests.
package chirptest

import (
	"context"
	"sort"
	"sync"

	"chirp/internal/chirp"
)

var _ chirp.Repository = (*Repo)(nil)

// Repo keeps everything in maps and slices behind one mutex. Listing
// follows the same contract as the real store: pub_date descending, seq
// descending, flagged messages excluded.
type Repo struct {
	mu       sync.Mutex
	users    []chirp.User
	messages []chirp.Message
	follows  map[[2]string]bool
	sessions map[string]string
}

func New() *Repo {
	return &Repo{
		follows:  make(map[[2]string]bool),
		sessions: make(map[string]string),
	}
}

func (r *Repo) InsertUser(_ context.Context, usr chirp.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == usr.Username {
			return chirp.ErrConflict
		}
	}
	r.users = append(r.users, usr)

	return nil
}

func (r *Repo) UserByID(_ context.Context, id string) (chirp.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, usr := range r.users {
		if usr.ID == id {
			return usr, nil
		}
	}

	return chirp.User{}, chirp.ErrNotFound
}

func (r *Repo) UserByUsername(_ context.Context, username string) (chirp.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, usr := range r.users {
		if usr.Username == username {
			return usr, nil
		}
	}

	return chirp.User{}, chirp.ErrNotFound
}

// UserCount reports how many users have been persisted.
func (r *Repo) UserCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.users)
}

func (r *Repo) InsertMessage(_ context.Context, msg chirp.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg.Seq = int64(len(r.messages) + 1)
	r.messages = append(r.messages, msg)

	return nil
}

func (r *Repo) MessagesByAuthors(_ context.Context, authorIDs []string, limit uint64) ([]chirp.TimelineMessage, error) {
	members := make(map[string]bool, len(authorIDs))
	for _, id := range authorIDs {
		members[id] = true
	}

	return r.list(func(msg chirp.Message) bool { return members[msg.AuthorID] }, limit), nil
}

func (r *Repo) AllMessages(_ context.Context, limit uint64) ([]chirp.TimelineMessage, error) {
	return r.list(func(chirp.Message) bool { return true }, limit), nil
}

func (r *Repo) list(match func(chirp.Message) bool, limit uint64) []chirp.TimelineMessage {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []chirp.TimelineMessage
	for _, msg := range r.messages {
		if msg.Flagged || !match(msg) {
			continue
		}
		out = append(out, chirp.TimelineMessage{
			Message:    msg,
			AuthorName: r.username(msg.AuthorID),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PubDate.Equal(out[j].PubDate) {
			return out[i].PubDate.After(out[j].PubDate)
		}
		return out[i].Seq > out[j].Seq
	})
	if uint64(len(out)) > limit {
		out = out[:limit]
	}

	return out
}

// Callers hold the lock.
func (r *Repo) username(id string) string {
	for _, usr := range r.users {
		if usr.ID == id {
			return usr.Username
		}
	}

	return ""
}

func (r *Repo) CreateFollowEdge(_ context.Context, followerID, followeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.follows[[2]string{followerID, followeeID}] = true

	return nil
}

func (r *Repo) DeleteFollowEdge(_ context.Context, followerID, followeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.follows, [2]string{followerID, followeeID})

	return nil
}

func (r *Repo) FollowEdgeExists(_ context.Context, followerID, followeeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.follows[[2]string{followerID, followeeID}], nil
}

func (r *Repo) FolloweeIDs(_ context.Context, followerID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ids []string
	for edge := range r.follows {
		if edge[0] == followerID {
			ids = append(ids, edge[1])
		}
	}
	sort.Strings(ids)

	return ids, nil
}

// EdgeCount reports how many edges exist for the ordered pair. It can only
// ever be zero or one, which is exactly what tests assert.
func (r *Repo) EdgeCount(followerID, followeeID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.follows[[2]string{followerID, followeeID}] {
		return 1
	}

	return 0
}

func (r *Repo) InsertSession(_ context.Context, sess chirp.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[sess.Token] = sess.UserID

	return nil
}

func (r *Repo) DeleteSession(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, token)

	return nil
}

func (r *Repo) SessionUser(ctx context.Context, token string) (chirp.User, error) {
	r.mu.Lock()
	userID, ok := r.sessions[token]
	r.mu.Unlock()
	if !ok {
		return chirp.User{}, chirp.ErrNotFound
	}

	return r.UserByID(ctx, userID)
}

// SessionCount reports how many live sessions exist.
func (r *Repo) SessionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}
