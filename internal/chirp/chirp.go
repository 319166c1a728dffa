package chirp

import (
	"context"
	"errors"
	"time"
)

var (
	ErrConflict = errors.New("resource already exists")
	ErrNotFound = errors.New("resource not found")
)

type (
	// User is a registered account. Users are immutable once created.
	User struct {
		ID        string    `db:"id"`
		Username  string    `db:"username"`
		Email     string    `db:"email"`
		PwHash    string    `db:"pw_hash"`
		CreatedAt time.Time `db:"created_at"`
	}

	// Message is a single post. Seq is assigned by the store in insert
	// order and breaks ties between messages with the same PubDate.
	Message struct {
		Seq      int64     `db:"seq"`
		ID       string    `db:"id"`
		AuthorID string    `db:"author_id"`
		Body     string    `db:"body"`
		Flagged  bool      `db:"flagged"`
		PubDate  time.Time `db:"pub_date"`
	}

	// TimelineMessage is a message joined with its author's public
	// identity for display.
	TimelineMessage struct {
		Message

		AuthorName string `db:"author_name"`
	}

	// Session maps an opaque token to an authenticated user. The token is
	// the only thing that leaves the server.
	Session struct {
		Token     string    `db:"token"`
		UserID    string    `db:"user_id"`
		CreatedAt time.Time `db:"created_at"`
	}

	UserRepo interface {
		// InsertUser persists a new user. Returns [ErrConflict] when the
		// username is already taken.
		InsertUser(ctx context.Context, usr User) error
		UserByID(ctx context.Context, id string) (User, error)
		// UserByUsername does a case-sensitive exact match.
		UserByUsername(ctx context.Context, username string) (User, error)
	}

	// MessageRepo lists messages newest first: pub_date descending, then
	// seq descending, flagged messages excluded.
	MessageRepo interface {
		InsertMessage(ctx context.Context, msg Message) error
		MessagesByAuthors(ctx context.Context, authorIDs []string, limit uint64) ([]TimelineMessage, error)
		AllMessages(ctx context.Context, limit uint64) ([]TimelineMessage, error)
	}

	// FollowRepo manages directed follow edges. The store holds at most
	// one edge per ordered pair, so creates and deletes are idempotent
	// even under concurrent duplicates.
	FollowRepo interface {
		CreateFollowEdge(ctx context.Context, followerID, followeeID string) error
		DeleteFollowEdge(ctx context.Context, followerID, followeeID string) error
		FollowEdgeExists(ctx context.Context, followerID, followeeID string) (bool, error)
		FolloweeIDs(ctx context.Context, followerID string) ([]string, error)
	}

	SessionRepo interface {
		InsertSession(ctx context.Context, sess Session) error
		// DeleteSession is a no-op for unknown tokens.
		DeleteSession(ctx context.Context, token string) error
		// SessionUser resolves a token to its user. Returns [ErrNotFound]
		// for dead tokens.
		SessionUser(ctx context.Context, token string) (User, error)
	}

	// Repository is the full persistence surface the services depend on.
	Repository interface {
		UserRepo
		MessageRepo
		FollowRepo
		SessionRepo
	}
)
