package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"chirp/internal/chirp"
)

func (r Repo) InsertSession(ctx context.Context, sess chirp.Session) error {
	const q = `INSERT INTO sessions (token, user_id) VALUES (:token, :user_id);`

	if _, err := r.db.NamedExecContext(ctx, q, sess); err != nil {
		return fmt.Errorf("error inserting session: %w", err)
	}

	return nil
}

func (r Repo) DeleteSession(ctx context.Context, token string) error {
	const q = `DELETE FROM sessions WHERE token = ?;`

	if _, err := r.db.ExecContext(ctx, q, token); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}

	return nil
}

func (r Repo) SessionUser(ctx context.Context, token string) (chirp.User, error) {
	const q = `SELECT u.* FROM users u
	INNER JOIN sessions s ON s.user_id = u.id
	WHERE s.token = ?;`

	var usr chirp.User
	err := r.db.GetContext(ctx, &usr, q, token)
	if errors.Is(err, sql.ErrNoRows) {
		return chirp.User{}, chirp.ErrNotFound
	}
	if err != nil {
		return chirp.User{}, fmt.Errorf("error resolving session: %w", err)
	}

	return usr, nil
}
