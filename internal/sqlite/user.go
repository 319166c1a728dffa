package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"chirp/internal/chirp"
)

func (r Repo) InsertUser(ctx context.Context, usr chirp.User) error {
	const q = `INSERT INTO users (id, username, email, pw_hash)
	VALUES (:id, :username, :email, :pw_hash);`

	if _, err := r.db.NamedExecContext(ctx, q, usr); err != nil {
		if isUniqueViolation(err) {
			return chirp.ErrConflict
		}
		return fmt.Errorf("error inserting user: %w", err)
	}

	return nil
}

func (r Repo) UserByID(ctx context.Context, id string) (chirp.User, error) {
	const q = `SELECT * FROM users WHERE id = ?;`

	var usr chirp.User
	err := r.db.GetContext(ctx, &usr, q, id)
	if errors.Is(err, sql.ErrNoRows) {
		return chirp.User{}, chirp.ErrNotFound
	}
	if err != nil {
		return chirp.User{}, fmt.Errorf("error selecting user: %w", err)
	}

	return usr, nil
}

func (r Repo) UserByUsername(ctx context.Context, username string) (chirp.User, error) {
	const q = `SELECT * FROM users WHERE username = ?;`

	var usr chirp.User
	err := r.db.GetContext(ctx, &usr, q, username)
	if errors.Is(err, sql.ErrNoRows) {
		return chirp.User{}, chirp.ErrNotFound
	}
	if err != nil {
		return chirp.User{}, fmt.Errorf("error selecting user: %w", err)
	}

	return usr, nil
}
