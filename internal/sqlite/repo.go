// Package sqlite implements the persistence surface over a sqlite
// database via sqlx.
package sqlite

import (
	"strings"

	"github.com/jmoiron/sqlx"

	"chirp/internal/chirp"
)

// Ensure Repo implements the full persistence surface.
var _ chirp.Repository = (*Repo)(nil)

type Repo struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) Repo {
	return Repo{db: db}
}

// The modernc driver surfaces constraint failures as plain errors; the
// message text is the only stable thing to match on.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
