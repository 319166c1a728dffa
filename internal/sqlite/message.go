package sqlite

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"chirp/internal/chirp"
)

func (r Repo) InsertMessage(ctx context.Context, msg chirp.Message) error {
	const q = `INSERT INTO messages (id, author_id, body, flagged, pub_date)
	VALUES (:id, :author_id, :body, :flagged, :pub_date);`

	if _, err := r.db.NamedExecContext(ctx, q, msg); err != nil {
		return fmt.Errorf("error inserting message: %w", err)
	}

	return nil
}

// Every listing shares the same shape: join the author for display, hide
// flagged messages, newest first with seq as the tie-break.
func messageSelect(limit uint64) sq.SelectBuilder {
	return sq.Select(
		"m.seq",
		"m.id",
		"m.author_id",
		"m.body",
		"m.flagged",
		"m.pub_date",
		"u.username AS author_name",
	).
		From("messages m").
		Join("users u ON u.id = m.author_id").
		Where(sq.Eq{"m.flagged": false}).
		OrderBy("m.pub_date DESC", "m.seq DESC").
		Limit(limit)
}

func (r Repo) MessagesByAuthors(ctx context.Context, authorIDs []string, limit uint64) ([]chirp.TimelineMessage, error) {
	query, args, err := messageSelect(limit).Where(sq.Eq{"m.author_id": authorIDs}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error generating SQL query: %w", err)
	}

	var msgs []chirp.TimelineMessage
	if err := r.db.SelectContext(ctx, &msgs, query, args...); err != nil {
		return nil, fmt.Errorf("error selecting messages by authors: %w", err)
	}

	return msgs, nil
}

func (r Repo) AllMessages(ctx context.Context, limit uint64) ([]chirp.TimelineMessage, error) {
	query, args, err := messageSelect(limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error generating SQL query: %w", err)
	}

	var msgs []chirp.TimelineMessage
	if err := r.db.SelectContext(ctx, &msgs, query, args...); err != nil {
		return nil, fmt.Errorf("error selecting messages: %w", err)
	}

	return msgs, nil
}
