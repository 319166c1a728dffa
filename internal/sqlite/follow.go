package sqlite

import (
	"context"
	"fmt"
)

// The follows table's primary key is the ordered pair, so create and
// delete are idempotent no matter how many concurrent duplicates race.

func (r Repo) CreateFollowEdge(ctx context.Context, followerID, followeeID string) error {
	const q = `INSERT OR IGNORE INTO follows (follower_id, followee_id) VALUES (?, ?);`

	if _, err := r.db.ExecContext(ctx, q, followerID, followeeID); err != nil {
		return fmt.Errorf("error creating follow edge: %w", err)
	}

	return nil
}

func (r Repo) DeleteFollowEdge(ctx context.Context, followerID, followeeID string) error {
	const q = `DELETE FROM follows WHERE follower_id = ? AND followee_id = ?;`

	if _, err := r.db.ExecContext(ctx, q, followerID, followeeID); err != nil {
		return fmt.Errorf("error deleting follow edge: %w", err)
	}

	return nil
}

func (r Repo) FollowEdgeExists(ctx context.Context, followerID, followeeID string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = ? AND followee_id = ?);`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, q, followerID, followeeID); err != nil {
		return false, fmt.Errorf("error checking follow edge: %w", err)
	}

	return exists, nil
}

func (r Repo) FolloweeIDs(ctx context.Context, followerID string) ([]string, error) {
	const q = `SELECT followee_id FROM follows WHERE follower_id = ? ORDER BY followee_id;`

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, q, followerID); err != nil {
		return nil, fmt.Errorf("error selecting followees: %w", err)
	}

	return ids, nil
}
