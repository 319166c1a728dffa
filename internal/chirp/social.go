package chirp

import "context"

// SocialGraph manages the directed follow edges between users.
//
// Nothing here guards against a user following themselves; the edge is
// tolerated. It only adds a duplicate author id to their own timeline
// filter, which is harmless.
type SocialGraph struct {
	repo FollowRepo
}

func NewSocialGraph(repo FollowRepo) SocialGraph {
	return SocialGraph{repo: repo}
}

// Follow creates the edge if absent. Re-following is a no-op, not an error.
func (g SocialGraph) Follow(ctx context.Context, followerID, followeeID string) error {
	return g.repo.CreateFollowEdge(ctx, followerID, followeeID)
}

// Unfollow removes the edge if present. Unfollowing a stranger is a no-op.
func (g SocialGraph) Unfollow(ctx context.Context, followerID, followeeID string) error {
	return g.repo.DeleteFollowEdge(ctx, followerID, followeeID)
}

// IsFollowing reports whether the follower has an edge to the followee.
// Absent or equal identities report false without touching the store.
func (g SocialGraph) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	if followerID == "" || followeeID == "" || followerID == followeeID {
		return false, nil
	}

	return g.repo.FollowEdgeExists(ctx, followerID, followeeID)
}
