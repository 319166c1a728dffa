package chirp

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	goaway "github.com/TwiN/go-away"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

// timelineWindow is the fixed number of recent messages every view shows.
const timelineWindow = 30

// maxMessageRunes bounds a message body.
const maxMessageRunes = 140

var stripPolicy = bluemonday.StrictPolicy()

// Timelines computes the three timeline views and accepts new posts.
type Timelines struct {
	repo Repository
}

func NewTimelines(repo Repository) Timelines {
	return Timelines{repo: repo}
}

// Personal returns the newest messages authored by the user or anyone they
// follow. The author set is resolved once and handed to the store as a
// single batched filter rather than a lookup per followee.
func (t Timelines) Personal(ctx context.Context, userID string) ([]TimelineMessage, error) {
	followees, err := t.repo.FolloweeIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error resolving followees: %w", err)
	}

	authors := append([]string{userID}, followees...)

	return t.repo.MessagesByAuthors(ctx, authors, timelineWindow)
}

// Profile returns the newest messages authored by a single user. Whether
// the viewer follows them plays no part here.
func (t Timelines) Profile(ctx context.Context, userID string) ([]TimelineMessage, error) {
	return t.repo.MessagesByAuthors(ctx, []string{userID}, timelineWindow)
}

// Public returns the newest messages across every user.
func (t Timelines) Public(ctx context.Context) ([]TimelineMessage, error) {
	return t.repo.AllMessages(ctx, timelineWindow)
}

// Post stores a new message for the author. Bodies are stripped of any
// markup and bounded; a body that is empty after trimming is dropped
// without error. Messages that trip the profanity screen are stored
// flagged and never surface in a timeline.
func (t Timelines) Post(ctx context.Context, authorID, body string) error {
	// The strip policy entity-escapes what survives; undo that so the body
	// is stored as plain text and escaping happens exactly once, at render.
	body = strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(body)))
	if body == "" {
		return nil
	}
	if utf8.RuneCountInString(body) > maxMessageRunes {
		body = string([]rune(body)[:maxMessageRunes])
	}

	return t.repo.InsertMessage(ctx, Message{
		ID:       uuid.NewString(),
		AuthorID: authorID,
		Body:     body,
		Flagged:  goaway.IsProfane(body),
		PubDate:  time.Now().UTC(),
	})
}
