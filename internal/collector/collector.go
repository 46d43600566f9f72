// Package collector turns a Reddit profile URL into a ProfileSnapshot:
// resolve the username, verify the account, then fetch capped slices of
// recent posts and comments.
package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/joanteresajose/reddit-persona/internal/persona"
)

const (
	// DefaultPostLimit and DefaultCommentLimit cap how much content one
	// extraction pulls from the profile.
	DefaultPostLimit    = 50
	DefaultCommentLimit = 100
)

var (
	// ErrInvalidProfileURL means the input does not look like a Reddit
	// user profile URL. Never retried.
	ErrInvalidProfileURL = errors.New("invalid reddit user URL format, expected https://www.reddit.com/user/username/")
	// ErrUserNotFound means the username does not resolve to an active
	// account.
	ErrUserNotFound = errors.New("reddit user not found or suspended")
	// ErrNoContent means both the post and the comment fetch came back
	// empty, so there is nothing to analyze.
	ErrNoContent = errors.New("no posts or comments found")
)

// ContentSource is the Reddit read surface the collector depends on.
// Implemented by reddit.Client; stubbed in tests.
type ContentSource interface {
	UserExists(ctx context.Context, username string) (bool, error)
	FetchPosts(ctx context.Context, username string, limit int) ([]persona.ContentItem, error)
	FetchComments(ctx context.Context, username string, limit int) ([]persona.ContentItem, error)
}

// Collector gathers profile content. Each extraction constructs or
// borrows a Collector with no mutable state of its own, so concurrent
// extractions are independent.
type Collector struct {
	source       ContentSource
	postLimit    int
	commentLimit int
}

func New(source ContentSource) *Collector {
	return &Collector{
		source:       source,
		postLimit:    DefaultPostLimit,
		commentLimit: DefaultCommentLimit,
	}
}

// ExtractUsername resolves a profile URL of the shape
// https://www.reddit.com/user/<name>/ to the username.
func ExtractUsername(profileURL string) (string, error) {
	parsed, err := url.Parse(profileURL)
	if err != nil {
		return "", ErrInvalidProfileURL
	}
	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) < 2 || parts[0] != "user" || parts[1] == "" {
		return "", ErrInvalidProfileURL
	}
	return parts[1], nil
}

// Collect fetches up to the configured caps of recent posts and comments
// for the profile behind profileURL. The two sub-collections degrade
// independently: a failure fetching one is logged and swallowed as long
// as the other yields content.
func (c *Collector) Collect(ctx context.Context, profileURL string) (persona.ProfileSnapshot, error) {
	username, err := ExtractUsername(profileURL)
	if err != nil {
		return persona.ProfileSnapshot{}, err
	}

	exists, err := c.source.UserExists(ctx, username)
	if err != nil {
		return persona.ProfileSnapshot{}, fmt.Errorf("%w: %s (%v)", ErrUserNotFound, username, err)
	}
	if !exists {
		return persona.ProfileSnapshot{}, fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}

	posts, err := c.source.FetchPosts(ctx, username, c.postLimit)
	if err != nil {
		slog.Warn("failed to fetch posts, continuing with comments only",
			"username", username, "error", err)
		posts = nil
	}

	comments, err := c.source.FetchComments(ctx, username, c.commentLimit)
	if err != nil {
		slog.Warn("failed to fetch comments, continuing with posts only",
			"username", username, "error", err)
		comments = nil
	}

	if len(posts) == 0 && len(comments) == 0 {
		return persona.ProfileSnapshot{}, fmt.Errorf("%w for user %s", ErrNoContent, username)
	}

	items := make([]persona.ContentItem, 0, len(posts)+len(comments))
	items = append(items, posts...)
	items = append(items, comments...)

	return persona.ProfileSnapshot{
		Username:      username,
		Items:         items,
		TotalPosts:    len(posts),
		TotalComments: len(comments),
	}, nil
}
