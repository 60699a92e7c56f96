// Package feed keeps client side snapshots of the feed, a post detail and the
// leaderboard in step with the API.
package feed

import (
	"context"
	"errors"

	"github.com/playto-dev/playto/shared/api"
	"github.com/playto-dev/playto/shared/domain"
)

// API is the subset of the api client the views need.
type API interface {
	ListPosts(ctx context.Context, token string) ([]domain.PostMetadata, error)
	GetPost(ctx context.Context, token string, id domain.PostId) (domain.Post, error)
	CreatePost(ctx context.Context, token string, content domain.Content) (domain.PostMetadata, error)
	CreateComment(ctx context.Context, token string, req api.CreateCommentRequest) (domain.Comment, error)
	ToggleVote(ctx context.Context, token string, kind domain.SubjectKind, id domain.SubjectId) (domain.VoteStatus, error)
}

// Viewer identifies who the snapshot is rendered for. The zero Viewer is
// anonymous.
type Viewer struct {
	Username domain.Username
	Token    string
}

func (v Viewer) Anonymous() bool { return v.Token == "" }

// ErrStaleResponse is returned by a refresh whose result was discarded
// because a newer refresh started or the viewer changed.
var ErrStaleResponse = errors.New("stale response discarded")

// generations hands out refresh tokens. Starting a refresh cancels the one in
// flight. Callers hold the owning view's mutex.
type generations struct {
	current uint64
	cancel  context.CancelFunc
}

func (g *generations) begin(parent context.Context) (context.Context, uint64) {
	if g.cancel != nil {
		g.cancel()
	}
	g.current++
	ctx, cancel := context.WithCancel(parent)
	g.cancel = cancel
	return ctx, g.current
}

// finish reports whether gen is still the latest and releases its context.
func (g *generations) finish(gen uint64) bool {
	if gen != g.current {
		return false
	}
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	return true
}

// applyStatus moves one subject's counters to match the server's answer. The
// count only changes when the flag flips and never drops below zero.
func applyStatus(likes *int, hasLiked *bool, status domain.VoteStatus) {
	switch status {
	case domain.VoteLiked:
		if !*hasLiked {
			*hasLiked = true
			*likes++
		}
	case domain.VoteUnliked:
		if *hasLiked {
			*hasLiked = false
			*likes = max(*likes-1, 0)
		}
	}
}
