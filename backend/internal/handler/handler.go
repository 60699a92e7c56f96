package handler

import (
	"context"

	"github.com/playto-dev/playto/backend/internal/service"
	"github.com/playto-dev/playto/shared/config"
)

// HealthChecker reports whether the database is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth        service.AuthService
	posts       service.PostService
	comments    service.CommentService
	votes       service.VoteService
	leaderboard service.LeaderboardService
	health      HealthChecker
	cfg         *config.Config
}

func New(
	auth service.AuthService,
	posts service.PostService,
	comments service.CommentService,
	votes service.VoteService,
	leaderboard service.LeaderboardService,
	health HealthChecker,
	cfg *config.Config,
) *Handler {
	return &Handler{
		auth:        auth,
		posts:       posts,
		comments:    comments,
		votes:       votes,
		leaderboard: leaderboard,
		health:      health,
		cfg:         cfg,
	}
}
