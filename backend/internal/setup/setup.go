package setup

import (
	"context"
	"time"

	"github.com/playto-dev/playto/backend/internal/handler"
	"github.com/playto-dev/playto/backend/internal/service"
	"github.com/playto-dev/playto/backend/internal/storage/pg"
	"github.com/playto-dev/playto/shared/config"
	"github.com/playto-dev/playto/shared/jwt"
	"github.com/playto-dev/playto/shared/logger"
	mw "github.com/playto-dev/playto/shared/middleware"
	rl "github.com/playto-dev/playto/shared/middleware/ratelimiter"
	"github.com/playto-dev/playto/shared/textproc"
)

// RateLimiters are shared between the router and the cleanup loop.
type RateLimiters struct {
	Login   *rl.UserRateLimiter // per IP
	Content *rl.UserRateLimiter // posts and comments, per user
	Votes   *rl.UserRateLimiter // per user
}

func NewRateLimiters() RateLimiters {
	return RateLimiters{
		Login:   rl.OnceInSecond(),
		Content: rl.New(1, 5, time.Hour),
		Votes:   rl.Rps10(),
	}
}

func (l RateLimiters) all() []*rl.UserRateLimiter {
	return []*rl.UserRateLimiter{l.Login, l.Content, l.Votes}
}

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Handler        *handler.Handler
	Jwt            jwt.JwtService
	AuthMiddleware *mw.Auth
	Auth           *service.Auth
	Leaderboard    *service.Leaderboard
	Limiters       RateLimiters
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tokens := jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	text := textproc.New()
	maxLen := cfg.Public.MaxContentLength

	leaderboard := service.NewLeaderboard(storage, service.LeaderboardConfigFrom(&cfg.Public), time.Now)
	auth := service.NewAuth(storage, tokens)
	posts := service.NewPost(storage, text, maxLen)
	comments := service.NewComment(storage, text, maxLen)
	votes := service.NewVote(storage, leaderboard)

	h := handler.New(auth, posts, comments, votes, leaderboard, storage, cfg)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Handler:        h,
		Jwt:            tokens,
		AuthMiddleware: mw.NewAuth(tokens),
		Auth:           auth,
		Leaderboard:    leaderboard,
		Limiters:       NewRateLimiters(),
	}, nil
}

// StartBackground runs the periodic tasks until ctx is cancelled.
func (d *Dependencies) StartBackground(ctx context.Context) {
	for _, limiter := range d.Limiters.all() {
		limiter.StartBackgroundCleanup(ctx, 10*time.Minute)
	}
	if d.Config.Public.LeaderboardCacheTTL > 0 {
		d.Leaderboard.StartBackgroundRefresh(ctx, d.Config.Public.LeaderboardCacheTTL)
	}
	logger.Log.Info("background tasks started", "component", "setup")
}

func (d *Dependencies) Cleanup() {
	if err := d.Storage.Cleanup(); err != nil {
		logger.Log.Error("failed to close storage", "component", "setup", "error", err)
	}
}
