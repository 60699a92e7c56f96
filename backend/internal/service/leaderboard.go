package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/playto-dev/playto/shared/config"
	"github.com/playto-dev/playto/shared/domain"
	"github.com/playto-dev/playto/shared/logger"
	"golang.org/x/sync/singleflight"
)

type LeaderboardService interface {
	Top(ctx context.Context) ([]domain.LeaderboardEntry, error)
	ComputeTop(ctx context.Context, n int, window time.Duration) ([]domain.LeaderboardEntry, error)
}

type LeaderboardStorage interface {
	VoteTallies(ctx context.Context, since, until time.Time) ([]domain.AuthorTally, error)
}

type LeaderboardConfig struct {
	Size          int
	Window        time.Duration
	CacheTTL      time.Duration // 0 disables caching
	PostWeight    int
	CommentWeight int
}

func LeaderboardConfigFrom(cfg *config.Public) LeaderboardConfig {
	return LeaderboardConfig{
		Size:          cfg.LeaderboardSize,
		Window:        cfg.LeaderboardWindow,
		CacheTTL:      cfg.LeaderboardCacheTTL,
		PostWeight:    cfg.PostVoteWeight,
		CommentWeight: cfg.CommentVoteWeight,
	}
}

// Leaderboard ranks authors by weighted votes received inside a trailing
// window. Results of Top are cached until the TTL passes or a vote toggles.
type Leaderboard struct {
	storage LeaderboardStorage
	cfg     LeaderboardConfig
	now     func() time.Time

	cache *expirable.LRU[string, []domain.LeaderboardEntry]
	group singleflight.Group
	gen   atomic.Uint64 // bumped by Invalidate
}

func NewLeaderboard(storage LeaderboardStorage, cfg LeaderboardConfig, now func() time.Time) *Leaderboard {
	if now == nil {
		now = time.Now
	}
	l := &Leaderboard{storage: storage, cfg: cfg, now: now}
	if cfg.CacheTTL > 0 {
		l.cache = expirable.NewLRU[string, []domain.LeaderboardEntry](8, nil, cfg.CacheTTL)
	}
	return l
}

// ComputeTop is deterministic for a fixed clock and store contents.
func (l *Leaderboard) ComputeTop(ctx context.Context, n int, window time.Duration) ([]domain.LeaderboardEntry, error) {
	if n <= 0 || window <= 0 {
		return []domain.LeaderboardEntry{}, nil
	}
	start := time.Now()
	defer func() { leaderboardComputeSeconds.Observe(time.Since(start).Seconds()) }()

	until := l.now()
	tallies, err := l.storage.VoteTallies(ctx, until.Add(-window), until)
	if err != nil {
		return nil, fmt.Errorf("failed to tally votes: %w", err)
	}
	return rankTallies(tallies, l.cfg.PostWeight, l.cfg.CommentWeight, n), nil
}

func rankTallies(tallies []domain.AuthorTally, postWeight, commentWeight, n int) []domain.LeaderboardEntry {
	entries := make([]domain.LeaderboardEntry, 0, len(tallies))
	for _, t := range tallies {
		score := t.PostVotes*postWeight + t.CommentVotes*commentWeight
		if score <= 0 {
			continue
		}
		entries = append(entries, domain.LeaderboardEntry{Username: t.Username, Score: score})
	}
	slices.SortFunc(entries, func(a, b domain.LeaderboardEntry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Username, b.Username)
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

func (l *Leaderboard) cacheKey() string {
	return fmt.Sprintf("%d/%s", l.cfg.Size, l.cfg.Window)
}

// Top serves the configured leaderboard. Concurrent misses share one query.
func (l *Leaderboard) Top(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	key := l.cacheKey()
	if l.cache != nil {
		if entries, ok := l.cache.Get(key); ok {
			return slices.Clone(entries), nil
		}
	}

	// the shared computation must outlive whichever caller started it
	shared := context.WithoutCancel(ctx)
	ch := l.group.DoChan(key, func() (any, error) {
		gen := l.gen.Load()
		entries, err := l.ComputeTop(shared, l.cfg.Size, l.cfg.Window)
		if err != nil {
			return nil, err
		}
		// a toggle during the computation makes the result stale
		if l.cache != nil && l.gen.Load() == gen {
			l.cache.Add(key, entries)
		}
		return entries, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return slices.Clone(res.Val.([]domain.LeaderboardEntry)), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Invalidate drops the cached leaderboard.
func (l *Leaderboard) Invalidate() {
	l.gen.Add(1)
	if l.cache != nil {
		l.cache.Purge()
	}
}

// StartBackgroundRefresh recomputes the leaderboard every interval so the
// window keeps sliding even without new votes.
func (l *Leaderboard) StartBackgroundRefresh(ctx context.Context, interval time.Duration) {
	log := logger.Component("leaderboard")
	log.Info("started background refresh", "interval", interval)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.Invalidate()
				if _, err := l.Top(ctx); err != nil && ctx.Err() == nil {
					log.Error("refresh failed", "error", err)
				}
			case <-ctx.Done():
				log.Info("background refresh stopped")
				return
			}
		}
	}()
}
