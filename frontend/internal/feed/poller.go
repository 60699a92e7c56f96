package feed

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/playto-dev/playto/shared/domain"
	"github.com/playto-dev/playto/shared/logger"
)

const DefaultPollInterval = 30 * time.Second

type LeaderboardAPI interface {
	Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error)
}

// LeaderboardPoller fetches the leaderboard once on Start and then every
// interval until Stop. Hooks run on the polling goroutine and must not call
// Stop.
type LeaderboardPoller struct {
	api      LeaderboardAPI
	interval time.Duration

	OnUpdate func([]domain.LeaderboardEntry)
	OnError  func(error)

	mu      sync.Mutex
	entries []domain.LeaderboardEntry
	done    chan struct{}
	stop    func()
}

func NewLeaderboardPoller(api LeaderboardAPI, interval time.Duration) *LeaderboardPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &LeaderboardPoller{api: api, interval: interval}
}

// Start is a no-op while a previous Start is still running.
func (p *LeaderboardPoller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done != nil {
		select {
		case <-p.done:
		default:
			return
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.done = done
	p.stop = sync.OnceFunc(func() {
		cancel()
		<-done
	})
	go p.run(ctx, done)
}

// Stop cancels polling and waits for the goroutine to exit. Safe to call
// more than once.
func (p *LeaderboardPoller) Stop() {
	p.mu.Lock()
	stop := p.stop
	p.mu.Unlock()
	if stop != nil {
		stop()
	}
}

// Entries returns the last successful result.
func (p *LeaderboardPoller) Entries() []domain.LeaderboardEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.entries)
}

func (p *LeaderboardPoller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	p.poll(ctx)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.poll(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *LeaderboardPoller) poll(ctx context.Context) {
	entries, err := p.api.Leaderboard(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		logger.Log.Warn("leaderboard poll failed", "component", "poller", "error", err)
		if p.OnError != nil {
			p.OnError(err)
		}
		return
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}

	p.mu.Lock()
	p.entries = entries
	p.mu.Unlock()
	if p.OnUpdate != nil {
		p.OnUpdate(slices.Clone(entries))
	}
}
