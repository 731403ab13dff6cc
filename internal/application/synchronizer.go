package application

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jmanzanog/folio/internal/domain"
	"github.com/jmanzanog/folio/internal/infrastructure/retry"
)

const DefaultSyncInterval = 30 * time.Second

var ErrSyncFailed = errors.New("no collection could be refreshed")

// SyncUpdate describes one completed sync cycle.
type SyncUpdate struct {
	SyncedAt  time.Time
	Refreshed []domain.Kind
	Failed    map[domain.Kind]error
}

// Synchronizer refreshes the cache from the API on a fixed interval and tells
// subscribers when it did.
type Synchronizer struct {
	blog      BlogPostAPI
	portfolio PortfolioItemAPI
	cache     *CacheStore
	policy    retry.Policy
	interval  time.Duration
	now       func() time.Time

	mu        sync.Mutex
	listeners map[int]func(SyncUpdate)
	nextID    int

	stopOnce sync.Once
	stopChan chan struct{}
	doneChan chan struct{}
}

func NewSynchronizer(blog BlogPostAPI, portfolio PortfolioItemAPI, cache *CacheStore, policy retry.Policy, interval time.Duration) *Synchronizer {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	return &Synchronizer{
		blog:      blog,
		portfolio: portfolio,
		cache:     cache,
		policy:    policy,
		interval:  interval,
		now:       time.Now,
		listeners: make(map[int]func(SyncUpdate)),
		stopChan:  make(chan struct{}),
		doneChan:  make(chan struct{}),
	}
}

// OnUpdate registers fn to run after every cycle that refreshed at least one
// collection. The returned func removes the subscription.
func (s *Synchronizer) OnUpdate(fn func(SyncUpdate)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
		})
	}
}

// Start seeds the cache, runs one cycle immediately and then one per interval.
// It blocks until Stop is called or ctx is done. Start runs at most once per Synchronizer.
func (s *Synchronizer) Start(ctx context.Context) {
	defer close(s.doneChan)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Stop must also abort a cycle that is waiting in a retry backoff.
	go func() {
		select {
		case <-s.stopChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	seeded, err := s.cache.Seed(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to seed content cache", "error", err)
	} else if len(seeded) > 0 {
		slog.InfoContext(ctx, "Seeded content cache with bundled samples", "kinds", seeded)
	}

	s.runCycle(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "Content synchronizer started", "interval", s.interval)

	for {
		select {
		case <-ticker.C:
			s.runCycle(ctx)
		case <-ctx.Done():
			slog.Info("Content synchronizer stopped")
			return
		}
	}
}

// Stop ends the loop started by Start. It is safe to call more than once.
func (s *Synchronizer) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
}

// Done is closed once Start has returned, so no cycle is writing to the cache.
func (s *Synchronizer) Done() <-chan struct{} {
	return s.doneChan
}

func (s *Synchronizer) runCycle(ctx context.Context) {
	update, err := s.SyncOnce(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Content sync failed, keeping cached data", "error", err)
		return
	}
	for kind, ferr := range update.Failed {
		slog.WarnContext(ctx, "Content sync partially failed", "kind", kind, "error", ferr)
	}
}

// SyncOnce fetches both collections concurrently and caches whatever arrived.
// A failure in one collection never blocks the other. It returns ErrSyncFailed,
// and leaves the cache untouched, only when nothing could be refreshed.
func (s *Synchronizer) SyncOnce(ctx context.Context) (SyncUpdate, error) {
	var (
		wg           sync.WaitGroup
		posts        []domain.BlogPost
		items        []domain.PortfolioItem
		blogErr      error
		portfolioErr error
	)

	wg.Go(func() {
		posts, blogErr = retry.Do(ctx, s.policy, s.blog.List)
		if blogErr == nil {
			blogErr = s.cache.SaveBlogPosts(ctx, posts)
		}
	})
	wg.Go(func() {
		items, portfolioErr = retry.Do(ctx, s.policy, s.portfolio.List)
		if portfolioErr == nil {
			portfolioErr = s.cache.SavePortfolioItems(ctx, items)
		}
	})
	wg.Wait()

	update := SyncUpdate{Failed: make(map[domain.Kind]error)}
	for _, r := range []struct {
		kind domain.Kind
		err  error
	}{
		{domain.KindBlogPosts, blogErr},
		{domain.KindPortfolioItems, portfolioErr},
	} {
		if r.err != nil {
			update.Failed[r.kind] = r.err
			continue
		}
		update.Refreshed = append(update.Refreshed, r.kind)
	}

	if len(update.Refreshed) == 0 {
		return update, errors.Join(ErrSyncFailed, blogErr, portfolioErr)
	}

	update.SyncedAt = s.now()
	if err := s.cache.RecordSync(ctx, update.SyncedAt); err != nil {
		slog.WarnContext(ctx, "Failed to record sync time", "error", err)
	}

	s.notify(update)
	return update, nil
}

func (s *Synchronizer) notify(update SyncUpdate) {
	s.mu.Lock()
	listeners := make([]func(SyncUpdate), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(update)
	}
}
