package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/jmanzanog/folio/internal/domain"
)

const (
	KeyLastDataSync = "lastDataSync"
	KeyAdminMarker  = "isAdminAuthenticated"
)

// CacheStore keeps the last known copy of both collections in a durable
// key/value store. Collections are always replaced whole.
type CacheStore struct {
	kv domain.KeyValueStore

	// mu serializes read-modify-write updates made by local mutations.
	mu sync.Mutex

	blog      cachedCollection[domain.BlogPost]
	portfolio cachedCollection[domain.PortfolioItem]
}

func NewCacheStore(kv domain.KeyValueStore) *CacheStore {
	c := &CacheStore{kv: kv}
	c.blog = cachedCollection[domain.BlogPost]{
		kind:    domain.KindBlogPosts,
		store:   c,
		idOf:    func(p domain.BlogPost) string { return p.ID },
		samples: domain.SampleBlogPosts,
	}
	c.portfolio = cachedCollection[domain.PortfolioItem]{
		kind:    domain.KindPortfolioItems,
		store:   c,
		idOf:    func(i domain.PortfolioItem) string { return i.ID },
		samples: domain.SamplePortfolioItems,
	}
	return c
}

func (c *CacheStore) LoadBlogPosts(ctx context.Context) ([]domain.BlogPost, bool, error) {
	return c.blog.load(ctx)
}

func (c *CacheStore) SaveBlogPosts(ctx context.Context, posts []domain.BlogPost) error {
	return c.blog.save(ctx, posts)
}

func (c *CacheStore) LoadPortfolioItems(ctx context.Context) ([]domain.PortfolioItem, bool, error) {
	return c.portfolio.load(ctx)
}

func (c *CacheStore) SavePortfolioItems(ctx context.Context, items []domain.PortfolioItem) error {
	return c.portfolio.save(ctx, items)
}

// RecordSync stores t as an epoch-millisecond string.
func (c *CacheStore) RecordSync(ctx context.Context, t time.Time) error {
	value := strconv.FormatInt(t.UnixMilli(), 10)
	if err := c.kv.Set(ctx, KeyLastDataSync, []byte(value)); err != nil {
		return fmt.Errorf("failed to record sync time: %w", err)
	}
	return nil
}

func (c *CacheStore) LastSync(ctx context.Context) (time.Time, bool, error) {
	raw, ok, err := c.kv.Get(ctx, KeyLastDataSync)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	ms, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid %s value %q: %w", KeyLastDataSync, raw, err)
	}
	return time.UnixMilli(ms), true, nil
}

// Seed writes the bundled sample collections for every kind never cached,
// so a cold start without connectivity still has something to show.
func (c *CacheStore) Seed(ctx context.Context) ([]domain.Kind, error) {
	var seeded []domain.Kind

	ok, err := c.blog.seed(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		seeded = append(seeded, c.blog.kind)
	}

	ok, err = c.portfolio.seed(ctx)
	if err != nil {
		return seeded, err
	}
	if ok {
		seeded = append(seeded, c.portfolio.kind)
	}

	return seeded, nil
}

type cachedCollection[T any] struct {
	kind    domain.Kind
	store   *CacheStore
	idOf    func(T) string
	samples func() []T
}

func (c cachedCollection[T]) key() string { return c.kind.String() }

func (c cachedCollection[T]) load(ctx context.Context) ([]T, bool, error) {
	raw, ok, err := c.store.kv.Get(ctx, c.key())
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached %s: %w", c.kind, err)
	}
	if !ok {
		return nil, false, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached %s: %w", c.kind, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, true, nil
}

func (c cachedCollection[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.kind, err)
	}
	if err := c.store.kv.Set(ctx, c.key(), raw); err != nil {
		return fmt.Errorf("failed to write cached %s: %w", c.kind, err)
	}
	return nil
}

func (c cachedCollection[T]) seed(ctx context.Context) (bool, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	_, ok, err := c.store.kv.Get(ctx, c.key())
	if err != nil {
		return false, fmt.Errorf("failed to read cached %s: %w", c.kind, err)
	}
	if ok {
		return false, nil
	}
	return true, c.save(ctx, c.samples())
}

// find looks id up in the cached collection.
func (c cachedCollection[T]) find(ctx context.Context, id string) (*T, bool, error) {
	items, ok, err := c.load(ctx)
	if err != nil || !ok {
		return nil, false, err
	}
	for i := range items {
		if c.idOf(items[i]) == id {
			return &items[i], true, nil
		}
	}
	return nil, false, nil
}

// mutate loads the collection, lets fn rewrite it and saves the result when fn
// reports a change.
func (c cachedCollection[T]) mutate(ctx context.Context, fn func(items []T, found bool) ([]T, bool)) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	items, found, err := c.load(ctx)
	if err != nil {
		return err
	}
	next, changed := fn(items, found)
	if !changed {
		return nil
	}
	return c.save(ctx, next)
}

func (c cachedCollection[T]) prepend(ctx context.Context, item T) error {
	return c.mutate(ctx, func(items []T, _ bool) ([]T, bool) {
		return append([]T{item}, items...), true
	})
}

func (c cachedCollection[T]) replace(ctx context.Context, item T) error {
	id := c.idOf(item)
	return c.mutate(ctx, func(items []T, found bool) ([]T, bool) {
		if !found {
			return nil, false
		}
		for i := range items {
			if c.idOf(items[i]) == id {
				items[i] = item
				return items, true
			}
		}
		return nil, false
	})
}

func (c cachedCollection[T]) remove(ctx context.Context, id string) error {
	return c.mutate(ctx, func(items []T, found bool) ([]T, bool) {
		if !found {
			return nil, false
		}
		kept := make([]T, 0, len(items))
		for _, it := range items {
			if c.idOf(it) != id {
				kept = append(kept, it)
			}
		}
		return kept, len(kept) != len(items)
	})
}
