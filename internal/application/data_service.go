package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmanzanog/folio/internal/domain"
	"github.com/jmanzanog/folio/internal/infrastructure/retry"
)

// DataService is the read/write API the site uses. Reads prefer the server and
// degrade to the cache, then to the bundled samples. Writes go to the server
// only and update the cache once the server confirmed them.
type DataService struct {
	blog      BlogPostAPI
	portfolio PortfolioItemAPI
	cache     *CacheStore
	policy    retry.Policy
	now       func() time.Time
}

func NewDataService(blog BlogPostAPI, portfolio PortfolioItemAPI, cache *CacheStore, policy retry.Policy) *DataService {
	return &DataService{
		blog:      blog,
		portfolio: portfolio,
		cache:     cache,
		policy:    policy,
		now:       time.Now,
	}
}

func (s *DataService) GetBlogPosts(ctx context.Context) ([]domain.BlogPost, error) {
	return readAll(ctx, s, s.cache.blog, s.blog.List), nil
}

func (s *DataService) GetBlogPost(ctx context.Context, id string) (*domain.BlogPost, error) {
	return readOne(ctx, s, s.cache.blog, id, s.blog.Get)
}

func (s *DataService) CreateBlogPost(ctx context.Context, draft domain.BlogPostDraft) (*domain.BlogPost, error) {
	return create(ctx, s, s.cache.blog, draft, s.blog.Create)
}

func (s *DataService) UpdateBlogPost(ctx context.Context, id string, patch domain.BlogPostPatch) (*domain.BlogPost, error) {
	return update(ctx, s, s.cache.blog, id, patch, s.blog.Update)
}

func (s *DataService) DeleteBlogPost(ctx context.Context, id string) error {
	return remove(ctx, s, s.cache.blog, id, s.blog.Delete)
}

func (s *DataService) GetPortfolioItems(ctx context.Context) ([]domain.PortfolioItem, error) {
	return readAll(ctx, s, s.cache.portfolio, s.portfolio.List), nil
}

func (s *DataService) GetPortfolioItem(ctx context.Context, id string) (*domain.PortfolioItem, error) {
	return readOne(ctx, s, s.cache.portfolio, id, s.portfolio.Get)
}

func (s *DataService) CreatePortfolioItem(ctx context.Context, draft domain.PortfolioItemDraft) (*domain.PortfolioItem, error) {
	return create(ctx, s, s.cache.portfolio, draft, s.portfolio.Create)
}

func (s *DataService) UpdatePortfolioItem(ctx context.Context, id string, patch domain.PortfolioItemPatch) (*domain.PortfolioItem, error) {
	return update(ctx, s, s.cache.portfolio, id, patch, s.portfolio.Update)
}

func (s *DataService) DeletePortfolioItem(ctx context.Context, id string) error {
	return remove(ctx, s, s.cache.portfolio, id, s.portfolio.Delete)
}

// LastSync reports when the cache was last refreshed from the server.
func (s *DataService) LastSync(ctx context.Context) (time.Time, bool, error) {
	return s.cache.LastSync(ctx)
}

func readAll[T any](ctx context.Context, s *DataService, coll cachedCollection[T], list func(context.Context) ([]T, error)) []T {
	items, err := retry.Do(ctx, s.policy, list)
	if err == nil {
		if err := coll.save(ctx, items); err != nil {
			slog.WarnContext(ctx, "Failed to cache fresh collection", "kind", coll.kind, "error", err)
		} else if err := s.cache.RecordSync(ctx, s.now()); err != nil {
			slog.WarnContext(ctx, "Failed to record sync time", "error", err)
		}
		return items
	}

	slog.WarnContext(ctx, "Falling back to cached collection", "kind", coll.kind, "error", err)

	cached, ok, cacheErr := coll.load(ctx)
	if cacheErr != nil {
		slog.WarnContext(ctx, "Cached collection unreadable, using samples", "kind", coll.kind, "error", cacheErr)
	}
	if ok {
		return cached
	}
	return coll.samples()
}

func readOne[T any](ctx context.Context, s *DataService, coll cachedCollection[T], id string, get func(context.Context, string) (*T, error)) (*T, error) {
	item, err := retry.Do(ctx, s.policy, func(ctx context.Context) (*T, error) {
		return get(ctx, id)
	})
	if err == nil {
		if err := coll.replace(ctx, *item); err != nil {
			slog.WarnContext(ctx, "Failed to refresh cached entry", "kind", coll.kind, "id", id, "error", err)
		}
		return item, nil
	}

	// Any failure, a 404 included, leaves the cache as it was.
	slog.WarnContext(ctx, "Falling back to cached entry", "kind", coll.kind, "id", id, "error", err)

	cached, ok, cacheErr := coll.find(ctx, id)
	if cacheErr != nil {
		slog.WarnContext(ctx, "Cached collection unreadable", "kind", coll.kind, "error", cacheErr)
	}
	if ok {
		return cached, nil
	}
	if domain.KindOf(err) == domain.ErrorKindNotFound {
		return nil, classify(err)
	}

	return nil, &domain.Error{
		Kind:    domain.ErrorKindNotFound,
		Message: fmt.Sprintf("%s %s is not available offline", coll.kind, id),
		Err:     err,
	}
}

func create[T, D any](ctx context.Context, s *DataService, coll cachedCollection[T], draft D, op func(context.Context, D) (*T, error)) (*T, error) {
	item, err := retry.Do(ctx, s.policy, func(ctx context.Context) (*T, error) {
		return op(ctx, draft)
	})
	if err != nil {
		return nil, classify(err)
	}
	if err := coll.prepend(ctx, *item); err != nil {
		slog.WarnContext(ctx, "Failed to add created entry to cache", "kind", coll.kind, "error", err)
	}
	return item, nil
}

func update[T, P any](ctx context.Context, s *DataService, coll cachedCollection[T], id string, patch P, op func(context.Context, string, P) (*T, error)) (*T, error) {
	item, err := retry.Do(ctx, s.policy, func(ctx context.Context) (*T, error) {
		return op(ctx, id, patch)
	})
	if err != nil {
		return nil, classify(err)
	}
	if err := coll.replace(ctx, *item); err != nil {
		slog.WarnContext(ctx, "Failed to update cached entry", "kind", coll.kind, "id", id, "error", err)
	}
	return item, nil
}

func remove[T any](ctx context.Context, s *DataService, coll cachedCollection[T], id string, op func(context.Context, string) error) error {
	_, err := retry.Do(ctx, s.policy, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx, id)
	})
	if err != nil {
		return classify(err)
	}
	if err := coll.remove(ctx, id); err != nil {
		slog.WarnContext(ctx, "Failed to remove cached entry", "kind", coll.kind, "id", id, "error", err)
	}
	return nil
}

// classify guarantees callers always receive a *domain.Error.
func classify(err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return domain.NewError(domain.KindOf(err), "", err)
}
