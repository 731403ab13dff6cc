package application

import (
	"context"
	"sync"
	"time"

	"github.com/jmanzanog/folio/internal/domain"
	"github.com/jmanzanog/folio/internal/infrastructure/persistence/memory"
	"github.com/jmanzanog/folio/internal/infrastructure/retry"
)

var fastPolicy = retry.Policy{MaxAttempts: 3, InitialDelay: time.Millisecond}

func networkErr() error {
	return domain.NewError(domain.ErrorKindNetwork, "", nil)
}

func notFoundErr() error {
	return domain.NewError(domain.ErrorKindNotFound, "Post not found", nil)
}

// mockBlogAPI records calls and delegates to the configured funcs.
type mockBlogAPI struct {
	mu        sync.Mutex
	listCalls int
	getCalls  int

	listFunc   func(ctx context.Context) ([]domain.BlogPost, error)
	getFunc    func(ctx context.Context, id string) (*domain.BlogPost, error)
	createFunc func(ctx context.Context, draft domain.BlogPostDraft) (*domain.BlogPost, error)
	updateFunc func(ctx context.Context, id string, patch domain.BlogPostPatch) (*domain.BlogPost, error)
	deleteFunc func(ctx context.Context, id string) error
}

func (m *mockBlogAPI) List(ctx context.Context) ([]domain.BlogPost, error) {
	m.mu.Lock()
	m.listCalls++
	m.mu.Unlock()
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []domain.BlogPost{}, nil
}

func (m *mockBlogAPI) ListCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

func (m *mockBlogAPI) GetCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getCalls
}

func (m *mockBlogAPI) Get(ctx context.Context, id string) (*domain.BlogPost, error) {
	m.mu.Lock()
	m.getCalls++
	m.mu.Unlock()
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, notFoundErr()
}

func (m *mockBlogAPI) Create(ctx context.Context, draft domain.BlogPostDraft) (*domain.BlogPost, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, draft)
	}
	post := domain.NewBlogPost("new", draft)
	return &post, nil
}

func (m *mockBlogAPI) Update(ctx context.Context, id string, patch domain.BlogPostPatch) (*domain.BlogPost, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, patch)
	}
	return nil, notFoundErr()
}

func (m *mockBlogAPI) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockPortfolioAPI struct {
	mu        sync.Mutex
	listCalls int

	listFunc   func(ctx context.Context) ([]domain.PortfolioItem, error)
	getFunc    func(ctx context.Context, id string) (*domain.PortfolioItem, error)
	createFunc func(ctx context.Context, draft domain.PortfolioItemDraft) (*domain.PortfolioItem, error)
	updateFunc func(ctx context.Context, id string, patch domain.PortfolioItemPatch) (*domain.PortfolioItem, error)
	deleteFunc func(ctx context.Context, id string) error
}

func (m *mockPortfolioAPI) List(ctx context.Context) ([]domain.PortfolioItem, error) {
	m.mu.Lock()
	m.listCalls++
	m.mu.Unlock()
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []domain.PortfolioItem{}, nil
}

func (m *mockPortfolioAPI) ListCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

func (m *mockPortfolioAPI) Get(ctx context.Context, id string) (*domain.PortfolioItem, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, notFoundErr()
}

func (m *mockPortfolioAPI) Create(ctx context.Context, draft domain.PortfolioItemDraft) (*domain.PortfolioItem, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, draft)
	}
	item := domain.NewPortfolioItem("new", draft)
	return &item, nil
}

func (m *mockPortfolioAPI) Update(ctx context.Context, id string, patch domain.PortfolioItemPatch) (*domain.PortfolioItem, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, patch)
	}
	return nil, notFoundErr()
}

func (m *mockPortfolioAPI) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func newTestCache() *CacheStore {
	return NewCacheStore(memory.NewKVStore())
}
