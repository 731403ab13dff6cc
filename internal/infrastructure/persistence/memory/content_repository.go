package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jmanzanog/folio/internal/domain"
)

// ContentRepository is an in-process document store. Listing returns entries in
// insertion order.
type ContentRepository struct {
	mu sync.RWMutex

	posts     map[string]domain.BlogPost
	postOrder []string

	items     map[string]domain.PortfolioItem
	itemOrder []string
}

func NewContentRepository() *ContentRepository {
	return &ContentRepository{
		posts: make(map[string]domain.BlogPost),
		items: make(map[string]domain.PortfolioItem),
	}
}

func (r *ContentRepository) ListBlogPosts(ctx context.Context) ([]domain.BlogPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]domain.BlogPost, 0, len(r.postOrder))
	for _, id := range r.postOrder {
		posts = append(posts, r.posts[id])
	}
	return posts, nil
}

func (r *ContentRepository) FindBlogPost(ctx context.Context, id string) (*domain.BlogPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, exists := r.posts[id]
	if !exists {
		return nil, fmt.Errorf("blog post %s: %w", id, domain.ErrNotFound)
	}
	return &post, nil
}

func (r *ContentRepository) InsertBlogPost(ctx context.Context, post domain.BlogPost) (*domain.BlogPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post.ID = uuid.New().String()
	r.posts[post.ID] = post
	r.postOrder = append(r.postOrder, post.ID)
	return &post, nil
}

func (r *ContentRepository) UpdateBlogPost(ctx context.Context, id string, patch domain.BlogPostPatch) (*domain.BlogPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, exists := r.posts[id]
	if !exists {
		return nil, fmt.Errorf("blog post %s: %w", id, domain.ErrNotFound)
	}
	patch.Apply(&post)
	r.posts[id] = post
	return &post, nil
}

func (r *ContentRepository) DeleteBlogPost(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.posts[id]; !exists {
		return fmt.Errorf("blog post %s: %w", id, domain.ErrNotFound)
	}
	delete(r.posts, id)
	r.postOrder = removeID(r.postOrder, id)
	return nil
}

func (r *ContentRepository) ListPortfolioItems(ctx context.Context) ([]domain.PortfolioItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]domain.PortfolioItem, 0, len(r.itemOrder))
	for _, id := range r.itemOrder {
		items = append(items, r.items[id])
	}
	return items, nil
}

func (r *ContentRepository) FindPortfolioItem(ctx context.Context, id string) (*domain.PortfolioItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[id]
	if !exists {
		return nil, fmt.Errorf("portfolio item %s: %w", id, domain.ErrNotFound)
	}
	return &item, nil
}

func (r *ContentRepository) InsertPortfolioItem(ctx context.Context, item domain.PortfolioItem) (*domain.PortfolioItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = uuid.New().String()
	r.items[item.ID] = item
	r.itemOrder = append(r.itemOrder, item.ID)
	return &item, nil
}

func (r *ContentRepository) UpdatePortfolioItem(ctx context.Context, id string, patch domain.PortfolioItemPatch) (*domain.PortfolioItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[id]
	if !exists {
		return nil, fmt.Errorf("portfolio item %s: %w", id, domain.ErrNotFound)
	}
	patch.Apply(&item)
	r.items[id] = item
	return &item, nil
}

func (r *ContentRepository) DeletePortfolioItem(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; !exists {
		return fmt.Errorf("portfolio item %s: %w", id, domain.ErrNotFound)
	}
	delete(r.items, id)
	r.itemOrder = removeID(r.itemOrder, id)
	return nil
}

func removeID(ids []string, id string) []string {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
