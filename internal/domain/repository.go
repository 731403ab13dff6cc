package domain

import "context"

// BlogPostRepository is the document store behind the blog endpoints.
// Implementations assign the ID on insert and return ErrNotFound for unknown ids.
type BlogPostRepository interface {
	ListBlogPosts(ctx context.Context) ([]BlogPost, error)
	FindBlogPost(ctx context.Context, id string) (*BlogPost, error)
	InsertBlogPost(ctx context.Context, post BlogPost) (*BlogPost, error)
	UpdateBlogPost(ctx context.Context, id string, patch BlogPostPatch) (*BlogPost, error)
	DeleteBlogPost(ctx context.Context, id string) error
}

// PortfolioItemRepository is the document store behind the portfolio endpoints.
type PortfolioItemRepository interface {
	ListPortfolioItems(ctx context.Context) ([]PortfolioItem, error)
	FindPortfolioItem(ctx context.Context, id string) (*PortfolioItem, error)
	InsertPortfolioItem(ctx context.Context, item PortfolioItem) (*PortfolioItem, error)
	UpdatePortfolioItem(ctx context.Context, id string, patch PortfolioItemPatch) (*PortfolioItem, error)
	DeletePortfolioItem(ctx context.Context, id string) error
}

type ContentRepository interface {
	BlogPostRepository
	PortfolioItemRepository
}

// KeyValueStore is the durable client-side storage for cached collections.
// Get reports found=false for keys never written. Implementations must be safe
// for concurrent use; each Set replaces the whole value atomically.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
