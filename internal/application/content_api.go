package application

import (
	"context"

	"github.com/jmanzanog/folio/internal/domain"
)

// BlogPostAPI is the remote blog collection. contentapi.BlogResource implements it.
type BlogPostAPI interface {
	List(ctx context.Context) ([]domain.BlogPost, error)
	Get(ctx context.Context, id string) (*domain.BlogPost, error)
	Create(ctx context.Context, draft domain.BlogPostDraft) (*domain.BlogPost, error)
	Update(ctx context.Context, id string, patch domain.BlogPostPatch) (*domain.BlogPost, error)
	Delete(ctx context.Context, id string) error
}

// PortfolioItemAPI is the remote portfolio collection.
type PortfolioItemAPI interface {
	List(ctx context.Context) ([]domain.PortfolioItem, error)
	Get(ctx context.Context, id string) (*domain.PortfolioItem, error)
	Create(ctx context.Context, draft domain.PortfolioItemDraft) (*domain.PortfolioItem, error)
	Update(ctx context.Context, id string, patch domain.PortfolioItemPatch) (*domain.PortfolioItem, error)
	Delete(ctx context.Context, id string) error
}
