package application

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmanzanog/folio/internal/domain"
)

// ContentService is the server side of the content API: validation and
// ordering rules on top of the document store.
type ContentService struct {
	repo domain.ContentRepository
}

func NewContentService(repo domain.ContentRepository) *ContentService {
	return &ContentService{repo: repo}
}

// GetBlogPosts returns every post, newest first.
func (s *ContentService) GetBlogPosts(ctx context.Context) ([]domain.BlogPost, error) {
	posts, err := s.repo.ListBlogPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})
	return posts, nil
}

func (s *ContentService) GetBlogPost(ctx context.Context, id string) (*domain.BlogPost, error) {
	post, err := s.repo.FindBlogPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get blog post: %w", err)
	}
	return post, nil
}

func (s *ContentService) CreateBlogPost(ctx context.Context, draft domain.BlogPostDraft) (*domain.BlogPost, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	post, err := s.repo.InsertBlogPost(ctx, domain.NewBlogPost("", draft))
	if err != nil {
		return nil, fmt.Errorf("failed to create blog post: %w", err)
	}
	return post, nil
}

func (s *ContentService) UpdateBlogPost(ctx context.Context, id string, patch domain.BlogPostPatch) (*domain.BlogPost, error) {
	post, err := s.repo.UpdateBlogPost(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update blog post: %w", err)
	}
	return post, nil
}

func (s *ContentService) DeleteBlogPost(ctx context.Context, id string) error {
	if err := s.repo.DeleteBlogPost(ctx, id); err != nil {
		return fmt.Errorf("failed to delete blog post: %w", err)
	}
	return nil
}

func (s *ContentService) GetPortfolioItems(ctx context.Context) ([]domain.PortfolioItem, error) {
	items, err := s.repo.ListPortfolioItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolio items: %w", err)
	}
	return items, nil
}

func (s *ContentService) GetPortfolioItem(ctx context.Context, id string) (*domain.PortfolioItem, error) {
	item, err := s.repo.FindPortfolioItem(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio item: %w", err)
	}
	return item, nil
}

func (s *ContentService) CreatePortfolioItem(ctx context.Context, draft domain.PortfolioItemDraft) (*domain.PortfolioItem, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	item, err := s.repo.InsertPortfolioItem(ctx, domain.NewPortfolioItem("", draft))
	if err != nil {
		return nil, fmt.Errorf("failed to create portfolio item: %w", err)
	}
	return item, nil
}

func (s *ContentService) UpdatePortfolioItem(ctx context.Context, id string, patch domain.PortfolioItemPatch) (*domain.PortfolioItem, error) {
	item, err := s.repo.UpdatePortfolioItem(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update portfolio item: %w", err)
	}
	return item, nil
}

func (s *ContentService) DeletePortfolioItem(ctx context.Context, id string) error {
	if err := s.repo.DeletePortfolioItem(ctx, id); err != nil {
		return fmt.Errorf("failed to delete portfolio item: %w", err)
	}
	return nil
}
