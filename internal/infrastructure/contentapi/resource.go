package contentapi

import (
	"context"
	"net/http"
	"net/url"
)

// Resource is one REST collection: T is the stored entity, D its draft and P its patch.
type Resource[T, D, P any] struct {
	client *Client
	path   string
}

func (r *Resource[T, D, P]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

func (r *Resource[T, D, P]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.client.do(ctx, http.MethodGet, r.path, nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (r *Resource[T, D, P]) Get(ctx context.Context, id string) (*T, error) {
	var item T
	if err := r.client.do(ctx, http.MethodGet, r.itemPath(id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Resource[T, D, P]) Create(ctx context.Context, draft D) (*T, error) {
	var item T
	if err := r.client.do(ctx, http.MethodPost, r.path, draft, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update sends only the fields set in patch.
func (r *Resource[T, D, P]) Update(ctx context.Context, id string, patch P) (*T, error) {
	var item T
	if err := r.client.do(ctx, http.MethodPut, r.itemPath(id), patch, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Resource[T, D, P]) Delete(ctx context.Context, id string) error {
	return r.client.do(ctx, http.MethodDelete, r.itemPath(id), nil, nil)
}
