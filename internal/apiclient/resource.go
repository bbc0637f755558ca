package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-resty/resty/v2"

	"recruitadmin/internal/domain"
)

// Resource is the CRUD surface every backend entity shares.
type Resource[T any] struct {
	c    *Client
	path string
}

func NewResource[T any](c *Client, path string) Resource[T] {
	return Resource[T]{c: c, path: "/" + trimSlashes(path)}
}

func (r Resource[T]) GetAll(ctx context.Context) ([]T, error) {
	var out []T
	err := r.c.doJSON(ctx, r.c.api, http.MethodGet, r.path, nil, &out, nil)
	return out, err
}

func (r Resource[T]) GetByID(ctx context.Context, id string) (T, error) {
	var out T
	err := r.c.doJSON(ctx, r.c.api, http.MethodGet, r.path+"/"+url.PathEscape(id), nil, &out, nil)
	return out, err
}

// Search queries /{entity}/search with the filter; arrays are sent as repeated keys.
func (r Resource[T]) Search(ctx context.Context, f domain.Filter) (domain.PageResult[T], error) {
	var out domain.PageResult[T]
	err := r.c.doJSON(ctx, r.c.api, http.MethodGet, r.path+"/search", nil, &out, func(req *resty.Request) {
		req.SetQueryParamsFromValues(f.Query())
	})
	if err != nil {
		return domain.PageResult[T]{}, err
	}
	if out.Items == nil {
		out.Items = []T{}
	}
	return out, nil
}

func (r Resource[T]) Create(ctx context.Context, in any) error {
	return r.c.doJSON(ctx, r.c.api, http.MethodPost, r.path, in, nil, nil)
}

func (r Resource[T]) Update(ctx context.Context, id string, in any) error {
	return r.c.doJSON(ctx, r.c.api, http.MethodPut, r.path+"/"+url.PathEscape(id), in, nil, nil)
}

var ErrNotRemoved = errors.New("backend refused to remove the record")

// Remove deletes id; the backend answers with a boolean.
func (r Resource[T]) Remove(ctx context.Context, id string) error {
	var ok bool
	if err := r.c.doJSON(ctx, r.c.api, http.MethodDelete, r.path+"/"+url.PathEscape(id), nil, &ok, nil); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s/%s: %w", r.path, id, ErrNotRemoved)
	}
	return nil
}

func trimSlashes(s string) string {
	for len(s) > 0 && s[0] == '/' {
		s = s[1:]
	}
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
