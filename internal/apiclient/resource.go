// AngelaMos | 2026
// resource.go

package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/baytalsudani/console/internal/core"
)

// Resource is one REST collection of the API, such as /products. List
// answers look like {"products": [...], "total": n, "pages": p}; single
// answers are either the bare object or wrapped under the singular key.
type Resource[T any] struct {
	client  *Client
	path    string
	listKey string
	itemKey string
}

func NewResource[T any](c *Client, path, listKey, itemKey string) *Resource[T] {
	return &Resource[T]{
		client:  c,
		path:    path,
		listKey: listKey,
		itemKey: itemKey,
	}
}

func (r *Resource[T]) Path() string {
	return r.path
}

func (r *Resource[T]) List(
	ctx context.Context,
	page core.PageRequest,
	filter url.Values,
) (core.Page[T], error) {
	query := url.Values{}
	for k, vs := range filter {
		query[k] = vs
	}
	query.Set("page", strconv.Itoa(page.Page))
	query.Set("limit", strconv.Itoa(page.PageSize))

	var raw json.RawMessage
	if err := r.client.do(ctx, http.MethodGet, r.path, query, nil, &raw); err != nil {
		return core.Page[T]{}, err
	}

	items, total, err := decodeListing[T](raw, r.listKey)
	if err != nil {
		return core.Page[T]{}, fmt.Errorf("list %s: %w: %w", r.path, core.ErrServer, err)
	}

	return core.NewPage(items, total, page), nil
}

func (r *Resource[T]) Get(ctx context.Context, id int64) (*T, error) {
	var raw json.RawMessage
	if err := r.client.do(ctx, http.MethodGet, idPath(r.path, id), nil, nil, &raw); err != nil {
		return nil, err
	}
	return r.decodeItem(raw)
}

func (r *Resource[T]) Create(ctx context.Context, body any) (*T, error) {
	var raw json.RawMessage
	if err := r.client.do(ctx, http.MethodPost, r.path, nil, body, &raw); err != nil {
		return nil, err
	}
	return r.decodeItem(raw)
}

func (r *Resource[T]) Update(ctx context.Context, id int64, body any) (*T, error) {
	var raw json.RawMessage
	if err := r.client.do(ctx, http.MethodPut, idPath(r.path, id), nil, body, &raw); err != nil {
		return nil, err
	}
	return r.decodeItem(raw)
}

func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	return r.client.do(ctx, http.MethodDelete, idPath(r.path, id), nil, nil, nil)
}

// SetActive writes the active flag through a partial update.
func (r *Resource[T]) SetActive(ctx context.Context, id int64, active bool) (*T, error) {
	return r.Update(ctx, id, map[string]bool{"is_active": active})
}

func (r *Resource[T]) decodeItem(raw json.RawMessage) (*T, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	if r.itemKey != "" {
		var wrapped map[string]json.RawMessage
		if json.Unmarshal(raw, &wrapped) == nil {
			if inner, ok := wrapped[r.itemKey]; ok {
				raw = inner
			}
		}
	}

	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("decode %s: %w: %w", r.path, core.ErrServer, err)
	}
	return &item, nil
}

func decodeListing[T any](raw json.RawMessage, key string) ([]T, int, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, 0, err
		}
		return items, len(items), nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, 0, err
	}

	var items []T
	for _, k := range []string{key, "items", "data"} {
		if body, ok := envelope[k]; ok {
			if err := json.Unmarshal(body, &items); err != nil {
				return nil, 0, err
			}
			break
		}
	}

	total := len(items)
	if body, ok := envelope["total"]; ok {
		if err := json.Unmarshal(body, &total); err != nil {
			return nil, 0, err
		}
	}

	return items, total, nil
}
