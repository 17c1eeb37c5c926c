// AngelaMos | 2026
// pagination.go

package core

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest is a 1-based page request.
type PageRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

func NewPageRequest(page, pageSize int) PageRequest {
	p := PageRequest{Page: page, PageSize: pageSize}
	p.Normalize()
	return p
}

func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Page is one slice of a listing. Requests past the last page yield no items
// but still report the total.
type Page[T any] struct {
	Items    []T
	Total    int
	Page     int
	PageSize int
}

func NewPage[T any](items []T, total int, req PageRequest) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:    items,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
}

func (p Page[T]) TotalPages() int {
	if p.PageSize <= 0 || p.Total <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

func (p Page[T]) HasPrev() bool {
	return p.Page > 1
}

func (p Page[T]) HasNext() bool {
	return p.Page < p.TotalPages()
}

func (p Page[T]) PrevNum() *int {
	if !p.HasPrev() {
		return nil
	}
	n := p.Page - 1
	return &n
}

func (p Page[T]) NextNum() *int {
	if !p.HasNext() {
		return nil
	}
	n := p.Page + 1
	return &n
}

// MapPage converts the items of a page while keeping its metadata.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(p.Items))
	for _, item := range p.Items {
		out = append(out, fn(item))
	}
	return Page[U]{
		Items:    out,
		Total:    p.Total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
}

type PaginationMeta struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
	PrevNum    *int `json:"prev_num"`
	NextNum    *int `json:"next_num"`
}

func (p Page[T]) Meta() PaginationMeta {
	return PaginationMeta{
		Page:       p.Page,
		PageSize:   p.PageSize,
		Total:      p.Total,
		TotalPages: p.TotalPages(),
		HasPrev:    p.HasPrev(),
		HasNext:    p.HasNext(),
		PrevNum:    p.PrevNum(),
		NextNum:    p.NextNum(),
	}
}
