// AngelaMos | 2026
// convert.go

package remote

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/baytalsudani/console/internal/apiclient"
	"github.com/baytalsudani/console/internal/core"
)

func toDecimal(field string, n apiclient.Number) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s %q: %w", field, n, core.ErrServer)
	}
	return d, nil
}

func mapPage[T, U any](p core.Page[T], fn func(T) (U, error)) (core.Page[U], error) {
	out := make([]U, 0, len(p.Items))
	for _, item := range p.Items {
		u, err := fn(item)
		if err != nil {
			return core.Page[U]{}, err
		}
		out = append(out, u)
	}
	return core.Page[U]{
		Items:    out,
		Total:    p.Total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, nil
}

// query builds list filters, leaving zero values out.
type query url.Values

func (q query) id(key string, v int64) query {
	if v != 0 {
		url.Values(q).Set(key, strconv.FormatInt(v, 10))
	}
	return q
}

func (q query) str(key, v string) query {
	if v != "" {
		url.Values(q).Set(key, v)
	}
	return q
}

func (q query) values() url.Values {
	return url.Values(q)
}

// count asks a collection for its total with the smallest possible page.
func count[T any](ctx context.Context, r *apiclient.Resource[T], q query) (int, error) {
	page, err := r.List(ctx, core.NewPageRequest(1, 1), q.values())
	if err != nil {
		return 0, err
	}
	return page.Total, nil
}
