// AngelaMos | 2026
// amount.go

package catalog

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/baytalsudani/console/internal/core"
)

var maxPrice = decimal.RequireFromString("99999999.99")

// Amount is a price as submitted: a JSON number, a JSON string or a form
// field. It is parsed by ParsePrice.
type Amount string

func (a *Amount) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	*a = Amount(b)
	return nil
}

// ParsePrice turns raw into a non-negative decimal with two fractional
// digits. Anything else is a validation error on field.
func ParsePrice(field string, raw Amount) (decimal.Decimal, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return decimal.Zero, core.FieldError(field, "is required")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, core.FieldError(field, "must be a number")
	}
	if d.IsNegative() {
		return decimal.Zero, core.FieldError(field, "must not be negative")
	}

	d = d.Round(2)
	if d.GreaterThan(maxPrice) {
		return decimal.Zero, core.FieldError(field, "is too large")
	}
	return d, nil
}
