// Package params parses the request values shared by the v1 handlers.
package params

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"
)

// UserHeader is set by the upstream identity layer to the authenticated user's id.
const UserHeader = "X-User-ID"

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// ParseAmount parses a decimal amount such as "12.50".
func ParseAmount(field, value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return amount, nil
}
