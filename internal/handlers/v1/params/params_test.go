package params

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("date", "2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, "2024-02-29", FormatDate(got))

	_, err = ParseDate("date", "2023-02-29")
	assert.ErrorContains(t, err, "invalid date")
}

func TestParseAmount(t *testing.T) {
	got, err := ParseAmount("amount", "12.50")
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("12.5")))

	_, err = ParseAmount("amount", "twelve")
	assert.ErrorContains(t, err, "invalid amount")
}
