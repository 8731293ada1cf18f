package accounts_test

import (
	"math"
	"strconv"
	"testing"

	"github.com/goliatone/go-accounts"
	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		maxLimit  int
		wantPage  int
		wantLimit int
		wantSkip  int
	}{
		{name: "defaults", wantPage: 1, wantLimit: 10, wantSkip: 0},
		{name: "explicit values", page: "3", limit: "5", wantPage: 3, wantLimit: 5, wantSkip: 10},
		{name: "non numeric", page: "abc", limit: "x", wantPage: 1, wantLimit: 10, wantSkip: 0},
		{name: "zero and negative", page: "0", limit: "-4", wantPage: 1, wantLimit: 10, wantSkip: 0},
		{name: "limit capped", page: "2", limit: "1000", maxLimit: 100, wantPage: 2, wantLimit: 100, wantSkip: 100},
		{name: "no cap", page: "1", limit: "1000", maxLimit: 0, wantPage: 1, wantLimit: 1000, wantSkip: 0},
		{name: "whitespace", page: " 2 ", limit: " 10", wantPage: 2, wantLimit: 10, wantSkip: 10},
		{name: "huge page", page: strconv.Itoa(math.MaxInt), limit: "2", maxLimit: 100, wantPage: math.MaxInt/2 + 1, wantLimit: 2, wantSkip: math.MaxInt - 1},
		{name: "huge page single limit", page: strconv.Itoa(math.MaxInt), limit: "1", wantPage: math.MaxInt, wantLimit: 1, wantSkip: math.MaxInt - 1},
		{name: "page beyond int range", page: "99999999999999999999999", limit: "10", wantPage: math.MaxInt/10 + 1, wantLimit: 10, wantSkip: math.MaxInt / 10 * 10},
		{name: "negative beyond int range", page: "-99999999999999999999999", limit: "10", wantPage: 1, wantLimit: 10, wantSkip: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := accounts.ParsePagination(tt.page, tt.limit, tt.maxLimit)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, tt.wantSkip, p.Skip())
		})
	}
}

func TestPagination_ZeroValue(t *testing.T) {
	var p accounts.Pagination
	assert.Equal(t, 0, p.Skip())
	assert.Equal(t, accounts.DefaultLimit, p.Size())
}

func TestPagination_SkipSaturates(t *testing.T) {
	p := accounts.Pagination{Page: math.MaxInt, Limit: 3}
	assert.Equal(t, math.MaxInt, p.Skip())

	p = accounts.NewPagination(math.MaxInt, 3, 0)
	assert.GreaterOrEqual(t, p.Skip(), 0)
	assert.Equal(t, math.MaxInt/3*3, p.Skip())
}
