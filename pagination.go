package accounts

import (
	stderrors "errors"
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultPage is used when no valid page is requested
	DefaultPage = 1
	// DefaultLimit is used when no valid limit is requested
	DefaultLimit = 10
	// DefaultMaxLimit caps the page size a caller can ask for
	DefaultMaxLimit = 100
)

// Pagination is a one based page request
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// NewPagination normalizes page and limit. Values below one fall back to
// the defaults and limit is capped at maxLimit when maxLimit is positive.
// Page is capped so that Skip stays representable.
func NewPagination(page, limit, maxLimit int) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	if last := lastPage(limit); page > last {
		page = last
	}
	return Pagination{Page: page, Limit: limit}
}

// ParsePagination reads raw query values, non numeric input uses the defaults
func ParsePagination(page, limit string, maxLimit int) Pagination {
	return NewPagination(atoiOrZero(page), atoiOrZero(limit), maxLimit)
}

// Skip is the number of records before the requested page, it saturates
// at math.MaxInt instead of wrapping.
func (p Pagination) Skip() int {
	page := p.Page
	if page < 1 {
		page = DefaultPage
	}
	size := p.Size()
	if page > lastPage(size) {
		return math.MaxInt
	}
	return (page - 1) * size
}

// Size returns the effective page size
func (p Pagination) Size() int {
	if p.Limit < 1 {
		return DefaultLimit
	}
	return p.Limit
}

// lastPage is the highest page whose offset fits in an int
func lastPage(limit int) int {
	if limit <= 1 {
		return math.MaxInt
	}
	return math.MaxInt/limit + 1
}

// atoiOrZero parses raw, out of range values clamp to the int bounds
func atoiOrZero(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil && !stderrors.Is(err, strconv.ErrRange) {
		return 0
	}
	return n
}
