// Package paging turns page/page_size query parameters into limit/offset pairs.
package paging

import (
	"fmt"
	"math"

	"github.com/tumai/space-api/pkg/apperror"
)

const DefaultMaxPageSize = 100

type Page struct {
	Number int
	Size   int
}

func (p Page) Limit() int  { return p.Size }
func (p Page) Offset() int { return (p.Number - 1) * p.Size }

// Normalize fills zero values with defaults (page 1, page size max) and
// rejects anything outside 1..max. A page whose offset would not fit in an
// int is rejected too.
func Normalize(page, pageSize, max int) (Page, error) {
	if max <= 0 {
		max = DefaultMaxPageSize
	}
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = max
	}
	if page < 1 {
		return Page{}, apperror.NewInvalidInput(fmt.Sprintf("page must be >= 1, got %d", page), nil)
	}
	if pageSize < 1 || pageSize > max {
		return Page{}, apperror.NewInvalidInput(fmt.Sprintf("page_size must be between 1 and %d, got %d", max, pageSize), nil)
	}
	if page-1 > math.MaxInt/pageSize {
		return Page{}, apperror.NewInvalidInput(fmt.Sprintf("page %d is out of range for page_size %d", page, pageSize), nil)
	}
	return Page{Number: page, Size: pageSize}, nil
}
