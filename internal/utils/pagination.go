package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type PageParams struct {
	Page  int
	Limit int
}

func (p PageParams) Offset() int { return (p.Page - 1) * p.Limit }

// ParsePageParams reads 1-based page and limit query parameters, clamping to
// sane bounds.
func ParsePageParams(c *gin.Context) PageParams {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 || limit > MaxPageSize {
		limit = DefaultPageSize
	}
	return PageParams{Page: page, Limit: limit}
}

// Paged is the list envelope every paginated endpoint returns.
type Paged struct {
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Items       any   `json:"items"`
}

func NewPaged(total int64, p PageParams, items any) Paged {
	pages := 0
	if total > 0 {
		pages = 1
		if p.Limit > 0 {
			pages = int(math.Ceil(float64(total) / float64(p.Limit)))
		}
	}
	return Paged{Total: total, TotalPages: pages, CurrentPage: p.Page, Items: items}
}
