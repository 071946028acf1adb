package utils

import (
	"net/http"
	"strconv"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationParams is a sanitized page/page_size pair with the SQL offset
// precomputed.
type PaginationParams struct {
	Page     int
	PageSize int
	Offset   int
}

// PaginatedResponse wraps one page of results with paging totals.
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalItems int64       `json:"total_items"`
	TotalPages int         `json:"total_pages"`
}

// ParsePaginationParams reads page and page_size from the query string.
// Out-of-range values are clamped rather than rejected.
func ParsePaginationParams(r *http.Request) PaginationParams {
	q := r.URL.Query()

	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	size, err := strconv.Atoi(q.Get("page_size"))
	if err != nil || size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	return PaginationParams{Page: page, PageSize: size, Offset: (page - 1) * size}
}

func NewPaginatedResponse(data interface{}, page, pageSize int, totalItems int64) PaginatedResponse {
	pages := int((totalItems + int64(pageSize) - 1) / int64(pageSize))

	return PaginatedResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: pages,
	}
}
