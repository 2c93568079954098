package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination bounds for admin list endpoints.
const (
	DefaultPageLimit = 25
	MaxPageLimit     = 100
)

// PageResponse wraps a list payload with the paging parameters that produced it.
type PageResponse[T any] struct {
	Data   []T `json:"data"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// NewPageResponse builds a PageResponse, never serializing a nil slice as null.
func NewPageResponse[T any](data []T, offset, limit int) PageResponse[T] {
	if data == nil {
		data = []T{}
	}
	return PageResponse[T]{Data: data, Offset: offset, Limit: limit}
}

// ParsePagination parses offset and limit query parameters.
// Offset defaults to 0 and limit to DefaultPageLimit; limit cannot exceed MaxPageLimit.
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, fmt.Errorf("invalid offset parameter: must be a non-negative integer")
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageLimit)))
	if err != nil || limit < 1 || limit > MaxPageLimit {
		return 0, 0, fmt.Errorf("invalid limit parameter: must be between 1 and %d", MaxPageLimit)
	}

	return offset, limit, nil
}
