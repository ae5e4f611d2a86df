package pagination

import (
	"math"

	"github.com/gin-gonic/gin"
	"github.com/lankago/tour-marketplace/pkg/common"
)

const (
	// DefaultLimit is the default number of items per page
	DefaultLimit = 20
	// MaxLimit is the maximum number of items per page
	MaxLimit = 100
	// DefaultOffset is the default starting position
	DefaultOffset = 0
)

// Params represents pagination parameters
type Params struct {
	Limit  int `form:"limit" json:"limit"`
	Offset int `form:"offset" json:"offset"`
}

// ParseParams extracts and validates pagination parameters from request
func ParseParams(c *gin.Context) Params {
	params := Params{
		Limit:  DefaultLimit,
		Offset: DefaultOffset,
	}

	if err := c.ShouldBindQuery(&params); err != nil {
		return params
	}

	if params.Limit <= 0 {
		params.Limit = DefaultLimit
	}
	if params.Limit > MaxLimit {
		params.Limit = MaxLimit
	}
	if params.Offset < 0 {
		params.Offset = DefaultOffset
	}

	return params
}

// BuildMeta creates pagination metadata for responses
func BuildMeta(limit, offset int, total int64) *common.Meta {
	meta := &common.Meta{
		Limit:  limit,
		Offset: offset,
		Total:  total,
	}

	if limit > 0 {
		meta.TotalPages = int(math.Ceil(float64(total) / float64(limit)))
	}

	return meta
}
