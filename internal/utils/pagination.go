// internal/utils/pagination.go
package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// EnumerationParams is the from_index/limit window every paginated view
// accepts. A from_index past the end of the collection yields an empty
// sequence, never an error.
type EnumerationParams struct {
	FromIndex int `json:"from_index"`
	Limit     int `json:"limit"`
}

const (
	DefaultEnumerationLimit = 50
	MaxEnumerationLimit     = 100
)

func GetEnumerationParams(c *gin.Context) EnumerationParams {
	fromIndex, _ := strconv.Atoi(c.DefaultQuery("from_index", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultEnumerationLimit)))

	// Validate and set defaults
	if fromIndex < 0 {
		fromIndex = 0
	}
	if limit < 1 || limit > MaxEnumerationLimit {
		limit = DefaultEnumerationLimit
	}

	return EnumerationParams{
		FromIndex: fromIndex,
		Limit:     limit,
	}
}

func ApplyEnumeration(db *gorm.DB, params EnumerationParams) *gorm.DB {
	return db.Offset(params.FromIndex).Limit(params.Limit)
}

func SetEnumerationHeaders(c *gin.Context, total int64, params EnumerationParams) {
	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.Header("X-From-Index", strconv.Itoa(params.FromIndex))
	c.Header("X-Limit", strconv.Itoa(params.Limit))
}
