// internal/utils/pagination_test.go
package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFor(t *testing.T, query string) EnumerationParams {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/v1/series"+query, nil)
	return GetEnumerationParams(c)
}

func TestGetEnumerationParams(t *testing.T) {
	assert.Equal(t, EnumerationParams{FromIndex: 0, Limit: DefaultEnumerationLimit}, paramsFor(t, ""))
	assert.Equal(t, EnumerationParams{FromIndex: 3, Limit: 7}, paramsFor(t, "?from_index=3&limit=7"))

	// Out-of-range values fall back to defaults rather than erroring.
	assert.Equal(t, EnumerationParams{FromIndex: 0, Limit: DefaultEnumerationLimit}, paramsFor(t, "?from_index=-4&limit=0"))
	assert.Equal(t, EnumerationParams{FromIndex: 0, Limit: DefaultEnumerationLimit}, paramsFor(t, "?limit=5000"))
}
