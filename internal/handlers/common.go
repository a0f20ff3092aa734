// internal/handlers/common.go
package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/seriesmint/seriesmint-backend/internal/utils"
)

// respondServiceError maps a service failure to an HTTP response: ledger
// taxonomy codes keep their own statuses, lookup misses become 404, and
// everything else surfaces as a bad request.
func respondServiceError(c *gin.Context, err error) {
	if utils.LedgerErrorResponse(c, err) {
		return
	}
	if strings.Contains(err.Error(), "not found") {
		utils.NotFoundResponse(c, "resource")
		return
	}
	utils.BadRequestResponse(c, err.Error(), nil)
}

func parseSeriesID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid series ID", nil)
		return 0, false
	}
	return id, true
}

func requirePrincipal(c *gin.Context) (string, bool) {
	principal, exists := utils.GetPrincipalFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return "", false
	}
	return principal, true
}
