// internal/utils/response.go
package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seriesmint/seriesmint-backend/internal/models"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

func SuccessResponseWithMeta(c *gin.Context, data interface{}, meta interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func BadRequestResponse(c *gin.Context, message string, details interface{}) {
	if message == "" {
		message = "invalid request"
	}
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message, details)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	if message == "" {
		message = "authentication required"
	}
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

func ForbiddenResponse(c *gin.Context, message string) {
	if message == "" {
		message = "access denied"
	}
	ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", message, nil)
}

func NotFoundResponse(c *gin.Context, resource string) {
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", resource+" not found", nil)
}

func InternalErrorResponse(c *gin.Context, message string) {
	if message == "" {
		message = "internal server error"
	}
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", message, nil)
}

func ValidationErrorResponse(c *gin.Context, errors []ValidationError) {
	ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid input", errors)
}

// LedgerErrorResponse maps the ledger failure taxonomy onto HTTP statuses.
// The error code is surfaced verbatim so callers can branch on it.
func LedgerErrorResponse(c *gin.Context, err error) bool {
	var lerr *models.LedgerError
	if !errors.As(err, &lerr) {
		return false
	}

	status := http.StatusBadRequest
	switch lerr {
	case models.ErrUnauthorized:
		status = http.StatusForbidden
	case models.ErrSeriesNotFound:
		status = http.StatusNotFound
	case models.ErrDuplicateSeries, models.ErrSeriesSoldOut:
		status = http.StatusConflict
	case models.ErrInsufficientStorageDeposit, models.ErrInsufficientFunds:
		status = http.StatusPaymentRequired
	}

	ErrorResponse(c, status, lerr.Code, lerr.Message, nil)
	return true
}

func PaginatedResponse(c *gin.Context, data interface{}, total int64, params EnumerationParams) {
	SetEnumerationHeaders(c, total, params)
	SuccessResponseWithMeta(c, data, gin.H{
		"pagination": gin.H{
			"from_index": params.FromIndex,
			"limit":      params.Limit,
			"total":      total,
		},
	})
}

func GetPrincipalFromContext(c *gin.Context) (string, bool) {
	if principal, exists := c.Get("principal_id"); exists {
		if principalStr, ok := principal.(string); ok {
			return principalStr, true
		}
	}
	return "", false
}
