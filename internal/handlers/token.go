// internal/handlers/token.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/seriesmint/seriesmint-backend/internal/services"
	"github.com/seriesmint/seriesmint-backend/internal/utils"
)

type TokenHandler struct {
	tokenService  *services.TokenService
	payoutService *services.PayoutService
}

func NewTokenHandler(tokenService *services.TokenService, payoutService *services.PayoutService) *TokenHandler {
	return &TokenHandler{
		tokenService:  tokenService,
		payoutService: payoutService,
	}
}

// GET /tokens/:id
func (h *TokenHandler) GetToken(c *gin.Context) {
	token, err := h.tokenService.GetToken(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"token": token,
	})
}

// GET /tokens/:id/payout?balance=...&max_len_payout=...
func (h *TokenHandler) GetPayout(c *gin.Context) {
	balance, err := decimal.NewFromString(c.Query("balance"))
	if err != nil {
		utils.BadRequestResponse(c, "balance must be a base-unit integer", nil)
		return
	}

	maxLenPayout, err := strconv.Atoi(c.DefaultQuery("max_len_payout", "10"))
	if err != nil || maxLenPayout < 1 {
		utils.BadRequestResponse(c, "invalid max_len_payout", nil)
		return
	}

	payout, err := h.payoutService.ComputePayout(c.Param("id"), balance, maxLenPayout)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, payout)
}

// GET /accounts/:id/tokens
func (h *TokenHandler) GetTokensForOwner(c *gin.Context) {
	params := utils.GetEnumerationParams(c)

	tokens, total, err := h.tokenService.TokensForOwner(c.Param("id"), params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, tokens, total, params)
}
