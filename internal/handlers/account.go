// internal/handlers/account.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/seriesmint/seriesmint-backend/internal/services"
	"github.com/seriesmint/seriesmint-backend/internal/utils"
)

type AccountHandler struct {
	authService     *services.AuthService
	transferService *services.TransferService
}

func NewAccountHandler(authService *services.AuthService, transferService *services.TransferService) *AccountHandler {
	return &AccountHandler{
		authService:     authService,
		transferService: transferService,
	}
}

// GET /accounts/balance
func (h *AccountHandler) GetBalance(c *gin.Context) {
	caller, ok := requirePrincipal(c)
	if !ok {
		return
	}

	account, err := h.authService.GetAccount(caller)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"account_id": account.ID,
		"balance":    account.Balance.String(),
	})
}

// GET /accounts/transfers
func (h *AccountHandler) GetTransfers(c *gin.Context) {
	caller, ok := requirePrincipal(c)
	if !ok {
		return
	}

	params := utils.GetEnumerationParams(c)

	transfers, total, err := h.transferService.History(caller, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, transfers, total, params)
}
