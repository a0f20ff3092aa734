// internal/handlers/funding.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/seriesmint/seriesmint-backend/internal/services"
	"github.com/seriesmint/seriesmint-backend/internal/utils"
)

type FundingHandler struct {
	fundingService *services.FundingService
}

func NewFundingHandler(fundingService *services.FundingService) *FundingHandler {
	return &FundingHandler{fundingService: fundingService}
}

// POST /funding/intent
func (h *FundingHandler) CreateDepositIntent(c *gin.Context) {
	caller, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req services.CreateDepositIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	intent, err := h.fundingService.CreateDepositIntent(caller, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"intent": intent,
	})
}

// POST /funding/confirm
func (h *FundingHandler) ConfirmDeposit(c *gin.Context) {
	caller, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req services.ConfirmDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid input", err.Error())
		return
	}

	if err := h.fundingService.ConfirmDeposit(caller, &req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "deposit credited",
	})
}
