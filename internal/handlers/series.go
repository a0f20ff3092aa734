// internal/handlers/series.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/seriesmint/seriesmint-backend/internal/services"
	"github.com/seriesmint/seriesmint-backend/internal/utils"
)

type SeriesHandler struct {
	seriesService *services.SeriesService
	mintService   *services.MintService
	tokenService  *services.TokenService
	mediaService  *services.MediaService
}

func NewSeriesHandler(seriesService *services.SeriesService, mintService *services.MintService, tokenService *services.TokenService, mediaService *services.MediaService) *SeriesHandler {
	return &SeriesHandler{
		seriesService: seriesService,
		mintService:   mintService,
		tokenService:  tokenService,
		mediaService:  mediaService,
	}
}

// POST /series
func (h *SeriesHandler) CreateSeries(c *gin.Context) {
	caller, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req services.CreateSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	series, err := h.seriesService.CreateSeries(caller, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"series": series,
	})
}

// GET /series
func (h *SeriesHandler) GetSeries(c *gin.Context) {
	params := utils.GetEnumerationParams(c)

	series, total, err := h.seriesService.GetSeries(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, series, total, params)
}

// GET /series/supply
func (h *SeriesHandler) GetSupplySeries(c *gin.Context) {
	supply, err := h.seriesService.GetSupply()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"supply": supply,
	})
}

// GET /series/:id
func (h *SeriesHandler) GetSeriesInfo(c *gin.Context) {
	id, ok := parseSeriesID(c)
	if !ok {
		return
	}

	info, err := h.seriesService.GetSeriesInfo(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"series": info,
	})
}

// GET /series/:id/supply
func (h *SeriesHandler) GetSupplyForSeries(c *gin.Context) {
	id, ok := parseSeriesID(c)
	if !ok {
		return
	}

	supply, err := h.tokenService.SupplyForSeries(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"series_id": id,
		"supply":    supply,
	})
}

// GET /series/:id/tokens
func (h *SeriesHandler) GetTokensForSeries(c *gin.Context) {
	id, ok := parseSeriesID(c)
	if !ok {
		return
	}

	params := utils.GetEnumerationParams(c)

	tokens, total, err := h.tokenService.TokensForSeries(id, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, tokens, total, params)
}

// POST /series/:id/mint
func (h *SeriesHandler) Mint(c *gin.Context) {
	caller, ok := requirePrincipal(c)
	if !ok {
		return
	}

	id, ok := parseSeriesID(c)
	if !ok {
		return
	}

	var req services.MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	token, err := h.mintService.Mint(caller, id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"token": token,
	})
}

// POST /series/upload
func (h *SeriesHandler) UploadMedia(c *gin.Context) {
	if _, ok := requirePrincipal(c); !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "file is required", nil)
		return
	}
	defer file.Close()

	result, err := h.mediaService.UploadMedia(file, header)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"upload": result,
	})
}
