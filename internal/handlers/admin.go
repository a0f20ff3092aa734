// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/seriesmint/seriesmint-backend/internal/models"
	"github.com/seriesmint/seriesmint-backend/internal/services"
	"github.com/seriesmint/seriesmint-backend/internal/utils"
)

type AdminHandler struct {
	accessService *services.AccessService
}

func NewAdminHandler(accessService *services.AccessService) *AdminHandler {
	return &AdminHandler{accessService: accessService}
}

// POST /admin/creators/:id
func (h *AdminHandler) AddCreator(c *gin.Context) {
	h.mutateAllowlist(c, h.accessService.AddCreator, "creator approved")
}

// DELETE /admin/creators/:id
func (h *AdminHandler) RemoveCreator(c *gin.Context) {
	h.mutateAllowlist(c, h.accessService.RemoveCreator, "creator revoked")
}

// POST /admin/minters/:id
func (h *AdminHandler) AddMinter(c *gin.Context) {
	h.mutateAllowlist(c, h.accessService.AddMinter, "minter approved")
}

// DELETE /admin/minters/:id
func (h *AdminHandler) RemoveMinter(c *gin.Context) {
	h.mutateAllowlist(c, h.accessService.RemoveMinter, "minter revoked")
}

// GET /admin/creators
func (h *AdminHandler) ListCreators(c *gin.Context) {
	h.listAllowlist(c, models.AllowlistRoleCreator)
}

// GET /admin/minters
func (h *AdminHandler) ListMinters(c *gin.Context) {
	h.listAllowlist(c, models.AllowlistRoleMinter)
}

func (h *AdminHandler) mutateAllowlist(c *gin.Context, op func(callerID, principalID string) error, message string) {
	caller, ok := requirePrincipal(c)
	if !ok {
		return
	}

	if err := op(caller, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"principal_id": c.Param("id"),
		"message":      message,
	})
}

func (h *AdminHandler) listAllowlist(c *gin.Context, role models.AllowlistRole) {
	params := utils.GetEnumerationParams(c)

	entries, total, err := h.accessService.ListPrincipals(role, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, entries, total, params)
}
