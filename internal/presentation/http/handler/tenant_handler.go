package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/salonkita/salonkita-api/internal/application/service"
	"github.com/salonkita/salonkita-api/internal/presentation/http/dto/request"
	"github.com/salonkita/salonkita-api/internal/presentation/http/dto/response"
)

// TenantHandler handles tenant profile and settings HTTP requests
type TenantHandler struct {
	tenantService *service.TenantService
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService *service.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// GetCurrent returns the tenant the request is scoped to
func (h *TenantHandler) GetCurrent(c *gin.Context) {
	tenant, err := h.tenantService.GetCurrentTenant(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tenant retrieved successfully", tenant)
}

// UpdateSettings replaces the tenant settings, including the pricing
// rule set. Owner only.
func (h *TenantHandler) UpdateSettings(c *gin.Context) {
	var req request.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tenant, err := h.tenantService.UpdateSettings(c.Request.Context(), req.ToSettings())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", tenant)
}
