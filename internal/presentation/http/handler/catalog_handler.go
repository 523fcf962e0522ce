package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salonkita/salonkita-api/internal/application/service"
	"github.com/salonkita/salonkita-api/internal/presentation/http/dto/request"
	"github.com/salonkita/salonkita-api/internal/presentation/http/dto/response"
)

// CatalogHandler handles service catalog HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Create handles adding a service to the catalog
func (h *CatalogHandler) Create(c *gin.Context) {
	var req request.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	svc, err := h.catalogService.CreateService(c.Request.Context(), &service.CreateServiceInput{
		Name:            req.Name,
		Description:     req.Description,
		BasePrice:       req.BasePrice,
		DurationMinutes: req.DurationMinutes,
		HomeVisit:       req.HomeVisit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Service created successfully", svc)
}

// Get handles retrieving a single catalog entry
func (h *CatalogHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	svc, err := h.catalogService.GetService(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service retrieved successfully", svc)
}

// List handles listing the service catalog. Pass active=true to hide
// retired entries.
func (h *CatalogHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	result, err := h.catalogService.ListServices(c.Request.Context(), paginationParams(c), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Services retrieved successfully", result)
}

// Update handles updating a catalog entry
func (h *CatalogHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	var req request.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	svc, err := h.catalogService.UpdateService(c.Request.Context(), &service.UpdateServiceInput{
		ID:              id,
		Name:            req.Name,
		Description:     req.Description,
		BasePrice:       req.BasePrice,
		DurationMinutes: req.DurationMinutes,
		HomeVisit:       req.HomeVisit,
		Active:          req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service updated successfully", svc)
}

// Delete handles retiring a catalog entry
func (h *CatalogHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	if err := h.catalogService.DeleteService(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
