package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/salonkita/salonkita-api/internal/application/service"
	"github.com/salonkita/salonkita-api/internal/presentation/http/dto/response"
)

// ReportHandler handles financial reporting HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Summary returns the financial summary for a date range
func (h *ReportHandler) Summary(c *gin.Context) {
	start, end := dateRangeParams(c)

	summary, err := h.reportService.Summarize(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Summary retrieved successfully", summary)
}

// Monthly returns the trailing monthly revenue breakdown
func (h *ReportHandler) Monthly(c *gin.Context) {
	months, _ := strconv.Atoi(c.DefaultQuery("months", "6"))
	if months < 1 || months > 36 {
		months = 6
	}

	buckets, err := h.reportService.MonthlyBreakdown(c.Request.Context(), months)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Monthly breakdown retrieved successfully", buckets)
}

// Customers returns the per-customer revenue breakdown for a date range
func (h *ReportHandler) Customers(c *gin.Context) {
	start, end := dateRangeParams(c)

	breakdown, err := h.reportService.CustomerBreakdown(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer breakdown retrieved successfully", breakdown)
}
