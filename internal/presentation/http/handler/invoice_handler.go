package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salonkita/salonkita-api/internal/application/service"
	"github.com/salonkita/salonkita-api/internal/domain/enum"
	"github.com/salonkita/salonkita-api/internal/domain/repository"
	"github.com/salonkita/salonkita-api/internal/presentation/http/dto/response"
)

// InvoiceHandler handles invoice HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Compose creates the invoice for a transaction. Composing again for
// the same transaction returns the existing invoice.
func (h *InvoiceHandler) Compose(c *gin.Context) {
	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	invoice, err := h.invoiceService.ComposeInvoice(c.Request.Context(), transactionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice composed successfully", invoice)
}

// Get handles retrieving a single invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// List handles listing invoices with filters
func (h *InvoiceHandler) List(c *gin.Context) {
	params := &repository.InvoiceFilterParams{
		Pagination: paginationParams(c),
	}

	if s := c.Query("status"); s != "" {
		for i := enum.InvoiceStatusDraft; i <= enum.InvoiceStatusOverdue; i++ {
			if i.String() == s {
				status := i
				params.Status = &status
				break
			}
		}
	}
	if s := c.Query("customer_id"); s != "" {
		if customerID, err := uuid.Parse(s); err == nil {
			params.CustomerID = &customerID
		}
	}
	start, end := dateRangeParams(c)
	if c.Query("start_date") != "" {
		params.StartDate = &start
	}
	if c.Query("end_date") != "" {
		params.EndDate = &end
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// MarkSent transitions a draft invoice to sent
func (h *InvoiceHandler) MarkSent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.MarkSent(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice marked as sent", invoice)
}

// MarkPaid records full payment on an invoice
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.MarkPaid(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice marked as paid", invoice)
}

// SweepOverdue flips sent invoices past their due date to overdue
func (h *InvoiceHandler) SweepOverdue(c *gin.Context) {
	flipped, err := h.invoiceService.SweepOverdue(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Overdue sweep completed", gin.H{"flipped": flipped})
}
