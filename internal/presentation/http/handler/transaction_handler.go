package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salonkita/salonkita-api/internal/application/service"
	"github.com/salonkita/salonkita-api/internal/domain/billing"
	"github.com/salonkita/salonkita-api/internal/domain/enum"
	"github.com/salonkita/salonkita-api/internal/domain/repository"
	"github.com/salonkita/salonkita-api/internal/presentation/http/dto/request"
	"github.com/salonkita/salonkita-api/internal/presentation/http/dto/response"
)

// TransactionHandler handles sales transaction HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// Create handles transaction creation. The route requires an
// Idempotency-Key header, so retried requests replay the original
// response instead of settling twice.
func (h *TransactionHandler) Create(c *gin.Context) {
	var req request.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	sourceType, ok := enum.ParseSourceType(req.SourceType)
	if !ok {
		response.BadRequest(c, "source_type must be on_the_spot or from_booking")
		return
	}

	payments := make([]billing.PaymentEntry, len(req.Payments))
	for i, p := range req.Payments {
		// Unknown method strings map to an invalid method, which the
		// reconciler rejects with a pointed field error.
		method, _ := enum.ParsePaymentMethod(p.Method)
		payments[i] = billing.PaymentEntry{
			Method:    method,
			Amount:    p.Amount,
			Reference: p.Reference,
		}
	}

	transaction, err := h.transactionService.CreateTransaction(c.Request.Context(), &service.CreateTransactionInput{
		SourceType:       sourceType,
		CustomerID:       req.CustomerID,
		BookingID:        req.BookingID,
		Items:            quoteItemInputs(req.Items),
		TravelDistanceKm: req.TravelDistanceKm,
		Payments:         payments,
		Notes:            req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transaction created successfully", transaction)
}

// Get handles retrieving a single transaction
func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	transaction, err := h.transactionService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction retrieved successfully", transaction)
}

// List handles listing transactions with filters
func (h *TransactionHandler) List(c *gin.Context) {
	params := &repository.TransactionFilterParams{
		Pagination: paginationParams(c),
	}

	if s := c.Query("status"); s != "" {
		for i := enum.TransactionStatusPending; i <= enum.TransactionStatusRefunded; i++ {
			if i.String() == s {
				status := i
				params.Status = &status
				break
			}
		}
	}
	if s := c.Query("source_type"); s != "" {
		if sourceType, ok := enum.ParseSourceType(s); ok {
			params.SourceType = &sourceType
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

	result, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transactions retrieved successfully", result)
}
