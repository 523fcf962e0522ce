package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/salonkita/salonkita-api/internal/application/service"
	"github.com/salonkita/salonkita-api/internal/presentation/http/dto/request"
	"github.com/salonkita/salonkita-api/internal/presentation/http/dto/response"
)

// QuoteHandler handles price preview HTTP requests
type QuoteHandler struct {
	quoteService *service.QuoteService
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteService *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// Compute prices a cart under the tenant's current rules without
// persisting anything
func (h *QuoteHandler) Compute(c *gin.Context) {
	var req request.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	quote, err := h.quoteService.ComputeQuote(c.Request.Context(), &service.QuoteInput{
		Items:            quoteItemInputs(req.Items),
		TravelDistanceKm: req.TravelDistanceKm,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote computed successfully", quote)
}

// quoteItemInputs converts request cart lines into service input
func quoteItemInputs(items []request.QuoteItemRequest) []service.QuoteItemInput {
	inputs := make([]service.QuoteItemInput, len(items))
	for i, item := range items {
		inputs[i] = service.QuoteItemInput{
			ServiceID: item.ServiceID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	return inputs
}
