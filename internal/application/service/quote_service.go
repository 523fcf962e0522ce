package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/salonkita/salonkita-api/internal/domain/billing"
	"github.com/salonkita/salonkita-api/internal/domain/repository"
	infraRepo "github.com/salonkita/salonkita-api/internal/infrastructure/repository"
	"github.com/salonkita/salonkita-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// QuoteService computes live price previews. It runs the exact same
// calculation as transaction creation, so what the cashier sees on
// screen is what the customer is charged.
type QuoteService struct {
	tenantRepo  repository.TenantRepository
	serviceRepo repository.ServiceRepository
}

// NewQuoteService creates a new quote service
func NewQuoteService(tenantRepo repository.TenantRepository, serviceRepo repository.ServiceRepository) *QuoteService {
	return &QuoteService{
		tenantRepo:  tenantRepo,
		serviceRepo: serviceRepo,
	}
}

// QuoteItemInput is one cart entry. UnitPrice overrides the catalog base
// price when set; nil means charge the catalog price.
type QuoteItemInput struct {
	ServiceID uuid.UUID
	Quantity  int
	UnitPrice *int64
}

// QuoteInput represents a quote preview request
type QuoteInput struct {
	Items            []QuoteItemInput
	TravelDistanceKm *decimal.Decimal
}

// ComputeQuote resolves the cart against the catalog and prices it under
// the tenant's current rule set
func (s *QuoteService) ComputeQuote(ctx context.Context, input *QuoteInput) (*billing.Quote, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperror.NewNotFoundError("Tenant")
	}

	items, err := resolveLineItems(ctx, s.serviceRepo, input.Items)
	if err != nil {
		return nil, err
	}

	quote, err := billing.ComputeQuote(items, tenant.Settings.Pricing, input.TravelDistanceKm)
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// resolveLineItems turns cart entries into priced calculator input.
// Unknown or inactive services are rejected; a nil unit price falls back
// to the catalog base price.
func resolveLineItems(ctx context.Context, serviceRepo repository.ServiceRepository, inputs []QuoteItemInput) ([]billing.LineItem, error) {
	if len(inputs) == 0 {
		return nil, apperror.NewInvalidInputError("items", "must not be empty")
	}

	ids := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.ServiceID)
	}

	services, err := serviceRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]int, len(services))
	for i, svc := range services {
		byID[svc.ID] = i
	}

	items := make([]billing.LineItem, 0, len(inputs))
	for i, in := range inputs {
		idx, found := byID[in.ServiceID]
		if !found {
			return nil, apperror.NewInvalidInputError(
				fmt.Sprintf("items[%d].service_id", i), "unknown service")
		}
		svc := services[idx]
		if !svc.Active {
			return nil, apperror.NewInvalidInputError(
				fmt.Sprintf("items[%d].service_id", i), "service is inactive")
		}

		unitPrice := svc.BasePrice
		if in.UnitPrice != nil {
			unitPrice = *in.UnitPrice
		}

		items = append(items, billing.LineItem{
			ServiceID: svc.ID,
			Name:      svc.Name,
			Quantity:  in.Quantity,
			UnitPrice: unitPrice,
		})
	}
	return items, nil
}
