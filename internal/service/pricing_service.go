package service

import (
	"context"
	"time"

	"fabcost/internal/dto"
	"fabcost/internal/repository"

	"github.com/google/uuid"
)

// PricingService answers the read-only price queries: effective-dated item
// cost, explicit trend forecasts, and supplier quote lookups.
type PricingService interface {
	// ItemCost resolves the item's cost at date through the full policy
	// chain. An unknown item resolves to zero, not an error.
	ItemCost(ctx context.Context, itemID uuid.UUID, date time.Time) (*dto.ItemCostResponse, error)
	// ItemForecast runs the cost trend regression directly. Unlike
	// resolution under the PROJECTED policy, an unsupportable forecast here
	// is an explicit ErrForecastUnavailable.
	ItemForecast(ctx context.Context, itemID uuid.UUID, date time.Time) (*dto.ForecastResponse, error)
	// LowestQuote returns the cheapest eligible supplier quote effective at
	// date, or nil when no supplier has quoted the item.
	LowestQuote(ctx context.Context, itemID uuid.UUID, date time.Time) (*dto.SupplierQuoteResponse, error)
}

type pricingService struct {
	resolver  *CostResolver
	suppliers *SupplierPrices
	history   repository.CostHistoryRepository
	catalog   repository.CatalogRepository
}

func NewPricingService(
	resolver *CostResolver,
	suppliers *SupplierPrices,
	history repository.CostHistoryRepository,
	catalog repository.CatalogRepository,
) PricingService {
	return &pricingService{resolver: resolver, suppliers: suppliers, history: history, catalog: catalog}
}

func (s *pricingService) ItemCost(ctx context.Context, itemID uuid.UUID, date time.Time) (*dto.ItemCostResponse, error) {
	cost, err := s.resolver.ResolveCost(ctx, itemID, date)
	if err != nil {
		return nil, err
	}
	return &dto.ItemCostResponse{
		ItemID:    itemID.String(),
		Date:      date.UTC().Format(time.RFC3339),
		CostPrice: cost,
	}, nil
}

func (s *pricingService) ItemForecast(ctx context.Context, itemID uuid.UUID, date time.Time) (*dto.ForecastResponse, error) {
	entries, err := s.history.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	f := ForecastCost(entries, date)
	if f == nil {
		return nil, ErrForecastUnavailable
	}
	return &dto.ForecastResponse{
		ItemID:         itemID.String(),
		Date:           date.UTC().Format(time.RFC3339),
		ForecastedCost: f.Cost,
		Confidence:     f.Confidence,
	}, nil
}

func (s *pricingService) LowestQuote(ctx context.Context, itemID uuid.UUID, date time.Time) (*dto.SupplierQuoteResponse, error) {
	item, err := s.catalog.FindCostableItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	quote, err := s.suppliers.LowestPrice(ctx, itemID, date, item.Suppliers)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, nil
	}
	return &dto.SupplierQuoteResponse{
		SupplierName:  quote.SupplierName,
		CostPrice:     quote.CostPrice,
		EffectiveDate: quote.EffectiveDate.UTC().Format(time.RFC3339),
	}, nil
}
