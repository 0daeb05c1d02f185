package service

import (
	"context"
	"time"

	"fabcost/internal/model"
	"fabcost/internal/repository"

	"github.com/google/uuid"
)

// SupplierQuote is one resolved supplier price for an item.
type SupplierQuote struct {
	SupplierName  string
	CostPrice     int64
	EffectiveDate time.Time
}

// SupplierPrices selects supplier quotes from an item's cost history.
// A nil result from either method is a normal "no quote available"
// outcome, never an error.
type SupplierPrices struct {
	history repository.CostHistoryRepository
}

func NewSupplierPrices(history repository.CostHistoryRepository) *SupplierPrices {
	return &SupplierPrices{history: history}
}

// LowestPrice returns the cheapest quote among eligible suppliers that was
// effective at or before date. Ties between equal prices resolve to
// whichever entry is scanned first.
func (s *SupplierPrices) LowestPrice(
	ctx context.Context,
	itemID uuid.UUID,
	date time.Time,
	eligible model.SupplierList,
) (*SupplierQuote, error) {
	entries, err := s.history.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	var best *SupplierQuote
	for i := range entries {
		e := &entries[i]
		if e.SupplierName == nil || !eligible.Contains(*e.SupplierName) {
			continue
		}
		if e.EffectiveDate.After(date) {
			continue
		}
		if best == nil || e.CostPrice < best.CostPrice {
			best = &SupplierQuote{
				SupplierName:  *e.SupplierName,
				CostPrice:     e.CostPrice,
				EffectiveDate: e.EffectiveDate,
			}
		}
	}
	return best, nil
}

// PriceForSupplier returns the named supplier's most recent quote at or
// before date.
func (s *SupplierPrices) PriceForSupplier(
	ctx context.Context,
	itemID uuid.UUID,
	supplier string,
	date time.Time,
) (*SupplierQuote, error) {
	entries, err := s.history.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	var best *SupplierQuote
	for i := range entries {
		e := &entries[i]
		if e.SupplierName == nil || *e.SupplierName != supplier {
			continue
		}
		if e.EffectiveDate.After(date) {
			continue
		}
		if best == nil || e.EffectiveDate.After(best.EffectiveDate) {
			best = &SupplierQuote{
				SupplierName:  supplier,
				CostPrice:     e.CostPrice,
				EffectiveDate: e.EffectiveDate,
			}
		}
	}
	return best, nil
}
