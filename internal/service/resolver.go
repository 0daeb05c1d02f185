package service

import (
	"context"
	"time"

	"fabcost/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"fabcost/internal/model"
)

// CostResolver answers "what did this item cost on this date".
//
// Resolution order:
//  1. The effective-dated history entry — the entry with the latest
//     effectiveDate at or before the target date. History takes absolute
//     precedence over every catalog pricing policy.
//  2. The catalog record's costPriceSource policy (PROJECTED,
//     SUPPLIER_LOWEST, PREFERRED_SUPPLIER), each falling back to the
//     manual cost when it produces nothing.
//  3. Manual cost (MANUAL / SELECTED_ENTRY, or any policy fallback).
//  4. Zero, when the id exists in none of the three catalogs — a missing
//     item is a valid "not priced yet" state, never an error.
//
// Every costPriceSource branch lives here, in one place — callers never
// pre-resolve supplier pricing themselves. All lookups are read-only;
// store errors propagate unchanged.
type CostResolver struct {
	history   repository.CostHistoryRepository
	catalog   repository.CatalogRepository
	suppliers *SupplierPrices
}

func NewCostResolver(
	history repository.CostHistoryRepository,
	catalog repository.CatalogRepository,
	suppliers *SupplierPrices,
) *CostResolver {
	return &CostResolver{history: history, catalog: catalog, suppliers: suppliers}
}

// ResolveCost returns the item's cost in cents effective at the given date.
func (r *CostResolver) ResolveCost(ctx context.Context, itemID uuid.UUID, date time.Time) (int64, error) {
	entries, err := r.history.ListByItem(ctx, itemID)
	if err != nil {
		return 0, err
	}

	if e := effectiveEntry(entries, date); e != nil {
		return e.CostPrice, nil
	}

	item, err := r.catalog.FindCostableItem(ctx, itemID)
	if err != nil {
		return 0, err
	}
	if item == nil {
		return 0, nil
	}

	switch item.CostPriceSource {
	case model.SourceProjected:
		if f := ForecastCost(entries, date); f != nil {
			if f.Confidence < LowConfidenceThreshold {
				log.Warn().
					Str("item_id", itemID.String()).
					Float64("confidence", f.Confidence).
					Msg("resolver: low-confidence forecast in use")
			}
			return f.Cost, nil
		}
		return item.CostPrice, nil

	case model.SourceSupplierLowest:
		quote, err := r.suppliers.LowestPrice(ctx, itemID, date, item.Suppliers)
		if err != nil {
			return 0, err
		}
		if quote != nil {
			return quote.CostPrice, nil
		}
		return item.CostPrice, nil

	case model.SourcePreferredSupplier:
		if item.PreferredSupplier != nil && *item.PreferredSupplier != "" {
			quote, err := r.suppliers.PriceForSupplier(ctx, itemID, *item.PreferredSupplier, date)
			if err != nil {
				return 0, err
			}
			if quote != nil {
				return quote.CostPrice, nil
			}
		}
		return item.CostPrice, nil

	default:
		// MANUAL, SELECTED_ENTRY, or anything unrecognized.
		return item.CostPrice, nil
	}
}

// effectiveEntry scans for the entry with the maximal effectiveDate <= date.
// Input is unordered; a date before every entry yields nil (fall back to
// catalog, never to the earliest entry).
func effectiveEntry(entries []model.CostHistoryEntry, date time.Time) *model.CostHistoryEntry {
	var best *model.CostHistoryEntry
	for i := range entries {
		e := &entries[i]
		if e.EffectiveDate.After(date) {
			continue
		}
		if best == nil || e.EffectiveDate.After(best.EffectiveDate) {
			best = e
		}
	}
	return best
}
