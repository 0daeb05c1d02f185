package service

import (
	"context"
	"testing"

	"fabcost/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newResolverFixture() (*CostResolver, *stubHistoryRepo, *stubCatalogRepo) {
	history := &stubHistoryRepo{}
	catalog := newStubCatalogRepo()
	resolver := NewCostResolver(history, catalog, NewSupplierPrices(history))
	return resolver, history, catalog
}

func seedPart(catalog *stubCatalogRepo, costs model.CostFields) uuid.UUID {
	p := &model.Part{SKU: "P-" + uuid.NewString()[:8], Name: "Test Part", CostFields: costs, Active: true}
	_ = catalog.CreatePart(context.Background(), p)
	return p.ID
}

func TestResolveCost_UnknownItemIsZero(t *testing.T) {
	resolver, _, _ := newResolverFixture()

	cost, err := resolver.ResolveCost(context.Background(), uuid.New(), day(10))
	require.NoError(t, err)
	require.Equal(t, int64(0), cost)
}

func TestResolveCost_HistoryWinsOverCatalog(t *testing.T) {
	resolver, history, catalog := newResolverFixture()
	itemID := seedPart(catalog, model.CostFields{CostPrice: 500, CostPriceSource: model.SourceManual})

	history.entries = append(history.entries,
		model.CostHistoryEntry{ID: uuid.New(), ItemID: itemID, CostPrice: 800, EffectiveDate: day(5)},
		model.CostHistoryEntry{ID: uuid.New(), ItemID: itemID, CostPrice: 900, EffectiveDate: day(15)},
	)

	// Between the two entries the earlier one is effective.
	cost, err := resolver.ResolveCost(context.Background(), itemID, day(10))
	require.NoError(t, err)
	require.Equal(t, int64(800), cost)

	// At and after the second entry's date, it takes over.
	cost, err = resolver.ResolveCost(context.Background(), itemID, day(15))
	require.NoError(t, err)
	require.Equal(t, int64(900), cost)
}

func TestResolveCost_DateBeforeAllHistoryFallsToCatalog(t *testing.T) {
	resolver, history, catalog := newResolverFixture()
	itemID := seedPart(catalog, model.CostFields{CostPrice: 500, CostPriceSource: model.SourceManual})

	history.entries = append(history.entries,
		model.CostHistoryEntry{ID: uuid.New(), ItemID: itemID, CostPrice: 800, EffectiveDate: day(5)},
	)

	// No entry effective yet — never the earliest entry, always the catalog.
	cost, err := resolver.ResolveCost(context.Background(), itemID, day(2))
	require.NoError(t, err)
	require.Equal(t, int64(500), cost)
}

func TestResolveCost_ProjectedPolicy(t *testing.T) {
	resolver, history, catalog := newResolverFixture()
	itemID := seedPart(catalog, model.CostFields{CostPrice: 500, CostPriceSource: model.SourceProjected})

	// All history is in the future relative to the lookup date, so no entry
	// is effective — yet the same entries feed the regression.
	history.entries = append(history.entries,
		model.CostHistoryEntry{ID: uuid.New(), ItemID: itemID, CostPrice: 1000, EffectiveDate: day(10)},
		model.CostHistoryEntry{ID: uuid.New(), ItemID: itemID, CostPrice: 1100, EffectiveDate: day(20)},
	)

	cost, err := resolver.ResolveCost(context.Background(), itemID, day(0))
	require.NoError(t, err)
	require.Equal(t, int64(900), cost) // extrapolated backwards along the trend
}

func TestResolveCost_ProjectedFallsBackWithoutHistory(t *testing.T) {
	resolver, _, catalog := newResolverFixture()
	itemID := seedPart(catalog, model.CostFields{CostPrice: 750, CostPriceSource: model.SourceProjected})

	cost, err := resolver.ResolveCost(context.Background(), itemID, day(0))
	require.NoError(t, err)
	require.Equal(t, int64(750), cost)
}

func TestResolveCost_QuotesAreHistoryEntries(t *testing.T) {
	// Supplier quotes live in the same history table, so a quote effective
	// at or before the lookup date IS an effective history entry and wins
	// under rule 1 — the policy branch only matters when no entry qualifies.
	resolver, history, catalog := newResolverFixture()
	acme, bolts := "Acme", "BoltCo"
	itemID := seedPart(catalog, model.CostFields{
		CostPrice:       999,
		CostPriceSource: model.SourceSupplierLowest,
		Suppliers:       model.SupplierList{acme, bolts},
	})

	history.entries = append(history.entries,
		model.CostHistoryEntry{ID: uuid.New(), ItemID: itemID, CostPrice: 400, EffectiveDate: day(20), SupplierName: &acme},
		model.CostHistoryEntry{ID: uuid.New(), ItemID: itemID, CostPrice: 300, EffectiveDate: day(25), SupplierName: &bolts},
	)

	cost, err := resolver.ResolveCost(context.Background(), itemID, day(30))
	require.NoError(t, err)
	require.Equal(t, int64(300), cost) // latest effective entry, not lowest quote
}

func TestResolveCost_SupplierLowestFallsBackToManual(t *testing.T) {
	resolver, history, catalog := newResolverFixture()
	acme := "Acme"
	itemID := seedPart(catalog, model.CostFields{
		CostPrice:       999,
		CostPriceSource: model.SourceSupplierLowest,
		Suppliers:       model.SupplierList{acme},
	})

	// The only quote is future-dated: not effective as history, not eligible
	// as a quote — so the manual cost applies.
	history.entries = append(history.entries,
		model.CostHistoryEntry{ID: uuid.New(), ItemID: itemID, CostPrice: 400, EffectiveDate: day(20), SupplierName: &acme},
	)

	cost, err := resolver.ResolveCost(context.Background(), itemID, day(10))
	require.NoError(t, err)
	require.Equal(t, int64(999), cost)
}

func TestResolveCost_PreferredSupplierUnsetFallsBack(t *testing.T) {
	resolver, _, catalog := newResolverFixture()
	itemID := seedPart(catalog, model.CostFields{
		CostPrice:       650,
		CostPriceSource: model.SourcePreferredSupplier,
	})

	cost, err := resolver.ResolveCost(context.Background(), itemID, day(30))
	require.NoError(t, err)
	require.Equal(t, int64(650), cost)
}
