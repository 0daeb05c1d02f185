package service

import (
	"context"
	"testing"

	"fabcost/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type costingFixture struct {
	svc        CostingService
	history    *stubHistoryRepo
	catalog    *stubCatalogRepo
	boms       *stubBOMRepo
	assemblies *stubAssemblyRepo
}

func newCostingFixture(rate int64) *costingFixture {
	history := &stubHistoryRepo{}
	catalog := newStubCatalogRepo()
	boms := newStubBOMRepo()
	assemblies := newStubAssemblyRepo()
	resolver := NewCostResolver(history, catalog, NewSupplierPrices(history))
	return &costingFixture{
		svc:        NewCostingService(resolver, boms, assemblies, fixedRate(rate)),
		history:    history,
		catalog:    catalog,
		boms:       boms,
		assemblies: assemblies,
	}
}

func TestProductCost_EndToEnd(t *testing.T) {
	fx := newCostingFixture(4000)
	ctx := context.Background()

	// partA priced by history, fastenerB by catalog manual cost.
	partA := seedPart(fx.catalog, model.CostFields{CostPrice: 999})
	fx.history.entries = append(fx.history.entries,
		model.CostHistoryEntry{ID: uuid.New(), ItemID: partA, CostPrice: 250, EffectiveDate: day(0)},
	)
	fastenerB := &model.Fastener{SKU: "F-001", Name: "M8 Bolt", CostFields: model.CostFields{CostPrice: 10}, Active: true}
	require.NoError(t, fx.catalog.CreateFastener(ctx, fastenerB))

	product := &model.Product{
		SKU: "PR-001", Name: "Conveyor", Active: true,
		AssemblyFields: model.AssemblyFields{
			CostType:      model.CostCalculated,
			LabourHours:   1,
			LabourMinutes: 30,
		},
	}
	require.NoError(t, fx.assemblies.CreateProduct(ctx, product))
	require.NoError(t, fx.boms.Save(ctx, model.BOMOwnerProduct, product.ID, &model.BillOfMaterials{
		Parts:     []model.BOMEntry{{ComponentID: partA, Quantity: decimal.NewFromInt(3)}},
		Fasteners: []model.BOMEntry{{ComponentID: fastenerB.ID, Quantity: decimal.NewFromInt(20)}},
	}))

	resp, err := fx.svc.ProductCost(ctx, product.ID, day(10))
	require.NoError(t, err)

	// 3×250 + 20×10 + 90/60×4000 = 750 + 200 + 6000
	assert.Equal(t, int64(6950), resp.TotalCost)
	require.Len(t, resp.Breakdown, 3)
	assert.Equal(t, LineTypePart, resp.Breakdown[0].Type)
	assert.Equal(t, int64(750), resp.Breakdown[0].Subtotal)
	assert.Equal(t, LineTypeFastener, resp.Breakdown[1].Type)
	assert.Equal(t, int64(200), resp.Breakdown[1].Subtotal)
	assert.Equal(t, LineTypeLabour, resp.Breakdown[2].Type)
	assert.Equal(t, int64(6000), resp.Breakdown[2].Subtotal)
	assert.Equal(t, int64(4000), resp.Breakdown[2].UnitCost)
}

func TestProductCost_RoundsPerLine(t *testing.T) {
	fx := newCostingFixture(0)
	ctx := context.Background()

	// Two half-quantity lines at 101 cents: each rounds to 51, so the total
	// is 102 — not 101, which summing raw values and rounding once would give.
	a := seedPart(fx.catalog, model.CostFields{CostPrice: 101})
	b := seedPart(fx.catalog, model.CostFields{CostPrice: 101})

	product := &model.Product{SKU: "PR-R", Name: "Rounding", Active: true}
	require.NoError(t, fx.assemblies.CreateProduct(ctx, product))
	half := decimal.NewFromFloat(0.5)
	require.NoError(t, fx.boms.Save(ctx, model.BOMOwnerProduct, product.ID, &model.BillOfMaterials{
		Parts: []model.BOMEntry{
			{ComponentID: a, Quantity: half},
			{ComponentID: b, Quantity: half},
		},
	}))

	resp, err := fx.svc.ProductCost(ctx, product.ID, day(1))
	require.NoError(t, err)
	assert.Equal(t, int64(102), resp.TotalCost)
}

func TestProductCost_ManualSubAssemblyOverridesBOM(t *testing.T) {
	fx := newCostingFixture(1000)
	ctx := context.Background()

	expensive := seedPart(fx.catalog, model.CostFields{CostPrice: 100000})

	sub := &model.SubAssembly{
		SKU: "SA-001", Name: "Drive Unit", Active: true,
		AssemblyFields: model.AssemblyFields{CostType: model.CostManual, ManualCost: 5000},
	}
	require.NoError(t, fx.assemblies.CreateSubAssembly(ctx, sub))
	// The BOM exists but must be ignored entirely under the manual override.
	require.NoError(t, fx.boms.Save(ctx, model.BOMOwnerSubAssembly, sub.ID, &model.BillOfMaterials{
		Parts: []model.BOMEntry{{ComponentID: expensive, Quantity: decimal.NewFromInt(5)}},
	}))

	product := &model.Product{SKU: "PR-002", Name: "Assembly Host", Active: true}
	require.NoError(t, fx.assemblies.CreateProduct(ctx, product))
	require.NoError(t, fx.boms.Save(ctx, model.BOMOwnerProduct, product.ID, &model.BillOfMaterials{
		SubAssemblies: []model.BOMEntry{{ComponentID: sub.ID, Quantity: decimal.NewFromInt(2)}},
	}))

	resp, err := fx.svc.ProductCost(ctx, product.ID, day(1))
	require.NoError(t, err)
	assert.Equal(t, int64(10000), resp.TotalCost)
	require.Len(t, resp.Breakdown, 1)
	assert.Equal(t, LineTypeSubAssembly, resp.Breakdown[0].Type)
	assert.Equal(t, int64(5000), resp.Breakdown[0].UnitCost)
}

func TestProductCost_UnknownComponentCostsZero(t *testing.T) {
	fx := newCostingFixture(0)
	ctx := context.Background()

	product := &model.Product{SKU: "PR-003", Name: "Sparse", Active: true}
	require.NoError(t, fx.assemblies.CreateProduct(ctx, product))
	require.NoError(t, fx.boms.Save(ctx, model.BOMOwnerProduct, product.ID, &model.BillOfMaterials{
		Parts: []model.BOMEntry{{ComponentID: uuid.New(), Quantity: decimal.NewFromInt(4)}},
	}))

	resp, err := fx.svc.ProductCost(ctx, product.ID, day(1))
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.TotalCost)
	require.Len(t, resp.Breakdown, 1)
	assert.Equal(t, int64(0), resp.Breakdown[0].UnitCost)
}

func TestProductCost_UnknownProduct(t *testing.T) {
	fx := newCostingFixture(0)

	_, err := fx.svc.ProductCost(context.Background(), uuid.New(), day(1))
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestSubAssemblyCost_RollupWithLabour(t *testing.T) {
	fx := newCostingFixture(3000)
	ctx := context.Background()

	part := seedPart(fx.catalog, model.CostFields{CostPrice: 400})

	sub := &model.SubAssembly{
		SKU: "SA-002", Name: "Frame", Active: true,
		AssemblyFields: model.AssemblyFields{
			CostType:      model.CostCalculated,
			LabourMinutes: 90,
		},
	}
	require.NoError(t, fx.assemblies.CreateSubAssembly(ctx, sub))
	require.NoError(t, fx.boms.Save(ctx, model.BOMOwnerSubAssembly, sub.ID, &model.BillOfMaterials{
		Parts: []model.BOMEntry{{ComponentID: part, Quantity: decimal.NewFromInt(2)}},
	}))

	// 2×400 + 90/60×3000 = 800 + 4500
	total, err := fx.svc.SubAssemblyCost(ctx, sub.ID, day(1))
	require.NoError(t, err)
	assert.Equal(t, int64(5300), total)
}

func TestSubAssemblyCost_CycleDetected(t *testing.T) {
	fx := newCostingFixture(0)
	ctx := context.Background()

	a := &model.SubAssembly{SKU: "SA-A", Name: "A", Active: true,
		AssemblyFields: model.AssemblyFields{CostType: model.CostCalculated}}
	b := &model.SubAssembly{SKU: "SA-B", Name: "B", Active: true,
		AssemblyFields: model.AssemblyFields{CostType: model.CostCalculated}}
	require.NoError(t, fx.assemblies.CreateSubAssembly(ctx, a))
	require.NoError(t, fx.assemblies.CreateSubAssembly(ctx, b))

	one := decimal.NewFromInt(1)
	require.NoError(t, fx.boms.Save(ctx, model.BOMOwnerSubAssembly, a.ID, &model.BillOfMaterials{
		SubAssemblies: []model.BOMEntry{{ComponentID: b.ID, Quantity: one}},
	}))
	require.NoError(t, fx.boms.Save(ctx, model.BOMOwnerSubAssembly, b.ID, &model.BillOfMaterials{
		SubAssemblies: []model.BOMEntry{{ComponentID: a.ID, Quantity: one}},
	}))

	_, err := fx.svc.SubAssemblyCost(ctx, a.ID, day(1))
	require.ErrorIs(t, err, ErrCyclicBOM)
}

func TestProductCost_SharedSubAssemblyIsNotACycle(t *testing.T) {
	fx := newCostingFixture(0)
	ctx := context.Background()

	part := seedPart(fx.catalog, model.CostFields{CostPrice: 100})

	// Diamond: product → {A, B}, A → C, B → C. C appears on two sibling
	// branches but never on its own ancestor chain, so this must cost, not
	// trip the cycle guard.
	newSub := func(sku string) *model.SubAssembly {
		sub := &model.SubAssembly{SKU: sku, Name: sku, Active: true,
			AssemblyFields: model.AssemblyFields{CostType: model.CostCalculated}}
		require.NoError(t, fx.assemblies.CreateSubAssembly(ctx, sub))
		return sub
	}
	a, b, c := newSub("SA-DA"), newSub("SA-DB"), newSub("SA-DC")

	one := decimal.NewFromInt(1)
	require.NoError(t, fx.boms.Save(ctx, model.BOMOwnerSubAssembly, c.ID, &model.BillOfMaterials{
		Parts: []model.BOMEntry{{ComponentID: part, Quantity: one}},
	}))
	for _, parent := range []*model.SubAssembly{a, b} {
		require.NoError(t, fx.boms.Save(ctx, model.BOMOwnerSubAssembly, parent.ID, &model.BillOfMaterials{
			SubAssemblies: []model.BOMEntry{{ComponentID: c.ID, Quantity: one}},
		}))
	}

	product := &model.Product{SKU: "PR-D", Name: "Diamond", Active: true}
	require.NoError(t, fx.assemblies.CreateProduct(ctx, product))
	require.NoError(t, fx.boms.Save(ctx, model.BOMOwnerProduct, product.ID, &model.BillOfMaterials{
		SubAssemblies: []model.BOMEntry{
			{ComponentID: a.ID, Quantity: one},
			{ComponentID: b.ID, Quantity: one},
		},
	}))

	resp, err := fx.svc.ProductCost(ctx, product.ID, day(1))
	require.NoError(t, err)
	assert.Equal(t, int64(200), resp.TotalCost)
	require.Len(t, resp.Breakdown, 2)
	assert.Equal(t, int64(100), resp.Breakdown[0].Subtotal)
	assert.Equal(t, int64(100), resp.Breakdown[1].Subtotal)
}
