package service

import (
	"context"
	"testing"

	"fabcost/internal/dto"
	"fabcost/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBOMFixture(t *testing.T) (BOMService, uuid.UUID, uuid.UUID) {
	t.Helper()
	boms := newStubBOMRepo()
	assemblies := newStubAssemblyRepo()

	product := &model.Product{SKU: "PR-B", Name: "Host", Active: true}
	require.NoError(t, assemblies.CreateProduct(context.Background(), product))
	sub := &model.SubAssembly{SKU: "SA-B", Name: "Child", Active: true}
	require.NoError(t, assemblies.CreateSubAssembly(context.Background(), sub))

	return NewBOMService(boms, assemblies), product.ID, sub.ID
}

func TestBOMPut_DeduplicatesRepeatedComponent(t *testing.T) {
	svc, productID, _ := newBOMFixture(t)
	componentID := uuid.NewString()

	resp, err := svc.Put(context.Background(), model.BOMOwnerProduct, productID, dto.PutBOMRequest{
		Parts: []dto.BOMLine{
			{ComponentID: componentID, Quantity: decimal.NewFromInt(2)},
			{ComponentID: componentID, Quantity: decimal.NewFromInt(7)},
		},
	})
	require.NoError(t, err)

	// Last occurrence wins, no duplicate line.
	require.Len(t, resp.Parts, 1)
	assert.True(t, resp.Parts[0].Quantity.Equal(decimal.NewFromInt(7)))
}

func TestBOMUpsertLine_ReplacesQuantityInPlace(t *testing.T) {
	svc, productID, _ := newBOMFixture(t)
	componentID := uuid.NewString()
	ctx := context.Background()

	_, err := svc.UpsertLine(ctx, model.BOMOwnerProduct, productID, dto.UpsertBOMLineRequest{
		Collection: "fasteners", ComponentID: componentID, Quantity: decimal.NewFromInt(4),
	})
	require.NoError(t, err)

	resp, err := svc.UpsertLine(ctx, model.BOMOwnerProduct, productID, dto.UpsertBOMLineRequest{
		Collection: "fasteners", ComponentID: componentID, Quantity: decimal.NewFromInt(9),
	})
	require.NoError(t, err)

	require.Len(t, resp.Fasteners, 1)
	assert.True(t, resp.Fasteners[0].Quantity.Equal(decimal.NewFromInt(9)))
}

func TestBOMRemoveLine(t *testing.T) {
	svc, productID, _ := newBOMFixture(t)
	keep, drop := uuid.NewString(), uuid.NewString()
	ctx := context.Background()

	_, err := svc.Put(ctx, model.BOMOwnerProduct, productID, dto.PutBOMRequest{
		Parts: []dto.BOMLine{
			{ComponentID: keep, Quantity: decimal.NewFromInt(1)},
			{ComponentID: drop, Quantity: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)

	resp, err := svc.RemoveLine(ctx, model.BOMOwnerProduct, productID, dto.RemoveBOMLineRequest{
		Collection: "parts", ComponentID: drop,
	})
	require.NoError(t, err)

	require.Len(t, resp.Parts, 1)
	assert.Equal(t, keep, resp.Parts[0].ComponentID)
}

func TestBOMPut_SubAssemblyCannotNestSubAssemblies(t *testing.T) {
	svc, _, subID := newBOMFixture(t)

	_, err := svc.Put(context.Background(), model.BOMOwnerSubAssembly, subID, dto.PutBOMRequest{
		SubAssemblies: []dto.BOMLine{{ComponentID: uuid.NewString(), Quantity: decimal.NewFromInt(1)}},
	})
	require.Error(t, err)

	_, err = svc.UpsertLine(context.Background(), model.BOMOwnerSubAssembly, subID, dto.UpsertBOMLineRequest{
		Collection: "subAssemblies", ComponentID: uuid.NewString(), Quantity: decimal.NewFromInt(1),
	})
	require.Error(t, err)
}

func TestBOMGet_UnknownOwner(t *testing.T) {
	svc, _, _ := newBOMFixture(t)

	_, err := svc.Get(context.Background(), model.BOMOwnerProduct, uuid.New())
	require.ErrorIs(t, err, ErrProductNotFound)

	_, err = svc.Get(context.Background(), model.BOMOwnerSubAssembly, uuid.New())
	require.ErrorIs(t, err, ErrSubAssemblyNotFound)
}

func TestBOMGet_MissingDocumentIsEmpty(t *testing.T) {
	svc, productID, _ := newBOMFixture(t)

	resp, err := svc.Get(context.Background(), model.BOMOwnerProduct, productID)
	require.NoError(t, err)
	assert.Empty(t, resp.Parts)
	assert.Empty(t, resp.Fasteners)
	assert.Empty(t, resp.SubAssemblies)
	assert.Empty(t, resp.Electrical)
}
