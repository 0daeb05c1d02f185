package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBOMPayload_ObjectShape(t *testing.T) {
	partID := uuid.New()
	subID := uuid.New()
	payload := []byte(`{
		"parts": [{"componentId": "` + partID.String() + `", "quantityUsed": "2.5"}],
		"subAssemblies": [{"componentId": "` + subID.String() + `", "quantityUsed": "1"}]
	}`)

	bom, err := normalizeBOMPayload(payload)
	require.NoError(t, err)
	require.Len(t, bom.Parts, 1)
	assert.Equal(t, partID, bom.Parts[0].ComponentID)
	assert.True(t, bom.Parts[0].Quantity.Equal(decimal.NewFromFloat(2.5)))
	require.Len(t, bom.SubAssemblies, 1)
	assert.Empty(t, bom.Fasteners)
	assert.Empty(t, bom.Electrical)
}

func TestNormalizeBOMPayload_LegacyBareArrayIsPartsList(t *testing.T) {
	partID := uuid.New()
	payload := []byte(`  [{"componentId": "` + partID.String() + `", "quantityUsed": "3"}]`)

	bom, err := normalizeBOMPayload(payload)
	require.NoError(t, err)
	require.Len(t, bom.Parts, 1)
	assert.Equal(t, partID, bom.Parts[0].ComponentID)
	assert.Empty(t, bom.Fasteners)
	assert.Empty(t, bom.SubAssemblies)
	assert.Empty(t, bom.Electrical)
}

func TestNormalizeBOMPayload_EmptyObject(t *testing.T) {
	bom, err := normalizeBOMPayload([]byte(`{}`))
	require.NoError(t, err)
	assert.True(t, bom.IsEmpty())
}

func TestNormalizeBOMPayload_Corrupt(t *testing.T) {
	_, err := normalizeBOMPayload([]byte(`{"parts": "nope"}`))
	require.Error(t, err)

	_, err = normalizeBOMPayload([]byte(`[{"componentId": 42}]`))
	require.Error(t, err)
}
