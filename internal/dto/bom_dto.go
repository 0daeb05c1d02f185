package dto

import "github.com/shopspring/decimal"

// BOMLine is one line of a typed BOM collection.
type BOMLine struct {
	ComponentID string          `json:"component_id" validate:"required,uuid"`
	Quantity    decimal.Decimal `json:"quantity_used"`
}

// BOMResponse is the normalized bill of materials for an owner.
type BOMResponse struct {
	OwnerID       string    `json:"owner_id"`
	OwnerType     string    `json:"owner_type"`
	Parts         []BOMLine `json:"parts"`
	Fasteners     []BOMLine `json:"fasteners"`
	SubAssemblies []BOMLine `json:"sub_assemblies"`
	Electrical    []BOMLine `json:"electrical"`
}

// PutBOMRequest replaces the whole BOM for an owner.
type PutBOMRequest struct {
	Parts         []BOMLine `json:"parts"`
	Fasteners     []BOMLine `json:"fasteners"`
	SubAssemblies []BOMLine `json:"sub_assemblies"`
	Electrical    []BOMLine `json:"electrical"`
}

// UpsertBOMLineRequest adds or replaces a single line in one typed
// collection. An existing component id in the same collection has its
// quantity replaced — never duplicated.
type UpsertBOMLineRequest struct {
	Collection  string          `json:"collection"   validate:"required,oneof=parts fasteners subAssemblies electrical"`
	ComponentID string          `json:"component_id" validate:"required,uuid"`
	Quantity    decimal.Decimal `json:"quantity_used"`
}

// RemoveBOMLineRequest removes a component from one typed collection.
type RemoveBOMLineRequest struct {
	Collection  string `json:"collection"   validate:"required,oneof=parts fasteners subAssemblies electrical"`
	ComponentID string `json:"component_id" validate:"required,uuid"`
}
