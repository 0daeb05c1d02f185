package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BOMOwnerType distinguishes whose bill of materials a document belongs to.
type BOMOwnerType string

const (
	BOMOwnerProduct     BOMOwnerType = "product"
	BOMOwnerSubAssembly BOMOwnerType = "subassembly"
)

// BOMEntry is one line in a bill of materials. Quantity is a non-negative
// real number (fractional usage is normal for cut stock, cable, paint).
type BOMEntry struct {
	ComponentID uuid.UUID       `json:"componentId"`
	Quantity    decimal.Decimal `json:"quantityUsed"`
}

// BillOfMaterials is the normalized, typed view of a BOM document.
// A component id appears at most once per typed collection — add/update
// semantics replace the existing line rather than duplicating it.
type BillOfMaterials struct {
	Parts         []BOMEntry `json:"parts"`
	Fasteners     []BOMEntry `json:"fasteners"`
	SubAssemblies []BOMEntry `json:"subAssemblies"`
	Electrical    []BOMEntry `json:"electrical"`
}

// Lines returns the typed collection for kind, or nil for an unknown kind.
func (b *BillOfMaterials) Lines(kind string) []BOMEntry {
	switch kind {
	case "parts":
		return b.Parts
	case "fasteners":
		return b.Fasteners
	case "subAssemblies":
		return b.SubAssemblies
	case "electrical":
		return b.Electrical
	}
	return nil
}

// IsEmpty reports whether the BOM has no lines in any collection.
func (b *BillOfMaterials) IsEmpty() bool {
	return len(b.Parts) == 0 && len(b.Fasteners) == 0 &&
		len(b.SubAssemblies) == 0 && len(b.Electrical) == 0
}

// BOMDocument is the persisted form: one JSONB payload per owner.
// Legacy documents may store a bare array in place of the object shape
// (meaning "this is the parts list") — the repository normalizes both
// shapes into BillOfMaterials on fetch, so nothing above the repository
// ever branches on payload shape.
type BOMDocument struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerType BOMOwnerType `gorm:"size:16;not null;uniqueIndex:idx_bom_owner"`
	OwnerID   uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_bom_owner"`
	Payload   []byte       `gorm:"type:jsonb;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
