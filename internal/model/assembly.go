package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CostType selects between a hand-entered cost and a BOM rollup.
type CostType string

const (
	CostManual     CostType = "MANUAL"
	CostCalculated CostType = "CALCULATED"
)

// PriceSource selects between a hand-entered list price and one derived
// from cost and target margin.
type PriceSource string

const (
	PriceManual     PriceSource = "MANUAL"
	PriceCalculated PriceSource = "CALCULATED"
)

// AssemblyFields is the costing block shared by sub-assemblies and products.
// ManualCost (cents) applies only when CostType is MANUAL — the BOM is then
// ignored entirely, which is a deliberate override. CachedCost is the last
// rollup computed by the recost worker, kept for list display; the costing
// endpoints always compute fresh.
type AssemblyFields struct {
	CostType        CostType    `gorm:"size:16;not null;default:'CALCULATED'"`
	ManualCost      int64       `gorm:"not null;default:0"`
	LabourHours     int         `gorm:"not null;default:0"`
	LabourMinutes   int         `gorm:"not null;default:0"`
	ListPrice       int64       `gorm:"not null;default:0"`
	ListPriceSource PriceSource `gorm:"size:16;not null;default:'MANUAL'"`
	// TargetMarginPercent drives CALCULATED list prices:
	// list = cost / (1 - margin/100)
	TargetMarginPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	CachedCost          int64           `gorm:"not null;default:0"`
}

// TotalLabourMinutes returns hours+minutes flattened to minutes.
func (a *AssemblyFields) TotalLabourMinutes() int {
	return a.LabourHours*60 + a.LabourMinutes
}

// SubAssembly is a manufactured intermediate. Its BOM holds parts,
// fasteners and electrical lines (never products, which prevents
// product-level cycles by construction).
type SubAssembly struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU         string    `gorm:"uniqueIndex;not null"`
	Name        string    `gorm:"index;not null"`
	Description *string
	AssemblyFields
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product is a sellable manufactured item. Its BOM may additionally
// reference sub-assemblies (one level of composition).
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU         string    `gorm:"uniqueIndex;not null"`
	Name        string    `gorm:"index;not null"`
	Description *string
	AssemblyFields
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
