package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CostHistoryEntry records one historical price for an item (or product).
// Entries are append-only; together they form a step function of cost over
// time. The effective entry for a lookup date is the one with the latest
// EffectiveDate <= date — if none qualifies, history does not apply and the
// catalog pricing policy takes over.
//
// SupplierName is set on supplier quotes; entries without it are internal
// cost records. Quantity and Notes are informational only.
type CostHistoryEntry struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ItemID        uuid.UUID `gorm:"type:uuid;not null;index"`
	CostPrice     int64     `gorm:"not null"`
	EffectiveDate time.Time `gorm:"not null;index"`
	SupplierName  *string   `gorm:"size:120"`
	Quantity      *decimal.Decimal `gorm:"type:decimal(12,4)"`
	Notes         *string
	CreatedAt     time.Time
}
