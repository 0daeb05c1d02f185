package model

import (
	"time"

	"github.com/google/uuid"
)

// Supplier is a vendor record. Supplier NAMES (not ids) are what cost
// history entries and item eligibility sets carry — this registry exists
// for contact bookkeeping and for building eligibility sets in the UI.
type Supplier struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	Email     *string
	Phone     *string
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
