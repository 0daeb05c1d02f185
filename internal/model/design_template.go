package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PricingMatrixRow maps a frame width (mm) to a fabricator price in cents.
// Lookup is by exact width — no interpolation between rows.
type PricingMatrixRow struct {
	WidthMM int64 `json:"width"`
	Price   int64 `json:"price"`
}

// PricingMatrix is the ordered width → price table of a design template.
type PricingMatrix []PricingMatrixRow

func (m PricingMatrix) Value() (driver.Value, error) {
	if m == nil {
		return "[]", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *PricingMatrix) Scan(value interface{}) error {
	return scanJSON(value, m, "pricing matrix")
}

// PriceForWidth returns the price for an exact width match.
// ok is false when no row matches — callers treat that as a zero
// fabricator cost, not an error.
func (m PricingMatrix) PriceForWidth(widthMM int64) (int64, bool) {
	for _, row := range m {
		if row.WidthMM == widthMM {
			return row.Price, true
		}
	}
	return 0, false
}

// MaterialMultipliers maps a material code (e.g. "SS") to a cost multiplier
// applied to the fabricator cost only.
type MaterialMultipliers map[string]float64

func (mm MaterialMultipliers) Value() (driver.Value, error) {
	if mm == nil {
		return "{}", nil
	}
	b, err := json.Marshal(mm)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (mm *MaterialMultipliers) Scan(value interface{}) error {
	return scanJSON(value, mm, "material multipliers")
}

// InternalBOM holds the template's embedded component lines, costed at
// estimate time via the cost resolver.
type InternalBOM []BOMEntry

func (b InternalBOM) Value() (driver.Value, error) {
	if b == nil {
		return "[]", nil
	}
	buf, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

func (b *InternalBOM) Scan(value interface{}) error {
	return scanJSON(value, b, "internal BOM")
}

func scanJSON(value interface{}, dest interface{}, what string) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("%s: unsupported scan type %T", what, value)
	}
}

// DesignTemplate is a manufacturing pricing template for the one-shot
// estimator. Read-only input per estimate — never mutated by costing.
type DesignTemplate struct {
	ID                 uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name               string              `gorm:"uniqueIndex;not null"`
	PricingMatrix      PricingMatrix       `gorm:"type:jsonb;not null;default:'[]'"`
	BasePrice          int64               `gorm:"not null;default:0"`
	SetupFee           int64               `gorm:"not null;default:0"`
	LaborMinutes       int                 `gorm:"not null;default:0"`
	InternalBOM        InternalBOM         `gorm:"type:jsonb;not null;default:'[]'"`
	MaterialMultiplier MaterialMultipliers `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
