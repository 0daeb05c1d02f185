package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CostPriceSource selects the pricing policy applied when no effective-dated
// history entry exists for an item.
type CostPriceSource string

const (
	SourceManual            CostPriceSource = "MANUAL"
	SourceSupplierLowest    CostPriceSource = "SUPPLIER_LOWEST"
	SourcePreferredSupplier CostPriceSource = "PREFERRED_SUPPLIER"
	SourceSelectedEntry     CostPriceSource = "SELECTED_ENTRY"
	SourceProjected         CostPriceSource = "PROJECTED"
)

// SupplierList is stored as a JSONB array of supplier names.
// It acts as the eligibility filter for SUPPLIER_LOWEST resolution.
type SupplierList []string

func (s SupplierList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *SupplierList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("supplier list: unsupported scan type %T", value)
	}
}

// Contains reports whether name is in the eligibility set.
func (s SupplierList) Contains(name string) bool {
	for _, n := range s {
		if n == name {
			return true
		}
	}
	return false
}

// CostFields is the pricing block shared by every costable catalog item.
// CostPrice is the manual cost in integer cents — the final fallback for
// every pricing policy.
type CostFields struct {
	CostPrice         int64           `gorm:"not null;default:0"`
	CostPriceSource   CostPriceSource `gorm:"size:24;not null;default:'MANUAL'"`
	PreferredSupplier *string         `gorm:"size:120"`
	Suppliers         SupplierList    `gorm:"type:jsonb;not null;default:'[]'"`
	ListPrice         int64           `gorm:"not null;default:0"`
}

// Part is a purchased or fabricated mechanical component.
type Part struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU         string    `gorm:"uniqueIndex;not null"`
	Name        string    `gorm:"index;not null"`
	Description *string
	CostFields
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Fastener is a bolt/nut/washer style consumable, costed like a part but
// kept in its own catalog.
type Fastener struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU         string    `gorm:"uniqueIndex;not null"`
	Name        string    `gorm:"index;not null"`
	Description *string
	CostFields
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ElectricalItem is an electrical component (motor, sensor, cabling).
type ElectricalItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU         string    `gorm:"uniqueIndex;not null"`
	Name        string    `gorm:"index;not null"`
	Description *string
	CostFields
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ItemKind tags which catalog a costable item was found in.
type ItemKind string

const (
	KindPart       ItemKind = "PART"
	KindFastener   ItemKind = "FASTENER"
	KindElectrical ItemKind = "ELECTRICAL"
)

// CatalogItem is the tagged result of the polymorphic catalog lookup.
// Items carry no home-catalog tag of their own, so the lookup probes the
// three catalogs in a fixed order (parts, fasteners, electrical).
type CatalogItem struct {
	Kind ItemKind
	ID   uuid.UUID
	SKU  string
	Name string
	CostFields
}
