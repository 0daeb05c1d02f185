package dto

import "github.com/shopspring/decimal"

// ─── Cost resolution ─────────────────────────────────────────────────────────

// ItemCostResponse is the effective-dated cost of a single catalog item.
type ItemCostResponse struct {
	ItemID    string `json:"item_id"`
	Date      string `json:"date"`
	CostPrice int64  `json:"cost_price"`
}

// ForecastResponse carries a trend-projected cost with its fit quality.
type ForecastResponse struct {
	ItemID         string  `json:"item_id"`
	Date           string  `json:"date"`
	ForecastedCost int64   `json:"forecasted_cost"`
	Confidence     float64 `json:"confidence"`
}

// SupplierQuoteResponse is one resolved supplier price.
type SupplierQuoteResponse struct {
	SupplierName  string `json:"supplier_name"`
	CostPrice     int64  `json:"cost_price"`
	EffectiveDate string `json:"effective_date"`
}

// ─── BOM rollups ─────────────────────────────────────────────────────────────

// CostLine is one audit row of a product cost breakdown. The labour row is
// synthetic: type LABOUR, unit cost = hourly rate, quantity = hours.
type CostLine struct {
	ComponentID string          `json:"component_id,omitempty"`
	Type        string          `json:"type"`
	UnitCost    int64           `json:"unit_cost"`
	Quantity    decimal.Decimal `json:"quantity"`
	Subtotal    int64           `json:"subtotal"`
}

// ProductCostResponse is the full rollup for a product. Breakdown order is
// stable: parts, fasteners, sub-assemblies, electrical, then labour.
type ProductCostResponse struct {
	ProductID string     `json:"product_id"`
	Date      string     `json:"date"`
	TotalCost int64      `json:"total_cost"`
	Breakdown []CostLine `json:"breakdown"`
}

// SubAssemblyCostResponse is the single-total rollup for a sub-assembly —
// no breakdown array, by contract.
type SubAssemblyCostResponse struct {
	SubAssemblyID string `json:"sub_assembly_id"`
	Date          string `json:"date"`
	TotalCost     int64  `json:"total_cost"`
}
