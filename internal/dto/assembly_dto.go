package dto

import "github.com/shopspring/decimal"

// ─── Sub-assemblies / products (shared shape) ────────────────────────────────

type CreateAssemblyRequest struct {
	SKU                 string           `json:"sku"  validate:"required,min=2,max=64"`
	Name                string           `json:"name" validate:"required,min=2,max=160"`
	Description         *string          `json:"description"`
	CostType            string           `json:"cost_type"       validate:"omitempty,oneof=MANUAL CALCULATED"`
	ManualCost          int64            `json:"manual_cost"     validate:"min=0"`
	LabourHours         int              `json:"labour_hours"    validate:"min=0"`
	LabourMinutes       int              `json:"labour_minutes"  validate:"min=0,max=59"`
	ListPrice           int64            `json:"list_price"      validate:"min=0"`
	ListPriceSource     string           `json:"list_price_source" validate:"omitempty,oneof=MANUAL CALCULATED"`
	TargetMarginPercent *decimal.Decimal `json:"target_margin_percent"`
}

type UpdateAssemblyRequest struct {
	Name                *string          `json:"name" validate:"omitempty,min=2,max=160"`
	Description         *string          `json:"description"`
	CostType            *string          `json:"cost_type"       validate:"omitempty,oneof=MANUAL CALCULATED"`
	ManualCost          *int64           `json:"manual_cost"     validate:"omitempty,min=0"`
	LabourHours         *int             `json:"labour_hours"    validate:"omitempty,min=0"`
	LabourMinutes       *int             `json:"labour_minutes"  validate:"omitempty,min=0,max=59"`
	ListPrice           *int64           `json:"list_price"      validate:"omitempty,min=0"`
	ListPriceSource     *string          `json:"list_price_source" validate:"omitempty,oneof=MANUAL CALCULATED"`
	TargetMarginPercent *decimal.Decimal `json:"target_margin_percent"`
}

type AssemblyResponse struct {
	ID                  string          `json:"id"`
	SKU                 string          `json:"sku"`
	Name                string          `json:"name"`
	Description         *string         `json:"description"`
	CostType            string          `json:"cost_type"`
	ManualCost          int64           `json:"manual_cost"`
	LabourHours         int             `json:"labour_hours"`
	LabourMinutes       int             `json:"labour_minutes"`
	ListPrice           int64           `json:"list_price"`
	ListPriceSource     string          `json:"list_price_source"`
	TargetMarginPercent decimal.Decimal `json:"target_margin_percent"`
	CachedCost          int64           `json:"cached_cost"`
	Active              bool            `json:"active"`
}
