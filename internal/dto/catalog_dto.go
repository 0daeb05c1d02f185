package dto

import "github.com/shopspring/decimal"

// ─── Catalog items (parts / fasteners / electrical share one shape) ──────────

type CreateItemRequest struct {
	SKU               string   `json:"sku"  validate:"required,min=2,max=64"`
	Name              string   `json:"name" validate:"required,min=2,max=160"`
	Description       *string  `json:"description"`
	CostPrice         int64    `json:"cost_price"         validate:"min=0"`
	CostPriceSource   string   `json:"cost_price_source"  validate:"omitempty,oneof=MANUAL SUPPLIER_LOWEST PREFERRED_SUPPLIER SELECTED_ENTRY PROJECTED"`
	PreferredSupplier *string  `json:"preferred_supplier"`
	Suppliers         []string `json:"suppliers"`
	ListPrice         int64    `json:"list_price" validate:"min=0"`
}

type UpdateItemRequest struct {
	Name              *string  `json:"name" validate:"omitempty,min=2,max=160"`
	Description       *string  `json:"description"`
	CostPrice         *int64   `json:"cost_price"        validate:"omitempty,min=0"`
	CostPriceSource   *string  `json:"cost_price_source" validate:"omitempty,oneof=MANUAL SUPPLIER_LOWEST PREFERRED_SUPPLIER SELECTED_ENTRY PROJECTED"`
	PreferredSupplier *string  `json:"preferred_supplier"`
	Suppliers         []string `json:"suppliers"`
	ListPrice         *int64   `json:"list_price" validate:"omitempty,min=0"`
}

type ItemResponse struct {
	ID                string   `json:"id"`
	Kind              string   `json:"kind"`
	SKU               string   `json:"sku"`
	Name              string   `json:"name"`
	Description       *string  `json:"description"`
	CostPrice         int64    `json:"cost_price"`
	CostPriceSource   string   `json:"cost_price_source"`
	PreferredSupplier *string  `json:"preferred_supplier"`
	Suppliers         []string `json:"suppliers"`
	ListPrice         int64    `json:"list_price"`
	Active            bool     `json:"active"`
}

// ─── Cost history ────────────────────────────────────────────────────────────

type CreateCostHistoryRequest struct {
	CostPrice     int64            `json:"cost_price"     validate:"min=0"`
	EffectiveDate string           `json:"effective_date" validate:"required"`
	SupplierName  *string          `json:"supplier_name"`
	Quantity      *decimal.Decimal `json:"quantity"`
	Notes         *string          `json:"notes"`
}

type CostHistoryResponse struct {
	ID            string           `json:"id"`
	ItemID        string           `json:"item_id"`
	CostPrice     int64            `json:"cost_price"`
	EffectiveDate string           `json:"effective_date"`
	SupplierName  *string          `json:"supplier_name"`
	Quantity      *decimal.Decimal `json:"quantity"`
	Notes         *string          `json:"notes"`
}

type CostHistoryListResponse struct {
	Data  []CostHistoryResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}
