package dto

type CreateSupplierRequest struct {
	Name  string  `json:"name" validate:"required,min=2,max=120"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone"`
}

type UpdateSupplierRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=120"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone"`
}

type SupplierResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  *string `json:"email"`
	Phone  *string `json:"phone"`
	Active bool    `json:"active"`
}

// ─── Design templates ────────────────────────────────────────────────────────

type MatrixRow struct {
	WidthMM int64 `json:"width"`
	Price   int64 `json:"price"`
}

type TemplateBOMLine struct {
	ComponentID string `json:"component_id" validate:"required,uuid"`
	Quantity    string `json:"quantity_used"`
}

type CreateTemplateRequest struct {
	Name               string             `json:"name" validate:"required,min=2,max=120"`
	PricingMatrix      []MatrixRow        `json:"pricing_matrix"`
	BasePrice          int64              `json:"base_price" validate:"min=0"`
	SetupFee           int64              `json:"setup_fee"  validate:"min=0"`
	LaborMinutes       int                `json:"labor_minutes" validate:"min=0"`
	InternalBOM        []TemplateBOMLine  `json:"internal_bom"`
	MaterialMultiplier map[string]float64 `json:"material_multiplier"`
}

type TemplateResponse struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	PricingMatrix      []MatrixRow        `json:"pricing_matrix"`
	BasePrice          int64              `json:"base_price"`
	SetupFee           int64              `json:"setup_fee"`
	LaborMinutes       int                `json:"labor_minutes"`
	InternalBOM        []TemplateBOMLine  `json:"internal_bom"`
	MaterialMultiplier map[string]float64 `json:"material_multiplier"`
}
