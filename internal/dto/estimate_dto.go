package dto

// EstimateRequest drives the one-shot manufactured-part estimator.
// LoadingKgM is recorded with the estimate but does not enter the
// arithmetic — pricing matrices are keyed by width only.
type EstimateRequest struct {
	Type       string  `json:"type"        validate:"required"`
	WidthMM    int64   `json:"width_mm"    validate:"min=0"`
	Material   string  `json:"material"`
	TemplateID string  `json:"template_id" validate:"required,uuid"`
	LoadingKgM float64 `json:"loading_kg_m" validate:"min=0"`
	Quantity   int64   `json:"quantity"    validate:"min=0"`
}

// EstimateResponse is the estimator's cost split. All values are cents.
type EstimateResponse struct {
	Type             string  `json:"type"`
	WidthMM          int64   `json:"width_mm"`
	Material         string  `json:"material"`
	LoadingKgM       float64 `json:"loading_kg_m"`
	Quantity         int64   `json:"quantity"`
	FabricatorCost   int64   `json:"fabricator_cost"`
	InternalPartCost int64   `json:"internal_part_cost"`
	LaborCost        int64   `json:"labor_cost"`
	TotalEstimate    int64   `json:"total_estimate"`
}
