package dto

// LabourRateResponse is the process-wide labour rate singleton.
type LabourRateResponse struct {
	CentsPerHour int64 `json:"cents_per_hour"`
}

// UpdateLabourRateRequest replaces the labour rate. Every subsequent cost
// calculation uses the new value; CALCULATED products are re-costed async.
type UpdateLabourRateRequest struct {
	CentsPerHour int64 `json:"cents_per_hour" validate:"min=0"`
}
