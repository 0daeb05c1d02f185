package service

import (
	"math"
	"time"

	"fabcost/internal/model"
)

// LowConfidenceThreshold is the R² below which callers log a warning.
// A low-confidence forecast is still USED — policy favours returning a
// number over rejecting a weak projection.
const LowConfidenceThreshold = 0.3

// Forecast is a trend-projected cost with the quality of the underlying fit.
type Forecast struct {
	Cost       int64   // cents, never negative
	Confidence float64 // R² of the linear fit, in [0,1]
}

// ForecastCost fits an ordinary least-squares line through the item's cost
// history (cents against days since the earliest entry) and extrapolates it
// at target. Returns nil when fewer than two entries exist or when all
// entries share one effective date — insufficient data, the caller falls
// back to the current cost. Deterministic: same history and date always
// produce the same result.
func ForecastCost(history []model.CostHistoryEntry, target time.Time) *Forecast {
	if len(history) < 2 {
		return nil
	}

	earliest := history[0].EffectiveDate
	for _, e := range history[1:] {
		if e.EffectiveDate.Before(earliest) {
			earliest = e.EffectiveDate
		}
	}

	n := float64(len(history))
	var sumX, sumY, sumXY, sumXX float64
	for _, e := range history {
		x := e.EffectiveDate.Sub(earliest).Hours() / 24
		y := float64(e.CostPrice)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		// All entries on the same day — no time axis to regress over.
		return nil
	}

	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	// R² — fraction of cost variance explained by the trend.
	meanY := sumY / n
	var ssRes, ssTot float64
	for _, e := range history {
		x := e.EffectiveDate.Sub(earliest).Hours() / 24
		y := float64(e.CostPrice)
		fit := intercept + slope*x
		ssRes += (y - fit) * (y - fit)
		ssTot += (y - meanY) * (y - meanY)
	}

	confidence := 1.0
	if ssTot > 0 {
		confidence = 1 - ssRes/ssTot
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	xT := target.Sub(earliest).Hours() / 24
	projected := math.Round(intercept + slope*xT)
	if projected < 0 {
		projected = 0
	}

	return &Forecast{Cost: int64(projected), Confidence: confidence}
}
