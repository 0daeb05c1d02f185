package service

import (
	"testing"
	"time"

	"fabcost/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func entry(effective time.Time, cents int64) model.CostHistoryEntry {
	return model.CostHistoryEntry{EffectiveDate: effective, CostPrice: cents}
}

func TestForecastCost_InsufficientHistory(t *testing.T) {
	assert.Nil(t, ForecastCost(nil, day(30)))
	assert.Nil(t, ForecastCost([]model.CostHistoryEntry{entry(day(0), 1000)}, day(30)))
}

func TestForecastCost_AllEntriesSameDay(t *testing.T) {
	history := []model.CostHistoryEntry{
		entry(day(5), 1000),
		entry(day(5), 1200),
	}
	assert.Nil(t, ForecastCost(history, day(30)))
}

func TestForecastCost_LinearTrend(t *testing.T) {
	// 1000 → 1100 over ten days: slope of 10 cents/day, a perfect fit.
	history := []model.CostHistoryEntry{
		entry(day(0), 1000),
		entry(day(10), 1100),
	}

	f := ForecastCost(history, day(20))
	require.NotNil(t, f)
	assert.Equal(t, int64(1200), f.Cost)
	assert.InDelta(t, 1.0, f.Confidence, 1e-9)
}

func TestForecastCost_UnorderedHistory(t *testing.T) {
	// Earliest entry is not first — the regression must not depend on order.
	history := []model.CostHistoryEntry{
		entry(day(10), 1100),
		entry(day(0), 1000),
		entry(day(20), 1200),
	}

	f := ForecastCost(history, day(30))
	require.NotNil(t, f)
	assert.Equal(t, int64(1300), f.Cost)
}

func TestForecastCost_NegativeProjectionClampsToZero(t *testing.T) {
	// Steep decline: extrapolation goes below zero, cost floors at 0.
	history := []model.CostHistoryEntry{
		entry(day(0), 1000),
		entry(day(1), 100),
	}

	f := ForecastCost(history, day(10))
	require.NotNil(t, f)
	assert.Equal(t, int64(0), f.Cost)
}

func TestForecastCost_NoisyHistoryLowersConfidence(t *testing.T) {
	history := []model.CostHistoryEntry{
		entry(day(0), 1000),
		entry(day(10), 5000),
		entry(day(20), 900),
		entry(day(30), 4800),
	}

	f := ForecastCost(history, day(40))
	require.NotNil(t, f)
	assert.Less(t, f.Confidence, 1.0)
	assert.GreaterOrEqual(t, f.Confidence, 0.0)
}

func TestForecastCost_Deterministic(t *testing.T) {
	history := []model.CostHistoryEntry{
		entry(day(0), 1000),
		entry(day(7), 1030),
		entry(day(14), 1065),
	}

	a := ForecastCost(history, day(28))
	b := ForecastCost(history, day(28))
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, a.Cost, b.Cost)
	assert.Equal(t, a.Confidence, b.Confidence)
}
