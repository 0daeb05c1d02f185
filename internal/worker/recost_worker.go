package worker

// recost_worker.go
// Processes recost jobs from QueueRecost. A "recost" job recomputes one
// CALCULATED product's rollup, refreshes its cached cost and derived list
// price, and raises a cost alert when the change crosses the configured
// threshold. A "recost_sweep" job fans out into one recost job per active
// CALCULATED product — cheap to enqueue, so labour-rate updates and the
// periodic cron both trigger sweeps freely.

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"fabcost/internal/dto"
	"fabcost/internal/infra"
	"fabcost/internal/model"
	"fabcost/internal/repository"
	"fabcost/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// RecostWorker recomputes product cost rollups in the background.
type RecostWorker struct {
	costing        service.CostingService
	assemblies     repository.AssemblyRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
	alertEmail     string
	alertThreshold float64 // percent change that triggers an alert
}

func NewRecostWorker(
	costing service.CostingService,
	assemblies repository.AssemblyRepository,
	dispatcher *Dispatcher,
	pdfStoragePath string,
	alertEmail string,
	alertThreshold float64,
) *RecostWorker {
	return &RecostWorker{
		costing:        costing,
		assemblies:     assemblies,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
		alertEmail:     alertEmail,
		alertThreshold: alertThreshold,
	}
}

// ProcessSweep fans the sweep out into per-product jobs so each product
// retries independently on failure.
func (w *RecostWorker) ProcessSweep(ctx context.Context) error {
	products, err := w.assemblies.ListCalculatedProducts(ctx)
	if err != nil {
		return fmt.Errorf("recost_worker: list products: %w", err)
	}

	for i := range products {
		if err := w.dispatcher.EnqueueRecost(ctx, products[i].ID.String()); err != nil {
			return fmt.Errorf("recost_worker: enqueue %s: %w", products[i].ID, err)
		}
	}

	log.Info().Int("products", len(products)).Msg("recost_worker: sweep enqueued")
	return nil
}

// ProcessRecost handles a single-product job:
//  1. Recompute the rollup at now
//  2. Persist the cached cost and, for CALCULATED list prices, the price
//     derived from the target margin
//  3. Alert when the cost moved more than the threshold
func (w *RecostWorker) ProcessRecost(ctx context.Context, raw json.RawMessage) error {
	var payload RecostJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("recost_worker: invalid payload")
		return nil
	}
	productID, err := uuid.Parse(payload.ProductID)
	if err != nil {
		log.Error().Str("product_id", payload.ProductID).Msg("recost_worker: invalid product id")
		return nil
	}

	cost, err := w.costing.ProductCost(ctx, productID, time.Now())
	if err != nil {
		return fmt.Errorf("recost_worker: rollup %s: %w", productID, err)
	}

	product, err := w.assemblies.FindProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("recost_worker: load %s: %w", productID, err)
	}

	previous := product.CachedCost
	product.CachedCost = cost.TotalCost
	if product.ListPriceSource == model.PriceCalculated {
		if price, ok := marginListPrice(cost.TotalCost, product.TargetMarginPercent); ok {
			product.ListPrice = price
		} else {
			log.Warn().
				Str("product_id", productID.String()).
				Str("margin", product.TargetMarginPercent.String()).
				Msg("recost_worker: margin leaves no sellable price, list price unchanged")
		}
	}

	if err := w.assemblies.UpdateProduct(ctx, product); err != nil {
		return fmt.Errorf("recost_worker: update %s: %w", productID, err)
	}

	log.Info().
		Str("product_id", productID.String()).
		Int64("previous_cost", previous).
		Int64("new_cost", cost.TotalCost).
		Msg("recost_worker: product recosted")

	if w.shouldAlert(previous, cost.TotalCost) {
		w.sendAlert(ctx, product, previous, cost)
	}
	return nil
}

// marginListPrice derives a list price from cost and target margin:
// price = cost / (1 - margin/100). A margin at or beyond 100% has no finite
// price, so ok is false.
func marginListPrice(cost int64, marginPercent decimal.Decimal) (int64, bool) {
	hundred := decimal.NewFromInt(100)
	if marginPercent.GreaterThanOrEqual(hundred) {
		return 0, false
	}
	divisor := decimal.NewFromInt(1).Sub(marginPercent.Div(hundred))
	return decimal.NewFromInt(cost).Div(divisor).Round(0).IntPart(), true
}

func (w *RecostWorker) shouldAlert(previous, current int64) bool {
	if w.alertEmail == "" || w.alertThreshold <= 0 || previous <= 0 {
		return false
	}
	changePct := math.Abs(float64(current-previous)) / float64(previous) * 100
	return changePct > w.alertThreshold
}

// sendAlert enqueues a cost-change email with the breakdown sheet attached.
// Alerting is best effort: failures are logged, never retried into the
// product update path.
func (w *RecostWorker) sendAlert(ctx context.Context, product *model.Product, previous int64, cost *dto.ProductCostResponse) {
	pdfPath, err := infra.GenerateCostSheetPDF(product, cost, w.pdfStoragePath)
	if err != nil {
		log.Warn().Err(err).Str("product_id", product.ID.String()).Msg("recost_worker: cost sheet generation failed")
		pdfPath = ""
	}

	changePct := float64(cost.TotalCost-previous) / float64(previous) * 100
	job := EmailJobPayload{
		ToEmail: w.alertEmail,
		Subject: fmt.Sprintf("Cost alert: %s moved %+.1f%%", product.Name, changePct),
		Body: fmt.Sprintf(
			"Product %s (%s) was recosted.\nPrevious cost: $%.2f\nNew cost: $%.2f\nChange: %+.1f%%\n",
			product.Name, product.SKU,
			float64(previous)/100, float64(cost.TotalCost)/100, changePct),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, job); err != nil {
		log.Warn().Err(err).Str("product_id", product.ID.String()).Msg("recost_worker: failed to enqueue cost alert")
		return
	}
	log.Info().Str("product_id", product.ID.String()).Msg("recost_worker: cost alert enqueued")
}
