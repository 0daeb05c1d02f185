package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fabcost/internal/dto"
	"fabcost/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// typeIdlerFrame is priced from the template base price, bypassing the
// width matrix — idler frames are quoted per unit regardless of belt width.
const typeIdlerFrame = "Idler Frame"

// EstimateService is the one-shot manufactured-part estimator: pricing
// matrix + internal BOM + setup labour + material multiplier.
type EstimateService interface {
	Estimate(ctx context.Context, req dto.EstimateRequest) (*dto.EstimateResponse, error)
}

type estimateService struct {
	templates repository.TemplateRepository
	resolver  *CostResolver
	rates     LabourRateProvider
	now       func() time.Time
}

func NewEstimateService(
	templates repository.TemplateRepository,
	resolver *CostResolver,
	rates LabourRateProvider,
) EstimateService {
	return &estimateService{templates: templates, resolver: resolver, rates: rates, now: time.Now}
}

func (s *estimateService) Estimate(ctx context.Context, req dto.EstimateRequest) (*dto.EstimateResponse, error) {
	templateID, err := uuid.Parse(req.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("invalid template id: %w", err)
	}

	template, err := s.templates.FindByID(ctx, templateID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, req.TemplateID)
	}
	if err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	// 1. Fabricator cost.
	var fabricator int64
	if req.Type == typeIdlerFrame {
		fabricator = template.BasePrice*quantity + template.SetupFee
	} else if price, ok := template.PricingMatrix.PriceForWidth(req.WidthMM); ok {
		fabricator = price*quantity + template.SetupFee
	} else {
		// Unmatched width is a degraded result, not an error — the sheet
		// shows a zero fabricator line the estimator can spot.
		log.Warn().
			Str("template", template.Name).
			Int64("width_mm", req.WidthMM).
			Msg("estimate: no pricing matrix row for width")
		fabricator = 0
	}

	// 2. Internal BOM at "now", rounded per line.
	var internal int64
	at := s.now()
	for _, line := range template.InternalBOM {
		unitCost, err := s.resolver.ResolveCost(ctx, line.ComponentID, at)
		if err != nil {
			return nil, err
		}
		internal += lineSubtotal(unitCost, line.Quantity)
	}

	// 3. Setup labour — one fixed cost, NOT multiplied by quantity.
	rate, err := s.rates.LabourRate(ctx)
	if err != nil {
		return nil, err
	}
	labor := labourCost(template.LaborMinutes, rate)

	// 4. Material multiplier applies to fabricator cost only.
	if req.Material == "SS" {
		mult, ok := template.MaterialMultiplier["SS"]
		if !ok {
			mult = 1.0
		}
		fabricator = roundCents(decimal.NewFromInt(fabricator).Mul(decimal.NewFromFloat(mult)))
	}

	return &dto.EstimateResponse{
		Type:             req.Type,
		WidthMM:          req.WidthMM,
		Material:         req.Material,
		LoadingKgM:       req.LoadingKgM,
		Quantity:         quantity,
		FabricatorCost:   fabricator,
		InternalPartCost: internal,
		LaborCost:        labor,
		TotalEstimate:    fabricator + internal + labor,
	}, nil
}
