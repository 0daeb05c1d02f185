package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fabcost/internal/dto"
	"fabcost/internal/model"
	"fabcost/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Breakdown line types. LABOUR marks the synthetic labour row.
const (
	LineTypePart        = "PART"
	LineTypeFastener    = "FASTENER"
	LineTypeSubAssembly = "SUB_ASSEMBLY"
	LineTypeElectrical  = "ELECTRICAL"
	LineTypeLabour      = "LABOUR"
)

// CostingService rolls bills of materials up into costs.
type CostingService interface {
	// ProductCost returns the full rollup with a per-line audit breakdown.
	// Breakdown order is stable: parts, fasteners, sub-assemblies,
	// electrical, labour.
	ProductCost(ctx context.Context, productID uuid.UUID, date time.Time) (*dto.ProductCostResponse, error)
	// SubAssemblyCost returns a single total — sub-assemblies have no
	// breakdown contract. A MANUAL costType short-circuits to manualCost
	// and ignores the BOM entirely.
	SubAssemblyCost(ctx context.Context, subAssemblyID uuid.UUID, date time.Time) (int64, error)
}

type costingService struct {
	resolver   *CostResolver
	boms       repository.BOMRepository
	assemblies repository.AssemblyRepository
	rates      LabourRateProvider
}

func NewCostingService(
	resolver *CostResolver,
	boms repository.BOMRepository,
	assemblies repository.AssemblyRepository,
	rates LabourRateProvider,
) CostingService {
	return &costingService{resolver: resolver, boms: boms, assemblies: assemblies, rates: rates}
}

func (s *costingService) ProductCost(ctx context.Context, productID uuid.UUID, date time.Time) (*dto.ProductCostResponse, error) {
	product, err := s.assemblies.FindProduct(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	if err != nil {
		return nil, err
	}

	bom, err := s.boms.ForProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	var breakdown []dto.CostLine
	var total int64

	appendLines := func(lines []model.BOMEntry, lineType string) error {
		for _, line := range lines {
			unitCost, err := s.resolver.ResolveCost(ctx, line.ComponentID, date)
			if err != nil {
				return err
			}
			subtotal := lineSubtotal(unitCost, line.Quantity)
			total += subtotal
			breakdown = append(breakdown, dto.CostLine{
				ComponentID: line.ComponentID.String(),
				Type:        lineType,
				UnitCost:    unitCost,
				Quantity:    line.Quantity,
				Subtotal:    subtotal,
			})
		}
		return nil
	}

	if err := appendLines(bom.Parts, LineTypePart); err != nil {
		return nil, err
	}
	if err := appendLines(bom.Fasteners, LineTypeFastener); err != nil {
		return nil, err
	}

	path := map[uuid.UUID]bool{}
	for _, line := range bom.SubAssemblies {
		unitCost, err := s.subAssemblyCost(ctx, line.ComponentID, date, path)
		if err != nil {
			return nil, err
		}
		subtotal := lineSubtotal(unitCost, line.Quantity)
		total += subtotal
		breakdown = append(breakdown, dto.CostLine{
			ComponentID: line.ComponentID.String(),
			Type:        LineTypeSubAssembly,
			UnitCost:    unitCost,
			Quantity:    line.Quantity,
			Subtotal:    subtotal,
		})
	}

	if err := appendLines(bom.Electrical, LineTypeElectrical); err != nil {
		return nil, err
	}

	if minutes := product.TotalLabourMinutes(); minutes > 0 {
		rate, err := s.rates.LabourRate(ctx)
		if err != nil {
			return nil, err
		}
		labour := labourCost(minutes, rate)
		total += labour
		breakdown = append(breakdown, dto.CostLine{
			Type:     LineTypeLabour,
			UnitCost: rate,
			Quantity: decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)),
			Subtotal: labour,
		})
	}

	return &dto.ProductCostResponse{
		ProductID: productID.String(),
		Date:      date.UTC().Format(time.RFC3339),
		TotalCost: total,
		Breakdown: breakdown,
	}, nil
}

func (s *costingService) SubAssemblyCost(ctx context.Context, subAssemblyID uuid.UUID, date time.Time) (int64, error) {
	return s.subAssemblyCost(ctx, subAssemblyID, date, map[uuid.UUID]bool{})
}

// path holds only the ancestors of the current recursion, not everything
// ever costed: a sub-assembly shared by two siblings is legal and must cost
// twice, while a genuine back-edge to an ancestor is a cycle.
func (s *costingService) subAssemblyCost(ctx context.Context, id uuid.UUID, date time.Time, path map[uuid.UUID]bool) (int64, error) {
	if path[id] {
		return 0, fmt.Errorf("%w: %s", ErrCyclicBOM, id)
	}
	path[id] = true
	defer delete(path, id)

	sub, err := s.assemblies.FindSubAssembly(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("%w: %s", ErrSubAssemblyNotFound, id)
	}
	if err != nil {
		return 0, err
	}

	// Deliberate override: a manual cost wins outright, BOM ignored.
	if sub.CostType == model.CostManual {
		return sub.ManualCost, nil
	}

	bom, err := s.boms.ForSubAssembly(ctx, id)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, group := range []struct{ lines []model.BOMEntry }{
		{bom.Parts}, {bom.Fasteners}, {bom.Electrical},
	} {
		for _, line := range group.lines {
			unitCost, err := s.resolver.ResolveCost(ctx, line.ComponentID, date)
			if err != nil {
				return 0, err
			}
			total += lineSubtotal(unitCost, line.Quantity)
		}
	}

	// The current data model never nests sub-assemblies, but a document
	// could — recurse with the path guard rather than ignore the lines.
	for _, line := range bom.SubAssemblies {
		unitCost, err := s.subAssemblyCost(ctx, line.ComponentID, date, path)
		if err != nil {
			return 0, err
		}
		total += lineSubtotal(unitCost, line.Quantity)
	}

	if minutes := sub.TotalLabourMinutes(); minutes > 0 {
		rate, err := s.rates.LabourRate(ctx)
		if err != nil {
			return 0, err
		}
		total += labourCost(minutes, rate)
	}

	return total, nil
}
