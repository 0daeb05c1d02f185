package service

import (
	"context"
	"errors"
	"fmt"

	"fabcost/internal/dto"
	"fabcost/internal/model"
	"fabcost/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TemplateService manages design templates for the one-shot estimator.
type TemplateService interface {
	Create(ctx context.Context, req dto.CreateTemplateRequest) (*dto.TemplateResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.TemplateResponse, error)
	List(ctx context.Context) ([]dto.TemplateResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.CreateTemplateRequest) (*dto.TemplateResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type templateService struct {
	repo repository.TemplateRepository
}

func NewTemplateService(repo repository.TemplateRepository) TemplateService {
	return &templateService{repo: repo}
}

func (s *templateService) Create(ctx context.Context, req dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	t := &model.DesignTemplate{}
	if err := applyTemplate(t, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return templateResponse(t), nil
}

func (s *templateService) Get(ctx context.Context, id uuid.UUID) (*dto.TemplateResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return templateResponse(t), nil
}

func (s *templateService) List(ctx context.Context) ([]dto.TemplateResponse, error) {
	templates, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TemplateResponse, len(templates))
	for i := range templates {
		resp[i] = *templateResponse(&templates[i])
	}
	return resp, nil
}

func (s *templateService) Update(ctx context.Context, id uuid.UUID, req dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if err := applyTemplate(t, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return templateResponse(t), nil
}

func (s *templateService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

// applyTemplate writes the request wholesale onto the template — template
// edits are full replacements, not patches.
func applyTemplate(t *model.DesignTemplate, req dto.CreateTemplateRequest) error {
	matrix := make(model.PricingMatrix, len(req.PricingMatrix))
	for i, row := range req.PricingMatrix {
		matrix[i] = model.PricingMatrixRow{WidthMM: row.WidthMM, Price: row.Price}
	}

	bom := make(model.InternalBOM, 0, len(req.InternalBOM))
	for _, line := range req.InternalBOM {
		id, err := uuid.Parse(line.ComponentID)
		if err != nil {
			return fmt.Errorf("invalid component id %q: %w", line.ComponentID, err)
		}
		qty := decimal.NewFromInt(1)
		if line.Quantity != "" {
			qty, err = decimal.NewFromString(line.Quantity)
			if err != nil {
				return fmt.Errorf("invalid quantity %q: %w", line.Quantity, err)
			}
		}
		bom = append(bom, model.BOMEntry{ComponentID: id, Quantity: qty})
	}

	t.Name = req.Name
	t.PricingMatrix = matrix
	t.BasePrice = req.BasePrice
	t.SetupFee = req.SetupFee
	t.LaborMinutes = req.LaborMinutes
	t.InternalBOM = bom
	t.MaterialMultiplier = model.MaterialMultipliers(req.MaterialMultiplier)
	return nil
}

func templateResponse(t *model.DesignTemplate) *dto.TemplateResponse {
	matrix := make([]dto.MatrixRow, len(t.PricingMatrix))
	for i, row := range t.PricingMatrix {
		matrix[i] = dto.MatrixRow{WidthMM: row.WidthMM, Price: row.Price}
	}
	bom := make([]dto.TemplateBOMLine, len(t.InternalBOM))
	for i, line := range t.InternalBOM {
		bom[i] = dto.TemplateBOMLine{ComponentID: line.ComponentID.String(), Quantity: line.Quantity.String()}
	}
	return &dto.TemplateResponse{
		ID:                 t.ID.String(),
		Name:               t.Name,
		PricingMatrix:      matrix,
		BasePrice:          t.BasePrice,
		SetupFee:           t.SetupFee,
		LaborMinutes:       t.LaborMinutes,
		InternalBOM:        bom,
		MaterialMultiplier: t.MaterialMultiplier,
	}
}
