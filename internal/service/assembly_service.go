package service

import (
	"context"
	"errors"
	"fmt"

	"fabcost/internal/dto"
	"fabcost/internal/model"
	"fabcost/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssemblyService defines the business logic contract for products and
// sub-assemblies, which share one costing shape.
type AssemblyService interface {
	CreateProduct(ctx context.Context, req dto.CreateAssemblyRequest) (*dto.AssemblyResponse, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*dto.AssemblyResponse, error)
	ListProducts(ctx context.Context, activeOnly bool) ([]dto.AssemblyResponse, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req dto.UpdateAssemblyRequest) (*dto.AssemblyResponse, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	CreateSubAssembly(ctx context.Context, req dto.CreateAssemblyRequest) (*dto.AssemblyResponse, error)
	GetSubAssembly(ctx context.Context, id uuid.UUID) (*dto.AssemblyResponse, error)
	ListSubAssemblies(ctx context.Context, activeOnly bool) ([]dto.AssemblyResponse, error)
	UpdateSubAssembly(ctx context.Context, id uuid.UUID, req dto.UpdateAssemblyRequest) (*dto.AssemblyResponse, error)
	DeleteSubAssembly(ctx context.Context, id uuid.UUID) error
}

type assemblyService struct {
	repo repository.AssemblyRepository
	boms repository.BOMRepository
}

func NewAssemblyService(repo repository.AssemblyRepository, boms repository.BOMRepository) AssemblyService {
	return &assemblyService{repo: repo, boms: boms}
}

// ── Products ─────────────────────────────────────────────────────────────────

func (s *assemblyService) CreateProduct(ctx context.Context, req dto.CreateAssemblyRequest) (*dto.AssemblyResponse, error) {
	p := &model.Product{
		SKU: req.SKU, Name: req.Name, Description: req.Description,
		AssemblyFields: assemblyFieldsFrom(req),
		Active:         true,
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return assemblyResponse(p.ID, p.SKU, p.Name, p.Description, p.AssemblyFields, p.Active), nil
}

func (s *assemblyService) GetProduct(ctx context.Context, id uuid.UUID) (*dto.AssemblyResponse, error) {
	p, err := s.repo.FindProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return assemblyResponse(p.ID, p.SKU, p.Name, p.Description, p.AssemblyFields, p.Active), nil
}

func (s *assemblyService) ListProducts(ctx context.Context, activeOnly bool) ([]dto.AssemblyResponse, error) {
	products, err := s.repo.ListProducts(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AssemblyResponse, len(products))
	for i := range products {
		p := &products[i]
		resp[i] = *assemblyResponse(p.ID, p.SKU, p.Name, p.Description, p.AssemblyFields, p.Active)
	}
	return resp, nil
}

func (s *assemblyService) UpdateProduct(ctx context.Context, id uuid.UUID, req dto.UpdateAssemblyRequest) (*dto.AssemblyResponse, error) {
	p, err := s.repo.FindProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	applyAssemblyUpdate(&p.Name, &p.Description, &p.AssemblyFields, req)
	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return assemblyResponse(p.ID, p.SKU, p.Name, p.Description, p.AssemblyFields, p.Active), nil
}

// DeleteProduct removes the product and its BOM document together, so no
// orphan document later resurrects as a different owner's BOM.
func (s *assemblyService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrProductNotFound, id)
		}
		return err
	}
	if err := s.boms.Delete(ctx, model.BOMOwnerProduct, id); err != nil {
		return err
	}
	return s.repo.DeleteProduct(ctx, id)
}

// ── Sub-assemblies ───────────────────────────────────────────────────────────

func (s *assemblyService) CreateSubAssembly(ctx context.Context, req dto.CreateAssemblyRequest) (*dto.AssemblyResponse, error) {
	sub := &model.SubAssembly{
		SKU: req.SKU, Name: req.Name, Description: req.Description,
		AssemblyFields: assemblyFieldsFrom(req),
		Active:         true,
	}
	if err := s.repo.CreateSubAssembly(ctx, sub); err != nil {
		return nil, err
	}
	return assemblyResponse(sub.ID, sub.SKU, sub.Name, sub.Description, sub.AssemblyFields, sub.Active), nil
}

func (s *assemblyService) GetSubAssembly(ctx context.Context, id uuid.UUID) (*dto.AssemblyResponse, error) {
	sub, err := s.repo.FindSubAssembly(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrSubAssemblyNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return assemblyResponse(sub.ID, sub.SKU, sub.Name, sub.Description, sub.AssemblyFields, sub.Active), nil
}

func (s *assemblyService) ListSubAssemblies(ctx context.Context, activeOnly bool) ([]dto.AssemblyResponse, error) {
	subs, err := s.repo.ListSubAssemblies(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AssemblyResponse, len(subs))
	for i := range subs {
		sub := &subs[i]
		resp[i] = *assemblyResponse(sub.ID, sub.SKU, sub.Name, sub.Description, sub.AssemblyFields, sub.Active)
	}
	return resp, nil
}

func (s *assemblyService) UpdateSubAssembly(ctx context.Context, id uuid.UUID, req dto.UpdateAssemblyRequest) (*dto.AssemblyResponse, error) {
	sub, err := s.repo.FindSubAssembly(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrSubAssemblyNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	applyAssemblyUpdate(&sub.Name, &sub.Description, &sub.AssemblyFields, req)
	if err := s.repo.UpdateSubAssembly(ctx, sub); err != nil {
		return nil, err
	}
	return assemblyResponse(sub.ID, sub.SKU, sub.Name, sub.Description, sub.AssemblyFields, sub.Active), nil
}

// DeleteSubAssembly refuses while any product BOM still references the
// sub-assembly, then removes it together with its own BOM document.
func (s *assemblyService) DeleteSubAssembly(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindSubAssembly(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrSubAssemblyNotFound, id)
		}
		return err
	}
	referenced, err := s.boms.ReferencesComponent(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("%w: %s", ErrItemReferenced, id)
	}
	if err := s.boms.Delete(ctx, model.BOMOwnerSubAssembly, id); err != nil {
		return err
	}
	return s.repo.DeleteSubAssembly(ctx, id)
}

// ── Shared mapping ───────────────────────────────────────────────────────────

func assemblyFieldsFrom(req dto.CreateAssemblyRequest) model.AssemblyFields {
	fields := model.AssemblyFields{
		CostType:        model.CostCalculated,
		ManualCost:      req.ManualCost,
		LabourHours:     req.LabourHours,
		LabourMinutes:   req.LabourMinutes,
		ListPrice:       req.ListPrice,
		ListPriceSource: model.PriceManual,
	}
	if req.CostType != "" {
		fields.CostType = model.CostType(req.CostType)
	}
	if req.ListPriceSource != "" {
		fields.ListPriceSource = model.PriceSource(req.ListPriceSource)
	}
	if req.TargetMarginPercent != nil {
		fields.TargetMarginPercent = *req.TargetMarginPercent
	}
	return fields
}

func applyAssemblyUpdate(name *string, desc **string, fields *model.AssemblyFields, req dto.UpdateAssemblyRequest) {
	if req.Name != nil {
		*name = *req.Name
	}
	if req.Description != nil {
		*desc = req.Description
	}
	if req.CostType != nil {
		fields.CostType = model.CostType(*req.CostType)
	}
	if req.ManualCost != nil {
		fields.ManualCost = *req.ManualCost
	}
	if req.LabourHours != nil {
		fields.LabourHours = *req.LabourHours
	}
	if req.LabourMinutes != nil {
		fields.LabourMinutes = *req.LabourMinutes
	}
	if req.ListPrice != nil {
		fields.ListPrice = *req.ListPrice
	}
	if req.ListPriceSource != nil {
		fields.ListPriceSource = model.PriceSource(*req.ListPriceSource)
	}
	if req.TargetMarginPercent != nil {
		fields.TargetMarginPercent = *req.TargetMarginPercent
	}
}

func assemblyResponse(id uuid.UUID, sku, name string, desc *string, fields model.AssemblyFields, active bool) *dto.AssemblyResponse {
	return &dto.AssemblyResponse{
		ID:                  id.String(),
		SKU:                 sku,
		Name:                name,
		Description:         desc,
		CostType:            string(fields.CostType),
		ManualCost:          fields.ManualCost,
		LabourHours:         fields.LabourHours,
		LabourMinutes:       fields.LabourMinutes,
		ListPrice:           fields.ListPrice,
		ListPriceSource:     string(fields.ListPriceSource),
		TargetMarginPercent: fields.TargetMarginPercent,
		CachedCost:          fields.CachedCost,
		Active:              active,
	}
}
