package service

import (
	"context"
	"errors"
	"fmt"

	"fabcost/internal/dto"
	"fabcost/internal/model"
	"fabcost/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CatalogService defines the business logic contract for the three costable
// catalogs. Every method takes the catalog kind — parts, fasteners and
// electrical items share one shape and one set of rules, so a single
// implementation serves all three.
type CatalogService interface {
	Create(ctx context.Context, kind model.ItemKind, req dto.CreateItemRequest) (*dto.ItemResponse, error)
	Get(ctx context.Context, kind model.ItemKind, id uuid.UUID) (*dto.ItemResponse, error)
	List(ctx context.Context, kind model.ItemKind, activeOnly bool) ([]dto.ItemResponse, error)
	Update(ctx context.Context, kind model.ItemKind, id uuid.UUID, req dto.UpdateItemRequest) (*dto.ItemResponse, error)
	// Delete removes an item after checking no bill of materials still
	// references it; a referenced item returns ErrItemReferenced.
	Delete(ctx context.Context, kind model.ItemKind, id uuid.UUID) error
}

type catalogService struct {
	repo repository.CatalogRepository
	boms repository.BOMRepository
}

func NewCatalogService(repo repository.CatalogRepository, boms repository.BOMRepository) CatalogService {
	return &catalogService{repo: repo, boms: boms}
}

func (s *catalogService) Create(ctx context.Context, kind model.ItemKind, req dto.CreateItemRequest) (*dto.ItemResponse, error) {
	costs := model.CostFields{
		CostPrice:         req.CostPrice,
		CostPriceSource:   model.SourceManual,
		PreferredSupplier: req.PreferredSupplier,
		Suppliers:         model.SupplierList(req.Suppliers),
		ListPrice:         req.ListPrice,
	}
	if req.CostPriceSource != "" {
		costs.CostPriceSource = model.CostPriceSource(req.CostPriceSource)
	}

	switch kind {
	case model.KindPart:
		p := &model.Part{SKU: req.SKU, Name: req.Name, Description: req.Description, CostFields: costs, Active: true}
		if err := s.repo.CreatePart(ctx, p); err != nil {
			return nil, err
		}
		return itemResponse(kind, p.ID, p.SKU, p.Name, p.Description, p.CostFields, p.Active), nil
	case model.KindFastener:
		f := &model.Fastener{SKU: req.SKU, Name: req.Name, Description: req.Description, CostFields: costs, Active: true}
		if err := s.repo.CreateFastener(ctx, f); err != nil {
			return nil, err
		}
		return itemResponse(kind, f.ID, f.SKU, f.Name, f.Description, f.CostFields, f.Active), nil
	case model.KindElectrical:
		e := &model.ElectricalItem{SKU: req.SKU, Name: req.Name, Description: req.Description, CostFields: costs, Active: true}
		if err := s.repo.CreateElectrical(ctx, e); err != nil {
			return nil, err
		}
		return itemResponse(kind, e.ID, e.SKU, e.Name, e.Description, e.CostFields, e.Active), nil
	}
	return nil, fmt.Errorf("unknown catalog kind %q", kind)
}

func (s *catalogService) Get(ctx context.Context, kind model.ItemKind, id uuid.UUID) (*dto.ItemResponse, error) {
	switch kind {
	case model.KindPart:
		p, err := s.repo.FindPart(ctx, id)
		if err != nil {
			return nil, notFoundItem(err, id)
		}
		return itemResponse(kind, p.ID, p.SKU, p.Name, p.Description, p.CostFields, p.Active), nil
	case model.KindFastener:
		f, err := s.repo.FindFastener(ctx, id)
		if err != nil {
			return nil, notFoundItem(err, id)
		}
		return itemResponse(kind, f.ID, f.SKU, f.Name, f.Description, f.CostFields, f.Active), nil
	case model.KindElectrical:
		e, err := s.repo.FindElectrical(ctx, id)
		if err != nil {
			return nil, notFoundItem(err, id)
		}
		return itemResponse(kind, e.ID, e.SKU, e.Name, e.Description, e.CostFields, e.Active), nil
	}
	return nil, fmt.Errorf("unknown catalog kind %q", kind)
}

func (s *catalogService) List(ctx context.Context, kind model.ItemKind, activeOnly bool) ([]dto.ItemResponse, error) {
	var resp []dto.ItemResponse
	switch kind {
	case model.KindPart:
		items, err := s.repo.ListParts(ctx, activeOnly)
		if err != nil {
			return nil, err
		}
		for i := range items {
			p := &items[i]
			resp = append(resp, *itemResponse(kind, p.ID, p.SKU, p.Name, p.Description, p.CostFields, p.Active))
		}
	case model.KindFastener:
		items, err := s.repo.ListFasteners(ctx, activeOnly)
		if err != nil {
			return nil, err
		}
		for i := range items {
			f := &items[i]
			resp = append(resp, *itemResponse(kind, f.ID, f.SKU, f.Name, f.Description, f.CostFields, f.Active))
		}
	case model.KindElectrical:
		items, err := s.repo.ListElectrical(ctx, activeOnly)
		if err != nil {
			return nil, err
		}
		for i := range items {
			e := &items[i]
			resp = append(resp, *itemResponse(kind, e.ID, e.SKU, e.Name, e.Description, e.CostFields, e.Active))
		}
	default:
		return nil, fmt.Errorf("unknown catalog kind %q", kind)
	}
	if resp == nil {
		resp = []dto.ItemResponse{}
	}
	return resp, nil
}

func (s *catalogService) Update(ctx context.Context, kind model.ItemKind, id uuid.UUID, req dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	switch kind {
	case model.KindPart:
		p, err := s.repo.FindPart(ctx, id)
		if err != nil {
			return nil, notFoundItem(err, id)
		}
		applyItemUpdate(&p.Name, &p.Description, &p.CostFields, req)
		if err := s.repo.UpdatePart(ctx, p); err != nil {
			return nil, err
		}
		return itemResponse(kind, p.ID, p.SKU, p.Name, p.Description, p.CostFields, p.Active), nil
	case model.KindFastener:
		f, err := s.repo.FindFastener(ctx, id)
		if err != nil {
			return nil, notFoundItem(err, id)
		}
		applyItemUpdate(&f.Name, &f.Description, &f.CostFields, req)
		if err := s.repo.UpdateFastener(ctx, f); err != nil {
			return nil, err
		}
		return itemResponse(kind, f.ID, f.SKU, f.Name, f.Description, f.CostFields, f.Active), nil
	case model.KindElectrical:
		e, err := s.repo.FindElectrical(ctx, id)
		if err != nil {
			return nil, notFoundItem(err, id)
		}
		applyItemUpdate(&e.Name, &e.Description, &e.CostFields, req)
		if err := s.repo.UpdateElectrical(ctx, e); err != nil {
			return nil, err
		}
		return itemResponse(kind, e.ID, e.SKU, e.Name, e.Description, e.CostFields, e.Active), nil
	}
	return nil, fmt.Errorf("unknown catalog kind %q", kind)
}

func (s *catalogService) Delete(ctx context.Context, kind model.ItemKind, id uuid.UUID) error {
	referenced, err := s.boms.ReferencesComponent(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("%w: %s", ErrItemReferenced, id)
	}

	switch kind {
	case model.KindPart:
		err = s.repo.DeletePart(ctx, id)
	case model.KindFastener:
		err = s.repo.DeleteFastener(ctx, id)
	case model.KindElectrical:
		err = s.repo.DeleteElectrical(ctx, id)
	default:
		return fmt.Errorf("unknown catalog kind %q", kind)
	}
	if err != nil {
		return err
	}

	log.Info().Str("kind", string(kind)).Str("item_id", id.String()).Msg("catalog: item deleted")
	return nil
}

// applyItemUpdate merges a partial update into an item's mutable fields.
// Nil request fields leave the stored value untouched; Suppliers replaces
// the whole eligibility set when present.
func applyItemUpdate(name *string, desc **string, costs *model.CostFields, req dto.UpdateItemRequest) {
	if req.Name != nil {
		*name = *req.Name
	}
	if req.Description != nil {
		*desc = req.Description
	}
	if req.CostPrice != nil {
		costs.CostPrice = *req.CostPrice
	}
	if req.CostPriceSource != nil {
		costs.CostPriceSource = model.CostPriceSource(*req.CostPriceSource)
	}
	if req.PreferredSupplier != nil {
		costs.PreferredSupplier = req.PreferredSupplier
	}
	if req.Suppliers != nil {
		costs.Suppliers = model.SupplierList(req.Suppliers)
	}
	if req.ListPrice != nil {
		costs.ListPrice = *req.ListPrice
	}
}

func itemResponse(kind model.ItemKind, id uuid.UUID, sku, name string, desc *string, costs model.CostFields, active bool) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:                id.String(),
		Kind:              string(kind),
		SKU:               sku,
		Name:              name,
		Description:       desc,
		CostPrice:         costs.CostPrice,
		CostPriceSource:   string(costs.CostPriceSource),
		PreferredSupplier: costs.PreferredSupplier,
		Suppliers:         costs.Suppliers,
		ListPrice:         costs.ListPrice,
		Active:            active,
	}
}

func notFoundItem(err error, id uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return err
}
