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

// BOMService edits bills of materials. Line upserts keep the one-line-per-
// component invariant inside each typed collection: adding a component that
// already exists replaces its quantity instead of appending a duplicate.
type BOMService interface {
	Get(ctx context.Context, ownerType model.BOMOwnerType, ownerID uuid.UUID) (*dto.BOMResponse, error)
	Put(ctx context.Context, ownerType model.BOMOwnerType, ownerID uuid.UUID, req dto.PutBOMRequest) (*dto.BOMResponse, error)
	UpsertLine(ctx context.Context, ownerType model.BOMOwnerType, ownerID uuid.UUID, req dto.UpsertBOMLineRequest) (*dto.BOMResponse, error)
	RemoveLine(ctx context.Context, ownerType model.BOMOwnerType, ownerID uuid.UUID, req dto.RemoveBOMLineRequest) (*dto.BOMResponse, error)
}

type bomService struct {
	boms       repository.BOMRepository
	assemblies repository.AssemblyRepository
}

func NewBOMService(boms repository.BOMRepository, assemblies repository.AssemblyRepository) BOMService {
	return &bomService{boms: boms, assemblies: assemblies}
}

func (s *bomService) Get(ctx context.Context, ownerType model.BOMOwnerType, ownerID uuid.UUID) (*dto.BOMResponse, error) {
	if err := s.checkOwner(ctx, ownerType, ownerID); err != nil {
		return nil, err
	}
	bom, err := s.fetch(ctx, ownerType, ownerID)
	if err != nil {
		return nil, err
	}
	return bomResponse(ownerType, ownerID, bom), nil
}

func (s *bomService) Put(ctx context.Context, ownerType model.BOMOwnerType, ownerID uuid.UUID, req dto.PutBOMRequest) (*dto.BOMResponse, error) {
	if err := s.checkOwner(ctx, ownerType, ownerID); err != nil {
		return nil, err
	}

	bom := &model.BillOfMaterials{}
	var err error
	if bom.Parts, err = toEntries(req.Parts); err != nil {
		return nil, err
	}
	if bom.Fasteners, err = toEntries(req.Fasteners); err != nil {
		return nil, err
	}
	if bom.SubAssemblies, err = toEntries(req.SubAssemblies); err != nil {
		return nil, err
	}
	if bom.Electrical, err = toEntries(req.Electrical); err != nil {
		return nil, err
	}

	// Sub-assemblies never own sub-assembly lines at the data-entry surface.
	if ownerType == model.BOMOwnerSubAssembly && len(bom.SubAssemblies) > 0 {
		return nil, errors.New("a sub-assembly BOM cannot reference other sub-assemblies")
	}

	if err := s.boms.Save(ctx, ownerType, ownerID, bom); err != nil {
		return nil, err
	}
	return bomResponse(ownerType, ownerID, bom), nil
}

func (s *bomService) UpsertLine(ctx context.Context, ownerType model.BOMOwnerType, ownerID uuid.UUID, req dto.UpsertBOMLineRequest) (*dto.BOMResponse, error) {
	if err := s.checkOwner(ctx, ownerType, ownerID); err != nil {
		return nil, err
	}
	if ownerType == model.BOMOwnerSubAssembly && req.Collection == "subAssemblies" {
		return nil, errors.New("a sub-assembly BOM cannot reference other sub-assemblies")
	}

	componentID, err := uuid.Parse(req.ComponentID)
	if err != nil {
		return nil, fmt.Errorf("invalid component id: %w", err)
	}

	bom, err := s.fetch(ctx, ownerType, ownerID)
	if err != nil {
		return nil, err
	}

	lines := bom.Lines(req.Collection)
	replaced := false
	for i := range lines {
		if lines[i].ComponentID == componentID {
			lines[i].Quantity = req.Quantity
			replaced = true
			break
		}
	}
	if !replaced {
		lines = append(lines, model.BOMEntry{ComponentID: componentID, Quantity: req.Quantity})
	}
	setLines(bom, req.Collection, lines)

	if err := s.boms.Save(ctx, ownerType, ownerID, bom); err != nil {
		return nil, err
	}
	return bomResponse(ownerType, ownerID, bom), nil
}

func (s *bomService) RemoveLine(ctx context.Context, ownerType model.BOMOwnerType, ownerID uuid.UUID, req dto.RemoveBOMLineRequest) (*dto.BOMResponse, error) {
	if err := s.checkOwner(ctx, ownerType, ownerID); err != nil {
		return nil, err
	}

	componentID, err := uuid.Parse(req.ComponentID)
	if err != nil {
		return nil, fmt.Errorf("invalid component id: %w", err)
	}

	bom, err := s.fetch(ctx, ownerType, ownerID)
	if err != nil {
		return nil, err
	}

	lines := bom.Lines(req.Collection)
	kept := lines[:0]
	for _, line := range lines {
		if line.ComponentID != componentID {
			kept = append(kept, line)
		}
	}
	setLines(bom, req.Collection, kept)

	if err := s.boms.Save(ctx, ownerType, ownerID, bom); err != nil {
		return nil, err
	}
	return bomResponse(ownerType, ownerID, bom), nil
}

func (s *bomService) fetch(ctx context.Context, ownerType model.BOMOwnerType, ownerID uuid.UUID) (*model.BillOfMaterials, error) {
	if ownerType == model.BOMOwnerProduct {
		return s.boms.ForProduct(ctx, ownerID)
	}
	return s.boms.ForSubAssembly(ctx, ownerID)
}

func (s *bomService) checkOwner(ctx context.Context, ownerType model.BOMOwnerType, ownerID uuid.UUID) error {
	var err error
	if ownerType == model.BOMOwnerProduct {
		_, err = s.assemblies.FindProduct(ctx, ownerID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrProductNotFound, ownerID)
		}
	} else {
		_, err = s.assemblies.FindSubAssembly(ctx, ownerID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrSubAssemblyNotFound, ownerID)
		}
	}
	return err
}

func setLines(bom *model.BillOfMaterials, collection string, lines []model.BOMEntry) {
	switch collection {
	case "parts":
		bom.Parts = lines
	case "fasteners":
		bom.Fasteners = lines
	case "subAssemblies":
		bom.SubAssemblies = lines
	case "electrical":
		bom.Electrical = lines
	}
}

// toEntries converts request lines, deduplicating by component id — the last
// occurrence of a repeated id wins, matching upsert semantics.
func toEntries(lines []dto.BOMLine) ([]model.BOMEntry, error) {
	var entries []model.BOMEntry
	for _, line := range lines {
		id, err := uuid.Parse(line.ComponentID)
		if err != nil {
			return nil, fmt.Errorf("invalid component id %q: %w", line.ComponentID, err)
		}
		replaced := false
		for i := range entries {
			if entries[i].ComponentID == id {
				entries[i].Quantity = line.Quantity
				replaced = true
				break
			}
		}
		if !replaced {
			entries = append(entries, model.BOMEntry{ComponentID: id, Quantity: line.Quantity})
		}
	}
	return entries, nil
}

func bomResponse(ownerType model.BOMOwnerType, ownerID uuid.UUID, bom *model.BillOfMaterials) *dto.BOMResponse {
	return &dto.BOMResponse{
		OwnerID:       ownerID.String(),
		OwnerType:     string(ownerType),
		Parts:         toDTOLines(bom.Parts),
		Fasteners:     toDTOLines(bom.Fasteners),
		SubAssemblies: toDTOLines(bom.SubAssemblies),
		Electrical:    toDTOLines(bom.Electrical),
	}
}

func toDTOLines(entries []model.BOMEntry) []dto.BOMLine {
	lines := make([]dto.BOMLine, len(entries))
	for i, e := range entries {
		lines[i] = dto.BOMLine{ComponentID: e.ComponentID.String(), Quantity: e.Quantity}
	}
	return lines
}
