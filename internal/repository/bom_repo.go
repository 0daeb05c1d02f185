package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fabcost/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BOMRepository is the data access contract for bill-of-materials documents.
// Both fetch methods return a fully normalized BillOfMaterials — payload
// shape tolerance lives HERE, at the store-adapter boundary, so the costing
// aggregator never branches on document shape. A missing document yields an
// empty BOM, not an error.
type BOMRepository interface {
	ForProduct(ctx context.Context, productID uuid.UUID) (*model.BillOfMaterials, error)
	ForSubAssembly(ctx context.Context, subAssemblyID uuid.UUID) (*model.BillOfMaterials, error)
	Save(ctx context.Context, ownerType model.BOMOwnerType, ownerID uuid.UUID, bom *model.BillOfMaterials) error
	Delete(ctx context.Context, ownerType model.BOMOwnerType, ownerID uuid.UUID) error

	// ReferencesComponent reports whether any BOM document (or sub-assembly
	// line) references the component — the catalog deletion guard.
	ReferencesComponent(ctx context.Context, componentID uuid.UUID) (bool, error)
}

type bomRepo struct{ db *gorm.DB }

func NewBOMRepository(db *gorm.DB) BOMRepository { return &bomRepo{db: db} }

func (r *bomRepo) ForProduct(ctx context.Context, productID uuid.UUID) (*model.BillOfMaterials, error) {
	return r.fetch(ctx, model.BOMOwnerProduct, productID)
}

func (r *bomRepo) ForSubAssembly(ctx context.Context, subAssemblyID uuid.UUID) (*model.BillOfMaterials, error) {
	return r.fetch(ctx, model.BOMOwnerSubAssembly, subAssemblyID)
}

func (r *bomRepo) fetch(ctx context.Context, ownerType model.BOMOwnerType, ownerID uuid.UUID) (*model.BillOfMaterials, error) {
	var doc model.BOMDocument
	err := r.db.WithContext(ctx).
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.BillOfMaterials{}, nil
	}
	if err != nil {
		return nil, err
	}
	return normalizeBOMPayload(doc.Payload)
}

// normalizeBOMPayload decodes a BOM document into the canonical typed shape.
// Two payload shapes exist in the wild:
//
//	{"parts":[...],"fasteners":[...],"subAssemblies":[...],"electrical":[...]}
//	[...]                        — legacy: a bare array meaning "parts list"
//
// Absent collections decode as nil slices, which cost rollups treat the same
// as empty.
func normalizeBOMPayload(payload []byte) (*model.BillOfMaterials, error) {
	trimmed := firstNonSpace(payload)
	if trimmed == '[' {
		var parts []model.BOMEntry
		if err := json.Unmarshal(payload, &parts); err != nil {
			return nil, fmt.Errorf("bom payload (legacy array): %w", err)
		}
		return &model.BillOfMaterials{Parts: parts}, nil
	}

	var bom model.BillOfMaterials
	if err := json.Unmarshal(payload, &bom); err != nil {
		return nil, fmt.Errorf("bom payload: %w", err)
	}
	return &bom, nil
}

func firstNonSpace(b []byte) byte {
	for _, c := range b {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return c
	}
	return 0
}

// Save upserts the canonical object shape — legacy bare-array documents are
// rewritten on their next save.
func (r *bomRepo) Save(ctx context.Context, ownerType model.BOMOwnerType, ownerID uuid.UUID, bom *model.BillOfMaterials) error {
	payload, err := json.Marshal(bom)
	if err != nil {
		return fmt.Errorf("bom payload encode: %w", err)
	}

	var doc model.BOMDocument
	err = r.db.WithContext(ctx).
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		doc = model.BOMDocument{OwnerType: ownerType, OwnerID: ownerID, Payload: payload}
		return r.db.WithContext(ctx).Create(&doc).Error
	}
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Model(&model.BOMDocument{}).
		Where("id = ?", doc.ID).
		Update("payload", payload).Error
}

func (r *bomRepo) Delete(ctx context.Context, ownerType model.BOMOwnerType, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Delete(&model.BOMDocument{}).Error
}

// ReferencesComponent scans all BOM documents for the component id.
// Deletion is an admin-rare operation, so a full scan beats maintaining a
// separate reference index.
func (r *bomRepo) ReferencesComponent(ctx context.Context, componentID uuid.UUID) (bool, error) {
	var docs []model.BOMDocument
	if err := r.db.WithContext(ctx).Find(&docs).Error; err != nil {
		return false, err
	}
	for i := range docs {
		bom, err := normalizeBOMPayload(docs[i].Payload)
		if err != nil {
			// A corrupt document must not unblock a deletion.
			return false, err
		}
		for _, lines := range [][]model.BOMEntry{bom.Parts, bom.Fasteners, bom.SubAssemblies, bom.Electrical} {
			for _, line := range lines {
				if line.ComponentID == componentID {
					return true, nil
				}
			}
		}
	}
	return false, nil
}
