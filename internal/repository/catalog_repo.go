package repository

import (
	"context"
	"errors"

	"fabcost/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogRepository is the data access contract for the three costable-item
// catalogs. Services depend on this interface, not on the concrete GORM
// implementation, enabling clean unit testing via stubs.
type CatalogRepository interface {
	// FindCostableItem probes the three catalogs in a fixed order —
	// parts, fasteners, electrical — and returns a tagged result for the
	// first hit. Items carry no home-catalog tag, so this linear probe is
	// the canonical polymorphic lookup. A miss in all three catalogs
	// returns (nil, nil): an unknown id is a valid "not priced yet" state,
	// never an error.
	FindCostableItem(ctx context.Context, id uuid.UUID) (*model.CatalogItem, error)

	CreatePart(ctx context.Context, p *model.Part) error
	FindPart(ctx context.Context, id uuid.UUID) (*model.Part, error)
	ListParts(ctx context.Context, activeOnly bool) ([]model.Part, error)
	UpdatePart(ctx context.Context, p *model.Part) error
	DeletePart(ctx context.Context, id uuid.UUID) error

	CreateFastener(ctx context.Context, f *model.Fastener) error
	FindFastener(ctx context.Context, id uuid.UUID) (*model.Fastener, error)
	ListFasteners(ctx context.Context, activeOnly bool) ([]model.Fastener, error)
	UpdateFastener(ctx context.Context, f *model.Fastener) error
	DeleteFastener(ctx context.Context, id uuid.UUID) error

	CreateElectrical(ctx context.Context, e *model.ElectricalItem) error
	FindElectrical(ctx context.Context, id uuid.UUID) (*model.ElectricalItem, error)
	ListElectrical(ctx context.Context, activeOnly bool) ([]model.ElectricalItem, error)
	UpdateElectrical(ctx context.Context, e *model.ElectricalItem) error
	DeleteElectrical(ctx context.Context, id uuid.UUID) error
}

type catalogRepo struct{ db *gorm.DB }

func NewCatalogRepository(db *gorm.DB) CatalogRepository { return &catalogRepo{db: db} }

func (r *catalogRepo) FindCostableItem(ctx context.Context, id uuid.UUID) (*model.CatalogItem, error) {
	var part model.Part
	err := r.db.WithContext(ctx).First(&part, "id = ?", id).Error
	if err == nil {
		return &model.CatalogItem{
			Kind: model.KindPart, ID: part.ID, SKU: part.SKU, Name: part.Name,
			CostFields: part.CostFields,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var fastener model.Fastener
	err = r.db.WithContext(ctx).First(&fastener, "id = ?", id).Error
	if err == nil {
		return &model.CatalogItem{
			Kind: model.KindFastener, ID: fastener.ID, SKU: fastener.SKU, Name: fastener.Name,
			CostFields: fastener.CostFields,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var elec model.ElectricalItem
	err = r.db.WithContext(ctx).First(&elec, "id = ?", id).Error
	if err == nil {
		return &model.CatalogItem{
			Kind: model.KindElectrical, ID: elec.ID, SKU: elec.SKU, Name: elec.Name,
			CostFields: elec.CostFields,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return nil, nil
}

// ── Parts ────────────────────────────────────────────────────────────────────

func (r *catalogRepo) CreatePart(ctx context.Context, p *model.Part) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *catalogRepo) FindPart(ctx context.Context, id uuid.UUID) (*model.Part, error) {
	var p model.Part
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *catalogRepo) ListParts(ctx context.Context, activeOnly bool) ([]model.Part, error) {
	var parts []model.Part
	q := r.db.WithContext(ctx).Order("sku ASC")
	if activeOnly {
		q = q.Where("active = true")
	}
	err := q.Find(&parts).Error
	return parts, err
}

func (r *catalogRepo) UpdatePart(ctx context.Context, p *model.Part) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *catalogRepo) DeletePart(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Part{}, "id = ?", id).Error
}

// ── Fasteners ────────────────────────────────────────────────────────────────

func (r *catalogRepo) CreateFastener(ctx context.Context, f *model.Fastener) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *catalogRepo) FindFastener(ctx context.Context, id uuid.UUID) (*model.Fastener, error) {
	var f model.Fastener
	err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error
	return &f, err
}

func (r *catalogRepo) ListFasteners(ctx context.Context, activeOnly bool) ([]model.Fastener, error) {
	var fasteners []model.Fastener
	q := r.db.WithContext(ctx).Order("sku ASC")
	if activeOnly {
		q = q.Where("active = true")
	}
	err := q.Find(&fasteners).Error
	return fasteners, err
}

func (r *catalogRepo) UpdateFastener(ctx context.Context, f *model.Fastener) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *catalogRepo) DeleteFastener(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Fastener{}, "id = ?", id).Error
}

// ── Electrical ───────────────────────────────────────────────────────────────

func (r *catalogRepo) CreateElectrical(ctx context.Context, e *model.ElectricalItem) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *catalogRepo) FindElectrical(ctx context.Context, id uuid.UUID) (*model.ElectricalItem, error) {
	var e model.ElectricalItem
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *catalogRepo) ListElectrical(ctx context.Context, activeOnly bool) ([]model.ElectricalItem, error) {
	var items []model.ElectricalItem
	q := r.db.WithContext(ctx).Order("sku ASC")
	if activeOnly {
		q = q.Where("active = true")
	}
	err := q.Find(&items).Error
	return items, err
}

func (r *catalogRepo) UpdateElectrical(ctx context.Context, e *model.ElectricalItem) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *catalogRepo) DeleteElectrical(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ElectricalItem{}, "id = ?", id).Error
}
