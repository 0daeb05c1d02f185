package repository

import (
	"context"

	"fabcost/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssemblyRepository is the data access contract for sub-assemblies and
// products.
type AssemblyRepository interface {
	CreateProduct(ctx context.Context, p *model.Product) error
	FindProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	ListProducts(ctx context.Context, activeOnly bool) ([]model.Product, error)
	ListCalculatedProducts(ctx context.Context) ([]model.Product, error)
	UpdateProduct(ctx context.Context, p *model.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	CreateSubAssembly(ctx context.Context, s *model.SubAssembly) error
	FindSubAssembly(ctx context.Context, id uuid.UUID) (*model.SubAssembly, error)
	ListSubAssemblies(ctx context.Context, activeOnly bool) ([]model.SubAssembly, error)
	UpdateSubAssembly(ctx context.Context, s *model.SubAssembly) error
	DeleteSubAssembly(ctx context.Context, id uuid.UUID) error
}

type assemblyRepo struct{ db *gorm.DB }

func NewAssemblyRepository(db *gorm.DB) AssemblyRepository { return &assemblyRepo{db: db} }

func (r *assemblyRepo) CreateProduct(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *assemblyRepo) FindProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *assemblyRepo) ListProducts(ctx context.Context, activeOnly bool) ([]model.Product, error) {
	var products []model.Product
	q := r.db.WithContext(ctx).Order("sku ASC")
	if activeOnly {
		q = q.Where("active = true")
	}
	err := q.Find(&products).Error
	return products, err
}

// ListCalculatedProducts returns active products whose cost comes from a BOM
// rollup — the recost sweep's work list.
func (r *assemblyRepo) ListCalculatedProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("active = true AND cost_type = ?", model.CostCalculated).
		Find(&products).Error
	return products, err
}

func (r *assemblyRepo) UpdateProduct(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *assemblyRepo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id).Error
}

func (r *assemblyRepo) CreateSubAssembly(ctx context.Context, s *model.SubAssembly) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *assemblyRepo) FindSubAssembly(ctx context.Context, id uuid.UUID) (*model.SubAssembly, error) {
	var s model.SubAssembly
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *assemblyRepo) ListSubAssemblies(ctx context.Context, activeOnly bool) ([]model.SubAssembly, error) {
	var subs []model.SubAssembly
	q := r.db.WithContext(ctx).Order("sku ASC")
	if activeOnly {
		q = q.Where("active = true")
	}
	err := q.Find(&subs).Error
	return subs, err
}

func (r *assemblyRepo) UpdateSubAssembly(ctx context.Context, s *model.SubAssembly) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *assemblyRepo) DeleteSubAssembly(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SubAssembly{}, "id = ?", id).Error
}
