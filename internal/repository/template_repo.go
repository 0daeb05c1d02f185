package repository

import (
	"context"

	"fabcost/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TemplateRepository is the data access contract for design templates.
type TemplateRepository interface {
	Create(ctx context.Context, t *model.DesignTemplate) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.DesignTemplate, error)
	List(ctx context.Context) ([]model.DesignTemplate, error)
	Update(ctx context.Context, t *model.DesignTemplate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type templateRepo struct{ db *gorm.DB }

func NewTemplateRepository(db *gorm.DB) TemplateRepository { return &templateRepo{db: db} }

func (r *templateRepo) Create(ctx context.Context, t *model.DesignTemplate) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *templateRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.DesignTemplate, error) {
	var t model.DesignTemplate
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	return &t, err
}

func (r *templateRepo) List(ctx context.Context) ([]model.DesignTemplate, error) {
	var templates []model.DesignTemplate
	err := r.db.WithContext(ctx).Order("name ASC").Find(&templates).Error
	return templates, err
}

func (r *templateRepo) Update(ctx context.Context, t *model.DesignTemplate) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *templateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.DesignTemplate{}, "id = ?", id).Error
}
