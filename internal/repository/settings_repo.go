package repository

import (
	"context"
	"errors"

	"fabcost/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsRepository reads and writes process-wide settings rows.
// The labour rate is a singleton: current value only, no history.
type SettingsRepository interface {
	GetLabourRate(ctx context.Context) (int64, error)
	UpdateLabourRate(ctx context.Context, centsPerHour int64) error
}

type settingsRepo struct{ db *gorm.DB }

func NewSettingsRepository(db *gorm.DB) SettingsRepository { return &settingsRepo{db: db} }

// GetLabourRate returns the configured cents-per-hour rate, or 0 when the
// row has never been written (a fresh install costs labour at zero until an
// administrator sets the rate).
func (r *settingsRepo) GetLabourRate(ctx context.Context) (int64, error) {
	var s model.Setting
	err := r.db.WithContext(ctx).First(&s, "key = ?", model.SettingLabourRate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return s.IntValue, nil
}

func (r *settingsRepo) UpdateLabourRate(ctx context.Context, centsPerHour int64) error {
	s := model.Setting{Key: model.SettingLabourRate, IntValue: centsPerHour}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"int_value", "updated_at"}),
		}).
		Create(&s).Error
}
