package infra

import (
	"fmt"

	"fabcost/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate to create / update all tables. The schema is small enough that
// AutoMigrate plus the jsonb column defaults on the models covers it.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// RunMigrations applies the schema. Also used by integration tests against
// throwaway containers.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Part{},
		&model.Fastener{},
		&model.ElectricalItem{},
		&model.CostHistoryEntry{},
		&model.BOMDocument{},
		&model.SubAssembly{},
		&model.Product{},
		&model.DesignTemplate{},
		&model.Supplier{},
		&model.Setting{},
		&model.User{},
	)
}
