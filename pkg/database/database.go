package database

import (
	"fmt"

	"school-service/internal/model"
	"school-service/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database connection with the provided configuration and
// returns the handle. The handle is passed explicitly to every component that
// needs it; there is no package-level instance.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	logLevel := cfg.DB.LogLevel
	if logLevel == 0 {
		logLevel = logger.Warn
	}

	// Connect with PreferSimpleProtocol to prevent "prepared statement
	// already exists" errors behind connection poolers
	pgConfig := postgres.Config{
		DSN:                  cfg.DB.GetDSN(),
		PreferSimpleProtocol: true,
	}

	db, err := gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting database connection: %w", err)
	}

	if cfg.DB.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}

	if cfg.DB.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}

	if cfg.DB.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the table structure based on our models
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Organization{},
		&model.Invitation{},
		&model.User{},
		&model.School{},
		&model.Campus{},
		&model.Student{},
		&model.Subject{},
		&model.Class{},
		&model.ClassStudent{},
		&model.Assignment{},
		&model.Grade{},
	)
	if err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	return nil
}
