package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/despachos/equipcheck/internal/models"
)

// Open opens the SQLite database at path and migrates the schema.
// WAL keeps concurrent readers from blocking on write-heavy approval
// bursts; busy_timeout covers the rest.
func Open(path string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", path)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if err := Migrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

// Migrate creates or updates the five tables.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Submission{},
		&models.SubmissionItem{},
		&models.Photo{},
		&models.Approval{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
