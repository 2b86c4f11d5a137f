package database

import (
	"fmt"
	"sync/atomic"

	"devcamper/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDbSeq int64

// ConnectTestDb opens a fresh in-memory SQLite database, migrates the schema
// and installs it as the global instance. Used by package tests only.
// Each call gets its own named memory database so tests stay isolated while
// the connection pool still shares one store.
func ConnectTestDb() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared&_fk=1", atomic.AddInt64(&testDbSeq, 1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open test database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Bootcamp{},
		&models.Course{},
		&models.Review{},
	); err != nil {
		return nil, fmt.Errorf("migrate test database: %w", err)
	}

	Database = DbInstance{Db: db}
	return db, nil
}
