package db

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"boardhub/internal/models"

	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to DATABASE_URL. A "sqlite://" prefix selects a SQLite file, anything
// else is handed to the postgres driver as a DSN or URL.
func Open(dsn string, maxOpenConns int, logger *slog.Logger) (*gorm.DB, error) {
	var (
		dial     gorm.Dialector
		isSqlite bool
	)
	if path, ok := strings.CutPrefix(dsn, "sqlite://"); ok {
		if !strings.Contains(path, "?") {
			path += "?_foreign_keys=on"
		}
		dial = sqlite.Open(path)
		isSqlite = true
	} else {
		dial = postgres.Open(dsn)
	}

	db, err := gorm.Open(dial, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 slogGorm.New(slogGorm.WithLogger(logger)),
	})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open: %w", err)
	}

	sqldb, err := db.DB()
	if err != nil {
		return nil, err
	}
	if isSqlite {
		// sqlite allows a single writer
		maxOpenConns = 1
	}
	if maxOpenConns > 0 {
		sqldb.SetMaxOpenConns(maxOpenConns)
	}
	sqldb.SetConnMaxIdleTime(time.Hour)

	logger.Info("database connection established", "sqlite", isSqlite)
	return db, nil
}

// Migrate creates or updates every table the board needs and seeds the default categories.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.EmailCode{},
		&models.Category{},
		&models.Post{},
		&models.Comment{},
		&models.Recommend{},
		&models.Report{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return seedCategories(db)
}

func seedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []models.Category{
		{Category: "free"},
		{Category: "question"},
		{Category: "info"},
		{Category: "notice"},
	}
	return db.Create(&categories).Error
}
