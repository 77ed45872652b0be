package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"alert-export/internal/config"
	"alert-export/internal/export"
	"alert-export/internal/mackerel"
	"alert-export/internal/report"
	storage_gorm "alert-export/internal/storage/gorm"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
)

func main() {
	// A .env file is optional; the real environment always wins.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("Failed to load timezone %q: %v", cfg.Timezone, err)
	}

	// --- Fetch cache database and migrations ---
	if dir := filepath.Dir(cfg.Cache.DSN); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Failed to create cache directory: %v", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(cfg.Cache.DSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to open cache database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying sql.DB: %v", err)
	}

	driver, err := sqlite3.WithInstance(sqlDB, &sqlite3.Config{})
	if err != nil {
		log.Fatalf("Failed to create migrate driver: %v", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"sqlite3",
		driver,
	)
	if err != nil {
		log.Fatalf("Failed to create migrate instance: %v", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// --- Dependency wiring ---
	cacheRepo, err := storage_gorm.NewGormAlertCacheRepository(db)
	if err != nil {
		log.Fatalf("Failed to create alert cache repository: %v", err)
	}

	client := mackerel.NewClient(cfg.Mackerel.BaseURL, cfg.Mackerel.APIKey)
	exporter := export.NewExporter(client, cacheRepo, report.NewCSVWriter(), loc, cfg.Output.Path)

	if err := exporter.Run(context.Background()); err != nil {
		log.Fatalf("Export failed: %v", err)
	}
}
