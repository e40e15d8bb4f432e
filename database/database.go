package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"agency-site-server/config"
	"agency-site-server/logger"
	"agency-site-server/models"
)

var DB *gorm.DB

// Initialize opens the configured database, tunes the pool and runs migrations
func Initialize(cfg config.DatabaseConfig) error {
	db, err := Open(cfg.Driver, cfg.URL)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	if cfg.Driver == "postgres" {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info().Str("driver", cfg.Driver).Msg("connected to database")

	if err := Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info().Msg("database migrations completed")

	DB = db
	return nil
}

// Open connects to postgres or sqlite without migrating
func Open(driver, url string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(url)
	case "sqlite":
		dialector = sqlite.Open(url)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.NewGormLogger(time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates every table
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return err
	}
	return backfillTeamOrder(db)
}

// backfillTeamOrder gives members created before display ordering a stable position
func backfillTeamOrder(db *gorm.DB) error {
	var unordered int64
	if err := db.Model(&models.TeamMember{}).Where("display_order = 0").Count(&unordered).Error; err != nil {
		return err
	}
	if unordered <= 1 {
		return nil
	}

	var members []models.TeamMember
	if err := db.Order("display_order ASC, created_at ASC").Find(&members).Error; err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for i, m := range members {
			if m.Order == i {
				continue
			}
			if err := tx.Model(&models.TeamMember{}).Where("id = ?", m.ID).Update("display_order", i).Error; err != nil {
				return err
			}
		}
		logger.Info().Int("members", len(members)).Msg("backfilled team display order")
		return nil
	})
}

func GetDB() *gorm.DB {
	return DB
}
