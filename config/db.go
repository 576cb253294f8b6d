package config

import (
	"fmt"

	"food-ordering-api/models"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB connects with the named driver and migrates every model
func OpenDB(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "", "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	if dialector.Name() == "sqlite" {
		// sqlite allows a single writer; concurrent connections fail with SQLITE_BUSY
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("connect %s: %w", driver, err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// InitDB opens the configured database and installs it as config.DB
func InitDB(cfg *Config) error {
	db, err := OpenDB(cfg.DBDriver, cfg.DBSource)
	if err != nil {
		return err
	}
	DB = db
	log.Info().Str("driver", cfg.DBDriver).Msg("database connected and migrated")
	return nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// ClearAll deletes every row of every table and returns per-table counts.
func ClearAll(db *gorm.DB) (map[string]int64, error) {
	all := models.AllModels()
	removed := make(map[string]int64, len(all))
	// children first
	for i := len(all) - 1; i >= 0; i-- {
		m := all[i]
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(m); err != nil {
			return removed, fmt.Errorf("parse model: %w", err)
		}
		res := db.Where("1 = 1").Delete(m)
		if res.Error != nil {
			return removed, fmt.Errorf("clear %s: %w", stmt.Schema.Table, res.Error)
		}
		removed[stmt.Schema.Table] = res.RowsAffected
	}
	return removed, nil
}
