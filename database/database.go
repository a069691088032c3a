package database

import (
	"log"

	"admindash/config"
	"admindash/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the local-store database and migrates the KV schema. A
// SQLite file is the default; DATABASE_URL switches to Postgres for shared
// deployments. Concurrent writers are not coordinated either way - last
// writer wins.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.DatabaseURL != "" {
		dialector = postgres.Open(cfg.DatabaseURL)
	} else {
		dialector = sqlite.Open(cfg.DBPath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.KVEntry{}); err != nil {
		return nil, err
	}

	log.Println("Local store database ready")
	return db, nil
}
