package config

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"content-hub/models"
)

// InitDB opens the Postgres connection and migrates the schema.
func InitDB(cfg *Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := models.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	return db
}
