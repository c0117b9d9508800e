package models

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every pipeline entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Website{},
		&Category{},
		&Article{},
		&KeywordPlan{},
		&GenerationTask{},
		&PublishLog{},
	)
}

// HashKeyword is the deduplication key for a keyword within a website:
// case- and whitespace-insensitive.
func HashKeyword(keyword string) string {
	normalized := strings.ToLower(strings.TrimSpace(keyword))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
