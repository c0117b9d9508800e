package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Website is a publishing target with its own generation settings. Records
// are created and edited by the admin layer; the pipeline only reads them.
type Website struct {
	ID                  string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name                string    `json:"name" gorm:"size:100;not null"`
	Domain              string    `json:"domain" gorm:"size:255;not null;uniqueIndex"`
	URL                 string    `json:"url" gorm:"not null"`
	Description         string    `json:"description"`
	DefaultLanguage     string    `json:"default_language" gorm:"size:10;default:'en'"`
	Timezone            string    `json:"timezone" gorm:"size:50;default:'UTC'"`
	IsActive            bool      `json:"is_active" gorm:"default:true"`
	AutoGenerateEnabled bool      `json:"auto_generate_enabled" gorm:"default:false"`
	GenerateInterval    int       `json:"generate_interval" gorm:"default:24"`
	MaxArticlesPerDay   int       `json:"max_articles_per_day" gorm:"default:5"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (w *Website) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

// Eligible reports whether the website may receive auto-generated articles.
func (w *Website) Eligible() bool {
	return w.IsActive && w.AutoGenerateEnabled
}
