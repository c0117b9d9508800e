package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PublishLog records one attempt to push an article to an external site.
// Rows are written by the (external) publishing layer; the pipeline never
// reads them.
type PublishLog struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	ArticleID   string    `json:"article_id" gorm:"type:uuid;not null;index"`
	WebsiteID   string    `json:"website_id" gorm:"type:uuid;not null;index"`
	Status      string    `json:"status" gorm:"size:20;not null"`
	Response    string    `json:"response" gorm:"type:text"`
	PublishedAt time.Time `json:"published_at"`
}

func (p *PublishLog) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
