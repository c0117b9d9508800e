package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	WebsiteID   *string   `json:"website_id" gorm:"type:uuid;index"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	Slug        string    `json:"slug" gorm:"size:100;not null;uniqueIndex"`
	Description string    `json:"description"`
	Color       string    `json:"color" gorm:"size:7;default:'#3B82F6'"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
