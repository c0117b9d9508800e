package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ArticleStatus string

const (
	ArticleDraft     ArticleStatus = "draft"
	ArticlePublished ArticleStatus = "published"
	ArticleArchived  ArticleStatus = "archived"
)

// Article is the generated content artifact. Auto-generated articles are
// created directly in the published state.
type Article struct {
	ID             string        `json:"id" gorm:"type:uuid;primaryKey"`
	Title          string        `json:"title" gorm:"size:200;not null"`
	Slug           string        `json:"slug" gorm:"size:200;not null;uniqueIndex"`
	Content        string        `json:"content" gorm:"type:text;not null"`
	Excerpt        string        `json:"excerpt" gorm:"type:text"`
	FeaturedImage  string        `json:"featured_image"`
	SeoTitle       string        `json:"seo_title" gorm:"size:60"`
	SeoDescription string        `json:"seo_description" gorm:"size:160"`
	SeoKeywords    string        `json:"seo_keywords" gorm:"type:text"`
	CategoryID     *string       `json:"category_id" gorm:"type:uuid"`
	Category       *Category     `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Status         ArticleStatus `json:"status" gorm:"size:20;default:'draft';not null"`
	PublishedAt    *time.Time    `json:"published_at"`
	ViewCount      int           `json:"view_count" gorm:"default:0"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
