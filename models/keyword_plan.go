package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type KeywordStatus string

const (
	KeywordPending    KeywordStatus = "pending"
	KeywordProcessing KeywordStatus = "processing"
	KeywordGenerated  KeywordStatus = "generated"
	KeywordFailed     KeywordStatus = "failed"
)

// KeywordPlan is one unit of generation work for a website. Priority is
// user-facing: 1 is the most urgent, 5 the least. ArticleID is set exactly
// when the status reaches "generated".
type KeywordPlan struct {
	ID            string        `json:"id" gorm:"type:uuid;primaryKey"`
	WebsiteID     string        `json:"website_id" gorm:"type:uuid;not null;uniqueIndex:idx_keyword_website"`
	Website       *Website      `json:"website,omitempty" gorm:"foreignKey:WebsiteID"`
	CategoryID    *string       `json:"category_id" gorm:"type:uuid"`
	Category      *Category     `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Keyword       string        `json:"keyword" gorm:"size:255;not null"`
	KeywordHash   string        `json:"keyword_hash" gorm:"size:64;not null;uniqueIndex:idx_keyword_website"`
	SearchVolume  *int          `json:"search_volume"`
	Difficulty    *int          `json:"difficulty"`
	Competition   string        `json:"competition" gorm:"size:20"`
	Priority      int           `json:"priority" gorm:"default:3"`
	Status        KeywordStatus `json:"status" gorm:"size:20;default:'pending';index"`
	ArticleID     *string       `json:"article_id" gorm:"type:uuid"`
	Article       *Article      `json:"article,omitempty" gorm:"foreignKey:ArticleID"`
	GeneratedAt   *time.Time    `json:"generated_at"`
	FailureReason string        `json:"failure_reason"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (k *KeywordPlan) BeforeCreate(tx *gorm.DB) error {
	if k.ID == "" {
		k.ID = uuid.NewString()
	}
	if k.KeywordHash == "" {
		k.KeywordHash = HashKeyword(k.Keyword)
	}
	return nil
}
