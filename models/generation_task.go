package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskProcessing TaskStatus = "processing"
	TaskCompleted  TaskStatus = "completed"
	TaskFailed     TaskStatus = "failed"
)

type TaskType string

const (
	TaskAuto   TaskType = "auto"
	TaskManual TaskType = "manual"
)

// GenerationTask is the audit record of one attempt to turn a keyword plan
// into an article. CompletedAt is set exactly when the task reaches a
// terminal status; the quota tracker buckets completions by it.
type GenerationTask struct {
	ID            string       `json:"id" gorm:"type:uuid;primaryKey"`
	WebsiteID     string       `json:"website_id" gorm:"type:uuid;not null;index"`
	Website       *Website     `json:"website,omitempty" gorm:"foreignKey:WebsiteID"`
	KeywordPlanID *string      `json:"keyword_plan_id" gorm:"type:uuid"`
	KeywordPlan   *KeywordPlan `json:"keyword_plan,omitempty" gorm:"foreignKey:KeywordPlanID"`
	Type          TaskType     `json:"type" gorm:"size:20;default:'manual';not null"`
	Status        TaskStatus   `json:"status" gorm:"size:20;default:'pending';index"`
	Model         string       `json:"model" gorm:"size:100"`
	Temperature   string       `json:"temperature" gorm:"size:10;default:'0.7'"`
	Prompt        string       `json:"prompt" gorm:"type:text"`
	TokensUsed    int          `json:"tokens_used" gorm:"default:0"`
	ArticleID     *string      `json:"article_id" gorm:"type:uuid"`
	Article       *Article     `json:"article,omitempty" gorm:"foreignKey:ArticleID"`
	ErrorMessage  string       `json:"error_message"`
	StartedAt     *time.Time   `json:"started_at"`
	CompletedAt   *time.Time   `json:"completed_at" gorm:"index"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (t *GenerationTask) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
