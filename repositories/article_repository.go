package repositories

import (
	"content-hub/models"

	"gorm.io/gorm"
)

type ArticleRepository interface {
	Create(article *models.Article) error
	GetByID(id string) (*models.Article, error)
	WithTx(tx *gorm.DB) ArticleRepository
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) WithTx(tx *gorm.DB) ArticleRepository {
	return &articleRepository{db: tx}
}

func (r *articleRepository) Create(article *models.Article) error {
	return r.db.Create(article).Error
}

func (r *articleRepository) GetByID(id string) (*models.Article, error) {
	var article models.Article
	err := r.db.Preload("Category").First(&article, "id = ?", id).Error
	return &article, err
}
