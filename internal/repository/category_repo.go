package repository

import (
	"expense-categorizer-backend/internal/models"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) DB() *gorm.DB {
	return r.db
}

func (r *CategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *CategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListWithKeywords returns every category with its keyword rules attached.
func (r *CategoryRepository) ListWithKeywords() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Preload("Keywords", func(db *gorm.DB) *gorm.DB {
		return db.Order("keywords.id ASC")
	}).Order("id ASC").Find(&categories).Error
	return categories, err
}
