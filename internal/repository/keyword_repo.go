package repository

import (
	"expense-categorizer-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KeywordRepository struct {
	db *gorm.DB
}

func NewKeywordRepository(db *gorm.DB) *KeywordRepository {
	return &KeywordRepository{db: db}
}

func (r *KeywordRepository) DB() *gorm.DB {
	return r.db
}

// ListAll returns every keyword rule in creation order. Matching iterates this
// order, so it must be identical across calls for the same data.
func (r *KeywordRepository) ListAll() ([]models.Keyword, error) {
	var keywords []models.Keyword
	err := r.db.Order("id ASC").Find(&keywords).Error
	return keywords, err
}

// InsertIfAbsent creates the keyword rule unless the keyword text is already
// taken. The global keyword-uniqueness constraint wins silently. Returns true
// when a rule was actually inserted.
func (r *KeywordRepository) InsertIfAbsent(keyword *models.Keyword) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(keyword)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ExistsForCategory reports whether this exact keyword text is already a rule
// for this exact category.
func (r *KeywordRepository) ExistsForCategory(keyword string, categoryID uint) (bool, error) {
	var n int64
	err := r.db.Model(&models.Keyword{}).
		Where("keyword = ? AND category_id = ?", keyword, categoryID).
		Count(&n).Error
	return n > 0, err
}
