package repository

import (
	"expense-categorizer-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Expose DB if needed
func (r *TransactionRepository) DB() *gorm.DB {
	return r.db
}

// InsertIfAbsent persists the transaction unless a row with the same natural
// key already exists. The uniqueness check is the store's composite index, not
// an application-level pre-check, so concurrent overlapping imports cannot
// race into duplicates. Returns true when a row was actually inserted.
func (r *TransactionRepository) InsertIfAbsent(tx *models.Transaction) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(tx)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// GetByID fetch a single transaction by ID
func (r *TransactionRepository) GetByID(id uint) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.First(&tx, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

// ListAll returns every transaction, newest booking date first.
func (r *TransactionRepository) ListAll() ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.Order("date DESC, id DESC").Find(&txs).Error
	return txs, err
}

// ListUncategorized returns transactions without a category, in insertion order.
func (r *TransactionRepository) ListUncategorized() ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.Where("category_id IS NULL").Order("id ASC").Find(&txs).Error
	return txs, err
}

// SetCategory assigns (or clears, with nil) the category of one transaction.
func (r *TransactionRepository) SetCategory(id uint, categoryID *uint) error {
	return r.db.Model(&models.Transaction{}).
		Where("id = ?", id).
		Update("category_id", categoryID).
		Error
}

// SetCategoryBulk assigns the category on all listed transactions at once.
func (r *TransactionRepository) SetCategoryBulk(ids []uint, categoryID uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Transaction{}).
		Where("id IN ?", ids).
		Update("category_id", categoryID)
	return result.RowsAffected, result.Error
}

// ClearCategory detaches every transaction assigned to the category without
// deleting the transactions themselves.
func (r *TransactionRepository) ClearCategory(categoryID uint) error {
	return r.db.Model(&models.Transaction{}).
		Where("category_id = ?", categoryID).
		Update("category_id", nil).
		Error
}

func (r *TransactionRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Transaction{}).Count(&n).Error
	return n, err
}
