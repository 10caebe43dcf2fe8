package categorize

import (
	"errors"
	"log"
	"strings"

	"expense-categorizer-backend/internal/models"
	"expense-categorizer-backend/internal/repository"

	"gorm.io/gorm"
)

var ErrEmptyName = errors.New("name must not be empty")

type Service struct {
	transactionRepo *repository.TransactionRepository
	keywordRepo     *repository.KeywordRepository
	categoryRepo    *repository.CategoryRepository
	db              *gorm.DB
}

func NewService(
	transactionRepo *repository.TransactionRepository,
	keywordRepo *repository.KeywordRepository,
	categoryRepo *repository.CategoryRepository,
) *Service {
	return &Service{
		transactionRepo: transactionRepo,
		keywordRepo:     keywordRepo,
		categoryRepo:    categoryRepo,
		db:              transactionRepo.DB(),
	}
}

// MatchKeywords scans the rules in their given order and returns the category
// of the first rule whose text occurs (case-insensitively) in the counterparty
// name or description. Ties are broken purely by rule order; there is no
// scoring and no longest-match preference. Nil means no match.
func MatchKeywords(keywords []models.Keyword, counterparty, description string) *uint {
	search := strings.ToLower(counterparty + " " + description)
	for _, k := range keywords {
		if strings.Contains(search, strings.ToLower(k.Keyword)) {
			id := k.CategoryID
			return &id
		}
	}
	return nil
}

// AssignCategory sets (or, with nil, clears) the category of one transaction.
// Assigning a category also trains a keyword rule from the transaction: the
// counterparty name when present, the description otherwise. A freshly
// learned rule is applied retroactively to every still-uncategorized
// transaction it matches. The whole step runs in one store transaction.
func (s *Service) AssignCategory(transactionID uint, categoryID *uint) error {
	if categoryID == nil {
		return s.transactionRepo.SetCategory(transactionID, nil)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		transactionRepo := repository.NewTransactionRepository(tx)
		keywordRepo := repository.NewKeywordRepository(tx)

		transaction, err := transactionRepo.GetByID(transactionID)
		if err != nil {
			return err
		}

		candidate := transaction.CounterpartyName
		if candidate == "" {
			candidate = transaction.Description
		}

		if candidate != "" {
			exists, err := keywordRepo.ExistsForCategory(candidate, *categoryID)
			if err != nil {
				return err
			}
			if !exists {
				// Another category may already own the keyword text; the
				// global uniqueness constraint wins and this becomes a no-op.
				if _, err := keywordRepo.InsertIfAbsent(&models.Keyword{
					Keyword:    candidate,
					CategoryID: *categoryID,
				}); err != nil {
					return err
				}
				if _, err := propagate(transactionRepo, candidate, *categoryID); err != nil {
					return err
				}
			}
		}

		return transactionRepo.SetCategory(transactionID, categoryID)
	})
}

// AddKeyword creates a user-supplied keyword rule and applies it to every
// currently uncategorized transaction it matches.
func (s *Service) AddKeyword(keyword string, categoryID uint) error {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return ErrEmptyName
	}
	if _, err := s.categoryRepo.GetByID(categoryID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		transactionRepo := repository.NewTransactionRepository(tx)
		keywordRepo := repository.NewKeywordRepository(tx)

		if _, err := keywordRepo.InsertIfAbsent(&models.Keyword{
			Keyword:    keyword,
			CategoryID: categoryID,
		}); err != nil {
			return err
		}

		count, err := propagate(transactionRepo, keyword, categoryID)
		if err != nil {
			return err
		}
		if count > 0 {
			log.Printf("keyword %q categorized %d existing transactions", keyword, count)
		}
		return nil
	})
}

// propagate assigns the category to every uncategorized transaction whose
// description or counterparty name contains the keyword. Matching is
// case-insensitive, same as the import-time matcher.
func propagate(transactionRepo *repository.TransactionRepository, keyword string, categoryID uint) (int64, error) {
	uncategorized, err := transactionRepo.ListUncategorized()
	if err != nil {
		return 0, err
	}

	needle := strings.ToLower(keyword)
	var ids []uint
	for _, tx := range uncategorized {
		if strings.Contains(strings.ToLower(tx.Description), needle) ||
			strings.Contains(strings.ToLower(tx.CounterpartyName), needle) {
			ids = append(ids, tx.ID)
		}
	}

	return transactionRepo.SetCategoryBulk(ids, categoryID)
}

func (s *Service) CreateCategory(name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	category := &models.Category{Name: name}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Service) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.ListWithKeywords()
}

// DeleteCategory removes the category, cascades deletion of its keyword rules
// and detaches (without deleting) every transaction assigned to it. Deleting
// an id that is already gone is a success.
func (s *Service) DeleteCategory(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.Keyword{}).Error; err != nil {
			return err
		}
		if err := repository.NewTransactionRepository(tx).ClearCategory(id); err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, id).Error
	})
}

// DeleteKeyword removes one rule. Categorizations the rule already produced
// are kept.
func (s *Service) DeleteKeyword(id uint) error {
	return s.db.Delete(&models.Keyword{}, id).Error
}
