package ingest

import (
	"encoding/json"
	"log"
	"time"

	"expense-categorizer-backend/internal/models"
	"expense-categorizer-backend/internal/parser"
	"expense-categorizer-backend/internal/repository"
	"expense-categorizer-backend/internal/services/categorize"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	transactionRepo *repository.TransactionRepository
	keywordRepo     *repository.KeywordRepository
	db              *gorm.DB
}

func NewService(
	transactionRepo *repository.TransactionRepository,
	keywordRepo *repository.KeywordRepository,
) *Service {
	return &Service{
		transactionRepo: transactionRepo,
		keywordRepo:     keywordRepo,
		db:              transactionRepo.DB(),
	}
}

// Result summarizes one processed export.
type Result struct {
	BatchID     uuid.UUID `json:"batch_id"`
	Parsed      int       `json:"parsed"`
	Inserted    int       `json:"inserted"`
	Duplicates  int       `json:"duplicates"`
	Categorized int       `json:"categorized"`
}

// Import parses a bank export and persists its rows one at a time. Each row
// is matched against the current keyword rules before insertion; rows whose
// natural key is already stored are absorbed as duplicates, not errors. A
// header that cannot be found fails the whole import with nothing ingested.
func (s *Service) Import(filename, storedName, content string) (*Result, error) {
	parsed, err := parser.Parse(content)
	if err != nil {
		return nil, err
	}

	keywords, err := s.keywordRepo.ListAll()
	if err != nil {
		return nil, err
	}

	result := &Result{BatchID: uuid.New(), Parsed: len(parsed)}

	for _, p := range parsed {
		categoryID := categorize.MatchKeywords(keywords, p.CounterpartyName, p.Description)

		rawColumns, _ := json.Marshal(p.RawColumns)
		inserted, err := s.transactionRepo.InsertIfAbsent(&models.Transaction{
			Date:                  p.Date,
			Amount:                p.Amount,
			Currency:              p.Currency,
			CounterpartyName:      p.CounterpartyName,
			Description:           p.Description,
			IsFallbackDescription: p.IsFallbackDescription,
			CategoryID:            categoryID,
			RawColumns:            rawColumns,
		})
		if err != nil {
			return nil, err
		}
		if inserted {
			result.Inserted++
			if categoryID != nil {
				result.Categorized++
			}
		} else {
			result.Duplicates++
		}
	}

	batch := &models.ImportBatch{
		ID:               result.BatchID,
		Filename:         filename,
		StoredName:       storedName,
		ParsedCount:      result.Parsed,
		InsertedCount:    result.Inserted,
		DuplicateCount:   result.Duplicates,
		CategorizedCount: result.Categorized,
		Status:           "completed",
		CreatedAt:        time.Now(),
	}
	if err := s.db.Create(batch).Error; err != nil {
		return nil, err
	}

	log.Printf("import %s: %d parsed, %d inserted, %d duplicates, %d categorized",
		filename, result.Parsed, result.Inserted, result.Duplicates, result.Categorized)

	return result, nil
}

// ListBatches returns past imports, newest first.
func (s *Service) ListBatches() ([]models.ImportBatch, error) {
	var batches []models.ImportBatch
	err := s.db.Order("created_at DESC").Find(&batches).Error
	return batches, err
}
