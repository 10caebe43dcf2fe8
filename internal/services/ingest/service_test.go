package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"expense-categorizer-backend/internal/models"
	"expense-categorizer-backend/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Keyword{},
		&models.Transaction{},
		&models.ImportBatch{},
	))
	return db
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	db := newTestDB(t)
	return NewService(
		repository.NewTransactionRepository(db),
		repository.NewKeywordRepository(db),
	), db
}

func fixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../../../testdata/bank_export.csv")
	require.NoError(t, err)
	return string(data)
}

func TestImport_Fixture(t *testing.T) {
	s, db := newTestService(t)

	result, err := s.Import("bank_export.csv", "stored.csv", fixture(t))
	require.NoError(t, err)

	assert.Equal(t, 4, result.Parsed)
	assert.Equal(t, 4, result.Inserted)
	assert.Equal(t, 0, result.Duplicates)
	assert.Equal(t, 0, result.Categorized)

	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	assert.EqualValues(t, 4, count)

	var batch models.ImportBatch
	require.NoError(t, db.First(&batch, "id = ?", result.BatchID).Error)
	assert.Equal(t, "bank_export.csv", batch.Filename)
	assert.Equal(t, "stored.csv", batch.StoredName)
	assert.Equal(t, 4, batch.InsertedCount)
	assert.Equal(t, "completed", batch.Status)
}

func TestImport_ReimportIsIdempotent(t *testing.T) {
	s, db := newTestService(t)
	content := fixture(t)

	first, err := s.Import("bank_export.csv", "a.csv", content)
	require.NoError(t, err)
	require.Equal(t, 4, first.Inserted)

	second, err := s.Import("bank_export.csv", "b.csv", content)
	require.NoError(t, err)
	assert.Equal(t, 4, second.Parsed)
	assert.Equal(t, 0, second.Inserted)
	assert.Equal(t, 4, second.Duplicates)

	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	assert.EqualValues(t, 4, count, "reimporting must not add rows")
}

func TestImport_HeaderNotFoundIngestsNothing(t *testing.T) {
	s, db := newTestService(t)

	_, err := s.Import("bad.csv", "bad.csv", "no;header;here\n1;2;3\n")
	require.Error(t, err)

	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	assert.EqualValues(t, 0, count)
	db.Model(&models.ImportBatch{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestImport_MatchesExistingKeywords(t *testing.T) {
	s, db := newTestService(t)

	groceries := models.Category{Name: "Groceries"}
	require.NoError(t, db.Create(&groceries).Error)
	require.NoError(t, db.Create(&models.Keyword{Keyword: "delhaize", CategoryID: groceries.ID}).Error)

	result, err := s.Import("bank_export.csv", "a.csv", fixture(t))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Categorized)

	var tx models.Transaction
	require.NoError(t, db.First(&tx, "counterparty_name = ?", "DELHAIZE BRUSSEL").Error)
	require.NotNil(t, tx.CategoryID)
	assert.Equal(t, groceries.ID, *tx.CategoryID, "matching is case-insensitive")

	var other models.Transaction
	require.NoError(t, db.First(&other, "counterparty_name = ?", "ACME PAYROLL SERVICES").Error)
	assert.Nil(t, other.CategoryID)
}

func TestInsertIfAbsent_NaturalKeyDedup(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewTransactionRepository(db)

	tx := func() *models.Transaction {
		return &models.Transaction{
			Date:             "2025-01-01",
			Amount:           decimal.RequireFromString("10.00"),
			Currency:         "EUR",
			CounterpartyName: "Test CP",
			Description:      "Test Desc",
		}
	}

	inserted, err := repo.InsertIfAbsent(tx())
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.InsertIfAbsent(tx())
	require.NoError(t, err)
	assert.False(t, inserted, "natural-key conflict is a silent no-op")

	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	assert.EqualValues(t, 1, count)

	// A differing field makes it a new transaction
	diff := tx()
	diff.Description = "Other Desc"
	inserted, err = repo.InsertIfAbsent(diff)
	require.NoError(t, err)
	assert.True(t, inserted)
}
