package models

import (
	"time"

	"github.com/google/uuid"
)

// ImportBatch records one processed upload and its outcome counters.
type ImportBatch struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Filename         string    `json:"filename"`
	StoredName       string    `gorm:"index" json:"stored_name"`
	ParsedCount      int       `json:"parsed_count"`
	InsertedCount    int       `json:"inserted_count"`
	DuplicateCount   int       `json:"duplicate_count"`
	CategorizedCount int       `json:"categorized_count"`
	Status           string    `gorm:"index" json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}
