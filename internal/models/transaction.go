package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Transaction is one booked bank movement. The tuple
// (date, amount, currency, counterparty_name, description) is the natural key:
// re-ingesting an export that contains an already-stored row must not create a
// second copy, so the composite unique index is the dedup gate.
type Transaction struct {
	ID                    uint            `gorm:"primaryKey" json:"id"`
	Date                  string          `gorm:"uniqueIndex:idx_transactions_natural_key;not null" json:"date"` // ISO YYYY-MM-DD
	Amount                decimal.Decimal `gorm:"uniqueIndex:idx_transactions_natural_key;type:decimal(14,2);not null" json:"amount"`
	Currency              string          `gorm:"uniqueIndex:idx_transactions_natural_key;default:EUR" json:"currency"`
	CounterpartyName      string          `gorm:"uniqueIndex:idx_transactions_natural_key" json:"counterparty_name"`
	Description           string          `gorm:"uniqueIndex:idx_transactions_natural_key" json:"description"`
	IsFallbackDescription bool            `gorm:"default:false" json:"is_fallback_description"`
	CategoryID            *uint           `gorm:"index" json:"category_id"`
	Category              *Category       `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	RawColumns            datatypes.JSON  `json:"raw_columns,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
}
