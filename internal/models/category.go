package models

import "time"

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Keywords  []Keyword `gorm:"constraint:OnDelete:CASCADE" json:"keywords,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
