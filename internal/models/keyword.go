package models

import "time"

type Keyword struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Keyword    string    `gorm:"uniqueIndex;not null" json:"keyword"`
	CategoryID uint      `gorm:"index;not null" json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
}
