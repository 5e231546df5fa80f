package models

import "time"

// Income represents a single earnings record owned by a user.
// It mirrors Expense; the two live in separate tables with
// independent ID sequences.
type Income struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Date        time.Time `gorm:"type:date;not null;index" json:"date"`
	Category    *string   `json:"category,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
