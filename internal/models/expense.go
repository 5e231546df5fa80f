package models

import "time"

// Expense represents a single spending record owned by a user.
// Amount is always positive; Date carries day precision only.
type Expense struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Date        time.Time `gorm:"type:date;not null;index" json:"date"`
	Category    *string   `json:"category,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
