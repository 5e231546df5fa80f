package models

import "time"

// User represents the user model in the database
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Username     *string   `gorm:"uniqueIndex" json:"username,omitempty"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Name         string    `gorm:"not null" json:"name"`
	CreatedAt    time.Time `json:"created_at"`

	// Single-use password reset token, cleared once consumed.
	ResetToken        *string    `json:"-"`
	ResetTokenExpires *time.Time `json:"-"`

	Expenses []Expense `gorm:"foreignKey:UserID" json:"expenses,omitempty"`
	Incomes  []Income  `gorm:"foreignKey:UserID" json:"incomes,omitempty"`
}
