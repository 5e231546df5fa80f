package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"expensely/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Test User",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestExpense creates an expense on the given date. An empty category
// is stored as NULL.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID uint, amount float64, date time.Time, category string) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID: userID,
		Amount: amount,
		Date:   date,
	}
	if category != "" {
		expense.Category = &category
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestIncome creates an income entry on the given date. An empty
// category is stored as NULL.
func CreateTestIncome(t *testing.T, db *gorm.DB, userID uint, amount float64, date time.Time, category string) *models.Income {
	t.Helper()

	income := &models.Income{
		UserID: userID,
		Amount: amount,
		Date:   date,
	}
	if category != "" {
		income.Category = &category
	}
	if err := db.Create(income).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return income
}
