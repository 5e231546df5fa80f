package services

import (
	"context"
	"time"

	"expensely/internal/models"
	"expensely/internal/pagination"
	"expensely/internal/stats"
)

// TransactionInput carries the mutable fields of an expense or income
// entry. ID and owner are never part of it.
type TransactionInput struct {
	Amount      float64
	Date        time.Time
	Category    *string
	Description *string
}

// DateRange holds optional inclusive from/to date filters.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, name string, username *string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	ChangePassword(userID uint, currentPassword, newPassword string) error
	CreateResetToken(email string) (string, error)
	ResetPassword(token, newPassword string) error
	DeleteUser(userID uint) error
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(userID uint, in TransactionInput) (*models.Expense, error)
	GetExpenseByID(userID, expenseID uint) (*models.Expense, error)
	GetUserExpenses(userID uint, page pagination.PageRequest, r DateRange) (*pagination.PageResponse[models.Expense], error)
	GetRecentExpenses(userID uint, limit int) ([]models.Expense, error)
	GetExpensesInRange(userID uint, r DateRange) ([]models.Expense, error)
	UpdateExpense(userID, expenseID uint, in TransactionInput) (*models.Expense, error)
	DeleteExpense(userID, expenseID uint) error
}

// IncomeServicer defines the contract for income-related business logic.
type IncomeServicer interface {
	CreateIncome(userID uint, in TransactionInput) (*models.Income, error)
	GetIncomeByID(userID, incomeID uint) (*models.Income, error)
	GetUserIncomes(userID uint, page pagination.PageRequest, r DateRange) (*pagination.PageResponse[models.Income], error)
	GetRecentIncomes(userID uint, limit int) ([]models.Income, error)
	GetIncomesInRange(userID uint, r DateRange) ([]models.Income, error)
	UpdateIncome(userID, incomeID uint, in TransactionInput) (*models.Income, error)
	DeleteIncome(userID, incomeID uint) error
}

// StatsServicer defines the contract for the statistics endpoints. Every
// method takes today explicitly so that results are deterministic for a
// given date; handlers resolve it once per request.
type StatsServicer interface {
	CurrentMonthTotal(userID uint, today time.Time) (*stats.TrendPoint, error)
	CurrentMonthIncomeTotal(userID uint, today time.Time) (*stats.TrendPoint, error)
	MonthlyTrend(userID uint, today time.Time, months int) (*stats.MonthlyTrendReport, error)
	ExpensesByMonth(userID uint) ([]stats.MonthTotal, error)
	IncomesByMonth(userID uint) ([]stats.MonthTotal, error)
	CategoryBreakdown(userID uint, today time.Time, monthLabel string) (*stats.CategoryBreakdownReport, error)
	NetIncome(userID uint, today time.Time, monthLabel string) (*stats.NetIncomeReport, error)
}

// ExportServicer defines the contract for data exports.
type ExportServicer interface {
	ExportCSV(userID uint, r DateRange) ([]byte, error)
	ExportPDF(userID uint, r DateRange) ([]byte, error)
}

// ReceiptData is the shape the receipt scanner returns. Date is a
// YYYY-MM-DD string because the OCR backend may omit or mangle it; the
// client confirms all fields before anything is stored.
type ReceiptData struct {
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Merchant    string  `json:"merchant"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// ReceiptServicer defines the contract for receipt scanning.
type ReceiptServicer interface {
	ScanReceipt(ctx context.Context, image []byte, mimeType string) (*ReceiptData, error)
}

// EmailServicer defines the contract for outbound email.
type EmailServicer interface {
	SendPasswordReset(toEmail, resetToken string) error
}
