package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "expensely/internal/errors"
	"expensely/internal/models"
	"expensely/internal/pagination"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// CreateExpense records a new expense for the user.
func (s *expenseService) CreateExpense(userID uint, in TransactionInput) (*models.Expense, error) {
	if err := validateTransactionInput(in); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		UserID:      userID,
		Amount:      in.Amount,
		Date:        in.Date,
		Category:    in.Category,
		Description: in.Description,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// GetExpenseByID retrieves an expense by ID for a specific user.
func (s *expenseService) GetExpenseByID(userID, expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// GetUserExpenses retrieves a paginated, date-filtered list of the user's
// expenses, newest first.
func (s *expenseService) GetUserExpenses(userID uint, page pagination.PageRequest, r DateRange) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := applyDateRange(s.db.Model(&models.Expense{}).Where("user_id = ?", userID), r)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetRecentExpenses returns the user's last N expenses by date descending.
func (s *expenseService) GetRecentExpenses(userID uint, limit int) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.db.Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// GetExpensesInRange returns all of the user's expenses within the range,
// date descending. Open bounds are allowed on either side.
func (s *expenseService) GetExpensesInRange(userID uint, r DateRange) ([]models.Expense, error) {
	var expenses []models.Expense
	q := applyDateRange(s.db.Where("user_id = ?", userID), r)
	if err := q.Order("date DESC").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// UpdateExpense replaces the mutable fields of an expense. ID and owner
// never change.
func (s *expenseService) UpdateExpense(userID, expenseID uint, in TransactionInput) (*models.Expense, error) {
	if err := validateTransactionInput(in); err != nil {
		return nil, err
	}

	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	expense.Amount = in.Amount
	expense.Date = in.Date
	expense.Category = in.Category
	expense.Description = in.Description

	if err := s.db.Save(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// DeleteExpense permanently removes an expense. There is no soft delete.
func (s *expenseService) DeleteExpense(userID, expenseID uint) error {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// validateTransactionInput enforces boundary validation shared by expenses
// and income entries.
func validateTransactionInput(in TransactionInput) error {
	if in.Amount <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if in.Date.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	return nil
}

// applyDateRange narrows a query to the inclusive [From, To] date range.
func applyDateRange(q *gorm.DB, r DateRange) *gorm.DB {
	if r.From != nil {
		q = q.Where("date >= ?", *r.From)
	}
	if r.To != nil {
		q = q.Where("date <= ?", *r.To)
	}
	return q
}
