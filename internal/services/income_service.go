package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "expensely/internal/errors"
	"expensely/internal/models"
	"expensely/internal/pagination"
)

// incomeService handles income-related business logic. It mirrors the
// expense service over the incomes table.
type incomeService struct {
	db *gorm.DB
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB) IncomeServicer {
	return &incomeService{db: db}
}

// CreateIncome records a new income entry for the user.
func (s *incomeService) CreateIncome(userID uint, in TransactionInput) (*models.Income, error) {
	if err := validateTransactionInput(in); err != nil {
		return nil, err
	}

	income := &models.Income{
		UserID:      userID,
		Amount:      in.Amount,
		Date:        in.Date,
		Category:    in.Category,
		Description: in.Description,
	}

	if err := s.db.Create(income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return income, nil
}

// GetIncomeByID retrieves an income entry by ID for a specific user.
func (s *incomeService) GetIncomeByID(userID, incomeID uint) (*models.Income, error) {
	var income models.Income
	if err := s.db.Where("id = ? AND user_id = ?", incomeID, userID).First(&income).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIncomeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &income, nil
}

// GetUserIncomes retrieves a paginated, date-filtered list of the user's
// income entries, newest first.
func (s *incomeService) GetUserIncomes(userID uint, page pagination.PageRequest, r DateRange) (*pagination.PageResponse[models.Income], error) {
	page.Defaults()

	base := applyDateRange(s.db.Model(&models.Income{}).Where("user_id = ?", userID), r)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var incomes []models.Income
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&incomes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(incomes, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetRecentIncomes returns the user's last N income entries by date descending.
func (s *incomeService) GetRecentIncomes(userID uint, limit int) ([]models.Income, error) {
	var incomes []models.Income
	if err := s.db.Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&incomes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return incomes, nil
}

// GetIncomesInRange returns all of the user's income entries within the
// range, date descending.
func (s *incomeService) GetIncomesInRange(userID uint, r DateRange) ([]models.Income, error) {
	var incomes []models.Income
	q := applyDateRange(s.db.Where("user_id = ?", userID), r)
	if err := q.Order("date DESC").Find(&incomes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return incomes, nil
}

// UpdateIncome replaces the mutable fields of an income entry.
func (s *incomeService) UpdateIncome(userID, incomeID uint, in TransactionInput) (*models.Income, error) {
	if err := validateTransactionInput(in); err != nil {
		return nil, err
	}

	income, err := s.GetIncomeByID(userID, incomeID)
	if err != nil {
		return nil, err
	}

	income.Amount = in.Amount
	income.Date = in.Date
	income.Category = in.Category
	income.Description = in.Description

	if err := s.db.Save(income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return income, nil
}

// DeleteIncome permanently removes an income entry.
func (s *incomeService) DeleteIncome(userID, incomeID uint) error {
	income, err := s.GetIncomeByID(userID, incomeID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(income).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
