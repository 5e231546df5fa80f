package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "expensely/internal/errors"
	"expensely/internal/models"
	"expensely/internal/pagination"
	"expensely/internal/services"
)

// --- mock income service ---

type mockIncomeService struct {
	createIncomeFn      func(userID uint, in services.TransactionInput) (*models.Income, error)
	getIncomeByIDFn     func(userID, incomeID uint) (*models.Income, error)
	getUserIncomesFn    func(userID uint, page pagination.PageRequest, r services.DateRange) (*pagination.PageResponse[models.Income], error)
	getRecentIncomesFn  func(userID uint, limit int) ([]models.Income, error)
	getIncomesInRangeFn func(userID uint, r services.DateRange) ([]models.Income, error)
	updateIncomeFn      func(userID, incomeID uint, in services.TransactionInput) (*models.Income, error)
	deleteIncomeFn      func(userID, incomeID uint) error
}

func (m *mockIncomeService) CreateIncome(userID uint, in services.TransactionInput) (*models.Income, error) {
	if m.createIncomeFn != nil {
		return m.createIncomeFn(userID, in)
	}
	return &models.Income{}, nil
}

func (m *mockIncomeService) GetIncomeByID(userID, incomeID uint) (*models.Income, error) {
	if m.getIncomeByIDFn != nil {
		return m.getIncomeByIDFn(userID, incomeID)
	}
	return &models.Income{}, nil
}

func (m *mockIncomeService) GetUserIncomes(userID uint, page pagination.PageRequest, r services.DateRange) (*pagination.PageResponse[models.Income], error) {
	if m.getUserIncomesFn != nil {
		return m.getUserIncomesFn(userID, page, r)
	}
	resp := pagination.NewPageResponse([]models.Income{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockIncomeService) GetRecentIncomes(userID uint, limit int) ([]models.Income, error) {
	if m.getRecentIncomesFn != nil {
		return m.getRecentIncomesFn(userID, limit)
	}
	return []models.Income{}, nil
}

func (m *mockIncomeService) GetIncomesInRange(userID uint, r services.DateRange) ([]models.Income, error) {
	if m.getIncomesInRangeFn != nil {
		return m.getIncomesInRangeFn(userID, r)
	}
	return []models.Income{}, nil
}

func (m *mockIncomeService) UpdateIncome(userID, incomeID uint, in services.TransactionInput) (*models.Income, error) {
	if m.updateIncomeFn != nil {
		return m.updateIncomeFn(userID, incomeID, in)
	}
	return &models.Income{}, nil
}

func (m *mockIncomeService) DeleteIncome(userID, incomeID uint) error {
	if m.deleteIncomeFn != nil {
		return m.deleteIncomeFn(userID, incomeID)
	}
	return nil
}

// verify interface compliance
var _ services.IncomeServicer = (*mockIncomeService)(nil)

func setupIncomeRouter(handler *IncomeHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.POST("/income", handler.CreateIncome)
	auth.GET("/income", handler.GetUserIncomes)
	auth.GET("/income/recent", handler.GetRecentIncomes)
	auth.GET("/income/:id", handler.GetIncomeByID)
	auth.PUT("/income/:id", handler.UpdateIncome)
	auth.DELETE("/income/:id", handler.DeleteIncome)
	return r
}

func TestIncomeHandler_CreateIncome(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		incSvc := &mockIncomeService{
			createIncomeFn: func(userID uint, in services.TransactionInput) (*models.Income, error) {
				return &models.Income{ID: 1, UserID: userID, Amount: in.Amount, Date: in.Date}, nil
			},
		}
		handler := NewIncomeHandler(incSvc)
		r := setupIncomeRouter(handler)

		rec := doRequest(r, "POST", "/income",
			`{"amount":2500,"date":"2024-03-01","category":"Salary"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		income := result["income"].(map[string]interface{})
		if income["amount"] != float64(2500) {
			t.Errorf("expected amount 2500, got %v", income["amount"])
		}
	})

	t.Run("returns 400 on missing date", func(t *testing.T) {
		handler := NewIncomeHandler(&mockIncomeService{})
		r := setupIncomeRouter(handler)

		rec := doRequest(r, "POST", "/income", `{"amount":100}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestIncomeHandler_GetIncomeByID(t *testing.T) {
	incSvc := &mockIncomeService{
		getIncomeByIDFn: func(uint, uint) (*models.Income, error) {
			return nil, apperrors.ErrIncomeNotFound
		},
	}
	handler := NewIncomeHandler(incSvc)
	r := setupIncomeRouter(handler)

	rec := doRequest(r, "GET", "/income/42", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	assertErrorCode(t, parseJSON(t, rec), "INCOME_NOT_FOUND")
}

func TestIncomeHandler_GetRecentIncomes(t *testing.T) {
	var gotLimit int
	incSvc := &mockIncomeService{
		getRecentIncomesFn: func(_ uint, limit int) ([]models.Income, error) {
			gotLimit = limit
			return []models.Income{}, nil
		},
	}
	handler := NewIncomeHandler(incSvc)
	r := setupIncomeRouter(handler)

	rec := doRequest(r, "GET", "/income/recent?limit=3", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotLimit != 3 {
		t.Errorf("expected limit 3, got %d", gotLimit)
	}
}

func TestIncomeHandler_DeleteIncome(t *testing.T) {
	var deletedID uint
	incSvc := &mockIncomeService{
		deleteIncomeFn: func(_, incomeID uint) error {
			deletedID = incomeID
			return nil
		},
	}
	handler := NewIncomeHandler(incSvc)
	r := setupIncomeRouter(handler)

	rec := doRequest(r, "DELETE", "/income/9", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deletedID != 9 {
		t.Errorf("expected income 9 deleted, got %d", deletedID)
	}
}
