package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"expensely/internal/services"
	"expensely/internal/stats"
)

// --- mock stats service ---

type mockStatsService struct {
	currentMonthTotalFn       func(userID uint, today time.Time) (*stats.TrendPoint, error)
	currentMonthIncomeTotalFn func(userID uint, today time.Time) (*stats.TrendPoint, error)
	monthlyTrendFn            func(userID uint, today time.Time, months int) (*stats.MonthlyTrendReport, error)
	expensesByMonthFn         func(userID uint) ([]stats.MonthTotal, error)
	incomesByMonthFn          func(userID uint) ([]stats.MonthTotal, error)
	categoryBreakdownFn       func(userID uint, today time.Time, monthLabel string) (*stats.CategoryBreakdownReport, error)
	netIncomeFn               func(userID uint, today time.Time, monthLabel string) (*stats.NetIncomeReport, error)
}

func (m *mockStatsService) CurrentMonthTotal(userID uint, today time.Time) (*stats.TrendPoint, error) {
	if m.currentMonthTotalFn != nil {
		return m.currentMonthTotalFn(userID, today)
	}
	return &stats.TrendPoint{}, nil
}

func (m *mockStatsService) CurrentMonthIncomeTotal(userID uint, today time.Time) (*stats.TrendPoint, error) {
	if m.currentMonthIncomeTotalFn != nil {
		return m.currentMonthIncomeTotalFn(userID, today)
	}
	return &stats.TrendPoint{}, nil
}

func (m *mockStatsService) MonthlyTrend(userID uint, today time.Time, months int) (*stats.MonthlyTrendReport, error) {
	if m.monthlyTrendFn != nil {
		return m.monthlyTrendFn(userID, today, months)
	}
	return &stats.MonthlyTrendReport{}, nil
}

func (m *mockStatsService) ExpensesByMonth(userID uint) ([]stats.MonthTotal, error) {
	if m.expensesByMonthFn != nil {
		return m.expensesByMonthFn(userID)
	}
	return []stats.MonthTotal{}, nil
}

func (m *mockStatsService) IncomesByMonth(userID uint) ([]stats.MonthTotal, error) {
	if m.incomesByMonthFn != nil {
		return m.incomesByMonthFn(userID)
	}
	return []stats.MonthTotal{}, nil
}

func (m *mockStatsService) CategoryBreakdown(userID uint, today time.Time, monthLabel string) (*stats.CategoryBreakdownReport, error) {
	if m.categoryBreakdownFn != nil {
		return m.categoryBreakdownFn(userID, today, monthLabel)
	}
	return &stats.CategoryBreakdownReport{}, nil
}

func (m *mockStatsService) NetIncome(userID uint, today time.Time, monthLabel string) (*stats.NetIncomeReport, error) {
	if m.netIncomeFn != nil {
		return m.netIncomeFn(userID, today, monthLabel)
	}
	return &stats.NetIncomeReport{}, nil
}

// verify interface compliance
var _ services.StatsServicer = (*mockStatsService)(nil)

func setupStatsRouter(handler *StatsHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.GET("/stats/current-month", handler.GetCurrentMonth)
	auth.GET("/stats/monthly-trend", handler.GetMonthlyTrend)
	auth.GET("/stats/by-month", handler.GetByMonth)
	auth.GET("/stats/month-by-category", handler.GetMonthByCategory)
	auth.GET("/stats/net-income", handler.GetNetIncome)
	auth.GET("/stats/income/current-month", handler.GetIncomeCurrentMonth)
	auth.GET("/stats/income/by-month", handler.GetIncomeByMonth)
	return r
}

func TestStatsHandler_GetCurrentMonth(t *testing.T) {
	statsSvc := &mockStatsService{
		currentMonthTotalFn: func(userID uint, today time.Time) (*stats.TrendPoint, error) {
			return &stats.TrendPoint{Month: today.Format("2006-01"), Total: 123.45}, nil
		},
	}
	handler := NewStatsHandler(statsSvc)
	r := setupStatsRouter(handler)

	rec := doRequest(r, "GET", "/stats/current-month", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["total"] != 123.45 {
		t.Errorf("expected total 123.45, got %v", result["total"])
	}
}

func TestStatsHandler_GetMonthlyTrend(t *testing.T) {
	t.Run("passes months through", func(t *testing.T) {
		var gotMonths int
		statsSvc := &mockStatsService{
			monthlyTrendFn: func(_ uint, _ time.Time, months int) (*stats.MonthlyTrendReport, error) {
				gotMonths = months
				return &stats.MonthlyTrendReport{}, nil
			},
		}
		handler := NewStatsHandler(statsSvc)
		r := setupStatsRouter(handler)

		rec := doRequest(r, "GET", "/stats/monthly-trend?months=12", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotMonths != 12 {
			t.Errorf("expected months 12, got %d", gotMonths)
		}
	})

	t.Run("omitted months defaults in service", func(t *testing.T) {
		var gotMonths int
		statsSvc := &mockStatsService{
			monthlyTrendFn: func(_ uint, _ time.Time, months int) (*stats.MonthlyTrendReport, error) {
				gotMonths = months
				return &stats.MonthlyTrendReport{}, nil
			},
		}
		handler := NewStatsHandler(statsSvc)
		r := setupStatsRouter(handler)

		rec := doRequest(r, "GET", "/stats/monthly-trend", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotMonths != 0 {
			t.Errorf("expected zero months passed through, got %d", gotMonths)
		}
	})

	t.Run("returns 400 on bad months", func(t *testing.T) {
		handler := NewStatsHandler(&mockStatsService{})
		r := setupStatsRouter(handler)

		rec := doRequest(r, "GET", "/stats/monthly-trend?months=abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestStatsHandler_GetMonthByCategory(t *testing.T) {
	t.Run("passes month label through", func(t *testing.T) {
		var gotLabel string
		statsSvc := &mockStatsService{
			categoryBreakdownFn: func(_ uint, _ time.Time, monthLabel string) (*stats.CategoryBreakdownReport, error) {
				gotLabel = monthLabel
				return &stats.CategoryBreakdownReport{Month: monthLabel}, nil
			},
		}
		handler := NewStatsHandler(statsSvc)
		r := setupStatsRouter(handler)

		rec := doRequest(r, "GET", "/stats/month-by-category?month=2024-01", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotLabel != "2024-01" {
			t.Errorf("expected month 2024-01, got %q", gotLabel)
		}
	})

	t.Run("rejects invalid month at binding", func(t *testing.T) {
		statsSvc := &mockStatsService{
			categoryBreakdownFn: func(_ uint, _ time.Time, _ string) (*stats.CategoryBreakdownReport, error) {
				t.Error("service should not be called for a malformed month")
				return nil, nil
			},
		}
		handler := NewStatsHandler(statsSvc)
		r := setupStatsRouter(handler)

		for _, month := range []string{"2024-13", "2024", "march"} {
			rec := doRequest(r, "GET", "/stats/month-by-category?month="+month, "")

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("month %q: expected 400, got %d", month, rec.Code)
			}
			assertErrorCode(t, parseJSON(t, rec), "INVALID_MONTH_FORMAT")
		}
	})
}

func TestStatsHandler_GetNetIncome(t *testing.T) {
	t.Run("returns summary", func(t *testing.T) {
		statsSvc := &mockStatsService{
			netIncomeFn: func(_ uint, _ time.Time, _ string) (*stats.NetIncomeReport, error) {
				return &stats.NetIncomeReport{Month: "2024-03", Income: 1000, Expenses: 400, Net: 600}, nil
			},
		}
		handler := NewStatsHandler(statsSvc)
		r := setupStatsRouter(handler)

		rec := doRequest(r, "GET", "/stats/net-income", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["net"] != float64(600) {
			t.Errorf("expected net 600, got %v", result["net"])
		}
	})

	t.Run("rejects invalid month at binding", func(t *testing.T) {
		handler := NewStatsHandler(&mockStatsService{})
		r := setupStatsRouter(handler)

		rec := doRequest(r, "GET", "/stats/net-income?month=2024-1", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_MONTH_FORMAT")
	})
}

func TestStatsHandler_GetByMonth(t *testing.T) {
	statsSvc := &mockStatsService{
		expensesByMonthFn: func(uint) ([]stats.MonthTotal, error) {
			return []stats.MonthTotal{
				{Month: "2024-02", Total: 50},
				{Month: "2023-12", Total: 10},
			}, nil
		},
	}
	handler := NewStatsHandler(statsSvc)
	r := setupStatsRouter(handler)

	rec := doRequest(r, "GET", "/stats/by-month", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	// The body is a bare array, not an envelope.
	var months []stats.MonthTotal
	if err := json.Unmarshal(rec.Body.Bytes(), &months); err != nil {
		t.Fatalf("failed to decode body %s: %v", rec.Body.String(), err)
	}
	if len(months) != 2 {
		t.Fatalf("expected 2 months, got %d", len(months))
	}
	if months[0].Month != "2024-02" || months[0].Total != 50 {
		t.Errorf("expected newest month first, got %+v", months[0])
	}
}

func TestStatsHandler_GetIncomeByMonth(t *testing.T) {
	statsSvc := &mockStatsService{
		incomesByMonthFn: func(uint) ([]stats.MonthTotal, error) {
			return []stats.MonthTotal{{Month: "2024-01", Total: 3000}}, nil
		},
	}
	handler := NewStatsHandler(statsSvc)
	r := setupStatsRouter(handler)

	rec := doRequest(r, "GET", "/stats/income/by-month", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var months []stats.MonthTotal
	if err := json.Unmarshal(rec.Body.Bytes(), &months); err != nil {
		t.Fatalf("failed to decode body %s: %v", rec.Body.String(), err)
	}
	if len(months) != 1 || months[0].Month != "2024-01" {
		t.Errorf("unexpected months: %+v", months)
	}
}
