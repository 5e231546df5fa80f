package services

import (
	"time"

	"golang.org/x/sync/errgroup"

	"expensely/internal/models"
	"expensely/internal/stats"
)

// defaultTrendMonths is how many rolling windows the trend report covers
// when the caller does not ask for a specific count.
const defaultTrendMonths = 6

// statsService glues the transaction store to the pure aggregation core in
// the stats package: it fetches the user's records for the relevant date
// range and hands them to the aggregators. It holds no state of its own.
type statsService struct {
	expenses ExpenseServicer
	incomes  IncomeServicer
}

// NewStatsService creates a new StatsServicer.
func NewStatsService(expenses ExpenseServicer, incomes IncomeServicer) StatsServicer {
	return &statsService{expenses: expenses, incomes: incomes}
}

// CurrentMonthTotal returns the expense total for the current partial month.
func (s *statsService) CurrentMonthTotal(userID uint, today time.Time) (*stats.TrendPoint, error) {
	window := stats.CurrentMonthWindow(today)
	records, err := s.expenseRecords(userID, window)
	if err != nil {
		return nil, err
	}
	return &stats.TrendPoint{Month: window.Label, Total: stats.SumInWindow(records, window)}, nil
}

// CurrentMonthIncomeTotal returns the income total for the current partial month.
func (s *statsService) CurrentMonthIncomeTotal(userID uint, today time.Time) (*stats.TrendPoint, error) {
	window := stats.CurrentMonthWindow(today)
	records, err := s.incomeRecords(userID, window)
	if err != nil {
		return nil, err
	}
	return &stats.TrendPoint{Month: window.Label, Total: stats.SumInWindow(records, window)}, nil
}

// MonthlyTrend returns rolling per-month expense totals, oldest first,
// ending with the current partial month.
func (s *statsService) MonthlyTrend(userID uint, today time.Time, months int) (*stats.MonthlyTrendReport, error) {
	if months <= 0 {
		months = defaultTrendMonths
	}
	windows := stats.Windows(today, months)

	// One range query covering every window; oldest window start to today.
	r := DateRange{From: &windows[0].Start, To: &windows[len(windows)-1].End}
	expenses, err := s.expenses.GetExpensesInRange(userID, r)
	if err != nil {
		return nil, err
	}

	report := stats.MonthlyTrend(toRecords(expenses), windows)
	return &report, nil
}

// ExpensesByMonth groups the user's full expense history by calendar
// month, newest first.
func (s *statsService) ExpensesByMonth(userID uint) ([]stats.MonthTotal, error) {
	expenses, err := s.expenses.GetExpensesInRange(userID, DateRange{})
	if err != nil {
		return nil, err
	}
	return stats.SumByCalendarMonth(toRecords(expenses)), nil
}

// IncomesByMonth groups the user's full income history by calendar month,
// newest first.
func (s *statsService) IncomesByMonth(userID uint) ([]stats.MonthTotal, error) {
	incomes, err := s.incomes.GetIncomesInRange(userID, DateRange{})
	if err != nil {
		return nil, err
	}
	return stats.SumByCalendarMonth(incomeRecords(incomes)), nil
}

// CategoryBreakdown returns the per-category expense distribution for the
// selected month, defaulting to the current month when no label is given.
func (s *statsService) CategoryBreakdown(userID uint, today time.Time, monthLabel string) (*stats.CategoryBreakdownReport, error) {
	window, err := s.resolveWindow(monthLabel, today)
	if err != nil {
		return nil, err
	}

	records, err := s.expenseRecords(userID, window)
	if err != nil {
		return nil, err
	}

	report := stats.CategoryBreakdown(records, window)
	return &report, nil
}

// NetIncome returns income minus expenses for the selected month. The two
// range queries are independent, so they run concurrently.
func (s *statsService) NetIncome(userID uint, today time.Time, monthLabel string) (*stats.NetIncomeReport, error) {
	window, err := s.resolveWindow(monthLabel, today)
	if err != nil {
		return nil, err
	}

	var (
		incomes  []stats.Record
		expenses []stats.Record
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		incomes, err = s.incomeRecords(userID, window)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.expenseRecords(userID, window)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := stats.NetIncomeSummary(incomes, expenses, window)
	return &report, nil
}

func (s *statsService) resolveWindow(monthLabel string, today time.Time) (stats.MonthWindow, error) {
	if monthLabel == "" {
		return stats.CurrentMonthWindow(today), nil
	}
	return stats.WindowForMonth(monthLabel, today)
}

func (s *statsService) expenseRecords(userID uint, window stats.MonthWindow) ([]stats.Record, error) {
	expenses, err := s.expenses.GetExpensesInRange(userID, DateRange{From: &window.Start, To: &window.End})
	if err != nil {
		return nil, err
	}
	return toRecords(expenses), nil
}

func (s *statsService) incomeRecords(userID uint, window stats.MonthWindow) ([]stats.Record, error) {
	incomes, err := s.incomes.GetIncomesInRange(userID, DateRange{From: &window.Start, To: &window.End})
	if err != nil {
		return nil, err
	}
	return incomeRecords(incomes), nil
}

func toRecords(expenses []models.Expense) []stats.Record {
	records := make([]stats.Record, len(expenses))
	for i, e := range expenses {
		records[i] = stats.Record{Amount: e.Amount, Date: e.Date, Category: derefOrEmpty(e.Category)}
	}
	return records
}

func incomeRecords(incomes []models.Income) []stats.Record {
	records := make([]stats.Record, len(incomes))
	for i, in := range incomes {
		records[i] = stats.Record{Amount: in.Amount, Date: in.Date, Category: derefOrEmpty(in.Category)}
	}
	return records
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
