package stats

import (
	"testing"
	"time"
)

func TestMonthlyTrend(t *testing.T) {
	t.Run("current_is_last_entry", func(t *testing.T) {
		today := date(2024, time.June, 25)
		records := []Record{
			{Amount: 15, Date: date(2024, time.June, 3)},
			{Amount: 40, Date: date(2024, time.April, 12)},
		}

		report := MonthlyTrend(records, Windows(today, 6))
		if len(report.Months) != 6 {
			t.Fatalf("expected 6 entries, got %d", len(report.Months))
		}
		if report.Current != report.Months[5] {
			t.Errorf("expected current to equal last entry, got %+v vs %+v",
				report.Current, report.Months[5])
		}
		if report.Current.Month != "2024-06" || report.Current.Total != 15 {
			t.Errorf("unexpected current entry: %+v", report.Current)
		}
		if report.Months[3].Month != "2024-04" || report.Months[3].Total != 40 {
			t.Errorf("unexpected April entry: %+v", report.Months[3])
		}
	})

	t.Run("no_windows", func(t *testing.T) {
		report := MonthlyTrend(nil, nil)
		if len(report.Months) != 0 {
			t.Errorf("expected no entries, got %d", len(report.Months))
		}
		if report.Current != (TrendPoint{}) {
			t.Errorf("expected zero current, got %+v", report.Current)
		}
	})
}

func TestCategoryBreakdown(t *testing.T) {
	t.Run("filters_to_window_and_totals", func(t *testing.T) {
		window, err := WindowForMonth("2024-01", date(2024, time.January, 25))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		records := []Record{
			{Amount: 20, Date: date(2024, time.January, 5), Category: "Food"},
			{Amount: 30, Date: date(2024, time.January, 20), Category: "Food"},
			{Amount: 10, Date: date(2024, time.January, 10)},
			{Amount: 500, Date: date(2023, time.December, 10), Category: "Rent"},
		}

		report := CategoryBreakdown(records, window)
		if report.Month != "2024-01" {
			t.Errorf("expected month 2024-01, got %s", report.Month)
		}
		if report.Total != 60 {
			t.Errorf("expected total 60, got %v", report.Total)
		}
		if len(report.Categories) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(report.Categories))
		}
		if report.Categories[0].Category != "Food" {
			t.Errorf("expected Food first, got %s", report.Categories[0].Category)
		}
	})

	t.Run("empty_month", func(t *testing.T) {
		window, _ := WindowForMonth("2023-07", date(2024, time.January, 25))
		report := CategoryBreakdown(nil, window)
		if report.Total != 0 {
			t.Errorf("expected zero total, got %v", report.Total)
		}
		if report.Categories == nil || len(report.Categories) != 0 {
			t.Errorf("expected empty non-nil categories, got %v", report.Categories)
		}
	})
}

func TestNetIncomeSummary(t *testing.T) {
	window, err := WindowForMonth("2024-01", date(2024, time.February, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	incomes := []Record{
		{Amount: 3000, Date: date(2024, time.January, 1), Category: "Salary"},
		{Amount: 100, Date: date(2024, time.February, 1)}, // next month, excluded
	}
	expenses := []Record{
		{Amount: 1200, Date: date(2024, time.January, 2), Category: "Housing"},
		{Amount: 300, Date: date(2024, time.January, 15), Category: "Groceries"},
	}

	report := NetIncomeSummary(incomes, expenses, window)
	if report.Month != "2024-01" {
		t.Errorf("expected month 2024-01, got %s", report.Month)
	}
	if report.Income != 3000 || report.Expenses != 1500 || report.Net != 1500 {
		t.Errorf("unexpected report: %+v", report)
	}

	t.Run("negative_net", func(t *testing.T) {
		report := NetIncomeSummary(nil, expenses, window)
		if report.Net != -1500 {
			t.Errorf("expected net -1500, got %v", report.Net)
		}
	})
}
