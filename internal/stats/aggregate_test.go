package stats

import (
	"math"
	"testing"
	"time"
)

func TestSumByWindow(t *testing.T) {
	t.Run("empty_records_yield_zero_totals", func(t *testing.T) {
		windows := Windows(date(2024, time.June, 25), 6)
		totals := SumByWindow(nil, windows)

		if len(totals) != 6 {
			t.Fatalf("expected 6 totals, got %d", len(totals))
		}
		for i, wt := range totals {
			if wt.Total != 0 {
				t.Errorf("window %d: expected 0, got %v", i, wt.Total)
			}
			if wt.Window.Label != windows[i].Label {
				t.Errorf("window %d: order not preserved", i)
			}
		}
	})

	t.Run("sums_within_inclusive_bounds", func(t *testing.T) {
		windows := Windows(date(2024, time.January, 25), 2)
		records := []Record{
			{Amount: 20, Date: date(2024, time.January, 5), Category: "Food"},
			{Amount: 30, Date: date(2024, time.January, 20), Category: "Food"},
			{Amount: 10, Date: date(2024, time.January, 10)},
			{Amount: 99, Date: date(2023, time.December, 31)},
			{Amount: 7, Date: date(2024, time.January, 26)}, // after today, outside the partial window
		}

		totals := SumByWindow(records, windows)
		if totals[1].Total != 60 {
			t.Errorf("expected current month total 60, got %v", totals[1].Total)
		}
		if totals[0].Total != 99 {
			t.Errorf("expected December total 99, got %v", totals[0].Total)
		}
	})
}

func TestGroupByCategory(t *testing.T) {
	t.Run("buckets_counts_and_percentages", func(t *testing.T) {
		records := []Record{
			{Amount: 20, Date: date(2024, time.January, 5), Category: "Food"},
			{Amount: 30, Date: date(2024, time.January, 20), Category: "Food"},
			{Amount: 10, Date: date(2024, time.January, 10)},
		}

		got := GroupByCategory(records)
		if len(got) != 2 {
			t.Fatalf("expected 2 buckets, got %d", len(got))
		}

		food := got[0]
		if food.Category != "Food" || food.Amount != 50 || food.Count != 2 {
			t.Errorf("unexpected first bucket: %+v", food)
		}
		if food.Percentage != 83.3 {
			t.Errorf("expected Food percentage 83.3, got %v", food.Percentage)
		}

		other := got[1]
		if other.Category != Uncategorized || other.Amount != 10 || other.Count != 1 {
			t.Errorf("unexpected second bucket: %+v", other)
		}
		if other.Percentage != 16.7 {
			t.Errorf("expected Uncategorized percentage 16.7, got %v", other.Percentage)
		}
	})

	t.Run("percentages_sum_to_hundred", func(t *testing.T) {
		records := []Record{
			{Amount: 13.37, Category: "Groceries", Date: date(2024, time.March, 1)},
			{Amount: 42.42, Category: "Utilities", Date: date(2024, time.March, 2)},
			{Amount: 7.01, Category: "Travel", Date: date(2024, time.March, 3)},
			{Amount: 99.99, Date: date(2024, time.March, 4)},
		}

		got := GroupByCategory(records)
		var sum float64
		for _, c := range got {
			sum += c.Percentage
		}
		// One-decimal rounding allows at most 0.1 drift per bucket.
		if math.Abs(sum-100) > 0.1*float64(len(got)) {
			t.Errorf("percentages sum to %v, expected ~100", sum)
		}
	})

	t.Run("zero_total_yields_zero_percentages", func(t *testing.T) {
		got := GroupByCategory([]Record{
			{Amount: 0, Category: "Food", Date: date(2024, time.March, 1)},
			{Amount: 0, Date: date(2024, time.March, 2)},
		})
		for _, c := range got {
			if c.Percentage != 0 {
				t.Errorf("category %s: expected 0 percentage, got %v", c.Category, c.Percentage)
			}
		}
	})

	t.Run("empty_input_returns_empty_non_nil", func(t *testing.T) {
		got := GroupByCategory(nil)
		if got == nil {
			t.Fatal("expected non-nil slice")
		}
		if len(got) != 0 {
			t.Fatalf("expected empty slice, got %d buckets", len(got))
		}
	})

	t.Run("ordered_by_amount_descending", func(t *testing.T) {
		records := []Record{
			{Amount: 5, Category: "Clothing", Date: date(2024, time.March, 1)},
			{Amount: 50, Category: "Housing", Date: date(2024, time.March, 1)},
			{Amount: 20, Category: "Groceries", Date: date(2024, time.March, 1)},
		}
		got := GroupByCategory(records)
		for i := 0; i < len(got)-1; i++ {
			if got[i].Amount < got[i+1].Amount {
				t.Errorf("buckets not sorted descending at index %d", i)
			}
		}
	})
}

func TestNetIncome(t *testing.T) {
	t.Run("positive_net", func(t *testing.T) {
		got := NetIncome(100.0, 40.0)
		if got.Income != 100.0 || got.Expenses != 40.0 || got.Net != 60.0 {
			t.Errorf("unexpected summary: %+v", got)
		}
	})

	t.Run("negative_net_not_floored", func(t *testing.T) {
		got := NetIncome(0, 50)
		if got.Net != -50 {
			t.Errorf("expected net -50, got %v", got.Net)
		}
	})
}

func TestSumByCalendarMonth(t *testing.T) {
	t.Run("groups_and_sorts_descending", func(t *testing.T) {
		records := []Record{
			{Amount: 10, Date: date(2023, time.November, 2)},
			{Amount: 5, Date: date(2024, time.January, 15)},
			{Amount: 20, Date: date(2023, time.November, 20)},
			{Amount: 8, Date: date(2024, time.February, 1)},
		}

		got := SumByCalendarMonth(records)
		if len(got) != 3 {
			t.Fatalf("expected 3 months, got %d", len(got))
		}
		want := []MonthTotal{
			{Month: "2024-02", Total: 8},
			{Month: "2024-01", Total: 5},
			{Month: "2023-11", Total: 30},
		}
		for i, w := range want {
			if got[i] != w {
				t.Errorf("index %d: expected %+v, got %+v", i, w, got[i])
			}
		}
	})

	t.Run("order_independent_of_input", func(t *testing.T) {
		a := []Record{
			{Amount: 1, Date: date(2024, time.March, 1)},
			{Amount: 2, Date: date(2024, time.January, 1)},
		}
		b := []Record{a[1], a[0]}

		ga, gb := SumByCalendarMonth(a), SumByCalendarMonth(b)
		for i := range ga {
			if ga[i] != gb[i] {
				t.Errorf("index %d: %+v != %+v", i, ga[i], gb[i])
			}
		}
	})

	t.Run("empty_input", func(t *testing.T) {
		got := SumByCalendarMonth(nil)
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", got)
		}
	})
}
