package stats

import (
	"math"
	"sort"
	"time"
)

// Uncategorized is the sentinel category label substituted for records
// without an assigned category.
const Uncategorized = "Uncategorized"

// Record is the minimal transaction view the aggregation core operates on.
// Services map expense and income rows onto it before calling in.
type Record struct {
	Amount   float64
	Date     time.Time
	Category string
}

// WindowTotal pairs a month window with the sum of record amounts whose
// date falls inside it.
type WindowTotal struct {
	Window MonthWindow
	Total  float64
}

// CategoryTotal is one category bucket of a grouped aggregation.
type CategoryTotal struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// MonthTotal is one calendar month's total over unbounded history.
type MonthTotal struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// NetSummary holds income vs. expense totals for a period. Net is simply
// income minus expenses and may be negative.
type NetSummary struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

// SumByWindow sums record amounts into each window, preserving the order
// and length of the input windows. Windows with no matching records get a
// zero total; they are never omitted.
func SumByWindow(records []Record, windows []MonthWindow) []WindowTotal {
	totals := make([]WindowTotal, len(windows))
	for i, w := range windows {
		totals[i].Window = w
	}
	for _, r := range records {
		for i := range totals {
			if totals[i].Window.Contains(r.Date) {
				totals[i].Total += r.Amount
			}
		}
	}
	return totals
}

// SumInWindow returns the total amount of records dated inside the window.
func SumInWindow(records []Record, window MonthWindow) float64 {
	var total float64
	for _, r := range records {
		if window.Contains(r.Date) {
			total += r.Amount
		}
	}
	return total
}

// FilterWindow returns the records dated inside the window.
func FilterWindow(records []Record, window MonthWindow) []Record {
	filtered := make([]Record, 0, len(records))
	for _, r := range records {
		if window.Contains(r.Date) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// GroupByCategory buckets records by category and computes each bucket's
// amount, count, and share of the grand total as a percentage rounded to
// one decimal place. Records without a category land in the Uncategorized
// bucket. A zero grand total yields zero percentages rather than a
// division fault. Buckets are ordered by amount descending; ties keep
// first-seen order.
func GroupByCategory(records []Record) []CategoryTotal {
	totals := make([]CategoryTotal, 0)
	index := make(map[string]int)
	var grand float64

	for _, r := range records {
		cat := r.Category
		if cat == "" {
			cat = Uncategorized
		}
		i, ok := index[cat]
		if !ok {
			i = len(totals)
			index[cat] = i
			totals = append(totals, CategoryTotal{Category: cat})
		}
		totals[i].Amount += r.Amount
		totals[i].Count++
		grand += r.Amount
	}

	if grand != 0 {
		for i := range totals {
			totals[i].Percentage = roundToOneDecimal(totals[i].Amount / grand * 100)
		}
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Amount > totals[j].Amount
	})
	return totals
}

// NetIncome computes the income/expense/net triple for a period.
// Net has no floor at zero.
func NetIncome(incomeTotal, expenseTotal float64) NetSummary {
	return NetSummary{
		Income:   incomeTotal,
		Expenses: expenseTotal,
		Net:      incomeTotal - expenseTotal,
	}
}

// SumByCalendarMonth groups all records by the calendar month of their
// date and returns the totals sorted by month label descending (newest
// first). Unlike SumByWindow this covers unbounded history; it feeds the
// all-time monthly listing rather than the trend chart.
func SumByCalendarMonth(records []Record) []MonthTotal {
	byMonth := make(map[string]float64)
	for _, r := range records {
		byMonth[r.Date.Format(monthLabelLayout)] += r.Amount
	}

	totals := make([]MonthTotal, 0, len(byMonth))
	for month, total := range byMonth {
		totals = append(totals, MonthTotal{Month: month, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Month > totals[j].Month
	})
	return totals
}

func roundToOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
