package stats

// TrendPoint is one month's entry in the trend report.
type TrendPoint struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// MonthlyTrendReport is the rolling per-month totals served to the trend
// chart. Months run oldest to newest; Current duplicates the last entry,
// which is always the partial current month.
type MonthlyTrendReport struct {
	Months  []TrendPoint `json:"months"`
	Current TrendPoint   `json:"current"`
}

// CategoryBreakdownReport is the per-category distribution for one month.
type CategoryBreakdownReport struct {
	Month      string          `json:"month"`
	Total      float64         `json:"total"`
	Categories []CategoryTotal `json:"categories"`
}

// NetIncomeReport is the income-minus-expenses summary for one month.
type NetIncomeReport struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

// MonthlyTrend assembles the trend report from records and a set of
// windows, typically the output of Windows(today, n).
func MonthlyTrend(records []Record, windows []MonthWindow) MonthlyTrendReport {
	totals := SumByWindow(records, windows)
	points := make([]TrendPoint, len(totals))
	for i, t := range totals {
		points[i] = TrendPoint{Month: t.Window.Label, Total: t.Total}
	}

	report := MonthlyTrendReport{Months: points}
	if len(points) > 0 {
		report.Current = points[len(points)-1]
	}
	return report
}

// CategoryBreakdown assembles the category distribution for one window.
func CategoryBreakdown(records []Record, window MonthWindow) CategoryBreakdownReport {
	categories := GroupByCategory(FilterWindow(records, window))

	var total float64
	for _, c := range categories {
		total += c.Amount
	}

	return CategoryBreakdownReport{
		Month:      window.Label,
		Total:      total,
		Categories: categories,
	}
}

// NetIncomeSummary assembles the net income report for one window from the
// user's income and expense records.
func NetIncomeSummary(incomes, expenses []Record, window MonthWindow) NetIncomeReport {
	net := NetIncome(SumInWindow(incomes, window), SumInWindow(expenses, window))
	return NetIncomeReport{
		Month:    window.Label,
		Income:   net.Income,
		Expenses: net.Expenses,
		Net:      net.Net,
	}
}
