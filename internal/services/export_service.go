package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"

	apperrors "expensely/internal/errors"
)

// exportRow is one line of an export: expenses and income entries merged
// into a single chronological listing.
type exportRow struct {
	Kind        string
	Date        time.Time
	Category    string
	Description string
	Amount      float64
}

// exportService renders a user's transactions as CSV or PDF documents.
type exportService struct {
	expenses ExpenseServicer
	incomes  IncomeServicer
}

// NewExportService creates a new ExportServicer.
func NewExportService(expenses ExpenseServicer, incomes IncomeServicer) ExportServicer {
	return &exportService{expenses: expenses, incomes: incomes}
}

// ExportCSV renders the user's transactions in the range as CSV with a
// header row. Rows are ordered oldest first.
func (s *exportService) ExportCSV(userID uint, r DateRange) ([]byte, error) {
	rows, err := s.collectRows(userID, r)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"type", "date", "category", "description", "amount"}); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, row := range rows {
		record := []string{
			row.Kind,
			row.Date.Format("2006-01-02"),
			row.Category,
			row.Description,
			fmt.Sprintf("%.2f", row.Amount),
		}
		if err := w.Write(record); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return buf.Bytes(), nil
}

// ExportPDF renders the same listing as a simple tabular PDF.
func (s *exportService) ExportPDF(userID uint, r DateRange) ([]byte, error) {
	rows, err := s.collectRows(userID, r)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Transaction Export", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, "Transaction Export")
	pdf.Ln(12)

	widths := []float64{20, 25, 40, 75, 25}
	headers := []string{"Type", "Date", "Category", "Description", "Amount"}

	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		cells := []string{
			row.Kind,
			row.Date.Format("2006-01-02"),
			row.Category,
			row.Description,
			fmt.Sprintf("%.2f", row.Amount),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return buf.Bytes(), nil
}

// collectRows fetches both transaction variants and merges them into one
// chronological listing, oldest first.
func (s *exportService) collectRows(userID uint, r DateRange) ([]exportRow, error) {
	expenses, err := s.expenses.GetExpensesInRange(userID, r)
	if err != nil {
		return nil, err
	}
	incomes, err := s.incomes.GetIncomesInRange(userID, r)
	if err != nil {
		return nil, err
	}

	rows := make([]exportRow, 0, len(expenses)+len(incomes))
	for _, e := range expenses {
		rows = append(rows, exportRow{
			Kind:        "expense",
			Date:        e.Date,
			Category:    derefOrEmpty(e.Category),
			Description: derefOrEmpty(e.Description),
			Amount:      e.Amount,
		})
	}
	for _, in := range incomes {
		rows = append(rows, exportRow{
			Kind:        "income",
			Date:        in.Date,
			Category:    derefOrEmpty(in.Category),
			Description: derefOrEmpty(in.Description),
			Amount:      in.Amount,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows, nil
}
