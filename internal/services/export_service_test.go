package services

import (
	"bytes"
	"encoding/csv"
	"testing"

	"expensely/internal/testutil"
)

func TestExportCSV(t *testing.T) {
	t.Run("merged_and_chronological", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExportService(NewExpenseService(db), NewIncomeService(db))
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestExpense(t, db, user.ID, 12.34, day(2024, 3, 10), "Groceries")
		testutil.CreateTestIncome(t, db, user.ID, 1000, day(2024, 3, 1), "Salary")

		data, err := svc.ExportCSV(user.ID, DateRange{})
		testutil.AssertNoError(t, err)

		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		testutil.AssertNoError(t, err)

		if len(records) != 3 {
			t.Fatalf("expected header plus 2 rows, got %d records", len(records))
		}
		if records[0][0] != "type" || records[0][4] != "amount" {
			t.Errorf("unexpected header: %v", records[0])
		}

		// Income on March 1 comes before the expense on March 10.
		if records[1][0] != "income" || records[1][1] != "2024-03-01" || records[1][4] != "1000.00" {
			t.Errorf("unexpected first row: %v", records[1])
		}
		if records[2][0] != "expense" || records[2][2] != "Groceries" || records[2][4] != "12.34" {
			t.Errorf("unexpected second row: %v", records[2])
		}
	})

	t.Run("empty_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExportService(NewExpenseService(db), NewIncomeService(db))
		user := testutil.CreateTestUser(t, db)

		data, err := svc.ExportCSV(user.ID, DateRange{})
		testutil.AssertNoError(t, err)

		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		testutil.AssertNoError(t, err)
		if len(records) != 1 {
			t.Errorf("expected header only, got %d records", len(records))
		}
	})

	t.Run("range_filter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExportService(NewExpenseService(db), NewIncomeService(db))
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestExpense(t, db, user.ID, 10, day(2024, 1, 15), "")
		testutil.CreateTestExpense(t, db, user.ID, 20, day(2024, 2, 15), "")

		from := day(2024, 2, 1)
		to := day(2024, 2, 28)
		data, err := svc.ExportCSV(user.ID, DateRange{From: &from, To: &to})
		testutil.AssertNoError(t, err)

		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		testutil.AssertNoError(t, err)
		if len(records) != 2 {
			t.Fatalf("expected header plus 1 row, got %d records", len(records))
		}
		if records[1][4] != "20.00" {
			t.Errorf("expected the February expense, got %v", records[1])
		}
	})
}

func TestExportPDF(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewExportService(NewExpenseService(db), NewIncomeService(db))
	user := testutil.CreateTestUser(t, db)

	testutil.CreateTestExpense(t, db, user.ID, 12.34, day(2024, 3, 10), "Groceries")

	data, err := svc.ExportPDF(user.ID, DateRange{})
	testutil.AssertNoError(t, err)

	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("expected PDF magic header, got %q", data[:min(len(data), 8)])
	}
}
