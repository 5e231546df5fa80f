package services

import (
	"testing"
	"time"

	"expensely/internal/pagination"
	"expensely/internal/testutil"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func TestCreateExpense(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		expense, err := svc.CreateExpense(user.ID, TransactionInput{
			Amount:   42.50,
			Date:     day(2024, 3, 15),
			Category: strPtr("Groceries"),
		})
		testutil.AssertNoError(t, err)

		if expense.ID == 0 {
			t.Fatal("expected non-zero expense ID")
		}
		if expense.Amount != 42.50 {
			t.Errorf("expected amount 42.50, got %f", expense.Amount)
		}
		if expense.UserID != user.ID {
			t.Errorf("expected user ID %d, got %d", user.ID, expense.UserID)
		}
	})

	t.Run("zero_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateExpense(user.ID, TransactionInput{Amount: 0, Date: day(2024, 3, 15)})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("negative_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateExpense(user.ID, TransactionInput{Amount: -5, Date: day(2024, 3, 15)})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("missing_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateExpense(user.ID, TransactionInput{Amount: 10})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetExpenseByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestExpense(t, db, user.ID, 20, day(2024, 3, 1), "Transportation")

		expense, err := svc.GetExpenseByID(user.ID, created.ID)
		testutil.AssertNoError(t, err)
		if expense.Amount != 20 {
			t.Errorf("expected amount 20, got %f", expense.Amount)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetExpenseByID(user.ID, 99999)
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
	})

	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestExpense(t, db, owner.ID, 20, day(2024, 3, 1), "")

		_, err := svc.GetExpenseByID(other.ID, created.ID)
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
	})
}

func TestGetUserExpenses(t *testing.T) {
	t.Run("newest_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestExpense(t, db, user.ID, 1, day(2024, 1, 10), "")
		testutil.CreateTestExpense(t, db, user.ID, 2, day(2024, 3, 10), "")
		testutil.CreateTestExpense(t, db, user.ID, 3, day(2024, 2, 10), "")

		result, err := svc.GetUserExpenses(user.ID, pagination.PageRequest{}, DateRange{})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 3 {
			t.Fatalf("expected 3 items, got %d", result.TotalItems)
		}
		if result.Data[0].Amount != 2 || result.Data[1].Amount != 3 || result.Data[2].Amount != 1 {
			t.Errorf("expected newest-first order, got %v, %v, %v",
				result.Data[0].Amount, result.Data[1].Amount, result.Data[2].Amount)
		}
	})

	t.Run("date_filter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestExpense(t, db, user.ID, 1, day(2024, 1, 10), "")
		testutil.CreateTestExpense(t, db, user.ID, 2, day(2024, 2, 10), "")
		testutil.CreateTestExpense(t, db, user.ID, 3, day(2024, 3, 10), "")

		from := day(2024, 2, 1)
		to := day(2024, 2, 28)
		result, err := svc.GetUserExpenses(user.ID, pagination.PageRequest{}, DateRange{From: &from, To: &to})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Fatalf("expected 1 item in range, got %d", result.TotalItems)
		}
		if result.Data[0].Amount != 2 {
			t.Errorf("expected the February expense, got amount %f", result.Data[0].Amount)
		}
	})

	t.Run("other_users_excluded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		testutil.CreateTestExpense(t, db, user.ID, 1, day(2024, 1, 10), "")
		testutil.CreateTestExpense(t, db, other.ID, 2, day(2024, 1, 10), "")

		result, err := svc.GetUserExpenses(user.ID, pagination.PageRequest{}, DateRange{})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected only own expenses, got %d items", result.TotalItems)
		}
	})
}

func TestGetRecentExpenses(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewExpenseService(db)
	user := testutil.CreateTestUser(t, db)

	for i := 1; i <= 7; i++ {
		testutil.CreateTestExpense(t, db, user.ID, float64(i), day(2024, 1, i), "")
	}

	recent, err := svc.GetRecentExpenses(user.ID, 5)
	testutil.AssertNoError(t, err)

	if len(recent) != 5 {
		t.Fatalf("expected 5 recent expenses, got %d", len(recent))
	}
	if recent[0].Amount != 7 {
		t.Errorf("expected newest expense first, got amount %f", recent[0].Amount)
	}
}

func TestUpdateExpense(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestExpense(t, db, user.ID, 10, day(2024, 3, 1), "Groceries")

		updated, err := svc.UpdateExpense(user.ID, created.ID, TransactionInput{
			Amount:   25,
			Date:     day(2024, 3, 2),
			Category: strPtr("Dining Out"),
		})
		testutil.AssertNoError(t, err)

		if updated.Amount != 25 {
			t.Errorf("expected amount 25, got %f", updated.Amount)
		}
		if updated.Category == nil || *updated.Category != "Dining Out" {
			t.Errorf("expected category Dining Out, got %v", updated.Category)
		}
	})

	t.Run("clears_optional_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestExpense(t, db, user.ID, 10, day(2024, 3, 1), "Groceries")

		updated, err := svc.UpdateExpense(user.ID, created.ID, TransactionInput{
			Amount: 10,
			Date:   day(2024, 3, 1),
		})
		testutil.AssertNoError(t, err)
		if updated.Category != nil {
			t.Errorf("expected category cleared, got %q", *updated.Category)
		}
	})

	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestExpense(t, db, owner.ID, 10, day(2024, 3, 1), "")

		_, err := svc.UpdateExpense(other.ID, created.ID, TransactionInput{Amount: 25, Date: day(2024, 3, 2)})
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
	})
}

func TestDeleteExpense(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestExpense(t, db, user.ID, 10, day(2024, 3, 1), "")

		testutil.AssertNoError(t, svc.DeleteExpense(user.ID, created.ID))

		_, err := svc.GetExpenseByID(user.ID, created.ID)
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		err := svc.DeleteExpense(user.ID, 99999)
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
	})
}
