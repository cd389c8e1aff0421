package services

import (
	"strings"
	"testing"
	"time"

	"spendwise/internal/testutil"
)

func TestMonthlyReport(t *testing.T) {
	t.Run("aggregates_one_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)
		user := testutil.CreateTestUserWithSalary(t, db, 30000, 5000)

		testutil.CreateTestExpenseOn(t, db, user.ID, "Food", 300, time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC))
		testutil.CreateTestExpenseOn(t, db, user.ID, "Food", 200, time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC))
		rent := testutil.CreateTestExpenseOn(t, db, user.ID, "Rent", 8000, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
		rent.IsFixed = true
		testutil.AssertNoError(t, db.Save(rent).Error)
		// Outside the month: must not be counted.
		testutil.CreateTestExpenseOn(t, db, user.ID, "Food", 999, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

		report, err := svc.MonthlyReport(user.ID, 2026, 7)
		testutil.AssertNoError(t, err)

		if report.TotalSpent != 8500 {
			t.Errorf("expected total 8500, got %v", report.TotalSpent)
		}
		if report.FixedTotal != 8000 {
			t.Errorf("expected fixed total 8000, got %v", report.FixedTotal)
		}
		if report.ExpenseCount != 3 {
			t.Errorf("expected 3 expenses, got %d", report.ExpenseCount)
		}
		if report.ByCategory["Food"] != 500 {
			t.Errorf("expected Food 500, got %v", report.ByCategory["Food"])
		}
		if report.Leftover == nil || *report.Leftover != 21500 {
			t.Errorf("expected leftover 21500, got %v", report.Leftover)
		}
	})

	t.Run("invalid_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.MonthlyReport(user.ID, 2026, 13)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("no_leftover_without_salary", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)
		user := testutil.CreateTestUser(t, db)

		report, err := svc.MonthlyReport(user.ID, 2026, 7)
		testutil.AssertNoError(t, err)
		if report.Leftover != nil {
			t.Errorf("expected no leftover without a salary, got %v", *report.Leftover)
		}
	})
}

func TestMonthlyReportCSV(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewReportService(db)
	user := testutil.CreateTestUser(t, db)

	testutil.CreateTestExpenseOn(t, db, user.ID, "Food", 300, time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC))
	testutil.CreateTestExpenseOn(t, db, user.ID, "Petrol", 500, time.Date(2026, 7, 9, 0, 0, 0, 0, time.UTC))

	data, err := svc.MonthlyReportCSV(user.ID, 2026, 7)
	testutil.AssertNoError(t, err)

	csv := string(data)
	if !strings.HasPrefix(csv, "Date,Description,Category,Amount,Fixed") {
		t.Errorf("expected header row, got %q", strings.SplitN(csv, "\n", 2)[0])
	}
	for _, want := range []string{"Food,300.00", "Petrol,500.00", "Total,800.00"} {
		if !strings.Contains(csv, want) {
			t.Errorf("expected CSV to contain %q", want)
		}
	}
}

func TestPurgeMonth(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewReportService(db)
	user := testutil.CreateTestUser(t, db)

	testutil.CreateTestExpenseOn(t, db, user.ID, "Food", 300, time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC))
	testutil.CreateTestExpenseOn(t, db, user.ID, "Food", 200, time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC))
	keep := testutil.CreateTestExpenseOn(t, db, user.ID, "Food", 999, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

	deleted, err := svc.PurgeMonth(user.ID, 2026, 7)
	testutil.AssertNoError(t, err)
	if deleted != 2 {
		t.Errorf("expected 2 deleted, got %d", deleted)
	}

	report, err := svc.MonthlyReport(user.ID, 2026, 8)
	testutil.AssertNoError(t, err)
	if report.ExpenseCount != 1 || report.Expenses[0].ID != keep.ID {
		t.Error("expected the August expense to survive the July purge")
	}
}
