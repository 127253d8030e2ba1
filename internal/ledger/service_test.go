package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"tally/internal/core"
	"tally/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "tally.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	svc := NewService(repo)
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestAddTransactionCreatesUnknownCategory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	stored, err := svc.AddTransaction(ctx, core.Transaction{
		Date:     core.NewDate(2024, 3, 5),
		Type:     core.Expense,
		Category: "Climbing Gym",
		Amount:   core.Money{Cents: 2500},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if stored.ID == 0 {
		t.Fatalf("expected assigned id")
	}

	cats, err := svc.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	found := false
	for _, c := range cats {
		if c.Name == "Climbing Gym" {
			found = true
			if c.Group != core.GroupExpense {
				t.Fatalf("auto-created category group = %q, want Expense", c.Group)
			}
		}
	}
	if !found {
		t.Fatalf("category not auto-created")
	}
}

func TestAddTransactionRejectsInvalidInput(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AddTransaction(context.Background(), core.Transaction{
		Date:     core.NewDate(2024, 3, 5),
		Type:     "Loan",
		Category: "c",
		Amount:   core.Money{Cents: 100},
	})
	if !core.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteUnknownIDSurfacesNotFound(t *testing.T) {
	svc := newTestService(t)

	err := svc.DeleteTransaction(context.Background(), 12345)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSnapshotReturnsFullLedger(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, in := range []core.Transaction{
		{Date: core.NewDate(2024, 3, 1), Type: core.Income, Category: "Salary", Amount: core.Money{Cents: 100000}},
		{Date: core.NewDate(2024, 3, 5), Type: core.Expense, Category: "Myki", Amount: core.Money{Cents: 5000}},
	} {
		if _, err := svc.AddTransaction(ctx, in); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	snapshot, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snapshot) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(snapshot))
	}
}
