package ledger

import (
	"context"

	"tally/internal/core"
)

// TransactionWriter records and removes ledger entries.
type TransactionWriter interface {
	AddTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
}

// TransactionReader lists ledger entries ordered by date then id.
type TransactionReader interface {
	ListTransactions(ctx context.Context, f core.ListFilter) ([]core.Transaction, error)
}

// CategoryLister exposes the known categories with their groups.
type CategoryLister interface {
	ListCategories(ctx context.Context) ([]core.Category, error)
}

// BudgetManager reads and writes standing monthly budgets.
type BudgetManager interface {
	SetBudget(ctx context.Context, b core.Budget) error
	ListBudgets(ctx context.Context) ([]core.Budget, error)
}
