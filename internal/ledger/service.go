package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"tally/internal/core"
	"tally/internal/storage"
)

// Service orchestrates ledger operations on top of the SQLite store. It owns
// no state of its own beyond the repository handle; derived views are always
// recomputed from a fresh listing.
type Service struct {
	store *storage.SQLiteRepository
}

func NewService(store *storage.SQLiteRepository) *Service {
	return &Service{store: store}
}

// AddTransaction persists a transaction, first making sure its category is
// known so it shows up in budget reports. Unknown categories are filed under
// the group implied by the transaction type, matching the behavior of adding
// a fresh category from the entry form.
func (s *Service) AddTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	if err := s.store.EnsureCategory(ctx, core.Category{
		Name:  t.Category,
		Group: core.GroupFor(t.Type),
	}); err != nil {
		return core.Transaction{}, fmt.Errorf("ensure category: %w", err)
	}

	stored, err := s.store.AddTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction recorded",
		"id", stored.ID,
		"type", stored.Type,
		"category", stored.Category,
		"amount_cents", stored.Amount.Cents)

	return stored, nil
}

// ListTransactions returns the filtered ledger, ordered by date then id.
func (s *Service) ListTransactions(ctx context.Context, f core.ListFilter) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx, f)
}

// Snapshot returns the complete ledger for aggregation.
func (s *Service) Snapshot(ctx context.Context) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx, core.ListFilter{})
}

// DeleteTransaction removes one entry; storage.ErrNotFound surfaces unchanged.
func (s *Service) DeleteTransaction(ctx context.Context, id int64) error {
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Transaction removed", "id", id)
	return nil
}

func (s *Service) ListCategories(ctx context.Context) ([]core.Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *Service) SetBudget(ctx context.Context, b core.Budget) error {
	if err := s.store.SetBudget(ctx, b); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Budget updated",
		"category", b.Category,
		"monthly_cents", b.Monthly.Cents)
	return nil
}

func (s *Service) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	return s.store.ListBudgets(ctx)
}

// Close releases the underlying store.
func (s *Service) Close() error {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			return fmt.Errorf("close ledger store: %w", err)
		}
	}
	return nil
}
