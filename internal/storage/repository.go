package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"tally/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when an operation references a transaction id that
// does not exist in the ledger.
var ErrNotFound = errors.New("transaction not found")

// DefaultBudgetMonth keys the standing monthly budget row for a category.
// Month-specific overrides would use a YYYY-MM key instead.
const DefaultBudgetMonth = "DEFAULT"

// SQLiteRepository is the ledger store: it exclusively owns the persisted
// transaction collection in a single local database file.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

// NewSQLiteRepository opens (creating if needed) the database file, applies
// pragmas and migrations, and returns a ready repository. Safe to call on
// every startup.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// SQLite reliability tuning: WAL keeps readers unblocked during the
	// single writer's commits.
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA foreign_keys = ON;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma: %w", err)
		}
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// AddTransaction validates and persists a transaction, returning the stored
// record with its assigned id. The insert commits before returning; there is
// no partially visible state.
func (r *SQLiteRepository) AddTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	id, err := r.queries.CreateTransaction(ctx, CreateTransactionParams{
		Date:        t.Date.ISO(),
		Type:        string(t.Type),
		Category:    t.Category,
		AmountCents: t.Amount.Cents,
		Note:        t.Note,
	})
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	t.ID = id

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"date", t.Date.ISO(),
		"type", t.Type,
		"category", t.Category,
		"amount_cents", t.Amount.Cents)

	return t, nil
}

// ListTransactions returns transactions matching the filter, ordered by date
// ascending then id ascending. Never mutates.
func (r *SQLiteRepository) ListTransactions(ctx context.Context, f core.ListFilter) ([]core.Transaction, error) {
	params := ListTransactionsParams{Category: f.Category}
	if !f.From.IsZero() {
		params.FromDate = f.From.ISO()
	}
	if !f.To.IsZero() {
		params.ToDate = f.To.ISO()
	}

	rows, err := r.queries.ListTransactions(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	out := make([]core.Transaction, len(rows))
	for i, row := range rows {
		t, err := rowToTransaction(row)
		if err != nil {
			return nil, fmt.Errorf("decode transaction %d: %w", row.ID, err)
		}
		out[i] = t
	}
	return out, nil
}

// DeleteTransaction removes the record with the given id. Returns ErrNotFound
// if no such record exists; the ledger is left unchanged in that case.
func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id int64) error {
	affected, err := r.queries.DeleteTransaction(ctx, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete transaction %d: %w", id, ErrNotFound)
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}

// ListCategories returns all known categories with their groups.
func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.queries.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	out := make([]core.Category, len(rows))
	for i, row := range rows {
		out[i] = core.Category{
			Name:  row.Name,
			Group: core.CategoryGroup(row.GroupType),
		}
	}
	return out, nil
}

// EnsureCategory inserts the category if it is not already known. Existing
// rows keep their group.
func (r *SQLiteRepository) EnsureCategory(ctx context.Context, c core.Category) error {
	if err := c.Group.Validate(); err != nil {
		return err
	}
	if err := r.queries.EnsureCategory(ctx, c.Name, string(c.Group)); err != nil {
		return fmt.Errorf("ensure category: %w", err)
	}
	return nil
}

// SetBudget upserts the standing monthly budget for a category.
func (r *SQLiteRepository) SetBudget(ctx context.Context, b core.Budget) error {
	if err := b.Monthly.Validate(); err != nil {
		return err
	}
	if b.Category == "" {
		return core.ErrEmptyCategory
	}
	if err := r.queries.UpsertBudget(ctx, b.Category, b.Monthly.Cents, DefaultBudgetMonth); err != nil {
		return fmt.Errorf("set budget: %w", err)
	}
	return nil
}

// ListBudgets returns the standing monthly budgets.
func (r *SQLiteRepository) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := r.queries.ListBudgets(ctx, DefaultBudgetMonth)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}

	out := make([]core.Budget, len(rows))
	for i, row := range rows {
		out[i] = core.Budget{
			Category: row.Category,
			Monthly:  core.Money{Cents: row.AmountCents},
		}
	}
	return out, nil
}

func rowToTransaction(row TransactionRow) (core.Transaction, error) {
	date, err := core.ParseDate(row.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		ID:       row.ID,
		Date:     date,
		Type:     core.TransactionType(row.Type),
		Category: row.Category,
		Amount:   core.Money{Cents: row.AmountCents},
		Note:     row.Note,
	}, nil
}
