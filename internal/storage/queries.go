package storage

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// Queries wraps a database handle with typed accessors for every statement
// the repository runs.
type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// TransactionRow mirrors one row of the transactions table.
type TransactionRow struct {
	ID          int64
	Date        string // YYYY-MM-DD
	Type        string
	Category    string
	AmountCents int64
	Note        string
	CreatedAt   time.Time
}

type CategoryRow struct {
	ID        int64
	Name      string
	GroupType string
}

type BudgetRow struct {
	Category    string
	AmountCents int64
}

type CreateTransactionParams struct {
	Date        string
	Type        string
	Category    string
	AmountCents int64
	Note        string
}

type ListTransactionsParams struct {
	FromDate string // inclusive, empty = open
	ToDate   string // inclusive, empty = open
	Category string // empty = any
}

const createTransaction = `
INSERT INTO transactions (date, type, category, amount_cents, note)
VALUES (?, ?, ?, ?, ?)
`

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createTransaction,
		arg.Date, arg.Type, arg.Category, arg.AmountCents, arg.Note)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListTransactions returns rows ordered by date then id so repeated listings
// are stable. Filters compare the ISO date column lexically, which matches
// chronological order.
func (q *Queries) ListTransactions(ctx context.Context, arg ListTransactionsParams) ([]TransactionRow, error) {
	query := `SELECT id, date, type, category, amount_cents, note, created_at FROM transactions`
	var conds []string
	var args []any
	if arg.FromDate != "" {
		conds = append(conds, "date >= ?")
		args = append(args, arg.FromDate)
	}
	if arg.ToDate != "" {
		conds = append(conds, "date <= ?")
		args = append(args, arg.ToDate)
	}
	if arg.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, arg.Category)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date ASC, id ASC"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TransactionRow
	for rows.Next() {
		var r TransactionRow
		if err := rows.Scan(&r.ID, &r.Date, &r.Type, &r.Category, &r.AmountCents, &r.Note, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const deleteTransaction = `DELETE FROM transactions WHERE id = ?`

func (q *Queries) DeleteTransaction(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteTransaction, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const listCategories = `SELECT id, name, group_type FROM categories ORDER BY group_type, name`

func (q *Queries) ListCategories(ctx context.Context) ([]CategoryRow, error) {
	rows, err := q.db.QueryContext(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CategoryRow
	for rows.Next() {
		var r CategoryRow
		if err := rows.Scan(&r.ID, &r.Name, &r.GroupType); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const ensureCategory = `INSERT OR IGNORE INTO categories (name, group_type) VALUES (?, ?)`

func (q *Queries) EnsureCategory(ctx context.Context, name, groupType string) error {
	_, err := q.db.ExecContext(ctx, ensureCategory, name, groupType)
	return err
}

const upsertBudget = `
INSERT INTO budgets (category, amount_cents, month) VALUES (?, ?, ?)
ON CONFLICT(category, month) DO UPDATE SET amount_cents = excluded.amount_cents
`

func (q *Queries) UpsertBudget(ctx context.Context, category string, amountCents int64, month string) error {
	_, err := q.db.ExecContext(ctx, upsertBudget, category, amountCents, month)
	return err
}

const listBudgets = `SELECT category, amount_cents FROM budgets WHERE month = ? ORDER BY category`

func (q *Queries) ListBudgets(ctx context.Context, month string) ([]BudgetRow, error) {
	rows, err := q.db.QueryContext(ctx, listBudgets, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BudgetRow
	for rows.Next() {
		var r BudgetRow
		if err := rows.Scan(&r.Category, &r.AmountCents); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
