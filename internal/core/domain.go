package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "Income"
	Expense TransactionType = "Expense"
)

const (
	GroupIncome  CategoryGroup = "Income"
	GroupBill    CategoryGroup = "Bill"
	GroupExpense CategoryGroup = "Expense"
	GroupSaving  CategoryGroup = "Saving"
	GroupDebt    CategoryGroup = "Debt"
)

type (
	// TransactionType is the closed set of ledger entry kinds. The sign of a
	// transaction's effect on the balance comes from the type, never from a
	// negative amount.
	TransactionType string

	// CategoryGroup classifies a category for budgeting purposes.
	CategoryGroup string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Transaction struct {
		ID       int64 // assigned by the ledger store on creation
		Date     Date
		Type     TransactionType
		Category string
		Amount   Money
		Note     string
	}

	Category struct {
		Name  string
		Group CategoryGroup
	}

	// Budget is a monthly allowance for a single category.
	Budget struct {
		Category string
		Monthly  Money
	}

	// Period is an inclusive calendar date range.
	Period struct {
		From Date
		To   Date
	}

	// ListFilter constrains a ledger listing. Zero values mean unconstrained.
	ListFilter struct {
		From     Date
		To       Date
		Category string
	}
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyCategory = errors.New("empty category")
	ErrNoteTooLong   = errors.New("note too long (max 200 characters)")
	ErrInvalidGroup  = errors.New("invalid category group")
)

// IsValidation reports whether err belongs to the validation error taxonomy,
// as opposed to not-found or storage failures.
func IsValidation(err error) bool {
	for _, sentinel := range []error{ErrInvalidDate, ErrInvalidType, ErrInvalidAmount, ErrEmptyCategory, ErrNoteTooLong, ErrInvalidGroup} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// NewDate creates a Date at UTC midnight for year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// ISO returns the date as YYYY-MM-DD. Lexical order of ISO strings matches
// chronological order, which the storage layer relies on for range scans.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidType
	}
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if len(t.Note) > 200 {
		return ErrNoteTooLong
	}
	return nil
}

// TransactionType maps a category group to the ledger entry kind it produces:
// the Income group records income, every other group records an expense.
func (g CategoryGroup) TransactionType() TransactionType {
	if g == GroupIncome {
		return Income
	}
	return Expense
}

func (g CategoryGroup) Validate() error {
	switch g {
	case GroupIncome, GroupBill, GroupExpense, GroupSaving, GroupDebt:
		return nil
	default:
		return ErrInvalidGroup
	}
}

// GroupFor returns the category group matching a transaction type when the
// category is not yet known: income stays income, everything else is filed
// under the plain expense group.
func GroupFor(t TransactionType) CategoryGroup {
	if t == Income {
		return GroupIncome
	}
	return GroupExpense
}

// MonthOf returns the period covering the whole calendar month.
func MonthOf(year, month int) Period {
	from := NewDate(year, month, 1)
	to := Date{Time: from.AddDate(0, 1, -1)}
	return Period{From: from, To: to}
}

// Contains reports whether the date falls inside the period, inclusive on
// both ends.
func (p Period) Contains(d Date) bool {
	return !d.Time.Before(p.From.Time) && !d.Time.After(p.To.Time)
}

func (p Period) Validate() error {
	if err := p.From.Validate(); err != nil {
		return err
	}
	if err := p.To.Validate(); err != nil {
		return err
	}
	if p.To.Time.Before(p.From.Time) {
		return errors.New("period end before start")
	}
	return nil
}
