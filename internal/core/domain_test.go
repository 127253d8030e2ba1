package core

import (
	"testing"
	"time"
)

func TestTransactionTypeValidate(t *testing.T) {
	if err := Income.Validate(); err != nil {
		t.Fatalf("Income should be valid: %v", err)
	}
	if err := Expense.Validate(); err != nil {
		t.Fatalf("Expense should be valid: %v", err)
	}
	for _, bad := range []TransactionType{"", "income", "Transfer", "EXPENSE"} {
		if err := bad.Validate(); err == nil {
			t.Fatalf("%q should be rejected", bad)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 0}).Validate(); err != nil {
		t.Fatalf("zero amount should be valid: %v", err)
	}
	if err := (Money{Cents: 100}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: -1}).Validate(); err == nil {
		t.Fatalf("expected error for negative amount")
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Date:     NewDate(2024, 3, 1),
		Type:     Income,
		Category: "Salary",
		Amount:   Money{Cents: 100000},
		Note:     "march pay",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Date: Date{Time: time.Time{}}, Type: Income, Category: "c", Amount: Money{Cents: 1}},
		{Date: NewDate(2024, 3, 1), Type: "Other", Category: "c", Amount: Money{Cents: 1}},
		{Date: NewDate(2024, 3, 1), Type: Income, Category: "  ", Amount: Money{Cents: 1}},
		{Date: NewDate(2024, 3, 1), Type: Expense, Category: "c", Amount: Money{Cents: -5}},
	}
	for i, tx := range bads {
		err := tx.Validate()
		if err == nil {
			t.Fatalf("case %d expected error", i)
		}
		if !IsValidation(err) {
			t.Fatalf("case %d error should be a validation error: %v", i, err)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-05")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.ISO() != "2024-03-05" {
		t.Fatalf("round trip mismatch: %s", d.ISO())
	}
	for _, bad := range []string{"", "05/03/2024", "2024-13-01", "yesterday"} {
		if _, err := ParseDate(bad); err == nil {
			t.Fatalf("%q should be rejected", bad)
		}
	}
}

func TestMonthOf(t *testing.T) {
	p := MonthOf(2024, 2)
	if p.From.ISO() != "2024-02-01" || p.To.ISO() != "2024-02-29" {
		t.Fatalf("leap february wrong: %s..%s", p.From.ISO(), p.To.ISO())
	}
	if !p.Contains(NewDate(2024, 2, 29)) {
		t.Fatalf("period should include its last day")
	}
	if p.Contains(NewDate(2024, 3, 1)) {
		t.Fatalf("period should exclude the next month")
	}
}

func TestCategoryGroupTransactionType(t *testing.T) {
	if got := GroupIncome.TransactionType(); got != Income {
		t.Fatalf("Income group maps to %q", got)
	}
	for _, g := range []CategoryGroup{GroupBill, GroupExpense, GroupSaving, GroupDebt} {
		if got := g.TransactionType(); got != Expense {
			t.Fatalf("%s group maps to %q", g, got)
		}
	}
}
