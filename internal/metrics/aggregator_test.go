package metrics

import (
	"testing"

	"tally/internal/core"
)

func tx(date core.Date, txType core.TransactionType, category string, cents int64) core.Transaction {
	return core.Transaction{
		Date:     date,
		Type:     txType,
		Category: category,
		Amount:   core.Money{Cents: cents},
	}
}

func TestBalanceEmpty(t *testing.T) {
	if got := Balance(nil).Cents; got != 0 {
		t.Fatalf("empty ledger balance = %d", got)
	}
}

func TestBalanceDeltaProperty(t *testing.T) {
	snapshot := []core.Transaction{
		tx(core.NewDate(2024, 1, 10), core.Income, "Part-time Job", 50000),
		tx(core.NewDate(2024, 1, 12), core.Expense, "Groceries", 7300),
	}
	before := Balance(snapshot).Cents

	withIncome := append(append([]core.Transaction{}, snapshot...),
		tx(core.NewDate(2024, 1, 15), core.Income, "Scholarship", 2500))
	if got := Balance(withIncome).Cents; got != before+2500 {
		t.Fatalf("income of 2500 should raise balance by 2500: %d -> %d", before, got)
	}

	withExpense := append(append([]core.Transaction{}, snapshot...),
		tx(core.NewDate(2024, 1, 15), core.Expense, "Eat Out", 2500))
	if got := Balance(withExpense).Cents; got != before-2500 {
		t.Fatalf("expense of 2500 should lower balance by 2500: %d -> %d", before, got)
	}
}

// The worked scenario: salary 1000, myki 50, groceries 120 in March 2024.
func TestMarchScenario(t *testing.T) {
	snapshot := []core.Transaction{
		tx(core.NewDate(2024, 3, 1), core.Income, "Salary", 100000),
		tx(core.NewDate(2024, 3, 5), core.Expense, "Myki", 5000),
		tx(core.NewDate(2024, 3, 10), core.Expense, "Groceries", 12000),
	}

	if got := Balance(snapshot).Cents; got != 83000 {
		t.Fatalf("balance = %d, want 83000", got)
	}

	march := core.MonthOf(2024, 3)
	if got := SafeToSpend(snapshot, march).Cents; got != 83000 {
		t.Fatalf("safe to spend = %d, want 83000", got)
	}

	breakdown := CategoryBreakdown(snapshot, core.Expense, nil)
	if len(breakdown) != 2 {
		t.Fatalf("breakdown has %d categories, want 2", len(breakdown))
	}
	if breakdown["Myki"].Cents != 5000 || breakdown["Groceries"].Cents != 12000 {
		t.Fatalf("unexpected breakdown: %+v", breakdown)
	}
	if _, ok := breakdown["Salary"]; ok {
		t.Fatalf("income category must not appear in expense breakdown")
	}
}

func TestSafeToSpendEmptyPeriod(t *testing.T) {
	snapshot := []core.Transaction{
		tx(core.NewDate(2024, 3, 1), core.Income, "Salary", 100000),
	}
	if got := SafeToSpend(snapshot, core.MonthOf(2024, 4)).Cents; got != 0 {
		t.Fatalf("period with no transactions should yield 0, got %d", got)
	}
}

func TestCategoryBreakdownPeriodScoped(t *testing.T) {
	snapshot := []core.Transaction{
		tx(core.NewDate(2024, 3, 5), core.Expense, "Groceries", 1000),
		tx(core.NewDate(2024, 4, 5), core.Expense, "Groceries", 2000),
	}
	march := core.MonthOf(2024, 3)
	breakdown := CategoryBreakdown(snapshot, core.Expense, &march)
	if breakdown["Groceries"].Cents != 1000 {
		t.Fatalf("march groceries = %d, want 1000", breakdown["Groceries"].Cents)
	}
}

func TestTrendDailyGapFree(t *testing.T) {
	snapshot := []core.Transaction{
		tx(core.NewDate(2024, 3, 1), core.Income, "Salary", 100000),
		tx(core.NewDate(2024, 3, 5), core.Expense, "Myki", 5000),
	}
	points := Trend(snapshot, Daily)
	if len(points) != 5 {
		t.Fatalf("expected 5 daily buckets (1st..5th), got %d", len(points))
	}
	if points[0].Bucket != "2024-03-01" || points[0].Net.Cents != 100000 {
		t.Fatalf("first bucket wrong: %+v", points[0])
	}
	for i, p := range points[1:4] {
		if p.Net.Cents != 0 {
			t.Fatalf("gap bucket %d should be zero: %+v", i+1, p)
		}
	}
	if points[4].Bucket != "2024-03-05" || points[4].Net.Cents != -5000 {
		t.Fatalf("last bucket wrong: %+v", points[4])
	}
}

func TestTrendMonthlySpansYearBoundary(t *testing.T) {
	snapshot := []core.Transaction{
		tx(core.NewDate(2023, 11, 20), core.Income, "Part-time Job", 1000),
		tx(core.NewDate(2024, 2, 2), core.Expense, "Rent", 3000),
	}
	points := Trend(snapshot, Monthly)
	want := []string{"2023-11", "2023-12", "2024-01", "2024-02"}
	if len(points) != len(want) {
		t.Fatalf("expected %d buckets, got %d", len(want), len(points))
	}
	for i, label := range want {
		if points[i].Bucket != label {
			t.Fatalf("bucket %d = %s, want %s", i, points[i].Bucket, label)
		}
	}
	if points[0].Net.Cents != 1000 || points[3].Net.Cents != -3000 {
		t.Fatalf("edge bucket nets wrong: %+v", points)
	}
}

func TestTrendEmptySnapshot(t *testing.T) {
	if points := Trend(nil, Daily); len(points) != 0 {
		t.Fatalf("empty snapshot should produce no buckets, got %d", len(points))
	}
}

func TestGranularityValidate(t *testing.T) {
	if err := Daily.Validate(); err != nil {
		t.Fatalf("day should be valid: %v", err)
	}
	if err := Monthly.Validate(); err != nil {
		t.Fatalf("month should be valid: %v", err)
	}
	if err := Granularity("week").Validate(); err == nil {
		t.Fatalf("week should be rejected")
	}
}
