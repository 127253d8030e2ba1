package metrics

import (
	"math"
	"sort"

	"tally/internal/core"
)

const (
	FrequencyDaily   Frequency = "Daily"
	FrequencyWeekly  Frequency = "Weekly"
	FrequencyMonthly Frequency = "Monthly"
)

const (
	PaceLow      Pace = "Low"
	PaceNormal   Pace = "Normal"
	PaceHigh     Pace = "High"
	PaceCritical Pace = "Critical"
)

// avgDaysPerMonth converts standing monthly budgets to daily or weekly slices.
const avgDaysPerMonth = 30.44

type (
	// Frequency scales standing monthly budgets to the reporting window.
	Frequency string

	// Pace classifies how much of the outgoing budget has been used.
	Pace string

	// BudgetLine compares one category's scaled budget against its actual
	// total within the reporting period.
	BudgetLine struct {
		Category string
		Group    core.CategoryGroup
		Budgeted core.Money
		Actual   core.Money
		// Diff is signed so that positive is always the good direction:
		// actual minus budget for Income/Saving, budget minus actual for
		// Bill/Expense/Debt.
		Diff     core.Money
		UsagePct float64
	}

	// BudgetReport is the full budget-vs-actual view for one period.
	BudgetReport struct {
		Lines          []BudgetLine
		TotalBudgetOut core.Money // budgeted outflow (Bill, Expense, Debt)
		TotalSpent     core.Money // actual outflow
		Remaining      core.Money
		UsagePct       float64
		Pace           Pace
	}

	// ExpenseShare is one entry of a top-expenses ranking.
	ExpenseShare struct {
		Category string
		Amount   core.Money
		Pct      float64 // share of total spending in the period
	}
)

// Ratio converts a standing monthly budget to the frequency's window.
func (f Frequency) Ratio() float64 {
	switch f {
	case FrequencyDaily:
		return 1 / avgDaysPerMonth
	case FrequencyWeekly:
		return 7 / avgDaysPerMonth
	default:
		return 1.0
	}
}

func outgoing(g core.CategoryGroup) bool {
	switch g {
	case core.GroupBill, core.GroupExpense, core.GroupDebt:
		return true
	default:
		return false
	}
}

// ComputeBudgetReport builds the budget-vs-actual view. Every known category
// appears as a line even without transactions or budget, so the consumer can
// render a complete table. Actuals sum all transaction amounts per category
// within the period regardless of type; the category's group decides how the
// difference is signed.
func ComputeBudgetReport(snapshot []core.Transaction, budgets []core.Budget, categories []core.Category, period core.Period, freq Frequency) BudgetReport {
	ratio := freq.Ratio()

	budgetByCat := make(map[string]int64, len(budgets))
	for _, b := range budgets {
		budgetByCat[b.Category] = b.Monthly.Cents
	}

	actualByCat := make(map[string]int64)
	for _, t := range snapshot {
		if period.Contains(t.Date) {
			actualByCat[t.Category] += t.Amount.Cents
		}
	}

	report := BudgetReport{}
	for _, c := range categories {
		budgeted := int64(math.Round(float64(budgetByCat[c.Name]) * ratio))
		actual := actualByCat[c.Name]

		var diff int64
		if outgoing(c.Group) {
			diff = budgeted - actual
			report.TotalBudgetOut.Cents += budgeted
			report.TotalSpent.Cents += actual
		} else {
			diff = actual - budgeted
		}

		report.Lines = append(report.Lines, BudgetLine{
			Category: c.Name,
			Group:    c.Group,
			Budgeted: core.Money{Cents: budgeted},
			Actual:   core.Money{Cents: actual},
			Diff:     core.Money{Cents: diff},
			UsagePct: usagePct(actual, budgeted),
		})
	}

	report.Remaining = report.TotalBudgetOut.Sub(report.TotalSpent)
	report.UsagePct = usagePct(report.TotalSpent.Cents, report.TotalBudgetOut.Cents)
	report.Pace = paceFor(report.UsagePct)
	return report
}

func usagePct(actual, budgeted int64) float64 {
	if budgeted > 0 {
		return float64(actual) / float64(budgeted) * 100
	}
	if actual > 0 {
		return 100
	}
	return 0
}

func paceFor(usage float64) Pace {
	switch {
	case usage > 100:
		return PaceCritical
	case usage > 80:
		return PaceHigh
	case usage < 20:
		return PaceLow
	default:
		return PaceNormal
	}
}

// TopExpenses ranks expense categories within the period by total amount,
// largest first, keeping at most n entries. Pct is each category's share of
// the period's total spending.
func TopExpenses(snapshot []core.Transaction, period core.Period, n int) []ExpenseShare {
	byCat := CategoryBreakdown(snapshot, core.Expense, &period)
	if len(byCat) == 0 || n <= 0 {
		return nil
	}

	var total int64
	shares := make([]ExpenseShare, 0, len(byCat))
	for cat, amount := range byCat {
		total += amount.Cents
		shares = append(shares, ExpenseShare{Category: cat, Amount: amount})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Amount.Cents != shares[j].Amount.Cents {
			return shares[i].Amount.Cents > shares[j].Amount.Cents
		}
		return shares[i].Category < shares[j].Category
	})
	if len(shares) > n {
		shares = shares[:n]
	}
	for i := range shares {
		if total > 0 {
			shares[i].Pct = float64(shares[i].Amount.Cents) / float64(total) * 100
		}
	}
	return shares
}
