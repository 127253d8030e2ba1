package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"tally/internal/core"
	"tally/internal/metrics"
)

type budgetJSON struct {
	Category     string `json:"category"`
	MonthlyCents int64  `json:"monthly_cents"`
}

type setBudgetRequest struct {
	Category string `json:"category"`
	Monthly  string `json:"monthly"` // decimal string, e.g. "450.00"
}

func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListBudgets(w, r)
	case http.MethodPut, http.MethodPost:
		s.handleSetBudget(w, r)
	default:
		methodNotAllowed(w, "GET", "PUT", "POST")
	}
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.budgets.ListBudgets(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	out := make([]budgetJSON, len(budgets))
	for i, b := range budgets {
		out[i] = budgetJSON{Category: b.Category, MonthlyCents: b.Monthly.Cents}
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var req setBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cents, err := core.ParseDecimalToCents(req.Monthly)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	b := core.Budget{
		Category: sanitizeInput(req.Category),
		Monthly:  core.Money{Cents: cents},
	}
	if err := s.budgets.SetBudget(r.Context(), b); err != nil {
		writeDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, budgetJSON{Category: b.Category, MonthlyCents: b.Monthly.Cents})
}

type budgetLineJSON struct {
	Category      string  `json:"category"`
	Group         string  `json:"group"`
	BudgetedCents int64   `json:"budgeted_cents"`
	ActualCents   int64   `json:"actual_cents"`
	DiffCents     int64   `json:"diff_cents"`
	UsagePct      float64 `json:"usage_pct"`
}

type budgetReportResponse struct {
	Frequency           string           `json:"frequency"`
	From                string           `json:"from"`
	To                  string           `json:"to"`
	Lines               []budgetLineJSON `json:"lines"`
	TotalBudgetOutCents int64            `json:"total_budget_out_cents"`
	TotalSpentCents     int64            `json:"total_spent_cents"`
	RemainingCents      int64            `json:"remaining_cents"`
	UsagePct            float64          `json:"usage_pct"`
	Pace                string           `json:"pace"`
}

func (s *Server) handleBudgetReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	freq := metrics.Frequency(strings.TrimSpace(r.URL.Query().Get("frequency")))
	switch freq {
	case "":
		freq = metrics.FrequencyMonthly
	case metrics.FrequencyDaily, metrics.FrequencyWeekly, metrics.FrequencyMonthly:
	default:
		respondError(w, http.StatusBadRequest, "invalid frequency")
		return
	}

	period := reportPeriod(freq, r)

	snapshot, err := s.reader.ListTransactions(r.Context(), core.ListFilter{})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	budgets, err := s.budgets.ListBudgets(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	categories, err := s.categories.ListCategories(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	report := metrics.ComputeBudgetReport(snapshot, budgets, categories, period, freq)

	lines := make([]budgetLineJSON, len(report.Lines))
	for i, l := range report.Lines {
		lines[i] = budgetLineJSON{
			Category:      l.Category,
			Group:         string(l.Group),
			BudgetedCents: l.Budgeted.Cents,
			ActualCents:   l.Actual.Cents,
			DiffCents:     l.Diff.Cents,
			UsagePct:      l.UsagePct,
		}
	}

	respondJSON(w, http.StatusOK, budgetReportResponse{
		Frequency:           string(freq),
		From:                period.From.ISO(),
		To:                  period.To.ISO(),
		Lines:               lines,
		TotalBudgetOutCents: report.TotalBudgetOut.Cents,
		TotalSpentCents:     report.TotalSpent.Cents,
		RemainingCents:      report.Remaining.Cents,
		UsagePct:            report.UsagePct,
		Pace:                string(report.Pace),
	})
}

// reportPeriod derives the reporting window: the requested calendar month for
// Monthly, the current Monday-to-Sunday week for Weekly, today for Daily.
func reportPeriod(freq metrics.Frequency, r *http.Request) core.Period {
	now := time.Now().UTC()
	today := core.NewDate(now.Year(), int(now.Month()), now.Day())

	switch freq {
	case metrics.FrequencyDaily:
		return core.Period{From: today, To: today}
	case metrics.FrequencyWeekly:
		offset := (int(now.Weekday()) + 6) % 7 // Monday = 0
		from := core.Date{Time: today.AddDate(0, 0, -offset)}
		to := core.Date{Time: from.AddDate(0, 0, 6)}
		return core.Period{From: from, To: to}
	default:
		year, month := parseYearMonth(r)
		return core.MonthOf(year, month)
	}
}
