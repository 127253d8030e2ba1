package http

import (
	"net/http"
	"strings"

	"tally/internal/core"
	"tally/internal/metrics"
)

type trendPointJSON struct {
	Bucket   string `json:"bucket"`
	NetCents int64  `json:"net_cents"`
}

type dashboardResponse struct {
	Year             int              `json:"year"`
	Month            int              `json:"month"`
	BalanceCents     int64            `json:"balance_cents"`
	SafeToSpendCents int64            `json:"safe_to_spend_cents"`
	ExpenseBreakdown map[string]int64 `json:"expense_breakdown"`
	IncomeBreakdown  map[string]int64 `json:"income_breakdown"`
	Trend            []trendPointJSON `json:"trend"`
	TopExpenses      []expenseJSON    `json:"top_expenses"`
}

type expenseJSON struct {
	Category    string  `json:"category"`
	AmountCents int64   `json:"amount_cents"`
	Pct         float64 `json:"pct"`
}

func toTrendJSON(points []metrics.TrendPoint) []trendPointJSON {
	out := make([]trendPointJSON, len(points))
	for i, p := range points {
		out[i] = trendPointJSON{Bucket: p.Bucket, NetCents: p.Net.Cents}
	}
	return out
}

func breakdownCents(m map[string]core.Money) map[string]int64 {
	out := make(map[string]int64, len(m))
	for k, v := range m {
		out[k] = v.Cents
	}
	return out
}

// handleDashboard recomputes every derived view from a fresh ledger snapshot.
// Nothing is cached between calls; a mutation is visible on the next refresh.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	year, month := parseYearMonth(r)
	period := core.MonthOf(year, month)

	snapshot, err := s.reader.ListTransactions(r.Context(), core.ListFilter{})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	top := metrics.TopExpenses(snapshot, period, 5)
	topOut := make([]expenseJSON, len(top))
	for i, e := range top {
		topOut[i] = expenseJSON{Category: e.Category, AmountCents: e.Amount.Cents, Pct: e.Pct}
	}

	respondJSON(w, http.StatusOK, dashboardResponse{
		Year:             year,
		Month:            month,
		BalanceCents:     metrics.Balance(snapshot).Cents,
		SafeToSpendCents: metrics.SafeToSpend(snapshot, period).Cents,
		ExpenseBreakdown: breakdownCents(metrics.CategoryBreakdown(snapshot, core.Expense, &period)),
		IncomeBreakdown:  breakdownCents(metrics.CategoryBreakdown(snapshot, core.Income, &period)),
		Trend:            toTrendJSON(metrics.Trend(snapshot, metrics.Monthly)),
		TopExpenses:      topOut,
	})
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	g := metrics.Granularity(strings.TrimSpace(r.URL.Query().Get("granularity")))
	if g == "" {
		g = metrics.Monthly
	}
	if err := g.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	snapshot, err := s.reader.ListTransactions(r.Context(), core.ListFilter{})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toTrendJSON(metrics.Trend(snapshot, g)))
}
