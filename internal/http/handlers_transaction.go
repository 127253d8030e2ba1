package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"tally/internal/core"
	applog "tally/internal/log"
)

type transactionJSON struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	AmountCents int64  `json:"amount_cents"`
	Note        string `json:"note,omitempty"`
}

type createTransactionRequest struct {
	Date     string `json:"date"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Amount   string `json:"amount"` // decimal string, e.g. "12.34"
	Note     string `json:"note"`
}

func toTransactionJSON(t core.Transaction) transactionJSON {
	return transactionJSON{
		ID:          t.ID,
		Date:        t.Date.ISO(),
		Type:        string(t.Type),
		Category:    t.Category,
		AmountCents: t.Amount.Cents,
		Note:        t.Note,
	}
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListTransactions(w, r)
	case http.MethodPost:
		s.handleCreateTransaction(w, r)
	default:
		methodNotAllowed(w, "GET", "POST")
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := core.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	tx := core.Transaction{
		Date:     date,
		Type:     core.TransactionType(strings.TrimSpace(req.Type)),
		Category: sanitizeInput(req.Category),
		Amount:   core.Money{Cents: cents},
		Note:     sanitizeInput(req.Note),
	}
	if err := tx.Validate(); err != nil {
		writeDomainError(w, r, err)
		return
	}

	stored, err := s.writer.AddTransaction(r.Context(), tx)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to save transaction",
			applog.FieldError, err.Error(),
			applog.FieldCategory, tx.Category,
			applog.FieldAmountCents, tx.Amount.Cents,
			applog.FieldOperation, applog.OpCreate)
		writeDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toTransactionJSON(stored))
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	txs, err := s.reader.ListTransactions(r.Context(), filter)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	out := make([]transactionJSON, len(txs))
	for i, t := range txs {
		out[i] = toTransactionJSON(t)
	}
	respondJSON(w, http.StatusOK, out)
}

// handleTransactionByID serves /transactions/{id}; only deletion is
// supported, records are immutable otherwise.
func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, "DELETE")
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/transactions/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id < 1 {
		respondError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	if err := s.writer.DeleteTransaction(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	cats, err := s.categories.ListCategories(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	type categoryJSON struct {
		Name  string `json:"name"`
		Group string `json:"group"`
	}
	out := make([]categoryJSON, len(cats))
	for i, c := range cats {
		out[i] = categoryJSON{Name: c.Name, Group: string(c.Group)}
	}
	respondJSON(w, http.StatusOK, out)
}
