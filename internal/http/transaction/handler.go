package transaction

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmiranda/spendclass/internal/category"
	"github.com/dmiranda/spendclass/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/transactions", h.create)
	r.Get("/transactions", h.list)
	r.Get("/transactions/{transaction_id}", h.getByTransactionID)
	r.Get("/categories-summary", h.categoriesSummary)
	r.Get("/counterparts-per-category", h.counterpartsPerCategory)
}

// parseFilter binds the optional query parameters. Bad enum values and
// malformed timestamps are rejected here, before any core logic runs.
func parseFilter(r *http.Request, withCounterpart bool) (transaction.Filter, error) {
	var filter transaction.Filter

	q := r.URL.Query()

	if withCounterpart {
		if s := q.Get("counterpart_name"); s != "" {
			filter.CounterpartName = &s
		}
	}

	if s := q.Get("category"); s != "" {
		cat, err := category.ParseQuery(s)
		if err != nil {
			return filter, err
		}

		filter.Category = &cat
	}

	if s := q.Get("start_date"); s != "" {
		t, err := parseTimestamp(s)
		if err != nil {
			return filter, fmt.Errorf("invalid start_date: %w", err)
		}

		filter.StartDate = &t
	}

	if s := q.Get("end_date"); s != "" {
		t, err := parseTimestamp(s)
		if err != nil {
			return filter, fmt.Errorf("invalid end_date: %w", err)
		}

		filter.EndDate = &t
	}

	return filter, nil
}

// parseTimestamp accepts RFC 3339 or a bare date.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	return time.Parse(time.DateOnly, s)
}

type createTransactionRequest struct {
	TransactionID      uuid.UUID `json:"transaction_id"`
	Amount             float64   `json:"amount"`
	CounterpartName    string    `json:"counterpart_name"`
	TransactionTimeUTC time.Time `json:"transaction_time_utc"`
	TransactionType    string    `json:"transaction_type"`
}

func (req *createTransactionRequest) validate() error {
	if req.TransactionID == uuid.Nil {
		return errors.New("transaction_id is required")
	}

	if req.CounterpartName == "" {
		return errors.New("counterpart_name is required")
	}

	if req.TransactionTimeUTC.IsZero() {
		return errors.New("transaction_time_utc is required")
	}

	if req.TransactionType == "" {
		return errors.New("transaction_type is required")
	}

	return nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if err := req.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	tx, err := h.svc.Create(r.Context(), transaction.CreateParams{
		TransactionID:      req.TransactionID,
		Amount:             req.Amount,
		CounterpartName:    req.CounterpartName,
		TransactionTimeUTC: req.TransactionTimeUTC,
		TransactionType:    req.TransactionType,
	})
	if err != nil {
		switch {
		case errors.Is(err, transaction.ErrCannotClassify):
			http.Error(w, transaction.ErrCannotClassify.Error(), http.StatusBadRequest)
		case errors.Is(err, transaction.ErrClassifierUnavailable):
			http.Error(w, transaction.ErrClassifierUnavailable.Error(), http.StatusBadGateway)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r, true)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) getByTransactionID(w http.ResponseWriter, r *http.Request) {
	transactionID, err := uuid.Parse(chi.URLParam(r, "transaction_id"))
	if err != nil {
		http.Error(w, "invalid transaction_id", http.StatusUnprocessableEntity)
		return
	}

	txs, err := h.svc.GetByTransactionID(r.Context(), transactionID)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			http.Error(w, transaction.ErrNotFound.Error(), http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) categoriesSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r, false)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	summaries, err := h.svc.SummarizeByCategory(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toSummaryResponseList(summaries)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) counterpartsPerCategory(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r, false)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	groups, err := h.svc.CounterpartsPerCategory(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toCounterpartsResponseList(groups)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
