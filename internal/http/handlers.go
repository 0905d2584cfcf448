package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"wealthwallet/internal/core"
	"wealthwallet/internal/services"
	"wealthwallet/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusForError maps domain errors to HTTP statuses. Validation failures are
// 422, duplicate budgets 409, bad request parameters 400.
func statusForError(err error) int {
	switch {
	case errors.Is(err, store.ErrDuplicateBudget):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidMonth):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrAmountTooLarge),
		errors.Is(err, core.ErrEmptyCategory),
		errors.Is(err, core.ErrCategoryTooLong),
		errors.Is(err, core.ErrNotesTooLong),
		errors.Is(err, core.ErrInvalidType),
		errors.Is(err, core.ErrInvalidPeriod),
		errors.Is(err, core.ErrInvalidDate):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Request failed", "url", r.URL.Path, "error", err)
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

type transactionResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	AmountCents int64     `json:"amount_cents"`
	Amount      string    `json:"amount"`
	Category    string    `json:"category"`
	Date        string    `json:"date"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type budgetResponse struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	AmountCents int64  `json:"amount_cents"`
	Amount      string `json:"amount"`
	Period      string `json:"period"`
}

type budgetStatusResponse struct {
	budgetResponse
	SpentCents           int64   `json:"spent_cents"`
	Spent                string  `json:"spent"`
	NormalizedLimitCents int64   `json:"normalized_limit_cents"`
	NormalizedLimit      string  `json:"normalized_limit"`
	RemainingCents       int64   `json:"remaining_cents"`
	Remaining            string  `json:"remaining"`
	Percentage           float64 `json:"percentage"`
	GaugePercentage      float64 `json:"gauge_percentage"`
	OverBudget           bool    `json:"over_budget"`
	Severity             string  `json:"severity"`
}

type summaryResponse struct {
	TotalIncomeCents   int64  `json:"total_income_cents"`
	TotalIncome        string `json:"total_income"`
	TotalExpensesCents int64  `json:"total_expenses_cents"`
	TotalExpenses      string `json:"total_expenses"`
	NetSavingsCents    int64  `json:"net_savings_cents"`
	NetSavings         string `json:"net_savings"`
}

type monthRefResponse struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

type navigationResponse struct {
	Prev      monthRefResponse `json:"prev"`
	Next      monthRefResponse `json:"next"`
	CanGoNext bool             `json:"can_go_next"`
}

type dashboardErrorsResponse struct {
	Transactions string `json:"transactions,omitempty"`
	Budgets      string `json:"budgets,omitempty"`
}

type dashboardResponse struct {
	Month        int                      `json:"month"`
	Year         int                      `json:"year"`
	Currency     string                   `json:"currency"`
	Summary      summaryResponse          `json:"summary"`
	Transactions []transactionResponse    `json:"transactions"`
	Budgets      []budgetStatusResponse   `json:"budgets"`
	Navigation   navigationResponse       `json:"navigation"`
	Errors       *dashboardErrorsResponse `json:"errors,omitempty"`
}

func toTransactionResponse(t core.Transaction, currency core.Currency) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		Type:        string(t.Type),
		AmountCents: t.Amount.Cents,
		Amount:      core.FormatCents(t.Amount.Cents, currency),
		Category:    t.Category,
		Date:        t.Date.String(),
		Notes:       t.Notes,
		CreatedAt:   t.CreatedAt,
	}
}

func toBudgetResponse(b core.Budget, currency core.Currency) budgetResponse {
	return budgetResponse{
		ID:          b.ID,
		Category:    b.Category,
		AmountCents: b.Amount.Cents,
		Amount:      core.FormatCents(b.Amount.Cents, currency),
		Period:      string(b.Period),
	}
}

func toBudgetStatusResponse(st core.BudgetStatus, currency core.Currency) budgetStatusResponse {
	return budgetStatusResponse{
		budgetResponse:       toBudgetResponse(st.Budget, currency),
		SpentCents:           st.Spent.Cents,
		Spent:                core.FormatCents(st.Spent.Cents, currency),
		NormalizedLimitCents: st.NormalizedLimit.Cents,
		NormalizedLimit:      core.FormatCents(st.NormalizedLimit.Cents, currency),
		RemainingCents:       st.Remaining.Cents,
		Remaining:            core.FormatCents(st.Remaining.Cents, currency),
		Percentage:           st.Percentage,
		GaugePercentage:      st.GaugePercentage(),
		OverBudget:           st.OverBudget,
		Severity:             string(st.Severity),
	}
}

func toDashboardResponse(d services.Dashboard, currency core.Currency) dashboardResponse {
	resp := dashboardResponse{
		Month:    d.Month,
		Year:     d.Year,
		Currency: string(currency),
		Summary: summaryResponse{
			TotalIncomeCents:   d.Summary.TotalIncome.Cents,
			TotalIncome:        core.FormatCents(d.Summary.TotalIncome.Cents, currency),
			TotalExpensesCents: d.Summary.TotalExpenses.Cents,
			TotalExpenses:      core.FormatCents(d.Summary.TotalExpenses.Cents, currency),
			NetSavingsCents:    d.Summary.NetSavings.Cents,
			NetSavings:         core.FormatCents(d.Summary.NetSavings.Cents, currency),
		},
		Transactions: make([]transactionResponse, 0, len(d.Transactions)),
		Budgets:      make([]budgetStatusResponse, 0, len(d.Budgets)),
		Navigation: navigationResponse{
			Prev:      monthRefResponse{Month: d.Prev.Month, Year: d.Prev.Year},
			Next:      monthRefResponse{Month: d.Next.Month, Year: d.Next.Year},
			CanGoNext: d.CanGoNext,
		},
	}
	for _, t := range d.Transactions {
		resp.Transactions = append(resp.Transactions, toTransactionResponse(t, currency))
	}
	for _, st := range d.Budgets {
		resp.Budgets = append(resp.Budgets, toBudgetStatusResponse(st, currency))
	}
	if d.Degraded() {
		resp.Errors = &dashboardErrorsResponse{
			Transactions: d.Errors.Transactions,
			Budgets:      d.Errors.Budgets,
		}
	}
	return resp
}

func requestCurrency(r *http.Request) core.Currency {
	c := core.Currency(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("currency"))))
	if !c.Valid() {
		return core.DefaultCurrency
	}
	return c
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	user := userID(r)
	now := s.now()
	currency := requestCurrency(r)

	cur := core.CurrentMonth(now)
	month := cur.Month
	year := cur.Year

	q := r.URL.Query()
	if v := strings.TrimSpace(q.Get("month")); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid month parameter")
			return
		}
		month = m
	}
	if v := strings.TrimSpace(q.Get("year")); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year parameter")
			return
		}
		year = y
	}

	key := s.dashboardKey(user, month, year)
	if d, found := s.dashboardCache.Get(key); found {
		slog.DebugContext(r.Context(), "Dashboard cache hit", "user_id", user, "year", year, "month", month)
		writeJSON(w, http.StatusOK, toDashboardResponse(d, currency))
		return
	}

	d, err := s.finance.Dashboard(r.Context(), user, month, year, currency, now)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	// Degraded views are not cached; the next poll should retry the store.
	if !d.Degraded() {
		s.dashboardCache.Set(key, d)
	}

	writeJSON(w, http.StatusOK, toDashboardResponse(d, currency))
}

type createTransactionRequest struct {
	Type     string `json:"type"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Notes    string `json:"notes"`
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListTransactions(w, r)
	case http.MethodPost:
		s.handleCreateTransaction(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	currency := requestCurrency(r)

	filter := core.Filter{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Month:    -1,
	}
	if v := strings.TrimSpace(q.Get("month")); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 0 || m > 11 {
			writeError(w, http.StatusBadRequest, "invalid month parameter")
			return
		}
		filter.Month = m

		y, err := strconv.Atoi(strings.TrimSpace(q.Get("year")))
		if err != nil {
			writeError(w, http.StatusBadRequest, "month filter requires a year parameter")
			return
		}
		filter.Year = y
	}

	txs, err := s.finance.ListTransactions(r.Context(), userID(r), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]transactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, toTransactionResponse(t, currency))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	t := core.Transaction{
		UserID:   userID(r),
		Type:     core.TransactionType(strings.ToLower(strings.TrimSpace(req.Type))),
		Amount:   core.Money{Cents: cents},
		Category: strings.TrimSpace(req.Category),
		Date:     date,
		Notes:    strings.TrimSpace(req.Notes),
	}

	saved, err := s.finance.CreateTransaction(r.Context(), t)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.bumpGeneration(saved.UserID)
	writeJSON(w, http.StatusCreated, toTransactionResponse(saved, requestCurrency(r)))
}

type createBudgetRequest struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Period   string `json:"period"`
}

func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListBudgets(w, r)
	case http.MethodPost:
		s.handleCreateBudget(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.finance.ListBudgets(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	currency := requestCurrency(r)
	out := make([]budgetResponse, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, toBudgetResponse(b, currency))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var req createBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	b := core.Budget{
		UserID:   userID(r),
		Category: req.Category,
		Amount:   core.Money{Cents: cents},
		Period:   core.BudgetPeriod(strings.ToLower(strings.TrimSpace(req.Period))),
	}

	saved, err := s.finance.CreateBudget(r.Context(), b)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.bumpGeneration(saved.UserID)
	writeJSON(w, http.StatusCreated, toBudgetResponse(saved, requestCurrency(r)))
}

type profileResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	FullName  string    `json:"full_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	p, err := s.finance.Profile(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Username:  p.Username,
		FullName:  p.FullName,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	})
}
