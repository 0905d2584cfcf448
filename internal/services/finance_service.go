// Package services orchestrates wallet operations across the record store
// and the export queue.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"wealthwallet/internal/core"
	"wealthwallet/internal/store"
)

// ErrInvalidMonth rejects month indexes outside [0,11].
var ErrInvalidMonth = errors.New("month out of range (expected 0-11)")

// ExportPublisher publishes export messages for newly created transactions.
// A nil publisher disables export without failing writes.
type ExportPublisher interface {
	PublishTransactionExport(ctx context.Context, id, userID string) error
}

// FinanceService orchestrates transactions, budgets and profiles for one
// authenticated user at a time.
type FinanceService struct {
	store     store.Store
	publisher ExportPublisher
}

func NewFinanceService(st store.Store, publisher ExportPublisher) *FinanceService {
	return &FinanceService{
		store:     st,
		publisher: publisher,
	}
}

// DashboardErrors carries per-section load failures for a degraded dashboard.
// An empty string means the section loaded cleanly.
type DashboardErrors struct {
	Transactions string
	Budgets      string
}

// Dashboard is one month's view over a user's finances. Transactions holds
// only the selected month's records; Budgets holds every budget evaluated
// against that month's spending.
type Dashboard struct {
	Month        int
	Year         int
	Currency     core.Currency
	Summary      core.Summary
	Transactions []core.Transaction
	Budgets      []core.BudgetStatus
	Prev         core.MonthRef
	Next         core.MonthRef
	CanGoNext    bool
	Errors       DashboardErrors
}

// Degraded reports whether any dashboard section failed to load.
func (d Dashboard) Degraded() bool {
	return d.Errors.Transactions != "" || d.Errors.Budgets != ""
}

// Dashboard builds the month view for a user. Section loads fail
// independently: a store error empties that section and is reported in
// Errors instead of failing the whole view, so zeroed totals always mean
// "no data", never a crash.
func (s *FinanceService) Dashboard(ctx context.Context, userID string, month, year int, currency core.Currency, now time.Time) (Dashboard, error) {
	if month < 0 || month > 11 {
		return Dashboard{}, ErrInvalidMonth
	}
	if !currency.Valid() {
		currency = core.DefaultCurrency
	}

	d := Dashboard{
		Month:     month,
		Year:      year,
		Currency:  currency,
		Prev:      core.NavigateMonth(month, year, core.Prev),
		Next:      core.NavigateMonth(month, year, core.Next),
		CanGoNext: core.CanAdvance(month, year, now),
	}

	txs, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load transactions for dashboard",
			"user_id", userID, "error", err)
		d.Errors.Transactions = "failed to load transactions"
		txs = nil
	}

	monthTxs := core.InMonth(txs, month, year)
	d.Transactions = monthTxs
	d.Summary = core.Summarize(monthTxs)

	budgets, err := s.store.ListBudgets(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load budgets for dashboard",
			"user_id", userID, "error", err)
		d.Errors.Budgets = "failed to load budgets"
		budgets = nil
	}

	d.Budgets = make([]core.BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		d.Budgets = append(d.Budgets, core.EvaluateBudget(b, monthTxs))
	}

	return d, nil
}

// CreateTransaction validates and saves a transaction, then publishes an
// export message. Publishing is best effort: the transaction is already
// persisted, so a queue failure is logged and the write still succeeds.
func (s *FinanceService) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	saved, err := s.store.CreateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	if err := s.publishExportMessage(ctx, saved.ID, saved.UserID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish export message",
			"transaction_id", saved.ID, "error", err)
		// Don't fail the request - transaction is saved locally
	}

	return saved, nil
}

// ListTransactions returns the user's transactions matching the filter,
// newest first.
func (s *FinanceService) ListTransactions(ctx context.Context, userID string, f core.Filter) ([]core.Transaction, error) {
	txs, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return core.FilterTransactions(txs, f), nil
}

// CreateBudget validates and saves a budget. The category is trimmed before
// storage; creation is rejected when a budget with the same case-insensitive
// category and period already exists. The store's uniqueness check is
// authoritative, the list-based guard just catches most collisions before a
// write is attempted.
func (s *FinanceService) CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	b.Category = strings.TrimSpace(b.Category)
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}

	existing, err := s.store.ListBudgets(ctx, b.UserID)
	if err != nil {
		return core.Budget{}, fmt.Errorf("list budgets: %w", err)
	}
	if core.HasDuplicateBudget(existing, b) {
		return core.Budget{}, duplicateBudgetError(b)
	}

	saved, err := s.store.CreateBudget(ctx, b)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateBudget) {
			return core.Budget{}, duplicateBudgetError(b)
		}
		return core.Budget{}, fmt.Errorf("save budget: %w", err)
	}
	return saved, nil
}

// duplicateBudgetError wraps the store sentinel with the submitted category
// and period so the conflict message names the offending values.
func duplicateBudgetError(b core.Budget) error {
	return fmt.Errorf("a %s budget for %q already exists: %w", b.Period, b.Category, store.ErrDuplicateBudget)
}

// ListBudgets returns the user's budgets ordered by category.
func (s *FinanceService) ListBudgets(ctx context.Context, userID string) ([]core.Budget, error) {
	budgets, err := s.store.ListBudgets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return budgets, nil
}

// Profile returns the user's profile, creating an empty one on first access.
// A missing profile is an expected state for new users, not an error.
func (s *FinanceService) Profile(ctx context.Context, userID string) (core.Profile, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, store.ErrProfileNotFound) {
		return core.Profile{}, fmt.Errorf("get profile: %w", err)
	}

	created, err := s.store.CreateProfile(ctx, core.Profile{UserID: userID})
	if err != nil {
		return core.Profile{}, fmt.Errorf("create profile: %w", err)
	}

	slog.InfoContext(ctx, "Profile created on first access", "user_id", userID)
	return created, nil
}

func (s *FinanceService) publishExportMessage(ctx context.Context, id, userID string) error {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Export publisher not available, skipping export message")
		return nil
	}
	return s.publisher.PublishTransactionExport(ctx, id, userID)
}
