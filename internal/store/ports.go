// Package store defines the ports to the record store collaborator that
// persists transactions, budgets and profiles, plus the sentinel errors
// shared by its implementations.
package store

import (
	"context"
	"errors"

	"wealthwallet/internal/core"
)

var (
	// ErrDuplicateBudget signals a collision on the (user, category, period)
	// uniqueness key. The store check is authoritative: the in-process
	// duplicate guard cannot observe concurrent writers.
	ErrDuplicateBudget = errors.New("budget already exists for category and period")

	// ErrProfileNotFound triggers the create-on-demand path rather than a
	// hard failure.
	ErrProfileNotFound = errors.New("profile not found")

	ErrTransactionNotFound = errors.New("transaction not found")
)

type (
	TransactionStore interface {
		// CreateTransaction persists a validated transaction and returns it
		// with ID and CreatedAt assigned.
		CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)

		// ListTransactions returns the user's transactions ordered by date
		// descending, then creation time descending.
		ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error)
	}

	BudgetStore interface {
		// CreateBudget persists a validated budget, returning
		// ErrDuplicateBudget on a uniqueness-key collision.
		CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error)

		// ListBudgets returns the user's budgets ordered by category ascending.
		ListBudgets(ctx context.Context, userID string) ([]core.Budget, error)
	}

	ProfileStore interface {
		// GetProfile returns ErrProfileNotFound for unknown users.
		GetProfile(ctx context.Context, userID string) (core.Profile, error)

		CreateProfile(ctx context.Context, p core.Profile) (core.Profile, error)
	}

	// Store is the full record-store surface the service layer depends on.
	Store interface {
		TransactionStore
		BudgetStore
		ProfileStore
	}
)
