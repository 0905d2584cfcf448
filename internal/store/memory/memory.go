// Package memory is an in-memory record store used as the default dev
// backend and in tests. It mirrors the SQLite store's semantics: listing
// order, duplicate-budget rejection and profile not-found behaviour.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"wealthwallet/internal/core"
	"wealthwallet/internal/store"
)

type Store struct {
	mu           sync.Mutex
	seq          int
	transactions []core.Transaction
	budgets      []core.Budget
	profiles     map[string]core.Profile
}

func New() *Store {
	return &Store{profiles: make(map[string]core.Profile)}
}

// CreateTransaction implements store.TransactionStore.
func (s *Store) CreateTransaction(_ context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t.ID = fmt.Sprintf("mem-tx-%d", s.seq)
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	s.transactions = append(s.transactions, t)
	return t, nil
}

// ListTransactions implements store.TransactionStore: date descending with
// creation time as a stable tiebreak, scoped to the owner.
func (s *Store) ListTransactions(_ context.Context, userID string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, t := range s.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// CreateBudget implements store.BudgetStore with the same uniqueness-key
// rejection as the SQLite index.
func (s *Store) CreateBudget(_ context.Context, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := core.BudgetKey(b.Category, b.Period)
	for _, existing := range s.budgets {
		if existing.UserID == b.UserID && core.BudgetKey(existing.Category, existing.Period) == key {
			return core.Budget{}, store.ErrDuplicateBudget
		}
	}
	s.seq++
	b.ID = fmt.Sprintf("mem-budget-%d", s.seq)
	s.budgets = append(s.budgets, b)
	return b, nil
}

// ListBudgets implements store.BudgetStore, category ascending.
func (s *Store) ListBudgets(_ context.Context, userID string) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Budget
	for _, b := range s.budgets {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

// GetProfile implements store.ProfileStore.
func (s *Store) GetProfile(_ context.Context, userID string) (core.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return core.Profile{}, store.ErrProfileNotFound
	}
	return p, nil
}

// CreateProfile implements store.ProfileStore.
func (s *Store) CreateProfile(_ context.Context, p core.Profile) (core.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	p.ID = fmt.Sprintf("mem-profile-%d", s.seq)
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.profiles[p.UserID] = p
	return p, nil
}
