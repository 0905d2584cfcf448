package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"wealthwallet/internal/core"
	"wealthwallet/internal/store"
)

func TestListTransactionsOrdering(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	mk := func(date core.Date, created time.Time) core.Transaction {
		return core.Transaction{
			UserID:    "u1",
			Type:      core.Expense,
			Amount:    core.Money{Cents: 100},
			Category:  "Food",
			Date:      date,
			CreatedAt: created,
		}
	}
	// Inserted out of order on purpose.
	older, _ := s.CreateTransaction(ctx, mk(core.NewDate(2024, 6, 1), base))
	newest, _ := s.CreateTransaction(ctx, mk(core.NewDate(2024, 6, 10), base))
	sameDayLater, _ := s.CreateTransaction(ctx, mk(core.NewDate(2024, 6, 1), base.Add(time.Hour)))

	got, err := s.ListTransactions(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{newest.ID, sameDayLater.ID, older.ID}
	if len(got) != 3 {
		t.Fatalf("len=%d", len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: got %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestListTransactionsScopedToOwner(t *testing.T) {
	s := New()
	ctx := context.Background()
	tx := core.Transaction{
		UserID: "u1", Type: core.Income, Amount: core.Money{Cents: 100},
		Category: "Salary", Date: core.NewDate(2024, 6, 1),
	}
	if _, err := s.CreateTransaction(ctx, tx); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := s.ListTransactions(ctx, "u2")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no transactions for u2, got %d", len(got))
	}
}

func TestCreateBudgetDuplicate(t *testing.T) {
	s := New()
	ctx := context.Background()
	b := core.Budget{UserID: "u1", Category: "Food", Amount: core.Money{Cents: 50000}, Period: core.Monthly}
	if _, err := s.CreateBudget(ctx, b); err != nil {
		t.Fatalf("first create: %v", err)
	}
	// Case and whitespace variants collide on the same key.
	dup := core.Budget{UserID: "u1", Category: " FOOD ", Amount: core.Money{Cents: 1000}, Period: core.Monthly}
	if _, err := s.CreateBudget(ctx, dup); !errors.Is(err, store.ErrDuplicateBudget) {
		t.Fatalf("expected ErrDuplicateBudget, got %v", err)
	}
	// Different period or owner is fine.
	if _, err := s.CreateBudget(ctx, core.Budget{UserID: "u1", Category: "Food", Amount: core.Money{Cents: 1}, Period: core.Yearly}); err != nil {
		t.Fatalf("different period: %v", err)
	}
	if _, err := s.CreateBudget(ctx, core.Budget{UserID: "u2", Category: "Food", Amount: core.Money{Cents: 1}, Period: core.Monthly}); err != nil {
		t.Fatalf("different owner: %v", err)
	}
}

func TestListBudgetsOrderedByCategory(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, cat := range []string{"Transport", "Food", "Rent"} {
		b := core.Budget{UserID: "u1", Category: cat, Amount: core.Money{Cents: 100}, Period: core.Monthly}
		if _, err := s.CreateBudget(ctx, b); err != nil {
			t.Fatalf("create %s: %v", cat, err)
		}
	}
	got, err := s.ListBudgets(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"Food", "Rent", "Transport"}
	for i, cat := range want {
		if got[i].Category != cat {
			t.Fatalf("position %d: got %s, want %s", i, got[i].Category, cat)
		}
	}
}

func TestProfileNotFound(t *testing.T) {
	s := New()
	ctx := context.Background()
	if _, err := s.GetProfile(ctx, "nobody"); !errors.Is(err, store.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
	created, err := s.CreateProfile(ctx, core.Profile{UserID: "u1", Username: "u1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := s.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("profile mismatch: %s vs %s", got.ID, created.ID)
	}
}
