package core

import "testing"

func TestEvaluateBudgetMonthlyOverspent(t *testing.T) {
	b := Budget{Category: "Food", Amount: Money{Cents: 50000}, Period: Monthly}
	txs := []Transaction{
		{Type: Expense, Category: "Food", Amount: Money{Cents: 40000}},
		{Type: Expense, Category: "Food", Amount: Money{Cents: 20000}},
	}
	s := EvaluateBudget(b, txs)
	if s.Spent.Cents != 60000 {
		t.Fatalf("spent=%d", s.Spent.Cents)
	}
	if s.NormalizedLimit.Cents != 50000 {
		t.Fatalf("limit=%d", s.NormalizedLimit.Cents)
	}
	if s.Remaining.Cents != -10000 {
		t.Fatalf("remaining=%d", s.Remaining.Cents)
	}
	if s.Percentage != 120 {
		t.Fatalf("percentage=%v", s.Percentage)
	}
	if !s.OverBudget || s.Severity != SeverityOver {
		t.Fatalf("expected over budget, got %+v", s)
	}
	if s.GaugePercentage() != 100 {
		t.Fatalf("gauge must clamp to 100, got %v", s.GaugePercentage())
	}
}

func TestEvaluateBudgetYearlyNormalized(t *testing.T) {
	b := Budget{Category: "Rent", Amount: Money{Cents: 120000}, Period: Yearly}
	txs := []Transaction{
		{Type: Expense, Category: "Rent", Amount: Money{Cents: 8000}},
	}
	s := EvaluateBudget(b, txs)
	if s.NormalizedLimit.Cents != 10000 {
		t.Fatalf("limit=%d", s.NormalizedLimit.Cents)
	}
	if s.Remaining.Cents != 2000 {
		t.Fatalf("remaining=%d", s.Remaining.Cents)
	}
	if s.Percentage != 80 {
		t.Fatalf("percentage=%v", s.Percentage)
	}
	if s.OverBudget {
		t.Fatalf("not over budget: %+v", s)
	}
	if s.Severity != SeverityNormal {
		t.Fatalf("severity=%v", s.Severity)
	}
}

func TestEvaluateBudgetMatchingIsExactCaseExpenseOnly(t *testing.T) {
	b := Budget{Category: "Food", Amount: Money{Cents: 10000}, Period: Monthly}
	txs := []Transaction{
		{Type: Expense, Category: "Food", Amount: Money{Cents: 1000}},
		{Type: Expense, Category: "food", Amount: Money{Cents: 5000}}, // case differs, excluded
		{Type: Income, Category: "Food", Amount: Money{Cents: 7000}},  // income, excluded
	}
	if s := EvaluateBudget(b, txs); s.Spent.Cents != 1000 {
		t.Fatalf("spent=%d", s.Spent.Cents)
	}
}

func TestEvaluateBudgetZeroLimitGuard(t *testing.T) {
	b := Budget{Category: "Misc", Amount: Money{Cents: 0}, Period: Monthly}
	s := EvaluateBudget(b, []Transaction{{Type: Expense, Category: "Misc", Amount: Money{Cents: 100}}})
	if s.Percentage != 0 {
		t.Fatalf("zero limit must yield percentage 0, got %v", s.Percentage)
	}
	if !s.OverBudget || s.Severity != SeverityOver {
		t.Fatalf("spending against a zero limit is over budget: %+v", s)
	}
}

func TestEvaluateBudgetSeverityBands(t *testing.T) {
	b := Budget{Category: "Fun", Amount: Money{Cents: 10000}, Period: Monthly}
	cases := []struct {
		spent int64
		want  Severity
	}{
		{0, SeverityNormal},
		{8000, SeverityNormal}, // exactly 80% is still normal
		{8001, SeverityWarning},
		{10000, SeverityWarning}, // exactly at the limit warns, not over
		{10001, SeverityOver},
	}
	for _, tc := range cases {
		txs := []Transaction{{Type: Expense, Category: "Fun", Amount: Money{Cents: tc.spent}}}
		if tc.spent == 0 {
			txs = nil
		}
		if s := EvaluateBudget(b, txs); s.Severity != tc.want {
			t.Fatalf("spent=%d: severity=%v, want %v", tc.spent, s.Severity, tc.want)
		}
	}
}
