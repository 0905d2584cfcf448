package core

import "testing"

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalIncome.Cents != 0 || s.TotalExpenses.Cents != 0 || s.NetSavings.Cents != 0 {
		t.Fatalf("expected zero summary, got %+v", s)
	}
}

func TestSummarize(t *testing.T) {
	cases := []struct {
		name                 string
		txs                  []Transaction
		income, expenses, net int64
	}{
		{
			name: "mixed",
			txs: []Transaction{
				{Type: Income, Amount: Money{Cents: 300000}},
				{Type: Expense, Amount: Money{Cents: 120050}},
				{Type: Expense, Amount: Money{Cents: 4999}},
				{Type: Income, Amount: Money{Cents: 2500}},
			},
			income: 302500, expenses: 125049, net: 177451,
		},
		{
			name: "expenses only yields negative net",
			txs: []Transaction{
				{Type: Expense, Amount: Money{Cents: 999}},
			},
			income: 0, expenses: 999, net: -999,
		},
	}
	for _, tc := range cases {
		s := Summarize(tc.txs)
		if s.TotalIncome.Cents != tc.income || s.TotalExpenses.Cents != tc.expenses || s.NetSavings.Cents != tc.net {
			t.Fatalf("%s: got %+v", tc.name, s)
		}
		if s.NetSavings.Cents != s.TotalIncome.Cents-s.TotalExpenses.Cents {
			t.Fatalf("%s: net identity broken", tc.name)
		}
	}
}

func TestSummarizeExactOverManyTransactions(t *testing.T) {
	// 10k transactions of 0.01 each must sum to exactly 100.00.
	txs := make([]Transaction, 10000)
	for i := range txs {
		txs[i] = Transaction{Type: Expense, Amount: Money{Cents: 1}}
	}
	if s := Summarize(txs); s.TotalExpenses.Cents != 10000 {
		t.Fatalf("drift: got %d cents", s.TotalExpenses.Cents)
	}
}
