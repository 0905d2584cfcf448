package core

// Summary holds the income/expense/net totals for a transaction set.
type Summary struct {
	TotalIncome   Money
	TotalExpenses Money
	NetSavings    Money
}

// Summarize reduces a transaction set into exact cent totals. An empty input
// yields all-zero totals. NetSavings is always TotalIncome - TotalExpenses.
func Summarize(txs []Transaction) Summary {
	var s Summary
	for _, t := range txs {
		switch t.Type {
		case Income:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		case Expense:
			s.TotalExpenses = s.TotalExpenses.Add(t.Amount)
		}
	}
	s.NetSavings = s.TotalIncome.Sub(s.TotalExpenses)
	return s
}
