package core

import "strings"

// Filter is the ad-hoc transaction filter set. All clauses are conjunctive.
// A zero Query or Category disables that clause; Month < 0 disables the
// period clause. Month is zero-based (January is 0).
type Filter struct {
	Query    string
	Category string
	Month    int
	Year     int
}

// NoFilter matches every transaction.
var NoFilter = Filter{Month: -1}

// FilterTransactions returns the subset of txs matching f, in input order.
// It never mutates its input.
func FilterTransactions(txs []Transaction, f Filter) []Transaction {
	if f.Query == "" && f.Category == "" && f.Month < 0 {
		return txs
	}
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if query != "" && !matchesQuery(t, query) {
			continue
		}
		// Category filtering is exact equality; only free-text search and
		// duplicate detection fold case.
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if f.Month >= 0 && !inMonth(t, f.Month, f.Year) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// InMonth returns the transactions dated in the given zero-based month and
// year, evaluated in UTC.
func InMonth(txs []Transaction, month, year int) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if inMonth(t, month, year) {
			out = append(out, t)
		}
	}
	return out
}

func inMonth(t Transaction, month, year int) bool {
	return t.Date.MonthIndex() == month && t.Date.Year() == year
}

func matchesQuery(t Transaction, lowered string) bool {
	if t.Notes != "" && strings.Contains(strings.ToLower(t.Notes), lowered) {
		return true
	}
	return strings.Contains(strings.ToLower(t.Category), lowered)
}
