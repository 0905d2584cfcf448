package core

import "strings"

// BudgetKey derives the logical uniqueness key for a budget: trimmed,
// lowercased category joined with the period. Duplicate detection is
// deliberately case-insensitive even though spend matching is exact-case;
// both the proactive check and the submission-time check must use this same
// derivation.
func BudgetKey(category string, period BudgetPeriod) string {
	return strings.ToLower(strings.TrimSpace(category)) + "-" + string(period)
}

// HasDuplicateBudget reports whether candidate collides with an existing
// budget on the (category, period) key.
func HasDuplicateBudget(existing []Budget, candidate Budget) bool {
	key := BudgetKey(candidate.Category, candidate.Period)
	for _, b := range existing {
		if BudgetKey(b.Category, b.Period) == key {
			return true
		}
	}
	return false
}
