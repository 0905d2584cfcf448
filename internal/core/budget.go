package core

// Severity bands a budget's standing for presentation.
type Severity string

const (
	SeverityNormal  Severity = "normal"  // percentage <= 80
	SeverityWarning Severity = "warning" // 80 < percentage <= 100
	SeverityOver    Severity = "over"    // over budget
)

// BudgetStatus is the evaluated standing of one budget for one month.
type BudgetStatus struct {
	Budget          Budget
	Spent           Money
	NormalizedLimit Money
	Remaining       Money // NormalizedLimit - Spent, may be negative
	Percentage      float64
	OverBudget      bool
	Severity        Severity
}

// EvaluateBudget computes spend-vs-budget standing from the expense
// transactions already matched to the budget's category (exact-case equality)
// within the evaluation month. Yearly budgets are normalized to a monthly
// rate, since dashboards display monthly standing for both period types; the
// raw annual amount never enters the percentage.
func EvaluateBudget(b Budget, matched []Transaction) BudgetStatus {
	spent := Money{}
	for _, t := range matched {
		if t.Type == Expense && t.Category == b.Category {
			spent = spent.Add(t.Amount)
		}
	}

	limit := b.Amount
	if b.Period == Yearly {
		limit = Money{Cents: divideCentsHalfUp(b.Amount.Cents, 12)}
	}

	status := BudgetStatus{
		Budget:          b,
		Spent:           spent,
		NormalizedLimit: limit,
		Remaining:       limit.Sub(spent),
		OverBudget:      spent.Cents > limit.Cents,
	}
	// A zero-or-negative limit must not propagate Inf/NaN into display.
	if limit.Cents > 0 {
		status.Percentage = float64(spent.Cents) / float64(limit.Cents) * 100
	}
	status.Severity = severityFor(status)
	return status
}

func severityFor(s BudgetStatus) Severity {
	switch {
	case s.OverBudget:
		return SeverityOver
	case s.Percentage > 80:
		return SeverityWarning
	default:
		return SeverityNormal
	}
}

// GaugePercentage clamps the percentage to [0,100] for bar/gauge rendering.
// The textual percentage stays uncapped.
func (s BudgetStatus) GaugePercentage() float64 {
	if s.Percentage > 100 {
		return 100
	}
	if s.Percentage < 0 {
		return 0
	}
	return s.Percentage
}

func divideCentsHalfUp(cents, by int64) int64 {
	return (cents + by/2) / by
}
