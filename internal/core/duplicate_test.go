package core

import "testing"

func TestBudgetKey(t *testing.T) {
	if got := BudgetKey("  Food ", Monthly); got != "food-monthly" {
		t.Fatalf("key=%q", got)
	}
	if BudgetKey("Food", Monthly) != BudgetKey("FOOD", Monthly) {
		t.Fatalf("key must fold case")
	}
	if BudgetKey("Food", Monthly) == BudgetKey("Food", Yearly) {
		t.Fatalf("period must distinguish keys")
	}
}

func TestHasDuplicateBudget(t *testing.T) {
	existing := []Budget{
		{Category: "Food", Period: Monthly},
		{Category: "Rent", Period: Yearly},
	}
	cases := []struct {
		name      string
		candidate Budget
		want      bool
	}{
		{"trim and case fold collide", Budget{Category: "food ", Period: Monthly}, true},
		{"different period passes", Budget{Category: "food", Period: Yearly}, false},
		{"fresh category passes", Budget{Category: "Travel", Period: Monthly}, false},
		{"exact match collides", Budget{Category: "Rent", Period: Yearly}, true},
	}
	for _, tc := range cases {
		if got := HasDuplicateBudget(existing, tc.candidate); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
	if HasDuplicateBudget(nil, Budget{Category: "Food", Period: Monthly}) {
		t.Fatalf("empty existing set can never collide")
	}
}
