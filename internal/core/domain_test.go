package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-15")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.Year() != 2024 || d.MonthIndex() != 5 || d.Day() != 15 {
		t.Fatalf("unexpected parts: %d-%d-%d", d.Year(), d.MonthIndex(), d.Day())
	}
	if loc := d.Location(); loc != time.UTC {
		t.Fatalf("expected UTC interpretation, got %v", loc)
	}
	if d.String() != "2024-06-15" {
		t.Fatalf("round trip: %q", d.String())
	}

	for _, bad := range []string{"", "2024-13-01", "15/06/2024", "june"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("%q expected ErrInvalidDate, got %v", bad, err)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Type:     Expense,
		Amount:   Money{Cents: 1250},
		Category: "Food",
		Date:     NewDate(2024, 6, 1),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		mut  func(*Transaction)
		want error
	}{
		{"bad type", func(tx *Transaction) { tx.Type = "transfer" }, ErrInvalidType},
		{"zero amount", func(tx *Transaction) { tx.Amount = Money{} }, ErrInvalidAmount},
		{"huge amount", func(tx *Transaction) { tx.Amount = Money{Cents: MaxAmountCents + 1} }, ErrAmountTooLarge},
		{"blank category", func(tx *Transaction) { tx.Category = "   " }, ErrEmptyCategory},
		{"long category", func(tx *Transaction) { tx.Category = strings.Repeat("x", 101) }, ErrCategoryTooLong},
		{"zero date", func(tx *Transaction) { tx.Date = Date{} }, ErrInvalidDate},
		{"long notes", func(tx *Transaction) { tx.Notes = strings.Repeat("n", 501) }, ErrNotesTooLong},
	}
	for _, tc := range cases {
		tx := good
		tc.mut(&tx)
		if err := tx.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestBudgetValidate(t *testing.T) {
	good := Budget{Category: "Rent", Amount: Money{Cents: 120000}, Period: Monthly}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		b    Budget
		want error
	}{
		{Budget{Category: "", Amount: Money{Cents: 1}, Period: Monthly}, ErrEmptyCategory},
		{Budget{Category: "Rent", Amount: Money{Cents: 0}, Period: Monthly}, ErrInvalidAmount},
		{Budget{Category: "Rent", Amount: Money{Cents: 1}, Period: "weekly"}, ErrInvalidPeriod},
	}
	for i, tc := range bads {
		if err := tc.b.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d: expected %v, got %v", i, tc.want, err)
		}
	}
}
