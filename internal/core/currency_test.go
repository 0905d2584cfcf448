package core

import "testing"

func TestFormatCents(t *testing.T) {
	cases := []struct {
		cents int64
		code  Currency
		want  string
	}{
		{123456, USD, "$1,234.56"},
		{123456, EUR, "1.234,56 €"},
		{123456, BRL, "R$ 1.234,56"},
		{5, USD, "$0.05"},
		{100000000, USD, "$1,000,000.00"},
		{-9950, USD, "-$99.50"},
		{-9950, EUR, "-99,50 €"},
		{-9950, BRL, "-R$ 99,50"},
		{0, USD, "$0.00"},
		{123456, Currency("GBP"), "$1,234.56"}, // unknown code falls back to USD
	}
	for _, tc := range cases {
		if got := FormatCents(tc.cents, tc.code); got != tc.want {
			t.Fatalf("FormatCents(%d, %s) = %q, want %q", tc.cents, tc.code, got, tc.want)
		}
	}
}

func TestFormatCentsIsPure(t *testing.T) {
	first := FormatCents(987654321, BRL)
	for i := 0; i < 100; i++ {
		if got := FormatCents(987654321, BRL); got != first {
			t.Fatalf("output changed across calls: %q vs %q", got, first)
		}
	}
}

func TestCurrencyValid(t *testing.T) {
	for _, c := range []Currency{USD, EUR, BRL} {
		if !c.Valid() {
			t.Fatalf("%s should be valid", c)
		}
	}
	if Currency("JPY").Valid() {
		t.Fatalf("JPY is not a supported display currency")
	}
}
