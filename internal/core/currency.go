package core

import (
	"fmt"
	"strconv"
)

// Currency selects a display currency. Amounts are stored in a single base
// unit; switching currency changes symbols and locale conventions only, no
// conversion rate is ever applied. This is a deliberate carry-over: the same
// numeric magnitude is shown under different currency symbols.
type Currency string

const (
	USD Currency = "USD" // en-US: $1,234.56
	EUR Currency = "EUR" // de-DE: 1.234,56 €
	BRL Currency = "BRL" // pt-BR: R$ 1.234,56
)

// DefaultCurrency is used when a caller supplies no or an unknown code.
const DefaultCurrency = USD

func (c Currency) Valid() bool {
	switch c {
	case USD, EUR, BRL:
		return true
	}
	return false
}

// FormatCents renders an amount in cents as a localized display string for
// the given currency code. Unknown codes fall back to USD. Pure function:
// same inputs always produce the same output.
func FormatCents(cents int64, code Currency) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	units := cents / 100
	rem := cents % 100

	var s string
	switch code {
	case EUR:
		s = groupDigits(units, '.') + "," + fmt.Sprintf("%02d", rem) + " €"
	case BRL:
		s = "R$ " + groupDigits(units, '.') + "," + fmt.Sprintf("%02d", rem)
	default:
		s = "$" + groupDigits(units, ',') + "." + fmt.Sprintf("%02d", rem)
	}
	if neg {
		return "-" + s
	}
	return s
}

// groupDigits inserts a thousands separator into a non-negative integer.
func groupDigits(n int64, sep byte) string {
	digits := strconv.FormatInt(n, 10)
	if len(digits) <= 3 {
		return digits
	}
	var out []byte
	lead := len(digits) % 3
	if lead > 0 {
		out = append(out, digits[:lead]...)
	}
	for i := lead; i < len(digits); i += 3 {
		if len(out) > 0 {
			out = append(out, sep)
		}
		out = append(out, digits[i:i+3]...)
	}
	return string(out)
}
