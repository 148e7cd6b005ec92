// Package valueobject holds small immutable values shared by modules.
package valueobject

import (
	"strconv"
	"strings"
)

// Money is an amount in whole currency units (the catalog lists prices
// without cents) plus an ISO 4217 code.
type Money struct {
	Amount   int64
	Currency string
}

// Format renders grouped thousands, e.g. "IDR 250.000.000" or "USD 25,000".
// Rupiah uses dots as the group separator, everything else commas.
func (m Money) Format() string {
	sep := ","
	if strings.EqualFold(m.Currency, "IDR") {
		sep = "."
	}

	neg := m.Amount < 0
	digits := strconv.FormatInt(m.Amount, 10)
	if neg {
		digits = digits[1:]
	}

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteString(sep)
		}
		b.WriteRune(r)
	}

	out := b.String()
	if neg {
		out = "-" + out
	}
	if m.Currency == "" {
		return out
	}
	return strings.ToUpper(m.Currency) + " " + out
}

// Decimal is the plain amount string used by schema.org offers.
func (m Money) Decimal() string {
	return strconv.FormatInt(m.Amount, 10)
}
