// Package core holds the ledger domain: months and their lifecycle, the four
// transaction categories, installment plans and money handling.
package core

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Percent is a surcharge percentage, e.g. 5 for 5%.
type Percent struct {
	decimal.Decimal
}

// PercentFromString parses a percentage value such as "5" or "5.5".
// Both dot and comma decimal separators are accepted.
func PercentFromString(s string) (Percent, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Percent{}, ErrInvalidAmount
	}
	return Percent{d}, nil
}

func PercentFromFloat(f float64) Percent {
	return Percent{decimal.NewFromFloat(f)}
}

func (p Percent) IsNegative() bool {
	return p.Decimal.IsNegative()
}

func (p Percent) String() string {
	return p.Decimal.String()
}

// ParseDecimalToCents converts a decimal string to cents with half-up
// rounding on the third decimal place. Both dot (12.34) and comma (12,34)
// separators are accepted; only strictly positive values are valid.
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	var fracCents int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCents += d2
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}

// ApplySurcharge returns the amount increased by pct percent, half-up rounded
// to whole cents. The arithmetic runs on decimals so that e.g. a 5% surcharge
// on R$ 10,00 is exactly R$ 10,50.
func ApplySurcharge(amount Money, pct Percent) Money {
	base := decimal.NewFromInt(amount.Cents)
	factor := decimal.NewFromInt(1).Add(pct.Decimal.Div(decimal.NewFromInt(100)))
	final := base.Mul(factor).Round(0)
	return Money{Cents: final.IntPart()}
}

// Reais returns the value in currency units for display purposes.
// Calculations must stay in cents.
func (m Money) Reais() float64 {
	return float64(m.Cents) / 100.0
}
