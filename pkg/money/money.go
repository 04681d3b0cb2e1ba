// Package money holds minor-unit arithmetic and display helpers. Amounts are
// int64 cents throughout the service.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Percentage returns percent% of cents, rounded half up to the nearest cent.
func Percentage(cents int64, percent int) int64 {
	return decimal.NewFromInt(cents).
		Mul(decimal.NewFromInt(int64(percent))).
		Div(hundred).
		Round(0).
		IntPart()
}

// Deposit is the 50% deposit owed on a total, rounded half up.
func Deposit(totalCents int64) int64 {
	return Percentage(totalCents, 50)
}

// Format renders cents as a dollar string with thousands separators, e.g.
// 220000 -> "$2,200.00".
func Format(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	whole := decimal.NewFromInt(cents).Div(hundred).StringFixed(2)
	intPart, frac, _ := strings.Cut(whole, ".")
	return fmt.Sprintf("%s$%s.%s", sign, groupThousands(intPart), frac)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
