// Package report renders simulation results for people: CSV for spreadsheets
// and Markdown for terminals.
package report

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the ISO code every amount is displayed in.
const Currency = money.BRL

// maxMinor bounds the minor-unit amounts go-money can hold in an int64.
var maxMinor = decimal.NewFromInt(math.MaxInt64)

// Money formats amount in Currency, rounded to the currency's minor unit.
// Amounts too large for go-money are laid out from the decimal itself using
// the same currency template and separators.
func Money(amount float64) string {
	cur := money.GetCurrency(Currency)
	minor := decimal.NewFromFloat(amount).Shift(int32(cur.Fraction)).Round(0)
	if minor.Abs().LessThan(maxMinor) {
		return money.New(minor.IntPart(), Currency).Display()
	}
	return display(cur, minor)
}

// display mirrors go-money's formatter for minor-unit amounts of any size.
func display(cur *money.Currency, minor decimal.Decimal) string {
	digits := minor.Abs().String()
	if len(digits) <= cur.Fraction {
		digits = strings.Repeat("0", cur.Fraction-len(digits)+1) + digits
	}

	whole, frac := digits[:len(digits)-cur.Fraction], digits[len(digits)-cur.Fraction:]
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(cur.Thousand)
		}
		b.WriteRune(r)
	}
	if cur.Fraction > 0 {
		b.WriteString(cur.Decimal)
		b.WriteString(frac)
	}

	out := strings.Replace(cur.Template, "1", b.String(), 1)
	out = strings.Replace(out, "$", cur.Grapheme, 1)
	if minor.IsNegative() {
		out = "-" + out
	}
	return out
}

// Percent formats a percentage with two decimals.
func Percent(p float64) string {
	return decimal.NewFromFloat(p).StringFixed(2) + "%"
}

// fixed formats a plain amount for machine consumption.
func fixed(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
