// Package format renders amounts for people.
package format

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency formats v as US dollars, e.g. "$15,000.00" or "-$12.50".
func Currency(v decimal.Decimal) string {
	rounded := v.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	abs := rounded.Abs()
	whole := abs.Truncate(0)
	cents := abs.Sub(whole).Shift(2).IntPart()
	return fmt.Sprintf("%s$%s.%02d", sign, printer.Sprintf("%d", whole.IntPart()), cents)
}

// Percentage formats a ratio with two decimals, 0.1234 -> "12.34%".
func Percentage(ratio decimal.Decimal) string {
	return ratio.Shift(2).StringFixed(2) + "%"
}
