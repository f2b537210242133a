// internal/calc/format.go
package calc

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usd = message.NewPrinter(language.AmericanEnglish)

// FormatUSD renders a whole-dollar amount with grouping, e.g. "$212,500".
// Fractions are rounded half away from zero first, matching how amounts are
// shown to borrowers.
func FormatUSD(amount float64) string {
	rounded := int64(amount + 0.5)
	if amount < 0 {
		rounded = int64(amount - 0.5)
		return usd.Sprintf("-$%d", -rounded)
	}
	return usd.Sprintf("$%d", rounded)
}

// FormatPercent renders a ratio already expressed in percent with one
// decimal place, e.g. "50.0%".
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}
