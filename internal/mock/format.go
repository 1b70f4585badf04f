package mock

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders amount as US dollars, e.g. "$85,000.00".
func FormatCurrency(amount float64) string {
	if amount < 0 {
		return "-$" + usPrinter.Sprintf("%.2f", -amount)
	}
	return "$" + usPrinter.Sprintf("%.2f", amount)
}

// FormatPercentage renders value with one decimal and no grouping, e.g. "22.0%".
func FormatPercentage(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}
