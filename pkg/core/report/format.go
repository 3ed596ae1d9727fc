package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func newPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

// FormatAmount renders a currency amount with thousands separators and two
// decimals, e.g. 1234567.891 → "1,234,567.89".
func FormatAmount(amount float64) string {
	return newPrinter().Sprintf("%.2f", amount)
}

// FormatNumber renders a measurement with thousands separators.
func FormatNumber(value float64, decimals int) string {
	return newPrinter().Sprintf("%.*f", decimals, value)
}

// FormatPercent renders a percentage with two decimals.
func FormatPercent(value float64) string {
	return newPrinter().Sprintf("%.2f%%", value)
}
