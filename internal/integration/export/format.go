// Package export renders orders and daily summaries as CSV and PDF documents.
package export

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter formats money and counts with locale-aware digit grouping.
type Formatter struct {
	printer  *message.Printer
	currency string
}

// NewFormatter creates a formatter for the given BCP 47 locale tag.
// Unknown tags fall back to English.
func NewFormatter(locale, currencySymbol string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{
		printer:  message.NewPrinter(tag),
		currency: currencySymbol,
	}
}

// Money formats an amount with two decimals, e.g. "$1,234.50".
func (f *Formatter) Money(d decimal.Decimal) string {
	amount := d.Round(2).InexactFloat64()
	if amount < 0 {
		return "-" + f.currency + f.printer.Sprintf("%.2f", -amount)
	}
	return f.currency + f.printer.Sprintf("%.2f", amount)
}

// Count formats an integer with digit grouping.
func (f *Formatter) Count(n int) string {
	return f.printer.Sprintf("%d", n)
}
