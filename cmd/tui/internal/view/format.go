package view

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatAmount renders an amount as US dollars with thousands separators.
func FormatAmount(d decimal.Decimal) string {
	return printer.Sprintf("$%.2f", d.Round(2).InexactFloat64())
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}

	return t.Format("Jan 2, 2006")
}
