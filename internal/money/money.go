// Package money formats prices in Colombian pesos.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// es-CO groups thousands with ".".
var printer = message.NewPrinter(language.MustParse("es-CO"))

// FormatPrice renders d as whole pesos with "." grouping: 350000 -> "$350.000 COP".
func FormatPrice(d decimal.Decimal) string {
	return FormatPriceShort(d) + " COP"
}

// FormatPriceShort is FormatPrice without the currency suffix.
func FormatPriceShort(d decimal.Decimal) string {
	n := d.RoundBank(0).IntPart()
	if n < 0 {
		return "-$" + printer.Sprintf("%d", -n)
	}
	return "$" + printer.Sprintf("%d", n)
}
