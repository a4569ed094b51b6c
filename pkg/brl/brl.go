// Package brl formatea valores monetarios en formato brasileño (pt-BR).
package brl

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Number devuelve el valor con separador de miles "." y dos decimales ",".
// Ej: 1234.5 → "1.234,50".
func Number(v decimal.Decimal) string {
	return printer.Sprintf("%.2f", v.Round(2).InexactFloat64())
}

// Currency devuelve el valor con prefijo de moneda. Ej: "R$ 1.234,50".
func Currency(v decimal.Decimal) string {
	return "R$ " + Number(v)
}

// Comma devuelve el valor con dos decimales y coma decimal, sin separador de
// miles. Ej: 1234.5 → "1234,50".
func Comma(v decimal.Decimal) string {
	return strings.Replace(v.StringFixed(2), ".", ",", 1)
}
