package calculator

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatCurrency renders v as Brazilian reais, e.g. "R$ 1.234,56".
func FormatCurrency(v float64) string {
	if !finite(v) {
		return "R$ " + nonFinite(v)
	}
	rounded := decimal.NewFromFloat(v).Round(2)
	if rounded.IsNegative() {
		return "-R$ " + brPrinter.Sprintf("%.2f", rounded.Neg().InexactFloat64())
	}
	return "R$ " + brPrinter.Sprintf("%.2f", rounded.InexactFloat64())
}

// FormatPercent renders a percentage with two decimals, e.g. "12.34%".
func FormatPercent(percent float64) string {
	if !finite(percent) {
		return nonFinite(percent) + "%"
	}
	return decimal.NewFromFloat(percent).StringFixed(2) + "%"
}

// FormatNumber renders v with pt-BR grouping and up to two decimals.
func FormatNumber(v float64) string {
	if !finite(v) {
		return nonFinite(v)
	}
	rounded := decimal.NewFromFloat(v).Round(2)
	if rounded.Equal(rounded.Truncate(0)) {
		return brPrinter.Sprintf("%d", rounded.IntPart())
	}
	return brPrinter.Sprintf("%.2f", rounded.InexactFloat64())
}

func nonFinite(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	default:
		return "indefinido"
	}
}
