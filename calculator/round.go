package calculator

import (
	"math"

	"github.com/shopspring/decimal"

	"assistente-financeiro/domain"
)

// round2 rounds half away from zero to two decimals. Non-finite values pass
// through unchanged; decimal cannot represent them.
func round2(v float64) float64 {
	if !finite(v) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func requireFinite(field string, v float64) error {
	if !finite(v) {
		return domain.InvalidInput(field, "deve ser numérico")
	}
	return nil
}

// requireFiniteResult rejects a formula output that overflowed to ±Inf or
// collapsed to NaN.
func requireFiniteResult(field string, values ...float64) error {
	for _, v := range values {
		if !finite(v) {
			return domain.InvalidInput(field, "resultado excede o limite numérico")
		}
	}
	return nil
}

func requireNonNegative(field string, v float64) error {
	if err := requireFinite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return domain.InvalidInput(field, "não pode ser negativo")
	}
	return nil
}

// requireRate accepts any finite percentage above -100%; at -100% the growth
// factor (1+r) collapses to zero.
func requireRate(field string, ratePercent float64) error {
	if err := requireFinite(field, ratePercent); err != nil {
		return err
	}
	if ratePercent <= -100 {
		return domain.InvalidInput(field, "deve ser maior que -100%")
	}
	return nil
}
