package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistente-financeiro/domain"
)

func TestResultOverflowIsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		run  func() error
	}{
		{"compound interest", func() error {
			_, err := CalculateCompoundInterest(1000, 100, 2000)
			return err
		}},
		{"simple interest", func() error {
			_, err := CalculateSimpleInterest(1e308, 100, 100)
			return err
		}},
		{"doubling time", func() error {
			_, err := CalculateDoublingTime(1e-320)
			return err
		}},
		{"inflation", func() error {
			_, err := CalculateInflationImpact(1000, -99.9, 200)
			return err
		}},
		{"financing", func() error {
			_, err := CalculateFinancing(1.7e308, 1200, 1)
			return err
		}},
		{"retirement", func() error {
			_, err := CalculateRetirementPlan(30, 60, 1e307, 10)
			return err
		}},
		{"npv", func() error {
			_, err := CalculateNPV(0, []float64{1e308, 1e308}, 0)
			return err
		}},
		{"amortization", func() error {
			_, err := BuildAmortizationSchedule(1e308, 1e300, 1, domain.SAC)
			return err
		}},
		{"comparison", func() error {
			_, err := CompareInvestments([]domain.InvestmentOption{{Name: "a", Principal: 1000, RatePercent: 100, Periods: 2000}})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() { err = tt.run() })
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), "resultado excede o limite numérico")
		})
	}
}

func TestFormatters_NonFinite(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.Equal(t, "R$ ∞", FormatCurrency(math.Inf(1)))
		assert.Equal(t, "-∞", FormatNumber(math.Inf(-1)))
		assert.Equal(t, "indefinido%", FormatPercent(math.NaN()))
	})
}

func TestRound2_NonFinitePassesThrough(t *testing.T) {
	assert.True(t, math.IsInf(round2(math.Inf(1)), 1))
	assert.True(t, math.IsNaN(round2(math.NaN())))
}
