package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistente-financeiro/domain"
)

func TestCalculateInflationImpact(t *testing.T) {
	impact, err := CalculateInflationImpact(10000, 4, 10)
	require.NoError(t, err)

	assert.Equal(t, 6755.64, impact.FutureValue)
	assert.Equal(t, 3244.36, impact.PurchasingPowerLoss)
	assert.Equal(t, 32.44, impact.LossPercent)
}

func TestCalculateInflationImpact_ZeroInflation(t *testing.T) {
	impact, err := CalculateInflationImpact(500, 0, 3)
	require.NoError(t, err)

	assert.Equal(t, 500.0, impact.FutureValue)
	assert.Equal(t, 0.0, impact.PurchasingPowerLoss)
}

func TestCalculateDoublingTime(t *testing.T) {
	doubling, err := CalculateDoublingTime(8)
	require.NoError(t, err)

	assert.Equal(t, 9.0, doubling.YearsToDouble)
	assert.Equal(t, 108.0, doubling.MonthsToDouble)

	_, err = CalculateDoublingTime(0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCalculateRetirementPlan(t *testing.T) {
	plan, err := CalculateRetirementPlan(30, 60, 5000, DefaultRetirementReturnRate)
	require.NoError(t, err)

	assert.Equal(t, 30, plan.YearsToRetirement)
	assert.Equal(t, 1500000.0, plan.RequiredCapital)
	assert.Equal(t, 663.57, plan.RequiredMonthlyContribution)
	assert.Equal(t, 10.0, plan.AnnualReturnRate)
}

func TestCalculateRetirementPlan_CapitalIgnoresReturnRate(t *testing.T) {
	low, err := CalculateRetirementPlan(40, 65, 3000, 4)
	require.NoError(t, err)
	high, err := CalculateRetirementPlan(40, 65, 3000, 12)
	require.NoError(t, err)

	assert.Equal(t, low.RequiredCapital, high.RequiredCapital)
	assert.Greater(t, low.RequiredMonthlyContribution, high.RequiredMonthlyContribution)
}

func TestCalculateRetirementPlan_ZeroReturn(t *testing.T) {
	plan, err := CalculateRetirementPlan(50, 60, 1000, 0)
	require.NoError(t, err)

	assert.Equal(t, 300000.0, plan.RequiredCapital)
	assert.Equal(t, 2500.0, plan.RequiredMonthlyContribution)
}

func TestCalculateRetirementPlan_InvalidAges(t *testing.T) {
	_, err := CalculateRetirementPlan(60, 60, 1000, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = CalculateRetirementPlan(-1, 60, 1000, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
