package calculator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistente-financeiro/domain"
)

func TestCalculateFinancing_ReferenceValues(t *testing.T) {
	result, err := CalculateFinancing(1000, 5, 12)
	require.NoError(t, err)

	assert.Equal(t, 85.61, result.InstallmentAmount)
	assert.Equal(t, 1027.32, result.TotalPaid)
	assert.Equal(t, 27.32, result.TotalInterest)
	assert.Equal(t, 12, result.InstallmentCount)
}

func TestCalculateFinancing_TotalsFollowInstallment(t *testing.T) {
	result, err := CalculateFinancing(100000, 18, 60)
	require.NoError(t, err)

	assert.Equal(t, round2(result.InstallmentAmount*60), result.TotalPaid)
	assert.Equal(t, round2(result.TotalPaid-100000), result.TotalInterest)
}

func TestCalculateFinancing_ZeroRate(t *testing.T) {
	result, err := CalculateFinancing(1200, 0, 12)
	require.NoError(t, err)

	assert.Equal(t, 100.0, result.InstallmentAmount)
	assert.Equal(t, 1200.0, result.TotalPaid)
	assert.Equal(t, 0.0, result.TotalInterest)
}

func TestCalculateFinancing_InvalidInstallments(t *testing.T) {
	_, err := CalculateFinancing(1000, 5, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
