package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistente-financeiro/domain"
)

func TestBuildAmortizationSchedule_SAC(t *testing.T) {
	schedule, err := BuildAmortizationSchedule(120000, 12, 10, domain.SAC)
	require.NoError(t, err)

	assert.Equal(t, 120, schedule.TotalMonths)
	assert.Equal(t, 2200.0, schedule.FirstPayment)
	assert.Equal(t, 1010.0, schedule.LastPayment)
	assert.Equal(t, 72600.0, schedule.TotalInterest)
	assert.Equal(t, 192600.0, schedule.TotalPaid)

	require.Len(t, schedule.Installments, 4)
	assert.Equal(t, []int{1, 2, 3, 120}, installmentNumbers(schedule.Installments))
	assert.Equal(t, 0.0, schedule.Installments[3].RemainingBalance)
	assert.Equal(t, 1000.0, schedule.Installments[0].Amortization)
}

func TestBuildAmortizationSchedule_PRICE(t *testing.T) {
	schedule, err := BuildAmortizationSchedule(120000, 12, 10, domain.PRICE)
	require.NoError(t, err)

	assert.Equal(t, 1721.65, schedule.FirstPayment)
	assert.Equal(t, 1721.65, schedule.LastPayment)
	assert.Equal(t, 86598.17, schedule.TotalInterest)
	assert.Equal(t, 0.0, schedule.Installments[3].RemainingBalance)
}

func TestBuildAmortizationSchedule_ShortTermListsEveryRow(t *testing.T) {
	schedule, err := BuildAmortizationSchedule(1200, 6, 1, domain.PRICE)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 12}, installmentNumbers(schedule.Installments))
}

func TestBuildAmortizationSchedule_UnknownConvention(t *testing.T) {
	_, err := BuildAmortizationSchedule(1000, 12, 1, domain.AmortizationConvention("GERMAN"))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAmortizationRows_TermCap(t *testing.T) {
	rows, err := AmortizationRows(1000, 12, maxTermYears, domain.PRICE)
	require.NoError(t, err)
	assert.Len(t, rows, maxTermYears*12)

	for _, years := range []int{maxTermYears + 1, 2_000_000} {
		_, err := AmortizationRows(1000, 12, years, domain.SAC)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Contains(t, err.Error(), "excede o máximo de 50 anos")
	}
}

func TestAmortizationRows_Invariants(t *testing.T) {
	cases := []struct {
		principal float64
		rate      float64
		years     int
	}{
		{120000, 12, 10},
		{350000, 9.5, 30},
		{5000, 0, 2},
		{80000, 24, 5},
	}

	for _, c := range cases {
		for _, convention := range []domain.AmortizationConvention{domain.SAC, domain.PRICE} {
			rows, err := AmortizationRows(c.principal, c.rate, c.years, convention)
			require.NoError(t, err)
			require.Len(t, rows, c.years*12)

			var amortized float64
			for i, row := range rows {
				amortized += row.Amortization
				assert.GreaterOrEqual(t, row.RemainingBalance, 0.0)
				if i == 0 {
					continue
				}
				prev := rows[i-1]
				assert.LessOrEqual(t, row.RemainingBalance, prev.RemainingBalance)

				switch convention {
				case domain.PRICE:
					assert.InDelta(t, prev.Payment, row.Payment, 0.01)
					if c.rate > 0 {
						assert.Greater(t, row.Amortization, prev.Amortization)
						assert.Less(t, row.Interest, prev.Interest)
					}
				case domain.SAC:
					assert.LessOrEqual(t, row.Payment, prev.Payment)
				}
			}

			assert.InDelta(t, c.principal, amortized, 0.01, "%s %+v", convention, c)
			assert.InDelta(t, 0, rows[len(rows)-1].RemainingBalance, 0.01)
		}
	}
}

func TestAmortizationRows_BalanceNeverNegative(t *testing.T) {
	rows, err := AmortizationRows(1e6, 33.3, 35, domain.PRICE)
	require.NoError(t, err)

	for _, row := range rows {
		assert.GreaterOrEqual(t, row.RemainingBalance, 0.0)
	}
	assert.InDelta(t, 0, rows[len(rows)-1].RemainingBalance, 0.01)
}

func installmentNumbers(rows []domain.Installment) []int {
	numbers := make([]int, 0, len(rows))
	for _, row := range rows {
		numbers = append(numbers, row.Number)
	}
	return numbers
}
