package calculator

import (
	"math"

	"assistente-financeiro/domain"
)

const (
	simpleInterestFormula   = "J = C × i × t"
	compoundInterestFormula = "M = C × (1 + i)^t"
)

// CalculateSimpleInterest computes J = C·i·t with i = ratePercent/100.
func CalculateSimpleInterest(capital, ratePercent, periods float64) (domain.SimpleInterestResult, error) {
	if err := validateGrowthInputs(capital, ratePercent, periods); err != nil {
		return domain.SimpleInterestResult{}, err
	}

	interest := capital * (ratePercent / 100) * periods
	finalAmount := capital + interest
	if err := requireFiniteResult("montante", interest, finalAmount); err != nil {
		return domain.SimpleInterestResult{}, err
	}

	return domain.SimpleInterestResult{
		Capital:     capital,
		RatePercent: ratePercent,
		Periods:     periods,
		Interest:    round2(interest),
		FinalAmount: round2(finalAmount),
		Formula:     simpleInterestFormula,
	}, nil
}

// CalculateCompoundInterest computes M = C·(1+i)^t with i = ratePercent/100.
func CalculateCompoundInterest(capital, ratePercent, periods float64) (domain.CompoundInterestResult, error) {
	if err := validateGrowthInputs(capital, ratePercent, periods); err != nil {
		return domain.CompoundInterestResult{}, err
	}

	finalAmount := compound(capital, ratePercent, periods)
	interest := finalAmount - capital

	var rentability float64
	if capital > 0 {
		rentability = interest / capital * 100
	}
	if err := requireFiniteResult("montante", finalAmount, interest, rentability); err != nil {
		return domain.CompoundInterestResult{}, err
	}

	return domain.CompoundInterestResult{
		Capital:     capital,
		RatePercent: ratePercent,
		Periods:     periods,
		Interest:    round2(interest),
		FinalAmount: round2(finalAmount),
		Rentability: round2(rentability),
		Formula:     compoundInterestFormula,
	}, nil
}

func compound(capital, ratePercent, periods float64) float64 {
	return capital * math.Pow(1+ratePercent/100, periods)
}

func validateGrowthInputs(capital, ratePercent, periods float64) error {
	if err := requireNonNegative("capital", capital); err != nil {
		return err
	}
	if err := requireRate("taxa", ratePercent); err != nil {
		return err
	}
	return requireNonNegative("tempo", periods)
}
