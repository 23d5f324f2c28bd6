package calculator

import (
	"math"

	"assistente-financeiro/domain"
)

const (
	// DefaultRetirementReturnRate is the annual return assumed when the caller
	// does not provide one.
	DefaultRetirementReturnRate = 10.0

	// safeWithdrawalRate sizes the retirement capital. It is fixed at 4% a year
	// and independent of the expected return.
	safeWithdrawalRate = 0.04
)

// CalculateInflationImpact deflates currentValue by annualInflationPercent
// compounded over years and reports the purchasing power lost.
func CalculateInflationImpact(currentValue, annualInflationPercent, years float64) (domain.InflationImpact, error) {
	if err := requireNonNegative("valor", currentValue); err != nil {
		return domain.InflationImpact{}, err
	}
	if err := requireRate("taxa", annualInflationPercent); err != nil {
		return domain.InflationImpact{}, err
	}
	if err := requireNonNegative("anos", years); err != nil {
		return domain.InflationImpact{}, err
	}

	futureValue := currentValue / math.Pow(1+annualInflationPercent/100, years)
	loss := currentValue - futureValue

	var lossPercent float64
	if currentValue > 0 {
		lossPercent = loss / currentValue * 100
	}
	if err := requireFiniteResult("valor_futuro", futureValue, loss, lossPercent); err != nil {
		return domain.InflationImpact{}, err
	}

	return domain.InflationImpact{
		CurrentValue:        currentValue,
		AnnualInflationRate: annualInflationPercent,
		Years:               years,
		FutureValue:         round2(futureValue),
		PurchasingPowerLoss: round2(loss),
		LossPercent:         round2(lossPercent),
	}, nil
}

// CalculateDoublingTime applies the rule of 72. It is a heuristic, not a solve
// of (1+r)^t = 2, and drifts from the exact answer at high rates.
func CalculateDoublingTime(annualRatePercent float64) (domain.DoublingTime, error) {
	if err := requireFinite("taxa", annualRatePercent); err != nil {
		return domain.DoublingTime{}, err
	}
	if annualRatePercent <= 0 {
		return domain.DoublingTime{}, domain.InvalidInput("taxa", "deve ser maior que zero")
	}

	years := 72 / annualRatePercent
	if err := requireFiniteResult("anos", years, years*12); err != nil {
		return domain.DoublingTime{}, err
	}

	return domain.DoublingTime{
		AnnualRate:     annualRatePercent,
		YearsToDouble:  round2(years),
		MonthsToDouble: round2(years * 12),
	}, nil
}

// CalculateRetirementPlan sizes the capital that sustains monthlyNeed under the
// 4% withdrawal rule and the monthly deposit that reaches it by retirementAge.
func CalculateRetirementPlan(currentAge, retirementAge int, monthlyNeed, annualReturnPercent float64) (domain.RetirementPlan, error) {
	if currentAge < 0 {
		return domain.RetirementPlan{}, domain.InvalidInput("idade_atual", "não pode ser negativa")
	}
	if retirementAge <= currentAge {
		return domain.RetirementPlan{}, domain.InvalidInput("idade_aposentadoria", "deve ser maior que a idade atual")
	}
	if err := requireNonNegative("gasto_mensal", monthlyNeed); err != nil {
		return domain.RetirementPlan{}, err
	}
	if err := requireRate("taxa", annualReturnPercent); err != nil {
		return domain.RetirementPlan{}, err
	}

	years := retirementAge - currentAge
	months := float64(years * 12)
	monthlyRate := annualReturnPercent / 100 / 12
	requiredCapital := monthlyNeed * 12 / safeWithdrawalRate

	// future value of an annuity: FV = PMT × ((1+i)^n − 1) / i
	contribution := requiredCapital / months
	if monthlyRate != 0 {
		contribution = requiredCapital / ((math.Pow(1+monthlyRate, months) - 1) / monthlyRate)
	}
	if err := requireFiniteResult("capital_necessario", requiredCapital, contribution); err != nil {
		return domain.RetirementPlan{}, err
	}

	return domain.RetirementPlan{
		CurrentAge:                  currentAge,
		RetirementAge:               retirementAge,
		YearsToRetirement:           years,
		MonthlyNeed:                 monthlyNeed,
		RequiredCapital:             round2(requiredCapital),
		RequiredMonthlyContribution: round2(contribution),
		AnnualReturnRate:            annualReturnPercent,
	}, nil
}
