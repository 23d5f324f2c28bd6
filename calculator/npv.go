package calculator

import (
	"math"

	"assistente-financeiro/domain"
)

const (
	irrInitialGuess   = 0.10
	irrStep           = 0.001
	irrTolerance      = 0.01
	irrMaxIterations  = 100
	maxCashFlowPeriod = 600
)

// CalculateNPV discounts cashFlows (periods 1..N) at discountRatePercent and
// subtracts the initial investment. The estimated IRR comes from EstimateIRR.
func CalculateNPV(initialInvestment float64, cashFlows []float64, discountRatePercent float64) (domain.NPVResult, error) {
	if err := validateCashFlows(initialInvestment, cashFlows); err != nil {
		return domain.NPVResult{}, err
	}
	if err := requireRate("taxa", discountRatePercent); err != nil {
		return domain.NPVResult{}, err
	}

	npv := netPresentValue(initialInvestment, cashFlows, discountRatePercent/100)
	if err := requireFiniteResult("vpl", npv); err != nil {
		return domain.NPVResult{}, err
	}
	irr, err := EstimateIRR(initialInvestment, cashFlows)
	if err != nil {
		return domain.NPVResult{}, err
	}

	flows := make([]float64, len(cashFlows))
	copy(flows, cashFlows)

	return domain.NPVResult{
		InitialInvestment: initialInvestment,
		CashFlows:         flows,
		DiscountRate:      discountRatePercent,
		NPV:               round2(npv),
		IsViable:          npv > 0,
		EstimatedIRR:      irr.Rate,
		IRRConverged:      irr.Converged,
	}, nil
}

// EstimateIRR searches for the rate where NPV crosses zero with a fixed-step
// hill-climb: start at 10%, move 0.1 p.p. toward the sign that shrinks |NPV|,
// stop when |NPV| < 0.01 or after 100 iterations.
//
// The search moves at most ±10 p.p. from the initial guess, so it does not
// converge for every cash-flow shape; Converged reports whether it did.
func EstimateIRR(initialInvestment float64, cashFlows []float64) (domain.IRRResult, error) {
	if err := validateCashFlows(initialInvestment, cashFlows); err != nil {
		return domain.IRRResult{}, err
	}

	rate := irrInitialGuess
	iterations := 0
	for iterations < irrMaxIterations {
		npv := netPresentValue(initialInvestment, cashFlows, rate)
		if math.Abs(npv) < irrTolerance {
			return domain.IRRResult{Rate: round2(rate * 100), Iterations: iterations, Converged: true}, nil
		}
		if npv > 0 {
			rate += irrStep
		} else {
			rate -= irrStep
		}
		iterations++
	}

	return domain.IRRResult{Rate: round2(rate * 100), Iterations: iterations, Converged: false}, nil
}

func netPresentValue(initialInvestment float64, cashFlows []float64, rate float64) float64 {
	npv := -initialInvestment
	for i, flow := range cashFlows {
		npv += flow / math.Pow(1+rate, float64(i+1))
	}
	return npv
}

func validateCashFlows(initialInvestment float64, cashFlows []float64) error {
	if err := requireFinite("investimento", initialInvestment); err != nil {
		return err
	}
	if len(cashFlows) == 0 {
		return domain.InvalidInput("fluxos", "deve conter ao menos um fluxo de caixa")
	}
	if len(cashFlows) > maxCashFlowPeriod {
		return domain.InvalidInput("fluxos", "excede o máximo de 600 períodos")
	}
	for _, flow := range cashFlows {
		if err := requireFinite("fluxos", flow); err != nil {
			return err
		}
	}
	return nil
}
