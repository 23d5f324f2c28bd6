package calculator

import (
	"math"

	"assistente-financeiro/domain"
)

const financingFormula = "PMT = PV × [(i × (1+i)^n) / ((1+i)^n - 1)], i = taxa anual / 12"

// CalculateFinancing prices an amortized loan. ratePercent is the annual rate;
// installments are monthly, so the periodic rate is ratePercent/100/12.
//
// The installment is rounded to cents before the totals are derived from it,
// which keeps totalPaid = installment × n exact.
func CalculateFinancing(principal, ratePercent float64, installments int) (domain.FinancingResult, error) {
	if err := requireNonNegative("valor", principal); err != nil {
		return domain.FinancingResult{}, err
	}
	if err := requireRate("taxa", ratePercent); err != nil {
		return domain.FinancingResult{}, err
	}
	if installments < 1 {
		return domain.FinancingResult{}, domain.InvalidInput("parcelas", "deve ser ao menos 1")
	}

	payment := annuityPayment(principal, ratePercent/100/12, installments)
	if err := requireFiniteResult("parcela", payment, payment*float64(installments)); err != nil {
		return domain.FinancingResult{}, err
	}

	installment := round2(payment)
	totalPaid := round2(installment * float64(installments))

	return domain.FinancingResult{
		Principal:         principal,
		RatePercent:       ratePercent,
		InstallmentCount:  installments,
		InstallmentAmount: installment,
		TotalPaid:         totalPaid,
		TotalInterest:     round2(totalPaid - principal),
		Formula:           financingFormula,
	}, nil
}

// annuityPayment is the constant payment that amortizes principal over n
// periods at periodic rate r. A zero rate degenerates to principal/n.
func annuityPayment(principal, r float64, n int) float64 {
	if r == 0 {
		return principal / float64(n)
	}
	growth := math.Pow(1+r, float64(n))
	return principal * (r * growth) / (growth - 1)
}
