package calculator

import (
	"fmt"
	"math"
	"sort"

	"assistente-financeiro/domain"
)

// CompareInvestments compounds every option and ranks them by rentability,
// best first. Ties keep the input order.
func CompareInvestments(options []domain.InvestmentOption) (domain.InvestmentComparison, error) {
	if len(options) == 0 {
		return domain.InvestmentComparison{}, domain.InvalidInput("investimentos", "deve conter ao menos uma opção")
	}

	outcomes := make([]domain.InvestmentOutcome, 0, len(options))
	for i, opt := range options {
		if opt.Principal <= 0 {
			return domain.InvestmentComparison{}, domain.InvalidInput(fmt.Sprintf("investimentos[%d].valor", i), "deve ser maior que zero")
		}
		result, err := CalculateCompoundInterest(opt.Principal, opt.RatePercent, opt.Periods)
		if err != nil {
			return domain.InvestmentComparison{}, fmt.Errorf("investimento %q: %w", opt.Name, err)
		}
		// ranked on the unrounded growth factor, which does not depend on the principal
		growth := (math.Pow(1+opt.RatePercent/100, opt.Periods) - 1) * 100
		outcomes = append(outcomes, domain.InvestmentOutcome{
			InvestmentOption: opt,
			FinalAmount:      result.FinalAmount,
			Rentability:      growth,
		})
	}

	sort.SliceStable(outcomes, func(i, j int) bool {
		return outcomes[i].Rentability > outcomes[j].Rentability
	})
	for i := range outcomes {
		outcomes[i].Rentability = round2(outcomes[i].Rentability)
	}

	return domain.InvestmentComparison{
		Investments: outcomes,
		Best:        outcomes[0],
		Worst:       outcomes[len(outcomes)-1],
	}, nil
}
