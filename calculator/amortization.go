package calculator

import (
	"fmt"
	"math"

	"assistente-financeiro/domain"
)

// leadingInstallments is how many opening rows a schedule summary lists before
// jumping to the final installment.
const leadingInstallments = 3

// maxTermYears bounds the schedule at 600 monthly rows.
const maxTermYears = 50

// AmortizationRows computes every monthly installment of a SAC or PRICE loan.
// Values are unrounded; remaining balances are clamped at zero.
func AmortizationRows(principal, annualRatePercent float64, termYears int, convention domain.AmortizationConvention) ([]domain.Installment, error) {
	if err := requireNonNegative("valor", principal); err != nil {
		return nil, err
	}
	if err := requireRate("taxa", annualRatePercent); err != nil {
		return nil, err
	}
	if termYears < 1 {
		return nil, domain.InvalidInput("anos", "deve ser ao menos 1")
	}
	if termYears > maxTermYears {
		return nil, domain.InvalidInput("anos", fmt.Sprintf("excede o máximo de %d anos", maxTermYears))
	}

	monthlyRate := annualRatePercent / 100 / 12
	months := termYears * 12
	rows := make([]domain.Installment, 0, months)
	balance := principal

	switch convention {
	case domain.SAC:
		amortization := principal / float64(months)
		for i := 1; i <= months; i++ {
			interest := balance * monthlyRate
			balance -= amortization
			rows = append(rows, domain.Installment{
				Number:           i,
				Payment:          amortization + interest,
				Amortization:     amortization,
				Interest:         interest,
				RemainingBalance: math.Max(0, balance),
			})
		}
	case domain.PRICE:
		payment := annuityPayment(principal, monthlyRate, months)
		for i := 1; i <= months; i++ {
			interest := balance * monthlyRate
			amortization := payment - interest
			balance -= amortization
			rows = append(rows, domain.Installment{
				Number:           i,
				Payment:          payment,
				Amortization:     amortization,
				Interest:         interest,
				RemainingBalance: math.Max(0, balance),
			})
		}
	default:
		return nil, domain.InvalidInput("sistema", fmt.Sprintf("deve ser %s ou %s", domain.SAC, domain.PRICE))
	}

	for _, row := range rows {
		if err := requireFiniteResult("parcela", row.Payment, row.Interest, row.Amortization, row.RemainingBalance); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// BuildAmortizationSchedule runs the full schedule and reports the first three
// installments plus the last one, with totals accumulated over every period.
func BuildAmortizationSchedule(principal, annualRatePercent float64, termYears int, convention domain.AmortizationConvention) (domain.AmortizationSchedule, error) {
	rows, err := AmortizationRows(principal, annualRatePercent, termYears, convention)
	if err != nil {
		return domain.AmortizationSchedule{}, err
	}

	var totalInterest float64
	for _, row := range rows {
		totalInterest += row.Interest
	}
	if err := requireFiniteResult("total_juros", totalInterest, principal+totalInterest); err != nil {
		return domain.AmortizationSchedule{}, err
	}

	summary := make([]domain.Installment, 0, leadingInstallments+1)
	for i, row := range rows {
		if i < leadingInstallments || i == len(rows)-1 {
			summary = append(summary, roundInstallment(row))
		}
	}

	return domain.AmortizationSchedule{
		Convention:    convention,
		Principal:     principal,
		AnnualRate:    annualRatePercent,
		TermYears:     termYears,
		TotalMonths:   len(rows),
		FirstPayment:  round2(rows[0].Payment),
		LastPayment:   round2(rows[len(rows)-1].Payment),
		TotalInterest: round2(totalInterest),
		TotalPaid:     round2(principal + totalInterest),
		Installments:  summary,
	}, nil
}

func roundInstallment(row domain.Installment) domain.Installment {
	return domain.Installment{
		Number:           row.Number,
		Payment:          round2(row.Payment),
		Amortization:     round2(row.Amortization),
		Interest:         round2(row.Interest),
		RemainingBalance: round2(row.RemainingBalance),
	}
}
