package service

import (
	"sort"

	"assistente-financeiro/calculator"
	"assistente-financeiro/domain"
)

type calculationKind struct {
	example map[string]any
	run     func(p params) (any, error)
}

var calculationKinds = map[string]calculationKind{
	"juros-simples": {
		example: map[string]any{"capital": 1000, "taxa": 5, "tempo": 12},
		run: func(p params) (any, error) {
			capital, rate, periods, err := growthParams(p)
			if err != nil {
				return nil, err
			}
			return calculator.CalculateSimpleInterest(capital, rate, periods)
		},
	},
	"juros-compostos": {
		example: map[string]any{"capital": 1000, "taxa": 1, "tempo": 12},
		run: func(p params) (any, error) {
			capital, rate, periods, err := growthParams(p)
			if err != nil {
				return nil, err
			}
			return calculator.CalculateCompoundInterest(capital, rate, periods)
		},
	},
	"financiamento": {
		example: map[string]any{"valor": 100000, "taxa": 12, "parcelas": 60},
		run: func(p params) (any, error) {
			principal, err := p.number("valor")
			if err != nil {
				return nil, err
			}
			rate, err := p.number("taxa")
			if err != nil {
				return nil, err
			}
			installments, err := p.integer("parcelas")
			if err != nil {
				return nil, err
			}
			return calculator.CalculateFinancing(principal, rate, installments)
		},
	},
	"sac": {
		example: map[string]any{"valor": 120000, "taxa": 12, "anos": 10},
		run: func(p params) (any, error) {
			return amortization(p, domain.SAC)
		},
	},
	"price": {
		example: map[string]any{"valor": 120000, "taxa": 12, "anos": 10},
		run: func(p params) (any, error) {
			return amortization(p, domain.PRICE)
		},
	},
	"inflacao": {
		example: map[string]any{"valor": 10000, "taxa": 4, "anos": 10},
		run: func(p params) (any, error) {
			value, err := p.number("valor")
			if err != nil {
				return nil, err
			}
			rate, err := p.number("taxa")
			if err != nil {
				return nil, err
			}
			years, err := p.number("anos")
			if err != nil {
				return nil, err
			}
			return calculator.CalculateInflationImpact(value, rate, years)
		},
	},
	"regra-72": {
		example: map[string]any{"taxa": 8},
		run: func(p params) (any, error) {
			rate, err := p.number("taxa")
			if err != nil {
				return nil, err
			}
			return calculator.CalculateDoublingTime(rate)
		},
	},
	"aposentadoria": {
		example: map[string]any{"idade_atual": 30, "idade_aposentadoria": 60, "gasto_mensal": 5000, "taxa": 10},
		run: func(p params) (any, error) {
			current, err := p.integer("idade_atual")
			if err != nil {
				return nil, err
			}
			retirement, err := p.integer("idade_aposentadoria")
			if err != nil {
				return nil, err
			}
			need, err := p.number("gasto_mensal")
			if err != nil {
				return nil, err
			}
			rate, err := p.optionalNumber("taxa", calculator.DefaultRetirementReturnRate)
			if err != nil {
				return nil, err
			}
			return calculator.CalculateRetirementPlan(current, retirement, need, rate)
		},
	},
	"vpl": {
		example: map[string]any{"investimento": 10000, "fluxos": []float64{3000, 4000, 5000}, "taxa": 10},
		run: func(p params) (any, error) {
			initial, err := p.number("investimento")
			if err != nil {
				return nil, err
			}
			flows, err := p.numbers("fluxos")
			if err != nil {
				return nil, err
			}
			rate, err := p.number("taxa")
			if err != nil {
				return nil, err
			}
			return calculator.CalculateNPV(initial, flows, rate)
		},
	},
}

func growthParams(p params) (capital, rate, periods float64, err error) {
	if capital, err = p.number("capital"); err != nil {
		return
	}
	if rate, err = p.number("taxa"); err != nil {
		return
	}
	periods, err = p.number("tempo")
	return
}

func amortization(p params, convention domain.AmortizationConvention) (any, error) {
	principal, err := p.number("valor")
	if err != nil {
		return nil, err
	}
	rate, err := p.number("taxa")
	if err != nil {
		return nil, err
	}
	years, err := p.integer("anos")
	if err != nil {
		return nil, err
	}
	return calculator.BuildAmortizationSchedule(principal, rate, years, convention)
}

// SupportedKinds lists the calculation kinds in a stable order.
func SupportedKinds() []string {
	kinds := make([]string, 0, len(calculationKinds))
	for k := range calculationKinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// KindExample returns a sample body for the kind, or nil if it is unknown.
func KindExample(kind string) map[string]any {
	k, ok := calculationKinds[kind]
	if !ok {
		return nil
	}
	return k.example
}
