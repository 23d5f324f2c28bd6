package domain

type SimpleInterestResult struct {
	Capital     float64 `json:"capital"`
	RatePercent float64 `json:"taxa"`
	Periods     float64 `json:"tempo"`
	Interest    float64 `json:"juros"`
	FinalAmount float64 `json:"montante"`
	Formula     string  `json:"formula"`
}

type CompoundInterestResult struct {
	Capital     float64 `json:"capital"`
	RatePercent float64 `json:"taxa"`
	Periods     float64 `json:"tempo"`
	Interest    float64 `json:"juros"`
	FinalAmount float64 `json:"montante"`
	Rentability float64 `json:"rentabilidade"` // crescimento percentual sobre o capital
	Formula     string  `json:"formula"`
}

type FinancingResult struct {
	Principal         float64 `json:"valor_financiado"`
	RatePercent       float64 `json:"taxa_anual"`
	InstallmentCount  int     `json:"numero_parcelas"`
	InstallmentAmount float64 `json:"valor_prestacao"`
	TotalPaid         float64 `json:"total_pago"`
	TotalInterest     float64 `json:"total_juros"`
	Formula           string  `json:"formula"`
}

// AmortizationConvention identifica o sistema de amortização.
type AmortizationConvention string

const (
	SAC   AmortizationConvention = "SAC"
	PRICE AmortizationConvention = "PRICE"
)

type Installment struct {
	Number           int     `json:"numero"`
	Payment          float64 `json:"prestacao"`
	Amortization     float64 `json:"amortizacao"`
	Interest         float64 `json:"juros"`
	RemainingBalance float64 `json:"saldo_devedor"`
}

// AmortizationSchedule summarizes a loan: only the first three installments and
// the last one are listed, totals cover every period.
type AmortizationSchedule struct {
	Convention    AmortizationConvention `json:"sistema"`
	Principal     float64                `json:"valor_financiado"`
	AnnualRate    float64                `json:"taxa_anual"`
	TermYears     int                    `json:"prazo_anos"`
	TotalMonths   int                    `json:"prazo_meses"`
	FirstPayment  float64                `json:"primeira_prestacao"`
	LastPayment   float64                `json:"ultima_prestacao"`
	TotalInterest float64                `json:"total_juros"`
	TotalPaid     float64                `json:"total_pago"`
	Installments  []Installment          `json:"parcelas"`
}

type RetirementPlan struct {
	CurrentAge                  int     `json:"idade_atual"`
	RetirementAge               int     `json:"idade_aposentadoria"`
	YearsToRetirement           int     `json:"anos_para_aposentar"`
	MonthlyNeed                 float64 `json:"gasto_mensal"`
	RequiredCapital             float64 `json:"valor_necessario"`
	RequiredMonthlyContribution float64 `json:"valor_mensal"`
	AnnualReturnRate            float64 `json:"taxa_anual"`
}

type InflationImpact struct {
	CurrentValue        float64 `json:"valor_atual"`
	AnnualInflationRate float64 `json:"inflacao_anual"`
	Years               float64 `json:"anos"`
	FutureValue         float64 `json:"valor_futuro"`
	PurchasingPowerLoss float64 `json:"perda_poder"`
	LossPercent         float64 `json:"percentual_perda"`
}

type DoublingTime struct {
	AnnualRate     float64 `json:"taxa"`
	YearsToDouble  float64 `json:"anos_para_dobrar"`
	MonthsToDouble float64 `json:"meses_para_dobrar"`
}

type IRRResult struct {
	Rate       float64 `json:"taxa"`
	Iterations int     `json:"iteracoes"`
	Converged  bool    `json:"convergiu"`
}

type NPVResult struct {
	InitialInvestment float64   `json:"investimento_inicial"`
	CashFlows         []float64 `json:"fluxos_caixa"`
	DiscountRate      float64   `json:"taxa_desconto"`
	NPV               float64   `json:"vpl"`
	IsViable          bool      `json:"viavel"`
	EstimatedIRR      float64   `json:"tir"`
	IRRConverged      bool      `json:"tir_convergiu"`
}

type InvestmentOption struct {
	Name        string  `json:"nome" validate:"required"`
	Principal   float64 `json:"valor" validate:"gt=0"`
	RatePercent float64 `json:"taxa" validate:"gt=-100"`
	Periods     float64 `json:"periodo" validate:"gte=0"`
}

type InvestmentOutcome struct {
	InvestmentOption
	FinalAmount float64 `json:"montante"`
	Rentability float64 `json:"rentabilidade"`
}

type InvestmentComparison struct {
	Investments []InvestmentOutcome `json:"investimentos"`
	Best        InvestmentOutcome   `json:"melhorOpcao"`
	Worst       InvestmentOutcome   `json:"piorOpcao"`
}
