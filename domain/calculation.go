package domain

import (
	"encoding/json"
	"time"
)

// CalculationResponse is the body returned by POST /calculo/{tipo}.
type CalculationResponse struct {
	Kind      string         `json:"tipo"`
	Params    map[string]any `json:"dados"`
	Result    any            `json:"resultado"`
	Cached    bool           `json:"cache,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

type CalculationRecord struct {
	ID        string          `json:"id"`
	Kind      string          `json:"tipo"`
	Params    map[string]any  `json:"dados"`
	Result    json.RawMessage `json:"resultado"`
	CreatedAt time.Time       `json:"criado_em"`
}

type QuestionRequest struct {
	Question string `json:"pergunta" validate:"required,max=2000"`
}

type QuestionResponse struct {
	Question  string    `json:"pergunta"`
	Answer    string    `json:"resposta"`
	Timestamp time.Time `json:"timestamp"`
}

type ComparisonRequest struct {
	Investments []InvestmentOption `json:"investimentos" validate:"required,min=1,max=50,dive"`
}

type AmortizationReportRequest struct {
	Convention AmortizationConvention `json:"sistema" validate:"required,oneof=SAC PRICE"`
	Principal  *float64               `json:"valor" validate:"required,gte=0"`
	AnnualRate *float64               `json:"taxa" validate:"required,gt=-100"`
	TermYears  *int                   `json:"anos" validate:"required,gte=1,lte=50"`
}
