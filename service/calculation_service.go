package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"assistente-financeiro/calculator"
	"assistente-financeiro/domain"
	"assistente-financeiro/metrics"
	"assistente-financeiro/report"
	"assistente-financeiro/repository"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 200
)

type CalculationService struct {
	cache     repository.CacheRepository
	history   repository.CalculationRepository
	metrics   *metrics.Metrics
	logger    *slog.Logger
	resultTTL time.Duration
	now       func() time.Time
}

func NewCalculationService(
	cache repository.CacheRepository,
	history repository.CalculationRepository,
	m *metrics.Metrics,
	logger *slog.Logger,
	resultTTL time.Duration,
) *CalculationService {
	return &CalculationService{
		cache:     cache,
		history:   history,
		metrics:   m,
		logger:    logger.With("component", "calculation"),
		resultTTL: resultTTL,
		now:       time.Now,
	}
}

// Calculate runs the named calculation kind against a decoded JSON body.
// Results are deterministic, so they are served from the cache when present.
func (s *CalculationService) Calculate(ctx context.Context, kind string, body map[string]any) (domain.CalculationResponse, error) {
	k, ok := calculationKinds[kind]
	if !ok {
		err := &domain.UnsupportedOperationError{Kind: kind, Supported: SupportedKinds()}
		s.metrics.ObserveCalculation("desconhecido", err)
		return domain.CalculationResponse{}, err
	}

	key, keyErr := s.cacheKey(kind, body)
	if keyErr == nil {
		if cached, hit := s.cache.Get(ctx, key); hit {
			s.metrics.ObserveCache("calculo", true)
			s.metrics.ObserveCalculation(kind, nil)
			return domain.CalculationResponse{
				Kind:      kind,
				Params:    body,
				Result:    json.RawMessage(cached),
				Cached:    true,
				Timestamp: s.now().UTC(),
			}, nil
		}
		s.metrics.ObserveCache("calculo", false)
	}

	result, err := k.run(params(body))
	s.metrics.ObserveCalculation(kind, err)
	if err != nil {
		var invalid *domain.InvalidInputError
		if errors.As(err, &invalid) && invalid.Example == nil {
			invalid.Example = k.example
		}
		return domain.CalculationResponse{}, err
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return domain.CalculationResponse{}, fmt.Errorf("falha ao serializar resultado: %w", err)
	}

	if keyErr == nil {
		if err := s.cache.Set(ctx, key, string(encoded), s.resultTTL); err != nil {
			s.logger.Warn("failed to cache calculation", "kind", kind, "error", err)
		}
	}

	now := s.now().UTC()
	record := domain.CalculationRecord{
		ID:        uuid.NewString(),
		Kind:      kind,
		Params:    body,
		Result:    encoded,
		CreatedAt: now,
	}
	// Histórico não é crítico
	if err := s.history.Save(ctx, record); err != nil {
		s.logger.Warn("failed to save calculation", "kind", kind, "error", err)
	}

	return domain.CalculationResponse{
		Kind:      kind,
		Params:    body,
		Result:    result,
		Timestamp: now,
	}, nil
}

func (s *CalculationService) Compare(_ context.Context, options []domain.InvestmentOption) (domain.InvestmentComparison, error) {
	comparison, err := calculator.CompareInvestments(options)
	s.metrics.ObserveCalculation("comparacao", err)
	return comparison, err
}

func (s *CalculationService) History(ctx context.Context, limit int) ([]domain.CalculationRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	return s.history.Recent(ctx, limit)
}

// AmortizationReport renders the full month-by-month schedule as a PDF.
func (s *CalculationService) AmortizationReport(_ context.Context, req domain.AmortizationReportRequest) ([]byte, error) {
	if req.Principal == nil || req.AnnualRate == nil || req.TermYears == nil {
		return nil, &domain.InvalidInputError{
			Reason:  "valor, taxa e anos são obrigatórios",
			Example: map[string]any{"sistema": "SAC", "valor": 120000, "taxa": 12, "anos": 10},
		}
	}

	schedule, err := calculator.BuildAmortizationSchedule(*req.Principal, *req.AnnualRate, *req.TermYears, req.Convention)
	if err != nil {
		s.metrics.ObserveCalculation("relatorio", err)
		return nil, err
	}
	rows, err := calculator.AmortizationRows(*req.Principal, *req.AnnualRate, *req.TermYears, req.Convention)
	if err != nil {
		s.metrics.ObserveCalculation("relatorio", err)
		return nil, err
	}

	pdf, err := report.Amortization(schedule, rows, s.now())
	s.metrics.ObserveCalculation("relatorio", err)
	return pdf, err
}

func (s *CalculationService) cacheKey(kind string, body map[string]any) (string, error) {
	// encoding/json sorts map keys, so equal bodies hash equally.
	payload, err := json.Marshal(struct {
		Kind   string         `json:"k"`
		Params map[string]any `json:"p"`
	}{kind, body})
	if err != nil {
		return "", err
	}
	return repository.CacheKey("calculo", payload), nil
}
