package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"assistente-financeiro/ai"
	"assistente-financeiro/domain"
	"assistente-financeiro/metrics"
	"assistente-financeiro/repository"
)

const MaxQuestionLength = 2000

const systemPrompt = `Você é um Assistente Financeiro Especializado com 15 anos de experiência em:

ESPECIALIDADES:
- Planejamento financeiro pessoal e empresarial
- Análise de investimentos (ações, fundos, renda fixa, criptomoedas)
- Controle de gastos e orçamento familiar
- Educação financeira
- Estratégias de economia e poupança
- Análise de crédito e financiamentos
- Impostos e declaração de renda
- Previdência e aposentadoria

DIRETRIZES DE RESPOSTA:
1. Seja sempre profissional, claro e didático
2. Forneça exemplos práticos e cálculos quando relevante
3. Inclua avisos sobre riscos quando necessário
4. Sugira próximos passos ou ações concretas
5. Use linguagem acessível, evitando jargões excessivos
6. Mantenha respostas concisas mas completas (máximo 500 palavras)

FORMATO DE RESPOSTA:
- Use emojis para organizar informações (💰 📊 📈 ⚠️ 💡)
- Estruture em tópicos quando apropriado
- Termine sempre com uma pergunta ou sugestão de próximo passo

LIMITAÇÕES:
- Não forneça conselhos de investimento específicos sem análise completa
- Sempre mencione que recomendações devem ser validadas com profissionais
- Não prometa retornos garantidos

Responda sempre em português brasileiro, de forma amigável mas profissional.`

const disabledAnswer = `🤖 As respostas com inteligência artificial estão desativadas no momento.

Você ainda pode usar as calculadoras:
• /juros, /compostos e /financiamento
• /sac, /price, /inflacao, /regra72, /aposentadoria e /vpl

Digite /ajuda para ver exemplos.`

// AssistantService answers free-form financial questions with a language model.
type AssistantService struct {
	completion ai.TextCompletion
	cache      repository.CacheRepository
	metrics    *metrics.Metrics
	logger     *slog.Logger
	timeout    time.Duration
	answerTTL  time.Duration
}

// NewAssistantService accepts a nil completion, which disables the model and
// makes Ask return a fixed fallback text.
func NewAssistantService(
	completion ai.TextCompletion,
	cache repository.CacheRepository,
	m *metrics.Metrics,
	logger *slog.Logger,
	timeout, answerTTL time.Duration,
) *AssistantService {
	return &AssistantService{
		completion: completion,
		cache:      cache,
		metrics:    m,
		logger:     logger.With("component", "assistant"),
		timeout:    timeout,
		answerTTL:  answerTTL,
	}
}

func (s *AssistantService) Enabled() bool {
	return s.completion != nil
}

func (s *AssistantService) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", &domain.InvalidInputError{
			Field:   "pergunta",
			Reason:  "é obrigatória",
			Example: map[string]any{"pergunta": "Como calcular juros compostos?"},
		}
	}
	if len([]rune(question)) > MaxQuestionLength {
		return "", domain.InvalidInput("pergunta", "é longa demais")
	}
	if !s.Enabled() {
		return disabledAnswer, nil
	}

	key := repository.CacheKey("resposta", []byte(strings.ToLower(question)))
	if cached, hit := s.cache.Get(ctx, key); hit {
		s.metrics.ObserveCache("resposta", true)
		return cached, nil
	}
	s.metrics.ObserveCache("resposta", false)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	started := time.Now()
	answer, err := s.completion.Complete(ctx, buildPrompt(question))
	s.metrics.ObserveAI(started, err)
	if err != nil {
		s.logger.Error("language model request failed", "error", err, "elapsed", time.Since(started))
		return "", &domain.UpstreamServiceError{Service: "ia", Err: err}
	}

	if err := s.cache.Set(context.WithoutCancel(ctx), key, answer, s.answerTTL); err != nil {
		s.logger.Warn("failed to cache answer", "error", err)
	}
	return answer, nil
}

func buildPrompt(question string) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nPERGUNTA DO USUÁRIO:\n")
	b.WriteString(question)
	b.WriteString("\n\nResponda de forma profissional e útil:")
	return b.String()
}
