package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"strings"

	"assistente-financeiro/calculator"
	"assistente-financeiro/domain"
	"assistente-financeiro/metrics"
)

const (
	msgInternalError = "⚠️ Desculpe, ocorreu um erro interno. Tente novamente em alguns instantes."
	msgUpstreamError = "⚠️ Desculpe, não consegui processar sua pergunta no momento. Tente reformular ou tente novamente."
	assistantFooter  = "\n\n---\n🤖 *Assistente Financeiro IA*\n_Dúvidas? Continue perguntando! Digite /ajuda para ver os comandos._"
)

type chatCommand struct {
	kind    string
	usage   string
	minArgs int
	run     func(args []float64) (string, error)
}

// ChatService implements the text command interface shared by every
// messaging channel.
type ChatService struct {
	assistant *AssistantService
	metrics   *metrics.Metrics
	logger    *slog.Logger
	commands  map[string]chatCommand
	pick      func(n int) int
}

func NewChatService(assistant *AssistantService, m *metrics.Metrics, logger *slog.Logger) *ChatService {
	s := &ChatService{
		assistant: assistant,
		metrics:   m,
		logger:    logger.With("component", "chat"),
		pick:      rand.IntN,
	}
	s.commands = map[string]chatCommand{
		"/juros": {
			kind: "juros-simples", usage: "/juros <capital> <taxa> <tempo>", minArgs: 3,
			run: simpleInterestReply,
		},
		"/compostos": {
			kind: "juros-compostos", usage: "/compostos <capital> <taxa> <tempo>", minArgs: 3,
			run: compoundInterestReply,
		},
		"/financiamento": {
			kind: "financiamento", usage: "/financiamento <valor> <taxa anual> <parcelas>", minArgs: 3,
			run: financingReply,
		},
		"/sac": {
			kind: "sac", usage: "/sac <valor> <taxa anual> <anos>", minArgs: 3,
			run: func(args []float64) (string, error) { return amortizationReply(args, domain.SAC) },
		},
		"/price": {
			kind: "price", usage: "/price <valor> <taxa anual> <anos>", minArgs: 3,
			run: func(args []float64) (string, error) { return amortizationReply(args, domain.PRICE) },
		},
		"/inflacao": {
			kind: "inflacao", usage: "/inflacao <valor> <inflação anual> <anos>", minArgs: 3,
			run: inflationReply,
		},
		"/regra72": {
			kind: "regra-72", usage: "/regra72 <taxa anual>", minArgs: 1,
			run: doublingReply,
		},
		"/aposentadoria": {
			kind: "aposentadoria", usage: "/aposentadoria <idade atual> <idade aposentadoria> <gasto mensal> [taxa anual]", minArgs: 3,
			run: retirementReply,
		},
		"/vpl": {
			kind: "vpl", usage: "/vpl <investimento> <taxa> <fluxo1> [fluxo2 ...]", minArgs: 3,
			run: npvReply,
		},
	}
	return s
}

// Reply never fails: every error is turned into a user-facing message.
func (s *ChatService) Reply(ctx context.Context, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return helpText
	}

	fields := strings.Fields(text)
	name := strings.ToLower(fields[0])

	switch name {
	case "/start", "/inicio":
		return welcomeText
	case "/help", "/ajuda":
		return helpText
	case "/calculadora":
		return calculatorText
	case "/dicas":
		return fmt.Sprintf("💡 *Dica Financeira do Dia*\n\n%s\n\n_Quer mais dicas personalizadas? Envie sua situação financeira!_", tips[s.pick(len(tips))])
	}

	if cmd, ok := s.commands[name]; ok {
		return s.runCommand(cmd, fields[1:])
	}

	answer, err := s.assistant.Ask(ctx, text)
	if err != nil {
		s.logger.Error("failed to answer question", "error", err)
		if errors.Is(err, domain.ErrInvalidInput) {
			return "⚠️ Sua pergunta é longa demais. Tente resumi-la em poucas frases."
		}
		return msgUpstreamError
	}
	return answer + assistantFooter
}

func (s *ChatService) runCommand(cmd chatCommand, rawArgs []string) string {
	if len(rawArgs) < cmd.minArgs {
		return fmt.Sprintf("ℹ️ Uso: %s", cmd.usage)
	}

	args := make([]float64, len(rawArgs))
	for i, raw := range rawArgs {
		v, ok := parseNumber(raw)
		if !ok {
			return fmt.Sprintf("⚠️ %q não é um número válido.\nUso: %s", raw, cmd.usage)
		}
		args[i] = v
	}

	reply, err := cmd.run(args)
	s.metrics.ObserveCalculation(cmd.kind, err)
	if err != nil {
		var invalid *domain.InvalidInputError
		if errors.As(err, &invalid) {
			return fmt.Sprintf("⚠️ Valores inválidos: %s %s.\nUso: %s", invalid.Field, invalid.Reason, cmd.usage)
		}
		s.logger.Error("calculation failed", "kind", cmd.kind, "error", err)
		return msgInternalError
	}
	return reply
}

func wholeNumber(field string, v float64) (int, error) {
	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, domain.InvalidInput(field, "deve ser um número inteiro")
	}
	return int(v), nil
}

func simpleInterestReply(args []float64) (string, error) {
	r, err := calculator.CalculateSimpleInterest(args[0], args[1], args[2])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`💰 *Juros Simples*

Capital: %s
Taxa: %s ao período
Tempo: %s períodos

*Resultado:*
Juros: %s
Montante: %s

Fórmula: %s`,
		calculator.FormatCurrency(r.Capital), calculator.FormatPercent(r.RatePercent), calculator.FormatNumber(r.Periods),
		calculator.FormatCurrency(r.Interest), calculator.FormatCurrency(r.FinalAmount), r.Formula), nil
}

func compoundInterestReply(args []float64) (string, error) {
	r, err := calculator.CalculateCompoundInterest(args[0], args[1], args[2])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`📈 *Juros Compostos*

Capital: %s
Taxa: %s ao período
Tempo: %s períodos

*Resultado:*
Juros: %s
Montante: %s
Rentabilidade: %s

Fórmula: %s`,
		calculator.FormatCurrency(r.Capital), calculator.FormatPercent(r.RatePercent), calculator.FormatNumber(r.Periods),
		calculator.FormatCurrency(r.Interest), calculator.FormatCurrency(r.FinalAmount), calculator.FormatPercent(r.Rentability),
		r.Formula), nil
}

func financingReply(args []float64) (string, error) {
	n, err := wholeNumber("parcelas", args[2])
	if err != nil {
		return "", err
	}
	r, err := calculator.CalculateFinancing(args[0], args[1], n)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`🏠 *Financiamento*

Valor: %s
Taxa: %s ao ano
Parcelas: %dx

*Resultado:*
Prestação: %s
Total Pago: %s
Total Juros: %s

Fórmula: %s`,
		calculator.FormatCurrency(r.Principal), calculator.FormatPercent(r.RatePercent), r.InstallmentCount,
		calculator.FormatCurrency(r.InstallmentAmount), calculator.FormatCurrency(r.TotalPaid),
		calculator.FormatCurrency(r.TotalInterest), r.Formula), nil
}

func amortizationReply(args []float64, convention domain.AmortizationConvention) (string, error) {
	years, err := wholeNumber("anos", args[2])
	if err != nil {
		return "", err
	}
	sch, err := calculator.BuildAmortizationSchedule(args[0], args[1], years, convention)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🏦 *Tabela %s*\n\n", convention)
	fmt.Fprintf(&b, "Valor: %s\nTaxa: %s ao ano\nPrazo: %d meses\n\n", calculator.FormatCurrency(sch.Principal),
		calculator.FormatPercent(sch.AnnualRate), sch.TotalMonths)
	b.WriteString("*Parcelas:*\n")
	for _, row := range sch.Installments {
		fmt.Fprintf(&b, "%dª: %s (amortização %s, juros %s)\n", row.Number, calculator.FormatCurrency(row.Payment),
			calculator.FormatCurrency(row.Amortization), calculator.FormatCurrency(row.Interest))
	}
	fmt.Fprintf(&b, "\nTotal Juros: %s\nTotal Pago: %s", calculator.FormatCurrency(sch.TotalInterest),
		calculator.FormatCurrency(sch.TotalPaid))
	return b.String(), nil
}

func inflationReply(args []float64) (string, error) {
	r, err := calculator.CalculateInflationImpact(args[0], args[1], args[2])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`📉 *Impacto da Inflação*

Valor atual: %s
Inflação: %s ao ano por %s anos

*Resultado:*
Poder de compra futuro: %s
Perda: %s (%s)`,
		calculator.FormatCurrency(r.CurrentValue), calculator.FormatPercent(r.AnnualInflationRate), calculator.FormatNumber(r.Years),
		calculator.FormatCurrency(r.FutureValue), calculator.FormatCurrency(r.PurchasingPowerLoss), calculator.FormatPercent(r.LossPercent)), nil
}

func doublingReply(args []float64) (string, error) {
	r, err := calculator.CalculateDoublingTime(args[0])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`⏱️ *Regra dos 72*

Com %s ao ano, seu dinheiro dobra em aproximadamente %s anos (%s meses).

_Aproximação: 72 ÷ taxa._`,
		calculator.FormatPercent(r.AnnualRate), calculator.FormatNumber(r.YearsToDouble), calculator.FormatNumber(r.MonthsToDouble)), nil
}

func retirementReply(args []float64) (string, error) {
	current, err := wholeNumber("idade_atual", args[0])
	if err != nil {
		return "", err
	}
	retirement, err := wholeNumber("idade_aposentadoria", args[1])
	if err != nil {
		return "", err
	}
	rate := calculator.DefaultRetirementReturnRate
	if len(args) > 3 {
		rate = args[3]
	}
	r, err := calculator.CalculateRetirementPlan(current, retirement, args[2], rate)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`🏖️ *Planejamento de Aposentadoria*

Idade: %d → %d (%d anos)
Gasto mensal desejado: %s
Rentabilidade: %s ao ano

*Resultado:*
Patrimônio necessário: %s
Aporte mensal: %s

_Considera retirada segura de 4%% ao ano._`,
		r.CurrentAge, r.RetirementAge, r.YearsToRetirement, calculator.FormatCurrency(r.MonthlyNeed),
		calculator.FormatPercent(r.AnnualReturnRate), calculator.FormatCurrency(r.RequiredCapital),
		calculator.FormatCurrency(r.RequiredMonthlyContribution)), nil
}

func npvReply(args []float64) (string, error) {
	r, err := calculator.CalculateNPV(args[0], args[2:], args[1])
	if err != nil {
		return "", err
	}
	verdict := "❌ Projeto inviável"
	if r.IsViable {
		verdict = "✅ Projeto viável"
	}
	irr := calculator.FormatPercent(r.EstimatedIRR)
	if !r.IRRConverged {
		irr += " (estimativa sem convergência)"
	}
	return fmt.Sprintf(`📊 *Valor Presente Líquido*

Investimento: %s
Taxa de desconto: %s
Fluxos: %d períodos

*Resultado:*
VPL: %s
TIR estimada: %s
%s`,
		calculator.FormatCurrency(r.InitialInvestment), calculator.FormatPercent(r.DiscountRate), len(r.CashFlows),
		calculator.FormatCurrency(r.NPV), irr, verdict), nil
}
