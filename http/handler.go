package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"assistente-financeiro/domain"
	"assistente-financeiro/service"
)

const maxBodyBytes = 1 << 20

// StatusReporter reports the state of the messaging channel.
type StatusReporter interface {
	Status() domain.ChannelStatus
}

type Handler struct {
	calculations *service.CalculationService
	assistant    *service.AssistantService
	whatsapp     StatusReporter
	validate     *validator.Validate
	logger       *slog.Logger
	started      time.Time
}

// NewHandler accepts a nil whatsapp reporter when the channel is disabled.
func NewHandler(
	calculations *service.CalculationService,
	assistant *service.AssistantService,
	whatsapp StatusReporter,
	logger *slog.Logger,
) *Handler {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handler{
		calculations: calculations,
		assistant:    assistant,
		whatsapp:     whatsapp,
		validate:     v,
		logger:       logger.With("component", "http"),
		started:      time.Now(),
	}
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	endpoints := map[string]string{
		"GET /health":                 "Health check do serviço",
		"GET /whatsapp/status":        "Status da conexão WhatsApp",
		"POST /consulta":              "Consulta geral ao assistente financeiro",
		"POST /comparar":              "Comparação de investimentos",
		"GET /historico":              "Cálculos recentes",
		"POST /relatorio/amortizacao": "Tabela SAC/PRICE completa em PDF",
		"GET /metrics":                "Métricas Prometheus",
	}
	examples := map[string]any{
		"consulta": map[string]any{"method": "POST", "url": "/consulta", "body": map[string]any{"pergunta": "Como funciona o CDI?"}},
	}
	for _, kind := range service.SupportedKinds() {
		url := "/calculo/" + kind
		endpoints["POST "+url] = "Cálculo: " + kind
		examples[kind] = map[string]any{"method": "POST", "url": url, "body": service.KindExample(kind)}
	}

	render.JSON(w, r, map[string]any{
		"service":          "Assistente Financeiro",
		"version":          "2.0.0",
		"ai_enabled":       h.assistant.Enabled(),
		"whatsapp_enabled": h.whatsappStatus().Enabled,
		"endpoints":        endpoints,
		"examples":         examples,
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"status":     "ok",
		"service":    "Assistente Financeiro",
		"uptime":     time.Since(h.started).Round(time.Second).String(),
		"ai_enabled": h.assistant.Enabled(),
		"whatsapp":   h.whatsappStatus(),
		"timestamp":  time.Now().UTC(),
	})
}

func (h *Handler) WhatsAppStatus(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.whatsappStatus())
}

func (h *Handler) whatsappStatus() domain.ChannelStatus {
	if h.whatsapp == nil {
		return domain.ChannelStatus{}
	}
	return h.whatsapp.Status()
}

func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req domain.QuestionRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	answer, err := h.assistant.Ask(r.Context(), req.Question)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	render.JSON(w, r, domain.QuestionResponse{
		Question:  req.Question,
		Answer:    answer,
		Timestamp: time.Now().UTC(),
	})
}

func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "tipo")

	body := map[string]any{}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		h.fail(w, r, badJSON(err))
		return
	}

	resp, err := h.calculations.Calculate(r.Context(), kind, body)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var req domain.ComparisonRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	result, err := h.calculations.Compare(r.Context(), req.Investments)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limite"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.fail(w, r, domain.InvalidInput("limite", "deve ser um inteiro positivo"))
			return
		}
		limit = n
	}

	records, err := h.calculations.History(r.Context(), limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, map[string]any{
		"total":     len(records),
		"calculos":  records,
		"timestamp": time.Now().UTC(),
	})
}

func (h *Handler) AmortizationReport(w http.ResponseWriter, r *http.Request) {
	var req domain.AmortizationReportRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	pdf, err := h.calculations.AmortizationReport(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="amortizacao-%s.pdf"`, strings.ToLower(string(req.Convention))))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	_, _ = w.Write(pdf)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) error {
	if err := render.DecodeJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes), v); err != nil {
		return badJSON(err)
	}
	return h.validate.Struct(v)
}

func badJSON(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}
	return &APIError{Status: http.StatusBadRequest, Message: "JSON inválido", Detail: err.Error()}
}
