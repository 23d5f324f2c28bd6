package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistente-financeiro/domain"
	"assistente-financeiro/metrics"
	"assistente-financeiro/repository"
	"assistente-financeiro/service"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type stubCompletion struct {
	answer string
	err    error
}

func (s stubCompletion) Complete(context.Context, string) (string, error) { return s.answer, s.err }

type stubStatus struct{ status domain.ChannelStatus }

func (s stubStatus) Status() domain.ChannelStatus { return s.status }

func newTestRouter(t *testing.T, completion stubCompletion, limiter *RateLimiter) http.Handler {
	t.Helper()
	m := metrics.New()
	cache := repository.NewMemoryCache()
	calc := service.NewCalculationService(cache, repository.NewCalculationRepositoryMemory(10), m, discardLogger, time.Hour)
	assistant := service.NewAssistantService(completion, cache, m, discardLogger, time.Second, time.Hour)
	h := NewHandler(calc, assistant, stubStatus{domain.ChannelStatus{Enabled: true, Ready: true}}, discardLogger)
	return NewRouter(h, limiter, m, discardLogger)
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestCalculateHandler_OK(t *testing.T) {
	router := newTestRouter(t, stubCompletion{}, nil)

	w := do(t, router, http.MethodPost, "/calculo/juros-simples", `{"capital": 1000, "taxa": 5, "tempo": 12}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "juros-simples", body["tipo"])
	assert.Equal(t, map[string]any{"capital": 1000.0, "taxa": 5.0, "tempo": 12.0}, body["dados"])
	result := body["resultado"].(map[string]any)
	assert.Equal(t, 600.0, result["juros"])
	assert.Equal(t, 1600.0, result["montante"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestCalculateHandler_Financing(t *testing.T) {
	router := newTestRouter(t, stubCompletion{}, nil)

	w := do(t, router, http.MethodPost, "/calculo/financiamento", `{"valor": 1000, "taxa": 5, "parcelas": 12}`)

	require.Equal(t, http.StatusOK, w.Code)
	result := decodeBody(t, w)["resultado"].(map[string]any)
	assert.Equal(t, 85.61, result["valor_prestacao"])
	assert.Equal(t, 1027.32, result["total_pago"])
	assert.Equal(t, 27.32, result["total_juros"])
}

func TestCalculateHandler_UnsupportedKind(t *testing.T) {
	router := newTestRouter(t, stubCompletion{}, nil)

	w := do(t, router, http.MethodPost, "/calculo/bitcoin", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Contains(t, body["tipos_disponiveis"], "juros-simples")
	assert.Contains(t, body["tipos_disponiveis"], "financiamento")
}

func TestCalculateHandler_MissingField(t *testing.T) {
	router := newTestRouter(t, stubCompletion{}, nil)

	w := do(t, router, http.MethodPost, "/calculo/juros-compostos", `{"capital": 1000, "taxa": 1}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, map[string]any{"capital": 1000.0, "taxa": 1.0, "tempo": 12.0}, body["example"])
	assert.Contains(t, body["message"], "tempo")
}

func TestCalculateHandler_EmptyBody(t *testing.T) {
	router := newTestRouter(t, stubCompletion{}, nil)

	w := do(t, router, http.MethodPost, "/calculo/juros-simples", ``)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotNil(t, decodeBody(t, w)["example"])
}

func TestCalculateHandler_BadRequest(t *testing.T) {
	router := newTestRouter(t, stubCompletion{}, nil)

	w := do(t, router, http.MethodPost, "/calculo/juros-simples", `{invalid-json}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "JSON inválido", decodeBody(t, w)["error"])
}

func TestCalculateHandler_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(t, stubCompletion{}, nil)

	w := do(t, router, http.MethodGet, "/calculo/juros-simples", "")

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestAskHandler(t *testing.T) {
	router := newTestRouter(t, stubCompletion{answer: "Diversifique."}, nil)

	w := do(t, router, http.MethodPost, "/consulta", `{"pergunta": "Como investir?"}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Como investir?", body["pergunta"])
	assert.Equal(t, "Diversifique.", body["resposta"])
}

func TestAskHandler_MissingQuestion(t *testing.T) {
	router := newTestRouter(t, stubCompletion{answer: "x"}, nil)

	w := do(t, router, http.MethodPost, "/consulta", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	fields := decodeBody(t, w)["campos"].([]any)
	require.Len(t, fields, 1)
	assert.Equal(t, "required", fields[0].(map[string]any)["regra"])
}

func TestAskHandler_UpstreamFailure(t *testing.T) {
	router := newTestRouter(t, stubCompletion{err: errors.New("quota")}, nil)

	w := do(t, router, http.MethodPost, "/consulta", `{"pergunta": "Como investir?"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestCompareHandler(t *testing.T) {
	router := newTestRouter(t, stubCompletion{}, nil)

	w := do(t, router, http.MethodPost, "/comparar", `{"investimentos": [
		{"nome": "Poupança", "valor": 1000, "taxa": 0.5, "periodo": 12},
		{"nome": "CDB", "valor": 1000, "taxa": 1, "periodo": 12},
		{"nome": "Tesouro", "valor": 1000, "taxa": 0.8, "periodo": 12}
	]}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "CDB", body["melhorOpcao"].(map[string]any)["nome"])
	assert.Equal(t, "Poupança", body["piorOpcao"].(map[string]any)["nome"])
}

func TestCompareHandler_Validation(t *testing.T) {
	router := newTestRouter(t, stubCompletion{}, nil)

	w := do(t, router, http.MethodPost, "/comparar", `{"investimentos": []}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHistoryHandler(t *testing.T) {
	router := newTestRouter(t, stubCompletion{}, nil)
	do(t, router, http.MethodPost, "/calculo/regra-72", `{"taxa": 8}`)
	do(t, router, http.MethodPost, "/calculo/regra-72", `{"taxa": 6}`)

	w := do(t, router, http.MethodGet, "/historico?limite=1", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, 1.0, body["total"])

	w = do(t, router, http.MethodGet, "/historico?limite=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAmortizationReportHandler(t *testing.T) {
	router := newTestRouter(t, stubCompletion{}, nil)

	w := do(t, router, http.MethodPost, "/relatorio/amortizacao", `{"sistema": "SAC", "valor": 120000, "taxa": 12, "anos": 10}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "amortizacao-sac.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestAmortizationReportHandler_InvalidConvention(t *testing.T) {
	router := newTestRouter(t, stubCompletion{}, nil)

	w := do(t, router, http.MethodPost, "/relatorio/amortizacao", `{"sistema": "ALEMAO", "valor": 1000, "taxa": 12, "anos": 1}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAndStatus(t *testing.T) {
	router := newTestRouter(t, stubCompletion{}, nil)

	w := do(t, router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])

	w = do(t, router, http.MethodGet, "/whatsapp/status", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["ready"])

	w = do(t, router, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decodeBody(t, w)["endpoints"], "POST /calculo/financiamento")
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, stubCompletion{}, nil)
	do(t, router, http.MethodPost, "/calculo/regra-72", `{"taxa": 8}`)

	w := do(t, router, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `assistente_calculations_total{kind="regra-72",outcome="ok"} 1`)
}

func TestNotFound(t *testing.T) {
	router := newTestRouter(t, stubCompletion{}, nil)

	w := do(t, router, http.MethodGet, "/nao-existe", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}
