package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"assistente-financeiro/domain"
)

// APIError is the JSON body of every failed request.
type APIError struct {
	Status    int            `json:"-"`
	Message   string         `json:"error"`
	Detail    string         `json:"message,omitempty"`
	Fields    []FieldError   `json:"campos,omitempty"`
	Example   map[string]any `json:"example,omitempty"`
	Supported []string       `json:"tipos_disponiveis,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
}

type FieldError struct {
	Field string `json:"campo"`
	Rule  string `json:"regra"`
}

func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	e.RequestID = middleware.GetReqID(r.Context())
	render.Status(r, e.Status)
	return nil
}

func (e *APIError) Error() string { return e.Message }

// toAPIError maps domain failures onto HTTP statuses.
func toAPIError(err error) *APIError {
	var (
		apiErr      *APIError
		invalid     *domain.InvalidInputError
		unsupported *domain.UnsupportedOperationError
		validation  validator.ValidationErrors
		tooLarge    *http.MaxBytesError
	)

	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.As(err, &invalid):
		return &APIError{Status: http.StatusBadRequest, Message: "Dados inválidos", Detail: invalid.Error(), Example: invalid.Example}
	case errors.As(err, &unsupported):
		return &APIError{Status: http.StatusBadRequest, Message: "Tipo de cálculo não suportado", Supported: unsupported.Supported}
	case errors.As(err, &validation):
		fields := make([]FieldError, 0, len(validation))
		for _, fe := range validation {
			fields = append(fields, FieldError{Field: fe.Namespace(), Rule: fe.Tag()})
		}
		return &APIError{Status: http.StatusBadRequest, Message: "Dados inválidos", Fields: fields}
	case errors.As(err, &tooLarge):
		return &APIError{Status: http.StatusRequestEntityTooLarge, Message: "Corpo da requisição muito grande"}
	case errors.Is(err, domain.ErrUpstreamService):
		return &APIError{Status: http.StatusBadGateway, Message: "Serviço de IA indisponível. Tente novamente em alguns instantes."}
	case errors.Is(err, context.DeadlineExceeded):
		return &APIError{Status: http.StatusGatewayTimeout, Message: "Tempo de resposta excedido"}
	default:
		return &APIError{Status: http.StatusInternalServerError, Message: "Erro interno do servidor"}
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := toAPIError(err)
	level := slog.LevelWarn
	if apiErr.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(r.Context(), level, "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", apiErr.Status,
		"error", err,
	)
	render.Render(w, r, apiErr)
}
