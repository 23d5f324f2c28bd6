package service

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"assistente-financeiro/domain"
)

// params wraps a decoded JSON body. Fields are checked for presence and type
// only; zero is a legitimate value.
type params map[string]any

func (p params) number(field string) (float64, error) {
	raw, ok := p[field]
	if !ok || raw == nil {
		return 0, domain.InvalidInput(field, "é obrigatório")
	}
	v, ok := toFloat(raw)
	if !ok {
		return 0, domain.InvalidInput(field, "deve ser numérico")
	}
	return v, nil
}

func (p params) optionalNumber(field string, fallback float64) (float64, error) {
	if raw, ok := p[field]; !ok || raw == nil {
		return fallback, nil
	}
	return p.number(field)
}

func (p params) integer(field string) (int, error) {
	v, err := p.number(field)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, domain.InvalidInput(field, "deve ser um número inteiro")
	}
	return int(v), nil
}

func (p params) numbers(field string) ([]float64, error) {
	raw, ok := p[field]
	if !ok || raw == nil {
		return nil, domain.InvalidInput(field, "é obrigatório")
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, domain.InvalidInput(field, "deve ser uma lista de números")
	}
	out := make([]float64, 0, len(list))
	for _, item := range list {
		v, ok := toFloat(item)
		if !ok {
			return nil, domain.InvalidInput(field, "deve conter apenas números")
		}
		out = append(out, v)
	}
	return out, nil
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		return parseNumber(v)
	default:
		return 0, false
	}
}

// parseNumber accepts "1.5", "1,5", "R$ 100" and "12%".
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ",") {
		// pt-BR: "1.234,56"
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
