package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrUnsupportedOperation = errors.New("operação não suportada")
	ErrUpstreamService      = errors.New("serviço externo indisponível")
)

// InvalidInputError reports a missing, non-numeric or out-of-domain parameter.
// Example, when set, is a payload the caller can copy to fix the request.
type InvalidInputError struct {
	Field   string
	Reason  string
	Example map[string]any
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidInput, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput, e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

func InvalidInput(field, reason string) *InvalidInputError {
	return &InvalidInputError{Field: field, Reason: reason}
}

type UnsupportedOperationError struct {
	Kind      string
	Supported []string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s: %q (disponíveis: %s)", ErrUnsupportedOperation, e.Kind, strings.Join(e.Supported, ", "))
}

func (e *UnsupportedOperationError) Is(target error) bool { return target == ErrUnsupportedOperation }

// UpstreamServiceError wraps failures of the language model or the messaging channel.
type UpstreamServiceError struct {
	Service string
	Err     error
}

func (e *UpstreamServiceError) Error() string {
	return fmt.Sprintf("%s (%s): %v", ErrUpstreamService, e.Service, e.Err)
}

func (e *UpstreamServiceError) Unwrap() error { return e.Err }

func (e *UpstreamServiceError) Is(target error) bool { return target == ErrUpstreamService }
