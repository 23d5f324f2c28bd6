package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"assistente-financeiro/domain"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockCalculationRepository struct {
	mu         sync.Mutex
	SaveCalled bool
	ForceError bool
	Saved      []domain.CalculationRecord
}

func (m *MockCalculationRepository) Save(_ context.Context, record domain.CalculationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalled = true
	if m.ForceError {
		return errors.New("save error")
	}
	m.Saved = append(m.Saved, record)
	return nil
}

func (m *MockCalculationRepository) Recent(_ context.Context, limit int) ([]domain.CalculationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit > len(m.Saved) {
		limit = len(m.Saved)
	}
	out := make([]domain.CalculationRecord, limit)
	copy(out, m.Saved[:limit])
	return out, nil
}

type MockCompletion struct {
	mu      sync.Mutex
	Calls   int
	Prompt  string
	Answer  string
	Err     error
	blockOn chan struct{}
}

func (m *MockCompletion) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.Calls++
	m.Prompt = prompt
	m.mu.Unlock()
	if m.blockOn != nil {
		select {
		case <-m.blockOn:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return m.Answer, m.Err
}
