package repository

import (
	"context"
	"sync"

	"assistente-financeiro/domain"
)

// CalculationRepositoryMemory keeps the most recent calculations in memory.
type CalculationRepositoryMemory struct {
	mu       sync.Mutex
	data     []domain.CalculationRecord
	capacity int
}

// NewCalculationRepositoryMemory creates a repository holding at most capacity records.
func NewCalculationRepositoryMemory(capacity int) *CalculationRepositoryMemory {
	if capacity <= 0 {
		capacity = 1000
	}
	return &CalculationRepositoryMemory{
		data:     []domain.CalculationRecord{},
		capacity: capacity,
	}
}

// Save stores the record, evicting the oldest one when full.
func (r *CalculationRepositoryMemory) Save(_ context.Context, record domain.CalculationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data = append(r.data, record)
	if len(r.data) > r.capacity {
		r.data = r.data[len(r.data)-r.capacity:]
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (r *CalculationRepositoryMemory) Recent(_ context.Context, limit int) ([]domain.CalculationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 || limit > len(r.data) {
		limit = len(r.data)
	}
	out := make([]domain.CalculationRecord, 0, limit)
	for i := len(r.data) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.data[i])
	}
	return out, nil
}
