package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistente-financeiro/domain"
)

func sampleRecord(i int, at time.Time) domain.CalculationRecord {
	return domain.CalculationRecord{
		ID:        fmt.Sprintf("rec-%d", i),
		Kind:      "juros-simples",
		Params:    map[string]any{"capital": float64(1000 + i)},
		Result:    json.RawMessage(`{"montante":1600}`),
		CreatedAt: at,
	}
}

func TestCalculationRepositoryMemory_RecentNewestFirst(t *testing.T) {
	repo := NewCalculationRepositoryMemory(3)
	ctx := context.Background()
	base := time.Now()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Save(ctx, sampleRecord(i, base.Add(time.Duration(i)*time.Second))))
	}

	records, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "rec-4", records[0].ID)
	assert.Equal(t, "rec-2", records[2].ID)

	records, err = repo.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestCalculationRepositorySQLite_RoundTrip(t *testing.T) {
	repo, err := NewCalculationRepositorySQLite(filepath.Join(t.TempDir(), "history", "calc.db"))
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Save(ctx, sampleRecord(i, base.Add(time.Duration(i)*time.Minute))))
	}

	records, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "rec-2", records[0].ID)
	assert.Equal(t, "juros-simples", records[0].Kind)
	assert.Equal(t, 1002.0, records[0].Params["capital"])
	assert.JSONEq(t, `{"montante":1600}`, string(records[0].Result))
	assert.True(t, base.Add(2*time.Minute).Equal(records[0].CreatedAt))
}
