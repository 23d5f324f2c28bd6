package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"assistente-financeiro/domain"
)

// CalculationRepositorySQLite persists the calculation history in a sqlite file.
type CalculationRepositorySQLite struct {
	db *sql.DB
}

func NewCalculationRepositorySQLite(path string) (*CalculationRepositorySQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite3", "file:"+path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS calculations (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		params TEXT NOT NULL,
		result TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_calculations_created_at ON calculations(created_at);
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	return &CalculationRepositorySQLite{db: db}, nil
}

func (r *CalculationRepositorySQLite) Save(ctx context.Context, record domain.CalculationRecord) error {
	params, err := json.Marshal(record.Params)
	if err != nil {
		return fmt.Errorf("encode params: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO calculations (id, kind, params, result, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		record.ID, record.Kind, string(params), string(record.Result), record.CreatedAt.UTC(),
	)
	return err
}

func (r *CalculationRepositorySQLite) Recent(ctx context.Context, limit int) ([]domain.CalculationRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, kind, params, result, created_at
		FROM calculations
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CalculationRecord
	for rows.Next() {
		var (
			record         domain.CalculationRecord
			params, result string
			createdAt      time.Time
		)
		if err := rows.Scan(&record.ID, &record.Kind, &params, &result, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(params), &record.Params); err != nil {
			return nil, fmt.Errorf("decode params of %s: %w", record.ID, err)
		}
		record.Result = json.RawMessage(result)
		record.CreatedAt = createdAt
		out = append(out, record)
	}
	return out, rows.Err()
}

func (r *CalculationRepositorySQLite) Close() error { return r.db.Close() }
