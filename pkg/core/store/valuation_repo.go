package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"property_valuation/pkg/core/valuation"
)

// ValuationRecord is one persisted valuation run.
type ValuationRecord struct {
	PlotID     uuid.UUID        `json:"plot_id"`
	PlotName   string           `json:"plot_name"`
	Result     valuation.Result `json:"result"`
	ComputedAt time.Time        `json:"computed_at"`
}

// ValuationRepo stores computed results.
// Supports Hybrid Vault: DB (Primary) + File System (Fallback/Local).
//
// Schema assumption:
//
//	CREATE TABLE IF NOT EXISTS valuation_results (
//	  plot_id UUID PRIMARY KEY,
//	  plot_name TEXT,
//	  result_json JSONB,
//	  computed_at TIMESTAMPTZ
//	);
type ValuationRepo struct {
	db      Querier
	fileDir string
	logger  *zap.Logger
}

// NewValuationRepo creates a repository. With a nil db, results go to JSON
// files under dir (default .cache/valuations).
func NewValuationRepo(db Querier, dir string, logger *zap.Logger) *ValuationRepo {
	if logger == nil {
		logger = zap.NewNop()
	}
	db = normalize(db)
	if db == nil && dir == "" {
		dir = filepath.Join(".cache", "valuations")
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Warn("valuation cache dir unavailable", zap.String("dir", dir), zap.Error(err))
		}
	}
	return &ValuationRepo{db: db, fileDir: dir, logger: logger}
}

// Save upserts the record into the database and, when configured, the file
// cache.
func (r *ValuationRepo) Save(ctx context.Context, rec ValuationRecord) error {
	if rec.ComputedAt.IsZero() {
		rec.ComputedAt = time.Now().UTC()
	}

	if r.db != nil {
		resultJSON, err := json.Marshal(rec.Result)
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		_, err = r.db.Exec(ctx, `
			INSERT INTO valuation_results (plot_id, plot_name, result_json, computed_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (plot_id)
			DO UPDATE SET
				plot_name = EXCLUDED.plot_name,
				result_json = EXCLUDED.result_json,
				computed_at = EXCLUDED.computed_at
		`, rec.PlotID, rec.PlotName, resultJSON, rec.ComputedAt)
		if err != nil {
			return fmt.Errorf("failed to save valuation: %w", err)
		}
	}

	if r.fileDir != "" {
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		if err := os.WriteFile(r.path(rec.PlotID), data, 0644); err != nil {
			return fmt.Errorf("failed to save to file cache: %w", err)
		}
	}

	r.logger.Debug("valuation saved", zap.String("plot_id", rec.PlotID.String()))
	return nil
}

// Load returns the latest record for a plot, or nil on a miss.
func (r *ValuationRepo) Load(ctx context.Context, plotID uuid.UUID) (*ValuationRecord, error) {
	if r.db != nil {
		rec := ValuationRecord{PlotID: plotID}
		var resultJSON []byte
		err := r.db.QueryRow(ctx, `
			SELECT plot_name, result_json, computed_at
			FROM valuation_results
			WHERE plot_id = $1
		`, plotID).Scan(&rec.PlotName, &resultJSON, &rec.ComputedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load valuation: %w", err)
		}
		if err := json.Unmarshal(resultJSON, &rec.Result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stored result: %w", err)
		}
		return &rec, nil
	}

	if r.fileDir == "" {
		return nil, nil
	}
	data, err := os.ReadFile(r.path(plotID))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file cache: %w", err)
	}
	var rec ValuationRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal file cache: %w", err)
	}
	return &rec, nil
}

// Exists reports whether a result is stored for the plot.
func (r *ValuationRepo) Exists(ctx context.Context, plotID uuid.UUID) bool {
	if r.db != nil {
		var one int
		err := r.db.QueryRow(ctx, `SELECT 1 FROM valuation_results WHERE plot_id = $1`, plotID).Scan(&one)
		return err == nil
	}
	if r.fileDir != "" {
		_, err := os.Stat(r.path(plotID))
		return err == nil
	}
	return false
}

func (r *ValuationRepo) path(plotID uuid.UUID) string {
	return filepath.Join(r.fileDir, plotID.String()+".json")
}
