package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property_valuation/pkg/core/calc"
	"property_valuation/pkg/core/valuation"
	"property_valuation/pkg/models"
)

func TestValuationRepoFileFallback(t *testing.T) {
	ctx := context.Background()
	repo := NewValuationRepo(nil, t.TempDir(), nil)
	id := uuid.New()

	missing, err := repo.Load(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, missing)
	assert.False(t, repo.Exists(ctx, id))

	rec := ValuationRecord{
		PlotID:   id,
		PlotName: "Erf 12",
		Result: valuation.Result{
			Classification:    models.Commercial,
			GrossAnnualIncome: calc.Both{Client: 120000, Market: 132000},
			MarketValue:       1234567.5,
			GRC: valuation.GRCResult{
				DeprLines: []valuation.AdjustmentLine{{Identifier: "age", Perc: 10, Amount: 500}},
			},
		},
		ComputedAt: time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Save(ctx, rec))
	assert.True(t, repo.Exists(ctx, id))

	got, err := repo.Load(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.PlotName, got.PlotName)
	assert.Equal(t, rec.Result.MarketValue, got.Result.MarketValue)
	assert.Equal(t, rec.Result.GrossAnnualIncome, got.Result.GrossAnnualIncome)
	assert.Equal(t, rec.Result.GRC.DeprLines, got.Result.GRC.DeprLines)
	assert.True(t, rec.ComputedAt.Equal(got.ComputedAt))

	rec.Result.MarketValue = 1
	require.NoError(t, repo.Save(ctx, rec))
	got, err = repo.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.Result.MarketValue)
}

func TestTypedNilPoolFallsBackToFiles(t *testing.T) {
	var p *pgxpool.Pool
	repo := NewValuationRepo(p, t.TempDir(), nil)
	assert.Nil(t, repo.db)

	_, err := NewPlotRepo(p).Load(context.Background(), uuid.New())
	if GetPool() == nil {
		assert.ErrorContains(t, err, "not initialized")
	}
}

func TestParseInto(t *testing.T) {
	var a, b decimal.Decimal
	require.NoError(t, parseInto([]string{"12.50", ""}, &a, &b))
	assert.True(t, a.Equal(decimal.RequireFromString("12.5")))
	assert.True(t, b.IsZero())

	assert.Error(t, parseInto([]string{"abc"}, &a))
	assert.Error(t, parseInto([]string{"1", "2"}, &a))
}
