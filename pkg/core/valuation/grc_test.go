package valuation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property_valuation/pkg/models"
)

func grcOf100k() []models.GrcRecord {
	return []models.GrcRecord{
		{Identifier: "main", Size: decimal.NewFromInt(100), Rate: decimal.NewFromInt(800), Bull: true},
		{Identifier: "boundary wall", Size: decimal.NewFromInt(40), Rate: decimal.NewFromInt(500)},
	}
}

func TestGRCFeesDoNotCompound(t *testing.T) {
	res := CalculateGRC(GRCInput{
		Records: grcOf100k(),
		Fees: []models.GrcFeeRecord{
			{Identifier: "professional", Perc: decimal.NewFromInt(10)},
			{Identifier: "contingency", Perc: decimal.NewFromInt(5)},
		},
	})
	assert.InDelta(t, 100000, res.GrcTotal, 1e-9)
	assert.InDelta(t, 115000, res.NetTotal, 1e-9)
	assert.NotEqual(t, 100000*1.10*1.05, res.NetTotal)
	assert.InDelta(t, 100, res.GBA, 1e-9)
}

func TestGRCDepreciationAgainstRawTotal(t *testing.T) {
	res := CalculateGRC(GRCInput{
		Records:      grcOf100k(),
		Fees:         []models.GrcFeeRecord{{Perc: decimal.NewFromInt(10)}, {Perc: decimal.NewFromInt(5)}},
		Depreciation: []models.GrcDeprRecord{{Identifier: "structure", Perc: decimal.NewFromInt(20)}},
	})
	require.Len(t, res.DeprLines, 1)
	assert.InDelta(t, 20000, res.DeprLines[0].Amount, 1e-9)
	assert.InDelta(t, 95000, res.DeprTotal, 1e-9)
}

func TestGRCNoDepreciationRows(t *testing.T) {
	res := CalculateGRC(GRCInput{
		Records: grcOf100k(),
		Fees:    []models.GrcFeeRecord{{Perc: decimal.NewFromInt(10)}},
	})
	require.Len(t, res.DeprLines, 1)
	assert.Equal(t, AdjustmentLine{}, res.DeprLines[0])
	assert.Equal(t, res.NetTotal, res.DeprTotal)
}

func TestGRCRowsRoundedToCents(t *testing.T) {
	res := CalculateGRC(GRCInput{
		Records: []models.GrcRecord{{Size: decimal.NewFromInt(1), Rate: decimal.NewFromFloat(100.01)}},
		Fees:    []models.GrcFeeRecord{{Perc: decimal.NewFromInt(33)}},
	})
	assert.Equal(t, 33.0, res.FeeLines[0].Amount)
}
