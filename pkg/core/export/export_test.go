package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"property_valuation/pkg/core/valuation"
	"property_valuation/pkg/models"
)

func residential(name string, extent int64) *models.Plot {
	return &models.Plot{
		Name:           name,
		Classification: models.Residential,
		Extent:         decimal.NewFromInt(extent),
		StoredValues: []models.StoredValue{
			{Identifier: models.LandRate, Value: decimal.NewFromInt(2000)},
			{Identifier: models.NetAnnualEscalation, Value: decimal.NewFromInt(5)},
			{Identifier: models.DiscountRate, Value: decimal.NewFromInt(10)},
		},
		Tenants: []models.Tenant{
			{AreaPerClient: decimal.NewFromInt(100), AreaPerMarket: decimal.NewFromInt(100), GrossMonthlyRental: decimal.NewFromInt(1000)},
		},
	}
}

func TestComputeKeepsOrderAndIsolatesFailures(t *testing.T) {
	bad := residential("Bad", 100)
	bad.Classification = "Industrial"
	plots := []*models.Plot{residential("A", 500), bad, nil, residential("B", 250)}

	rows, err := Compute(context.Background(), plots, valuation.Options{}, 2, nil)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	require.NoError(t, rows[0].Err)
	assert.InDelta(t, 1000000, rows[0].Result.MarketValue, 1e-6)
	assert.Error(t, rows[1].Err)
	assert.Error(t, rows[2].Err)
	require.NoError(t, rows[3].Err)
	assert.InDelta(t, 500000, rows[3].Result.MarketValue, 1e-6)
}

func TestComputeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Compute(ctx, []*models.Plot{residential("A", 1)}, valuation.Options{}, 1, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFieldsUsesResultVocabulary(t *testing.T) {
	res, err := valuation.Value(residential("A", 500), valuation.Options{})
	require.NoError(t, err)
	fields, err := Fields(res)
	require.NoError(t, err)

	for _, c := range ExportColumns {
		assert.Contains(t, fields, c.Key, "column %q", c.Header)
	}
	assert.Equal(t, 1000000.0, fields["marketValue"])
	assert.Equal(t, "Residential", fields["classification"])
	assert.NotContains(t, fields, "dcf.periods")
}

func TestWorkbookReadBack(t *testing.T) {
	bad := residential("Bad", 1)
	bad.Classification = "Industrial"
	erf := residential("Erf 1", 500)
	erf.OutgoingRecords = []models.OutgoingRecord{
		{Identifier: "Rates", ItemType: models.Annual, UnitPerMarket: decimal.NewFromInt(1), RatePerMarket: decimal.NewFromInt(2400)},
		{Identifier: "Cleaning", ItemType: models.Monthly, UnitPerMarket: decimal.NewFromInt(1), RatePerMarket: decimal.NewFromInt(500)},
	}
	rows, err := Compute(context.Background(), []*models.Plot{erf, bad}, valuation.Options{}, 0, nil)
	require.NoError(t, err)

	data, err := Workbook(rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, DCFSheet, OutgoingsSheet}, f.GetSheetList())

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 3)
	assert.Equal(t, "Plot", summary[0][0])
	assert.Equal(t, ExportColumns[0].Header, summary[0][1])
	assert.Equal(t, "Error", summary[0][len(summary[0])-1])
	assert.Equal(t, "Erf 1", summary[1][0])
	assert.Equal(t, "Bad", summary[2][0])
	assert.NotEmpty(t, summary[2][len(summary[0])-1])

	col := 0
	for i, c := range ExportColumns {
		if c.Key == "marketValue" {
			col = i + 2
		}
	}
	cell, err := excelize.CoordinatesToCellName(col, 2)
	require.NoError(t, err)
	raw, err := f.GetCellValue(SummarySheet, cell, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "1000000", raw)

	amount, err := f.GetCellStyle(SummarySheet, cell)
	require.NoError(t, err)
	assert.NotZero(t, amount)
	for i := 0; i < amountColumnsFrom; i++ {
		c, err := excelize.CoordinatesToCellName(i+2, 2)
		require.NoError(t, err)
		style, err := f.GetCellStyle(SummarySheet, c)
		require.NoError(t, err)
		assert.NotEqual(t, amount, style, ExportColumns[i].Key)
	}
	assert.Equal(t, "grossAnnualIncome.market", ExportColumns[amountColumnsFrom].Key)

	dcf, err := f.GetRows(DCFSheet)
	require.NoError(t, err)
	assert.Len(t, dcf, 1+valuation.DCFHorizon)
	assert.Equal(t, "Erf 1", dcf[1][0])
	assert.Equal(t, "1", dcf[1][1])

	outgoings, err := f.GetRows(OutgoingsSheet)
	require.NoError(t, err)
	require.Len(t, outgoings, 3)
	assert.Equal(t, []string{"Erf 1", "Cleaning", "12"}, outgoings[1][:3])
	assert.Equal(t, []string{"Erf 1", "Rates", "1"}, outgoings[2][:3])
	raw, err = f.GetCellValue(OutgoingsSheet, "D2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "6000", raw)
}

func TestWorkbookEmpty(t *testing.T) {
	data, err := Workbook(nil)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Len(t, summary, 1)
}
