package valuation

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property_valuation/pkg/models"
)

func sv(id models.StoredValueID, v float64) models.StoredValue {
	return models.StoredValue{Identifier: id, Value: decimal.NewFromFloat(v)}
}

func commercialPlot() *models.Plot {
	return &models.Plot{
		Classification: models.Commercial,
		Extent:         decimal.NewFromInt(2000),
		Tenants: []models.Tenant{
			{AreaPerClient: decimal.NewFromInt(1000), AreaPerMarket: decimal.NewFromInt(1000), GrossMonthlyRental: decimal.NewFromInt(50000)},
		},
		StoredValues: []models.StoredValue{
			sv(models.VacancyPercentage, 0),
			sv(models.RecoveryFigure, 0),
			sv(models.CapitalisationRate, 10),
			sv(models.Peculiarity, 5),
		},
		Comparables: comps(900000, 1000000, 1100000),
	}
}

func TestValueCommercialScenario(t *testing.T) {
	res, err := Value(commercialPlot(), Options{})
	require.NoError(t, err)

	assert.InDelta(t, 600000, res.GrossAnnualIncome.Market, 1e-6)
	assert.InDelta(t, 600000, res.NetAnnualRentalIncome, 1e-6)
	assert.InDelta(t, 6000000, res.CapitalisedValue, 1e-6)
	assert.Equal(t, 6000.0, res.CapitalisedFigure)
	assert.InDelta(t, 1000, res.GLA, 1e-9)

	assert.InDelta(t, 1000000, res.Comparables.AvgPrice, 1e-6)
	assert.InDelta(t, 1050000, res.MarketValue, 1e-6)
	assert.InDelta(t, 945000, res.ForcedSaleValue, 1e-6)
	assert.InDelta(t, 1050000, res.SayMarketValue, 1e-6)
	assert.InDelta(t, 1000000, res.SayMarketValueExport, 1e-6)
	assert.InDelta(t, res.CapitalisedValue, res.CapitalValue, 1e-6)
}

func TestValueListsOutgoingsInDisplayOrder(t *testing.T) {
	plot := commercialPlot()
	plot.OutgoingRecords = []models.OutgoingRecord{
		{Identifier: "Management", ItemType: models.PercentOfBase, UnitPerMarket: decimal.NewFromInt(2), RatePerMarket: decimal.NewFromInt(1)},
		{Identifier: "Insurance", ItemType: models.Annual, UnitPerMarket: decimal.NewFromInt(1), RatePerMarket: decimal.NewFromInt(12000)},
		{Identifier: "Cleaning", ItemType: models.Monthly, UnitPerMarket: decimal.NewFromInt(1), RatePerMarket: decimal.NewFromInt(500)},
	}

	res, err := Value(plot, Options{})
	require.NoError(t, err)

	assert.InDelta(t, 50, res.MonthlyRentalRate, 1e-9)
	require.Len(t, res.Outgoings, 3)
	assert.Equal(t, "Cleaning", res.Outgoings[0].Identifier)
	assert.Equal(t, 6000.0, res.Outgoings[0].Annual)
	assert.Equal(t, "Insurance", res.Outgoings[1].Identifier)
	assert.Equal(t, 12000.0, res.Outgoings[1].Annual)
	assert.Equal(t, "Management", res.Outgoings[2].Identifier)
	assert.Equal(t, models.PercentOfBase, res.Outgoings[2].Kind)
	assert.Equal(t, 12000.0, res.Outgoings[2].Annual)

	var total float64
	for _, o := range res.Outgoings {
		total += o.Annual
	}
	assert.InDelta(t, res.OutgoingsAnnual.Market, total, 1e-6)
}

func TestValueResidentialUsesLandAndBuild(t *testing.T) {
	plot := &models.Plot{
		Classification: models.Residential,
		Extent:         decimal.NewFromInt(500),
		GrcRecords: []models.GrcRecord{
			{Size: decimal.NewFromInt(100), Rate: decimal.NewFromInt(800), Bull: true},
			{Size: decimal.NewFromInt(40), Rate: decimal.NewFromInt(500)},
		},
		GrcFeeRecords:  []models.GrcFeeRecord{{Perc: decimal.NewFromInt(10)}, {Perc: decimal.NewFromInt(5)}},
		GrcDeprRecords: []models.GrcDeprRecord{{Perc: decimal.NewFromInt(20)}},
		StoredValues: []models.StoredValue{
			sv(models.LandRate, 2000),
			sv(models.BuildRate, 8000),
			sv(models.Peculiarity, 0),
		},
		Comparables: comps(5000000),
	}

	res, err := Value(plot, Options{})
	require.NoError(t, err)

	assert.InDelta(t, 1000000, res.LandValue, 1e-6)
	assert.InDelta(t, 100, res.GBA, 1e-9)
	assert.InDelta(t, 1000000+800000, res.MarketValue, 1e-6)
	assert.InDelta(t, 5000000, res.Comparables.MarketValue, 1e-6)
	assert.InDelta(t, 1000000+95000, res.CapitalValue, 1e-6)
}

func TestValueEmptyPlotIsAllZero(t *testing.T) {
	res, err := Value(&models.Plot{Classification: models.Commercial}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.MarketValue)
	assert.Equal(t, 0.0, res.CapitalisedFigure)
	assert.Equal(t, 0.0, res.MonthlyOutgoings)
	assert.Equal(t, 0.0, res.DCFMarketValue)
	assert.Equal(t, 0.0, res.ReplacementCost)
}

func TestValueRejectsBadInput(t *testing.T) {
	_, err := Value(nil, Options{})
	assert.Error(t, err)

	_, err = Value(&models.Plot{Classification: "Industrial"}, Options{})
	assert.Error(t, err)

	plot := commercialPlot()
	plot.StoredValues = append(plot.StoredValues, sv(models.CapitalisationRate, 8))
	_, err = Value(plot, Options{})
	assert.ErrorIs(t, err, models.ErrDuplicateStoredValue)
}

func TestValueConcurrentCallsAgree(t *testing.T) {
	plot := commercialPlot()
	want, err := Value(plot, Options{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]Result, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Value(plot, Options{})
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		assert.Equal(t, want.MarketValue, got.MarketValue)
		assert.Equal(t, want.DCFMarketValue, got.DCFMarketValue)
	}
}

func TestSummarize(t *testing.T) {
	res, err := Value(commercialPlot(), Options{})
	require.NoError(t, err)
	lines := Summarize(res)
	require.NotEmpty(t, lines)
	assert.Equal(t, "Market Value", lines[0].ModelName)
	assert.Equal(t, res.MarketValue, lines[0].Value)
}
