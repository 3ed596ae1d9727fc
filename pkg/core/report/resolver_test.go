package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property_valuation/pkg/core/valuation"
	"property_valuation/pkg/models"
)

func sampleInput() ReportInput {
	return ReportInput{
		Plot: &models.Plot{
			Name:           "Lot 12",
			Address:        "4 Harbour Road",
			ClientName:     "Acme Holdings",
			Extent:         decimal.NewFromInt(2000),
			InspectionDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		},
		Result: valuation.Result{
			Classification:       models.Commercial,
			MarketValue:          1050000,
			SayMarketValue:       1050000,
			SayMarketValueExport: 1000000,
			ForcedSaleValue:      945000,
		},
	}
}

func TestResolvePreviewAndExportSayValues(t *testing.T) {
	preview, err := Resolve(sampleInput(), Preview)
	require.NoError(t, err)
	assert.Equal(t, "1,050,000.00", preview["sayMarketValue"])
	assert.Equal(t, "one million fifty thousand", preview["sayMarketValueInWords"])

	export, err := Resolve(sampleInput(), Export)
	require.NoError(t, err)
	assert.Equal(t, "1,000,000.00", export["sayMarketValue"])
	assert.Equal(t, "one million", export["sayMarketValueInWords"])
}

func TestResolvePlotMetadata(t *testing.T) {
	table, err := Resolve(sampleInput(), Preview)
	require.NoError(t, err)
	assert.Equal(t, "Lot 12", table["plotName"])
	assert.Equal(t, "Acme Holdings", table["clientName"])
	assert.Equal(t, "2,000.00", table["plotExtent"])
	assert.Equal(t, "two thousand", table["plotExtentInWords"])
	assert.Equal(t, "5 March 2024", table["inspectionDate"])
	assert.Equal(t, "", table["analysisDate"])
	assert.Equal(t, "945,000.00", table["forcedSaleValue"])
	assert.Equal(t, "nine hundred forty-five thousand", table["forcedSaleValueInWords"])
}

func TestResolveOutgoingsAndRentalRate(t *testing.T) {
	in := sampleInput()
	in.Result.MonthlyRentalRate = 85.5
	in.Result.Outgoings = []valuation.OutgoingLine{
		{Identifier: "Cleaning", Kind: models.Monthly, Annual: 6000},
		{Identifier: "Management", Kind: models.PercentOfBase, Annual: 12500.25},
	}

	table, err := Resolve(in, Preview)
	require.NoError(t, err)
	assert.Equal(t, "85.50", table["monthlyRentalRate"])
	assert.Equal(t, "2", table["outgoingCount"])
	assert.Equal(t, "Cleaning", table["outgoing1Name"])
	assert.Equal(t, "6,000.00", table["outgoing1Amount"])
	assert.Equal(t, "Management", table["outgoing2Name"])
	assert.Equal(t, "12,500.25", table["outgoing2Amount"])
	assert.NotContains(t, table, "outgoing3Name")
}

func TestResolveWordsOverflowFails(t *testing.T) {
	in := sampleInput()
	in.Result.MarketValue = 6e9
	_, err := Resolve(in, Preview)
	assert.ErrorIs(t, err, ErrAmountTooLarge)
	assert.Contains(t, err.Error(), "marketValueInWords")
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("EXPORT")
	require.NoError(t, err)
	assert.Equal(t, Export, m)
	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, Preview, m)
	_, err = ParseMode("pdf")
	assert.Error(t, err)
}
