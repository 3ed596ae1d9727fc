package valuation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"property_valuation/pkg/models"
)

func comps(prices ...int64) []models.ComparablePlot {
	out := make([]models.ComparablePlot, 0, len(prices))
	for _, p := range prices {
		out = append(out, models.ComparablePlot{Price: decimal.NewFromInt(p)})
	}
	return out
}

func TestComparableMarketValue(t *testing.T) {
	res := ComparableMarketValue(comps(900000, 1000000, 1100000), 5)
	assert.Equal(t, 3, res.Count)
	assert.InDelta(t, 1000000, res.AvgPrice, 1e-6)
	assert.InDelta(t, 1050000, res.MarketValue, 1e-6)
	assert.InDelta(t, 945000, ForcedSaleValue(res.MarketValue), 1e-6)
}

func TestComparableMarketValueEmpty(t *testing.T) {
	res := ComparableMarketValue(nil, 5)
	assert.Equal(t, 0.0, res.AvgPrice)
	assert.Equal(t, 0.0, res.MarketValue)
}

func TestNegativePeculiarity(t *testing.T) {
	assert.InDelta(t, 900000, ApplyPeculiarity(1000000, -10), 1e-6)
}

func TestForcedSaleRatio(t *testing.T) {
	for _, mv := range []float64{0, 1, 1050000, 123456.78, -5000} {
		assert.Equal(t, mv*0.9, ForcedSaleValue(mv))
	}
}

func TestLandAndBuild(t *testing.T) {
	res := LandAndBuild(500, 2000, 300, 8000, 10)
	assert.InDelta(t, 1000000, res.SubjectLandValue, 1e-6)
	assert.InDelta(t, 2400000, res.SubjectBuildValue, 1e-6)
	assert.InDelta(t, 3400000, res.ProjectedValue, 1e-6)
	assert.InDelta(t, 3740000, res.MarketValue, 1e-6)
}

func TestSayValues(t *testing.T) {
	assert.Equal(t, 1050000.0, MarketValuePreview(1050000))
	assert.Equal(t, 1000000.0, MarketValueRoundedForExport(1050000))
	assert.Equal(t, 3700000.0, MarketValueRoundedForExport(3740000))
	assert.Equal(t, 0.0, MarketValueRoundedForExport(99999))
}
