package valuation

import (
	"property_valuation/pkg/core/calc"
	"property_valuation/pkg/models"
)

// ForcedSaleRatio is the fixed share of market value realised in a forced sale.
const ForcedSaleRatio = 0.9

// ComparableResult holds the sales-comparison figures.
type ComparableResult struct {
	Count       int     `json:"count"`
	AvgPrice    float64 `json:"avgPrice"`
	MarketValue float64 `json:"marketValue"`
}

// LandAndBuildResult holds the land-and-build approach figures.
type LandAndBuildResult struct {
	SubjectLandValue  float64 `json:"subjectLandValue"`
	SubjectBuildValue float64 `json:"subjectBuildValue"`
	ProjectedValue    float64 `json:"projectedValue"`
	MarketValue       float64 `json:"marketValue"`
}

// AveragePrice is the mean comparable price, 0 for an empty set.
func AveragePrice(comparables []models.ComparablePlot) float64 {
	if len(comparables) == 0 {
		return 0
	}
	var sum float64
	for _, c := range comparables {
		sum += c.Price.InexactFloat64()
	}
	return sum / float64(len(comparables))
}

// ApplyPeculiarity adds a signed percentage adjustment for atypical site factors.
//
// FORMULA: value + value × peculiarity/100
func ApplyPeculiarity(value, peculiarityPerc float64) float64 {
	return value + value*(peculiarityPerc/100)
}

// ComparableMarketValue averages the selected comparables and adjusts for
// peculiarity. How the comparables were chosen does not matter here.
func ComparableMarketValue(comparables []models.ComparablePlot, peculiarityPerc float64) ComparableResult {
	avg := AveragePrice(comparables)
	return ComparableResult{
		Count:       len(comparables),
		AvgPrice:    avg,
		MarketValue: ApplyPeculiarity(avg, peculiarityPerc),
	}
}

// LandAndBuild values the site and the main building separately.
//
// FORMULA:
//
//	land      = extent × landRate
//	build     = GBA × buildRate
//	projected = land + build
//	market    = projected + projected × peculiarity/100
func LandAndBuild(extent, landRate, gba, buildRate, peculiarityPerc float64) LandAndBuildResult {
	land := extent * landRate
	build := gba * buildRate
	projected := land + build
	return LandAndBuildResult{
		SubjectLandValue:  land,
		SubjectBuildValue: build,
		ProjectedValue:    projected,
		MarketValue:       ApplyPeculiarity(projected, peculiarityPerc),
	}
}

// ForcedSaleValue applies the fixed 10% forced-sale discount.
func ForcedSaleValue(marketValue float64) float64 {
	return marketValue * ForcedSaleRatio
}

// MarketValuePreview is the say value shown in the interactive preview: the
// market value unrounded.
func MarketValuePreview(marketValue float64) float64 {
	return marketValue
}

// MarketValueRoundedForExport is the say value written to exported reports:
// the market value rounded down to the nearest 100 000.
func MarketValueRoundedForExport(marketValue float64) float64 {
	return calc.RoundDown(marketValue, -5)
}
