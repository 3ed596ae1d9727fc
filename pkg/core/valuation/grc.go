package valuation

import (
	"property_valuation/pkg/core/calc"
	"property_valuation/pkg/models"
)

// GRCInput collects the replacement cost schedule of a plot.
type GRCInput struct {
	Records      []models.GrcRecord
	Fees         []models.GrcFeeRecord
	Depreciation []models.GrcDeprRecord
}

// AdjustmentLine is one fee or depreciation row resolved to an amount.
type AdjustmentLine struct {
	Identifier string  `json:"identifier"`
	Perc       float64 `json:"perc"`
	Amount     float64 `json:"amount"`
}

// GRCResult holds the gross replacement cost build-up.
type GRCResult struct {
	GrcTotal  float64          `json:"grcTotal"`
	GBA       float64          `json:"gba"`
	FeeLines  []AdjustmentLine `json:"feeLines"`
	NetTotal  float64          `json:"netTotal"`
	DeprLines []AdjustmentLine `json:"deprLines"`
	DeprTotal float64          `json:"deprTotal"`
}

// CalculateGRC builds the replacement cost from size×rate lines, fee rows and
// depreciation rows.
//
// Fee and depreciation rows are each taken against the raw GRC total and
// rounded to cents per row; they never compound on one another.
//
// FORMULA:
//
//	grcTotal  = Σ size × rate
//	netTotal  = grcTotal + Σ round2(fee%/100 × grcTotal)
//	deprTotal = netTotal − Σ round2(depr%/100 × grcTotal)
//
// With no depreciation rows a single zero-percent row is reported.
func CalculateGRC(input GRCInput) GRCResult {
	var grcTotal float64
	for _, r := range input.Records {
		grcTotal += r.Size.InexactFloat64() * r.Rate.InexactFloat64()
	}

	res := GRCResult{
		GrcTotal: grcTotal,
		GBA:      calc.GBA(input.Records),
		NetTotal: grcTotal,
	}

	for _, fee := range input.Fees {
		line := percentLine(fee.Identifier, fee.Perc.InexactFloat64(), grcTotal)
		res.FeeLines = append(res.FeeLines, line)
		res.NetTotal += line.Amount
	}

	res.DeprTotal = res.NetTotal
	if len(input.Depreciation) == 0 {
		res.DeprLines = []AdjustmentLine{{}}
		return res
	}
	for _, depr := range input.Depreciation {
		line := percentLine(depr.Identifier, depr.Perc.InexactFloat64(), grcTotal)
		res.DeprLines = append(res.DeprLines, line)
		res.DeprTotal -= line.Amount
	}
	return res
}

func percentLine(identifier string, perc, base float64) AdjustmentLine {
	return AdjustmentLine{
		Identifier: identifier,
		Perc:       perc,
		Amount:     calc.Round2(perc / 100 * base),
	}
}
