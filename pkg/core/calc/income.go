package calc

// =============================================================================
// NET INCOME
// =============================================================================

// NetAnnualRentalIncome converts gross annual income into net income.
//
// FORMULA: gross × (1 − vacancy/100) − outgoings + recovery
//
// Where:
//   - vacancy = vacancy allowance in percent
//   - recovery = outgoings recovered from tenants; it increases income
//
// totalArea does not enter the formula; it is accepted so callers pass the
// same arguments they use for MonthlyOutgoings.
func NetAnnualRentalIncome(grossAnnual, outgoingsAnnual, vacancyPercentage, recoveryFigure, totalArea float64) float64 {
	effectiveGross := grossAnnual * (1 - vacancyPercentage/100)
	return effectiveGross - outgoingsAnnual + recoveryFigure
}

// NetAnnualRentalIncomePerBoth applies NetAnnualRentalIncome to each side.
func NetAnnualRentalIncomePerBoth(grossAnnual, outgoingsAnnual Both, vacancyPercentage, recoveryFigure float64, totalArea Both) Both {
	return Both{
		Client: NetAnnualRentalIncome(grossAnnual.Client, outgoingsAnnual.Client, vacancyPercentage, recoveryFigure, totalArea.Client),
		Market: NetAnnualRentalIncome(grossAnnual.Market, outgoingsAnnual.Market, vacancyPercentage, recoveryFigure, totalArea.Market),
	}
}

// OutgoingsIncomeRatio is outgoings as a percentage of gross income.
// Diagnostic only.
//
// FORMULA: gross ? outgoings / gross × 100 : 0
func OutgoingsIncomeRatio(outgoingsAnnual, grossAnnual float64) float64 {
	if grossAnnual == 0 {
		return 0
	}
	return outgoingsAnnual / grossAnnual * 100
}

// =============================================================================
// CAPITALISATION
// =============================================================================

// CapitalisedValue capitalises net income in perpetuity.
//
// FORMULA: capRate ? netIncome / (capRate/100) : 0
func CapitalisedValue(netAnnualIncome, capRatePercent float64) float64 {
	if capRatePercent == 0 {
		return 0
	}
	return netAnnualIncome / (capRatePercent / 100)
}

// CapitalisedFigure is the capitalised value per m², rounded to cents.
//
// FORMULA: totalArea ? round2(capitalisedValue / totalArea) : 0
func CapitalisedFigure(capitalisedValue, totalArea float64) float64 {
	if totalArea == 0 {
		return 0
	}
	return Round2(capitalisedValue / totalArea)
}
