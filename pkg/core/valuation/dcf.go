package valuation

import (
	"math"

	"property_valuation/pkg/core/calc"
)

const (
	// DCFHorizon is the fixed number of annual periods projected.
	DCFHorizon = 10
	// TerminalDiscountExponent discounts the year-10 capitalised value as of
	// the start of year 10.
	TerminalDiscountExponent = 9
)

// DCFInput encapsulates all inputs required for the 10-year income projection.
type DCFInput struct {
	NetAnnualRentalIncome float64 // Year 1 income
	NetAnnualEscalation   float64 // % per year
	DiscountRate          float64 // %
	LastCapitalisedPerc   float64 // % used to capitalise year 10
}

// DCFPeriod is one projected year.
type DCFPeriod struct {
	Year           int     `json:"year"`
	Income         float64 `json:"income"`
	CashFlow       float64 `json:"cashFlow"` // income, or the capitalised value in year 10
	DiscountFactor float64 `json:"discountFactor"`
	PresentValue   float64 `json:"presentValue"`
}

// DCFResult holds the projection and its present value.
type DCFResult struct {
	Periods           []DCFPeriod `json:"periods"`
	Year10Capitalised float64     `json:"year10Capitalised"`
	MarketValue       float64     `json:"marketValue"`
}

// ProjectDCF escalates income for ten years and discounts it.
//
// Year 1 is the net annual rental income; each later year escalates the one
// before it. Year n < 10 is discounted by (1/(1+r))^n. Year 10 is capitalised
// in perpetuity at LastCapitalisedPerc and discounted by (1/(1+r))^9.
// The market value is the sum of the present values rounded to cents. A
// discount rate of -100% makes every discount factor 0.
func ProjectDCF(input DCFInput) DCFResult {
	periods := make([]DCFPeriod, 0, DCFHorizon)
	base := calc.SafeDiv(1, 1+input.DiscountRate/100)
	escalation := 1 + input.NetAnnualEscalation/100

	var year10Capitalised, total float64
	income := input.NetAnnualRentalIncome
	for year := 1; year <= DCFHorizon; year++ {
		if year > 1 {
			income *= escalation
		}

		cashFlow := income
		exponent := float64(year)
		if year == DCFHorizon {
			year10Capitalised = calc.CapitalisedValue(income, input.LastCapitalisedPerc)
			cashFlow = year10Capitalised
			exponent = TerminalDiscountExponent
		}

		factor := math.Pow(base, exponent)
		pv := cashFlow * factor
		total += pv

		periods = append(periods, DCFPeriod{
			Year:           year,
			Income:         income,
			CashFlow:       cashFlow,
			DiscountFactor: factor,
			PresentValue:   pv,
		})
	}

	return DCFResult{
		Periods:           periods,
		Year10Capitalised: year10Capitalised,
		MarketValue:       calc.Round2(total),
	}
}
