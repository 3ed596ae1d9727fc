// Package calc provides the deterministic aggregation, income and
// capitalisation calculations of the valuation engine.
// This file defines the shared value types.
package calc

import "fmt"

// =============================================================================
// PARALLEL FIGURES
// Every tenancy, parking and outgoing schedule is captured twice: as reported
// by the client and as assessed against the market.
// =============================================================================

// Both carries a client-reported and a market-assessed figure side by side.
type Both struct {
	Client float64 `json:"client"`
	Market float64 `json:"market"`
}

// Add returns the element-wise sum.
func (b Both) Add(o Both) Both {
	return Both{Client: b.Client + o.Client, Market: b.Market + o.Market}
}

// Scale multiplies both sides by f.
func (b Both) Scale(f float64) Both {
	return Both{Client: b.Client * f, Market: b.Market * f}
}

// RentalBasis selects how the market-side monthly rental of a tenant is derived.
type RentalBasis int

const (
	// RentalAsReported uses each tenant's own gross monthly rental on both sides.
	RentalAsReported RentalBasis = iota
	// RentalAtMarketRate derives the market side as area (per client) times the
	// market rate, so the report and the DCF read the same income.
	RentalAtMarketRate
)

func (b RentalBasis) String() string {
	if b == RentalAtMarketRate {
		return "market_rate"
	}
	return "as_reported"
}

// ParseRentalBasis accepts "as_reported" and "market_rate"; empty means
// as reported.
func ParseRentalBasis(s string) (RentalBasis, error) {
	switch s {
	case "", "as_reported":
		return RentalAsReported, nil
	case "market_rate":
		return RentalAtMarketRate, nil
	}
	return RentalAsReported, fmt.Errorf("unknown rental basis %q", s)
}

// OutgoingTotals splits outgoings into annual currency and raw percentage points.
type OutgoingTotals struct {
	Annual        Both `json:"annual"`
	PercentPoints Both `json:"percent_points"`
}
