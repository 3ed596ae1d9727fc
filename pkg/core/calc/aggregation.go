package calc

import (
	"sort"
	"time"

	"property_valuation/pkg/models"
)

// =============================================================================
// TENANCY SCHEDULE
// =============================================================================

// TotalAreaPerBoth sums client and market lettable area independently.
//
// FORMULA: client = Σ areaPerClient ; market = Σ areaPerMarket
func TotalAreaPerBoth(tenants []models.Tenant) Both {
	var total Both
	for _, t := range tenants {
		total.Client += t.AreaPerClient.InexactFloat64()
		total.Market += t.AreaPerMarket.InexactFloat64()
	}
	return total
}

// TotalRentalPerBoth sums monthly rentals.
//
// FORMULA (client): Σ grossMonthlyRental
// FORMULA (market): Σ areaPerClient × ratePerMarket   (RentalAtMarketRate)
//
//	Σ grossMonthlyRental              (RentalAsReported)
//
// The result is monthly; callers annualise.
func TotalRentalPerBoth(tenants []models.Tenant, basis RentalBasis) Both {
	var total Both
	for _, t := range tenants {
		own := t.GrossMonthlyRental.InexactFloat64()
		total.Client += own
		if basis == RentalAtMarketRate {
			total.Market += t.AreaPerClient.InexactFloat64() * t.RatePerMarket.InexactFloat64()
		} else {
			total.Market += own
		}
	}
	return total
}

// GLA is the gross leasable area: the client-reported tenant area total.
func GLA(tenants []models.Tenant) float64 {
	return TotalAreaPerBoth(tenants).Client
}

// MonthlyRentalRate is rent per m² per month, 0 when there is no area.
func MonthlyRentalRate(monthlyRental, area float64) float64 {
	return SafeDiv(monthlyRental, area)
}

// WeightedAverageLeaseExpiry is the area-weighted remaining lease term in
// years as of asOf. Leases without an end date, or already expired, are skipped.
//
// FORMULA: WALE = Σ(area_i × yearsRemaining_i) / Σ area_i
func WeightedAverageLeaseExpiry(tenants []models.Tenant, asOf time.Time) float64 {
	var weighted, area float64
	for _, t := range tenants {
		if t.EndDate == nil || !t.EndDate.After(asOf) {
			continue
		}
		a := t.AreaPerClient.InexactFloat64()
		years := t.EndDate.Sub(asOf).Hours() / 24 / 365.25
		weighted += a * years
		area += a
	}
	return SafeDiv(weighted, area)
}

// =============================================================================
// PARKING
// =============================================================================

// TotalParkingPerBoth sums monthly parking income.
//
// FORMULA: client = Σ unitPerClient × ratePerClient ; market = Σ unitPerMarket × ratePerMarket
func TotalParkingPerBoth(records []models.ParkingRecord) Both {
	var total Both
	for _, p := range records {
		total.Client += p.UnitPerClient.InexactFloat64() * p.RatePerClient.InexactFloat64()
		total.Market += p.UnitPerMarket.InexactFloat64() * p.RatePerMarket.InexactFloat64()
	}
	return total
}

// TotalParking sums precomputed parking amounts.
func TotalParking(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// GrossRental annualises monthly rental and parking and combines them.
//
// FORMULA: annual = rental × 12 + parking × 12
func GrossRental(monthlyRental, monthlyParking Both) Both {
	return monthlyRental.Scale(12).Add(monthlyParking.Scale(12))
}

// =============================================================================
// OUTGOINGS
// =============================================================================

// AnnualOutgoingsPerBoth totals outgoing lines by kind.
//
// FORMULA:
//
//	Monthly       → unit × rate × 12   (into Annual)
//	Annual        → unit × rate        (into Annual)
//	PercentOfBase → unit × rate        (into PercentPoints, applied later)
func AnnualOutgoingsPerBoth(records []models.OutgoingRecord) OutgoingTotals {
	var totals OutgoingTotals
	for _, o := range records {
		line := Both{
			Client: o.UnitPerClient.InexactFloat64() * o.RatePerClient.InexactFloat64(),
			Market: o.UnitPerMarket.InexactFloat64() * o.RatePerMarket.InexactFloat64(),
		}
		if o.ItemType.IsPercentage() {
			totals.PercentPoints = totals.PercentPoints.Add(line)
			continue
		}
		totals.Annual = totals.Annual.Add(line.Scale(o.ItemType.PeriodsPerYear()))
	}
	return totals
}

// ApplyPercentOutgoings resolves percentage outgoings against a base income.
//
// FORMULA: outgoings = annual + percentPoints / 100 × base
func ApplyPercentOutgoings(totals OutgoingTotals, base Both) Both {
	return Both{
		Client: totals.Annual.Client + totals.PercentPoints.Client/100*base.Client,
		Market: totals.Annual.Market + totals.PercentPoints.Market/100*base.Market,
	}
}

// SortOutgoingsForDisplay returns a copy ordered 12, 1, %. Lines of the same
// kind keep their input order. Computation never depends on this order.
func SortOutgoingsForDisplay(records []models.OutgoingRecord) []models.OutgoingRecord {
	sorted := make([]models.OutgoingRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ItemType.DisplayOrder() < sorted[j].ItemType.DisplayOrder()
	})
	return sorted
}

// MonthlyOutgoings is the outgoings rate per m² per month.
//
// FORMULA: totalArea ? annual / 12 / totalArea : 0
func MonthlyOutgoings(annual, totalArea float64) float64 {
	if totalArea == 0 {
		return 0
	}
	return annual / 12 / totalArea
}

// =============================================================================
// BUILDING AREA
// =============================================================================

// GBA is the gross building area: Σ size over bull rows.
func GBA(records []models.GrcRecord) float64 {
	var total float64
	for _, r := range records {
		if r.Bull {
			total += r.Size.InexactFloat64()
		}
	}
	return total
}
