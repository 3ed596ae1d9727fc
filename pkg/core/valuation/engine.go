package valuation

import (
	"fmt"
	"time"

	"property_valuation/pkg/core/calc"
	"property_valuation/pkg/models"
)

// Options tunes a valuation run.
type Options struct {
	// RentalBasis selects how market-side rentals are derived.
	RentalBasis calc.RentalBasis
	// AsOf is the date leases are measured from. Defaults to the plot's
	// analysis date.
	AsOf time.Time
}

// Result is the computed bundle for one plot. The json names are the stable
// vocabulary report templates and export columns bind to.
type Result struct {
	Classification models.Classification `json:"classification"`

	GLA       float64   `json:"gla"`
	GBA       float64   `json:"gba"`
	TotalArea calc.Both `json:"totalArea"`
	WALE      float64   `json:"wale"`

	MonthlyRental         calc.Both      `json:"monthlyRental"`
	MonthlyRentalRate     float64        `json:"monthlyRentalRate"`
	MonthlyParking        calc.Both      `json:"monthlyParking"`
	GrossAnnualIncome     calc.Both      `json:"grossAnnualIncome"`
	OutgoingsAnnual       calc.Both      `json:"outgoingsAnnual"`
	Outgoings             []OutgoingLine `json:"outgoings"`
	OutgoingsIncomeRatio  float64        `json:"outgoingsIncomeRatio"`
	MonthlyOutgoings      float64        `json:"monthlyOutgoings"`
	NetIncomePerBoth      calc.Both      `json:"netAnnualRentalIncomePerBoth"`
	NetAnnualRentalIncome float64        `json:"netAnnualRentalIncome"`
	CapitalisedValue      float64        `json:"capitalisedValue"`
	CapitalisedFigure     float64        `json:"capitalisedFigure"`

	DCF            DCFResult `json:"dcf"`
	DCFMarketValue float64   `json:"dcfMarketValue"`

	Comparables  ComparableResult   `json:"comparables"`
	LandAndBuild LandAndBuildResult `json:"landAndBuild"`

	MarketValue          float64 `json:"marketValue"`
	SayMarketValue       float64 `json:"sayMarketValue"`
	SayMarketValueExport float64 `json:"sayMarketValueExport"`
	ForcedSaleValue      float64 `json:"forcedSaleValue"`
	LandValue            float64 `json:"landValue"`

	GRC          GRCResult `json:"grc"`
	CapitalValue float64   `json:"capitalValue"`

	Insurance       InsuranceResult `json:"insurance"`
	ReplacementCost float64         `json:"replacementCost"`
}

// OutgoingLine is one outgoing record annualised on the market side.
// Percentage lines are resolved against the market gross annual income.
type OutgoingLine struct {
	Identifier string              `json:"identifier"`
	Kind       models.OutgoingKind `json:"kind"`
	Annual     float64             `json:"annual"`
}

// outgoingLines lists records in display order: monthly, annual, then
// percentage lines.
func outgoingLines(records []models.OutgoingRecord, grossMarket float64) []OutgoingLine {
	sorted := calc.SortOutgoingsForDisplay(records)
	lines := make([]OutgoingLine, 0, len(sorted))
	for _, o := range sorted {
		amount := o.UnitPerMarket.InexactFloat64() * o.RatePerMarket.InexactFloat64()
		if o.ItemType.IsPercentage() {
			amount = amount / 100 * grossMarket
		} else {
			amount *= o.ItemType.PeriodsPerYear()
		}
		lines = append(lines, OutgoingLine{Identifier: o.Identifier, Kind: o.ItemType, Annual: calc.Round2(amount)})
	}
	return lines
}

// Value runs every calculator over a plot. It only reads the plot and keeps
// no state between calls, so concurrent calls are safe.
//
// Headline income figures use the market side; per-m² figures use the
// client-reported lettable area (GLA).
func Value(plot *models.Plot, opts Options) (Result, error) {
	if plot == nil {
		return Result{}, fmt.Errorf("nil plot")
	}
	sv, err := models.NewStoredValues(plot.StoredValues)
	if err != nil {
		return Result{}, fmt.Errorf("stored values for plot %s: %w", plot.ID, err)
	}

	asOf := opts.AsOf
	if asOf.IsZero() {
		asOf = plot.AnalysisDate
	}

	res := Result{Classification: plot.Classification}

	// Income
	res.TotalArea = calc.TotalAreaPerBoth(plot.Tenants)
	res.GLA = res.TotalArea.Client
	res.WALE = calc.WeightedAverageLeaseExpiry(plot.Tenants, asOf)
	res.MonthlyRental = calc.TotalRentalPerBoth(plot.Tenants, opts.RentalBasis)
	res.MonthlyRentalRate = calc.MonthlyRentalRate(res.MonthlyRental.Market, res.GLA)
	res.MonthlyParking = calc.TotalParkingPerBoth(plot.ParkingRecords)
	res.GrossAnnualIncome = calc.GrossRental(res.MonthlyRental, res.MonthlyParking)

	outgoings := calc.AnnualOutgoingsPerBoth(plot.OutgoingRecords)
	res.OutgoingsAnnual = calc.ApplyPercentOutgoings(outgoings, res.GrossAnnualIncome)
	res.Outgoings = outgoingLines(plot.OutgoingRecords, res.GrossAnnualIncome.Market)
	res.OutgoingsIncomeRatio = calc.OutgoingsIncomeRatio(res.OutgoingsAnnual.Market, res.GrossAnnualIncome.Market)
	res.MonthlyOutgoings = calc.MonthlyOutgoings(res.OutgoingsAnnual.Market, res.GLA)

	res.NetIncomePerBoth = calc.NetAnnualRentalIncomePerBoth(
		res.GrossAnnualIncome,
		res.OutgoingsAnnual,
		sv.Float(models.VacancyPercentage),
		sv.Float(models.RecoveryFigure),
		res.TotalArea,
	)
	res.NetAnnualRentalIncome = res.NetIncomePerBoth.Market
	res.CapitalisedValue = calc.CapitalisedValue(res.NetAnnualRentalIncome, sv.Float(models.CapitalisationRate))
	res.CapitalisedFigure = calc.CapitalisedFigure(res.CapitalisedValue, res.GLA)

	res.DCF = ProjectDCF(DCFInput{
		NetAnnualRentalIncome: res.NetAnnualRentalIncome,
		NetAnnualEscalation:   sv.Float(models.NetAnnualEscalation),
		DiscountRate:          sv.Float(models.DiscountRate),
		LastCapitalisedPerc:   sv.Float(models.LastCapitalisedPerc),
	})
	res.DCFMarketValue = res.DCF.MarketValue

	// Cost
	res.GRC = CalculateGRC(GRCInput{
		Records:      plot.GrcRecords,
		Fees:         plot.GrcFeeRecords,
		Depreciation: plot.GrcDeprRecords,
	})
	res.GBA = res.GRC.GBA

	res.Insurance = CalculateInsurance(InsuranceInput{
		Records:                  plot.InsuranceRecords,
		VatPerc:                  sv.Float(models.InsuranceVat),
		ProfFeePerc:              sv.Float(models.ProfFees),
		PreTenderEscalationPerc:  sv.Float(models.PreTenderEscalationPerc),
		PreTenderEscalationAt:    sv.Float(models.PreTenderEscalationAt),
		PostTenderEscalationPerc: sv.Float(models.PostTenderEscalationPerc),
		PostTenderEscalationAt:   sv.Float(models.PostTenderEscalationAt),
	})
	res.ReplacementCost = res.Insurance.TotalReplacementValue

	// Market
	peculiarity := sv.Float(models.Peculiarity)
	res.Comparables = ComparableMarketValue(plot.Comparables, peculiarity)
	res.LandAndBuild = LandAndBuild(
		plot.Extent.InexactFloat64(),
		sv.Float(models.LandRate),
		res.GBA,
		sv.Float(models.BuildRate),
		peculiarity,
	)
	res.LandValue = res.LandAndBuild.SubjectLandValue

	switch plot.Classification {
	case models.Residential:
		res.MarketValue = res.LandAndBuild.MarketValue
		res.CapitalValue = res.LandValue + res.GRC.DeprTotal
	case models.Commercial:
		res.MarketValue = res.Comparables.MarketValue
		res.CapitalValue = res.CapitalisedValue
	default:
		return Result{}, fmt.Errorf("plot %s: unknown classification %q", plot.ID, plot.Classification)
	}

	res.SayMarketValue = MarketValuePreview(res.MarketValue)
	res.SayMarketValueExport = MarketValueRoundedForExport(res.MarketValue)
	res.ForcedSaleValue = ForcedSaleValue(res.MarketValue)

	return res, nil
}
