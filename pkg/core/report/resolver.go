package report

import (
	"fmt"
	"strings"
	"time"

	"property_valuation/pkg/core/valuation"
	"property_valuation/pkg/models"
)

// Mode selects the rendering path. The say value differs between them.
type Mode int

const (
	// Preview is the interactive preview: the say value is the raw market value.
	Preview Mode = iota
	// Export is the formal document: the say value is rounded down to 100 000.
	Export
)

func (m Mode) String() string {
	if m == Export {
		return "export"
	}
	return "preview"
}

// ParseMode accepts "preview" and "export"; empty means preview.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "preview":
		return Preview, nil
	case "export":
		return Export, nil
	}
	return Preview, fmt.Errorf("unknown report mode %q", s)
}

// Table maps placeholder keys to display strings.
type Table map[string]string

// ReportInput is everything a report needs: plot metadata and computed figures.
type ReportInput struct {
	Plot   *models.Plot
	Result valuation.Result
}

const dateLayout = "2 January 2006"

type wordsEntry struct {
	key    string
	amount float64
}

// Resolve builds the placeholder table for one plot. It fails only when an
// amount that must be written in words is out of range.
func Resolve(input ReportInput, mode Mode) (Table, error) {
	res := input.Result
	say := res.SayMarketValue
	if mode == Export {
		say = res.SayMarketValueExport
	}

	t := Table{
		"classification":        string(res.Classification),
		"gla":                   FormatNumber(res.GLA, 2),
		"gba":                   FormatNumber(res.GBA, 2),
		"wale":                  FormatNumber(res.WALE, 2),
		"marketValue":           FormatAmount(res.MarketValue),
		"sayMarketValue":        FormatAmount(say),
		"forcedSaleValue":       FormatAmount(res.ForcedSaleValue),
		"landValue":             FormatAmount(res.LandValue),
		"capitalValue":          FormatAmount(res.CapitalValue),
		"capitalisedValue":      FormatAmount(res.CapitalisedValue),
		"capitalisedFigure":     FormatAmount(res.CapitalisedFigure),
		"netAnnualRentalIncome": FormatAmount(res.NetAnnualRentalIncome),
		"grossAnnualIncome":     FormatAmount(res.GrossAnnualIncome.Market),
		"monthlyRentalRate":     FormatAmount(res.MonthlyRentalRate),
		"outgoingsAnnual":       FormatAmount(res.OutgoingsAnnual.Market),
		"outgoingsIncomeRatio":  FormatPercent(res.OutgoingsIncomeRatio),
		"monthlyOutgoings":      FormatAmount(res.MonthlyOutgoings),
		"dcfMarketValue":        FormatAmount(res.DCFMarketValue),
		"avgComparablePrice":    FormatAmount(res.Comparables.AvgPrice),
		"comparableCount":       fmt.Sprintf("%d", res.Comparables.Count),
		"grcTotal":              FormatAmount(res.GRC.GrcTotal),
		"grcNetTotal":           FormatAmount(res.GRC.NetTotal),
		"deprTotal":             FormatAmount(res.GRC.DeprTotal),
		"replacementCost":       FormatAmount(res.ReplacementCost),
	}

	for i, o := range res.Outgoings {
		n := i + 1
		t[fmt.Sprintf("outgoing%dName", n)] = o.Identifier
		t[fmt.Sprintf("outgoing%dAmount", n)] = FormatAmount(o.Annual)
	}
	t["outgoingCount"] = fmt.Sprintf("%d", len(res.Outgoings))

	words := []wordsEntry{
		{"marketValueInWords", res.MarketValue},
		{"sayMarketValueInWords", say},
		{"forcedSaleValueInWords", res.ForcedSaleValue},
		{"capitalValueInWords", res.CapitalValue},
		{"replacementCostInWords", res.ReplacementCost},
	}

	if p := input.Plot; p != nil {
		extent := p.Extent.InexactFloat64()
		t["plotName"] = p.Name
		t["plotAddress"] = p.Address
		t["clientName"] = p.ClientName
		t["plotExtent"] = FormatNumber(extent, 2)
		t["inspectionDate"] = formatDate(p.InspectionDate)
		t["analysisDate"] = formatDate(p.AnalysisDate)
		t["constructionItems"] = strings.Join(p.ConstructionItems, ", ")
		words = append(words, wordsEntry{"plotExtentInWords", extent})
	}

	for _, w := range words {
		s, err := NumberToWords(w.amount)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", w.key, err)
		}
		t[w.key] = s
	}
	return t, nil
}

func formatDate(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}
