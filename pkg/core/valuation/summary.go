package valuation

// ValuationLineItem represents one row of the headline summary table.
type ValuationLineItem struct {
	ModelName string
	Value     float64
}

// Summarize lists the headline figures of a result in report order.
func Summarize(res Result) []ValuationLineItem {
	return []ValuationLineItem{
		{ModelName: "Market Value", Value: res.MarketValue},
		{ModelName: "Forced Sale Value", Value: res.ForcedSaleValue},
		{ModelName: "Comparable Sales Value", Value: res.Comparables.MarketValue},
		{ModelName: "Land and Build Value", Value: res.LandAndBuild.MarketValue},
		{ModelName: "Capitalised Value", Value: res.CapitalisedValue},
		{ModelName: "Discounted Cash Flow Value", Value: res.DCFMarketValue},
		{ModelName: "Capital Value", Value: res.CapitalValue},
		{ModelName: "Insurance Replacement Value", Value: res.ReplacementCost},
	}
}
