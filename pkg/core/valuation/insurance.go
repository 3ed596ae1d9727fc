package valuation

import (
	"property_valuation/pkg/core/calc"
	"property_valuation/pkg/models"
)

// CommonPropertyLoading is the percentage of (subtotal + VAT) added for
// common property. It is switched off; the term stays in the formula.
const CommonPropertyLoading = 0.0

// InsuranceInput collects the insured items and loading percentages.
type InsuranceInput struct {
	Records                  []models.InsuranceRecord
	VatPerc                  float64
	ProfFeePerc              float64
	PreTenderEscalationPerc  float64
	PreTenderEscalationAt    float64 // months
	PostTenderEscalationPerc float64
	PostTenderEscalationAt   float64 // months
}

// InsuranceResult holds the replacement cost build-up for insurance.
type InsuranceResult struct {
	SubTotal              float64 `json:"subTotal"`
	Vat                   float64 `json:"vat"`
	ComProperty           float64 `json:"comProperty"`
	ProfFees              float64 `json:"profFees"`
	ReplacementCost       float64 `json:"replacementCost"`
	PreTenderEscalation   float64 `json:"preTenderEscalation"`
	PostTenderEscalation  float64 `json:"postTenderEscalation"`
	TotalReplacementValue float64 `json:"totalReplacementValue"`
}

// CalculateInsurance derives the insurance replacement value.
//
// FORMULA:
//
//	subTotal    = Σ rate × area
//	vat         = subTotal × vat%/100
//	profFees    = prof% × (subTotal + vat + comProperty) / 100
//	replacement = subTotal + vat + comProperty + profFees
//	preTender   = (pre%/100 × preMonths/12) × replacement
//	postTender  = (post%/100 × postMonths/12) × subTotal
//	total       = round2(replacement + preTender + postTender)
//
// Post-tender escalation is taken on the subtotal, not the replacement cost.
func CalculateInsurance(input InsuranceInput) InsuranceResult {
	var subTotal float64
	for _, r := range input.Records {
		subTotal += r.Rate.InexactFloat64() * r.Area.InexactFloat64()
	}

	vat := subTotal * (input.VatPerc / 100)
	comProperty := (subTotal + vat) * CommonPropertyLoading / 100
	profFees := input.ProfFeePerc * (subTotal + vat + comProperty) / 100
	replacement := subTotal + vat + comProperty + profFees

	pre := (input.PreTenderEscalationPerc / 100 * input.PreTenderEscalationAt / 12) * replacement
	post := (input.PostTenderEscalationPerc / 100 * input.PostTenderEscalationAt / 12) * subTotal

	return InsuranceResult{
		SubTotal:              subTotal,
		Vat:                   vat,
		ComProperty:           comProperty,
		ProfFees:              profFees,
		ReplacementCost:       replacement,
		PreTenderEscalation:   pre,
		PostTenderEscalation:  post,
		TotalReplacementValue: calc.Round2(replacement + pre + post),
	}
}
