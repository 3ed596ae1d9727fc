package valuation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"property_valuation/pkg/models"
)

func TestInsuranceEscalationBases(t *testing.T) {
	res := CalculateInsurance(InsuranceInput{
		Records: []models.InsuranceRecord{
			{ItemType: "main house", Rate: decimal.NewFromInt(1000), Area: decimal.NewFromInt(100)},
		},
		VatPerc:                  15,
		ProfFeePerc:              10,
		PreTenderEscalationPerc:  12,
		PreTenderEscalationAt:    6,
		PostTenderEscalationPerc: 12,
		PostTenderEscalationAt:   6,
	})

	assert.InDelta(t, 100000, res.SubTotal, 1e-9)
	assert.InDelta(t, 15000, res.Vat, 1e-9)
	assert.Equal(t, 0.0, res.ComProperty)
	assert.InDelta(t, 11500, res.ProfFees, 1e-9)
	assert.InDelta(t, 126500, res.ReplacementCost, 1e-9)

	// Same rate and months, different bases.
	assert.InDelta(t, 0.06*126500, res.PreTenderEscalation, 1e-9)
	assert.InDelta(t, 0.06*100000, res.PostTenderEscalation, 1e-9)
	assert.NotEqual(t, res.PreTenderEscalation, res.PostTenderEscalation)

	assert.Equal(t, 140090.0, res.TotalReplacementValue)
}

func TestInsuranceEmpty(t *testing.T) {
	res := CalculateInsurance(InsuranceInput{VatPerc: 15, ProfFeePerc: 10})
	assert.Equal(t, InsuranceResult{}, res)
}
