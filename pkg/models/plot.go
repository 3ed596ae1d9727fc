package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Classification selects which market-value approach applies to a plot.
type Classification string

const (
	Residential Classification = "Residential"
	Commercial  Classification = "Commercial"
)

// Plot is the subject property and every child collection the engine reads.
type Plot struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Address        string          `json:"address"`
	ClientName     string          `json:"client_name"`
	Extent         decimal.Decimal `json:"extent" validate:"gte=0"` // m²
	Classification Classification  `json:"classification" validate:"required,oneof=Residential Commercial"`
	InspectionDate time.Time       `json:"inspection_date"`
	AnalysisDate   time.Time       `json:"analysis_date"`
	// ConstructionItems is the free-text list shown in reports.
	ConstructionItems []string `json:"construction_items"`

	StoredValues []StoredValue `json:"stored_values" validate:"dive"`

	Tenants          []Tenant          `json:"tenants" validate:"dive"`
	ParkingRecords   []ParkingRecord   `json:"parking_records" validate:"dive"`
	OutgoingRecords  []OutgoingRecord  `json:"outgoing_records" validate:"dive"`
	InsuranceRecords []InsuranceRecord `json:"insurance_records" validate:"dive"`
	GrcRecords       []GrcRecord       `json:"grc_records" validate:"dive"`
	GrcFeeRecords    []GrcFeeRecord    `json:"grc_fee_records"`
	GrcDeprRecords   []GrcDeprRecord   `json:"grc_depr_records"`
	Comparables      []ComparablePlot  `json:"comparables"`
}

// Tenant is one lease line of the tenancy schedule.
type Tenant struct {
	ID                 uuid.UUID       `json:"id"`
	Name               string          `json:"name"`
	PropertyType       string          `json:"property_type"`
	AreaPerClient      decimal.Decimal `json:"area_per_client" validate:"gte=0"`
	AreaPerMarket      decimal.Decimal `json:"area_per_market" validate:"gte=0"`
	GrossMonthlyRental decimal.Decimal `json:"gross_monthly_rental"`
	RatePerMarket      decimal.Decimal `json:"rate_per_market"` // monthly, per m²
	Escalation         decimal.Decimal `json:"escalation"`      // % per year
	StartDate          *time.Time      `json:"start_date,omitempty"`
	EndDate            *time.Time      `json:"end_date,omitempty"`
}

// ParkingRecord holds bay counts and monthly rates for one parking type.
type ParkingRecord struct {
	ID            uuid.UUID       `json:"id"`
	ParkingType   string          `json:"parking_type"`
	UnitPerClient decimal.Decimal `json:"unit_per_client" validate:"gte=0"`
	RatePerClient decimal.Decimal `json:"rate_per_client"`
	UnitPerMarket decimal.Decimal `json:"unit_per_market" validate:"gte=0"`
	RatePerMarket decimal.Decimal `json:"rate_per_market"`
}

// OutgoingRecord is one operating expense line.
type OutgoingRecord struct {
	ID            uuid.UUID       `json:"id"`
	Identifier    string          `json:"identifier"`
	ItemType      OutgoingKind    `json:"item_type"`
	UnitPerClient decimal.Decimal `json:"unit_per_client"`
	RatePerClient decimal.Decimal `json:"rate_per_client"`
	UnitPerMarket decimal.Decimal `json:"unit_per_market"`
	RatePerMarket decimal.Decimal `json:"rate_per_market"`
}

// GrcRecord is a gross replacement cost line. Bull rows are main-building
// rows and make up the GBA.
type GrcRecord struct {
	ID         uuid.UUID       `json:"id"`
	Identifier string          `json:"identifier"`
	Unit       string          `json:"unit"`
	Size       decimal.Decimal `json:"size" validate:"gte=0"`
	Rate       decimal.Decimal `json:"rate"`
	Bull       bool            `json:"bull"`
}

type GrcFeeRecord struct {
	ID         uuid.UUID       `json:"id"`
	Identifier string          `json:"identifier"`
	Perc       decimal.Decimal `json:"perc"`
}

type GrcDeprRecord struct {
	ID         uuid.UUID       `json:"id"`
	Identifier string          `json:"identifier"`
	Perc       decimal.Decimal `json:"perc"`
}

// InsuranceRecord is one insured item line.
type InsuranceRecord struct {
	ID       uuid.UUID       `json:"id"`
	ItemType string          `json:"item_type"`
	RoofType string          `json:"roof_type"`
	Rate     decimal.Decimal `json:"rate"`
	Area     decimal.Decimal `json:"area" validate:"gte=0"`
}

// ComparablePlot is a sale record that may be linked to a subject plot.
type ComparablePlot struct {
	ID              uuid.UUID       `json:"id"`
	Location        string          `json:"location"`
	Classification  Classification  `json:"classification"`
	Price           decimal.Decimal `json:"price"`
	Extent          decimal.Decimal `json:"extent"`
	TransactionDate time.Time       `json:"transaction_date"`
	Description     string          `json:"description,omitempty"`
}
