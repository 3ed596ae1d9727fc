package models

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Unit is the semantic unit a stored value is expressed in.
type Unit int

const (
	UnitPercentage      Unit = iota // 10 means 10%
	UnitCurrency                    // absolute amount
	UnitCurrencyPerArea             // amount per m²
	UnitMonths                      // month offset
)

// StoredValueID enumerates the scalar configuration inputs attached to a plot.
type StoredValueID int

const (
	LandRate StoredValueID = iota
	BuildRate
	Peculiarity
	VacancyPercentage
	RecoveryFigure
	CapitalisationRate
	InsuranceVat
	ProfFees
	PreTenderEscalationAt
	PreTenderEscalationPerc
	PostTenderEscalationAt
	PostTenderEscalationPerc
	NetAnnualEscalation
	DiscountRate
	LastCapitalisedPerc
	FsvAdjustment

	storedValueCount
)

type storedValueSpec struct {
	key  string
	unit Unit
}

// storedValueSpecs is indexed by StoredValueID. Keys are the identifiers
// persisted in the stored_values table.
var storedValueSpecs = [...]storedValueSpec{
	LandRate:                 {"landRate", UnitCurrencyPerArea},
	BuildRate:                {"buildRate", UnitCurrencyPerArea},
	Peculiarity:              {"perculiar", UnitPercentage},
	VacancyPercentage:        {"vacancyPercentage", UnitPercentage},
	RecoveryFigure:           {"recoveryFigure", UnitCurrency},
	CapitalisationRate:       {"capitalisationRate", UnitPercentage},
	InsuranceVat:             {"insuranceVat", UnitPercentage},
	ProfFees:                 {"profFees", UnitPercentage},
	PreTenderEscalationAt:    {"preTenderEscalationAt", UnitMonths},
	PreTenderEscalationPerc:  {"preTenderEscalationPerc", UnitPercentage},
	PostTenderEscalationAt:   {"postTenderEscalationAt", UnitMonths},
	PostTenderEscalationPerc: {"postTenderEscalationPerc", UnitPercentage},
	NetAnnualEscalation:      {"netAnnualEscalation", UnitPercentage},
	DiscountRate:             {"discountRate", UnitPercentage},
	LastCapitalisedPerc:      {"lastCapitalisedPerc", UnitPercentage},
	FsvAdjustment:            {"fsvAdjustment", UnitPercentage},
}

// Fails to compile when an identifier is added without a storedValueSpecs entry.
var _ = [1]struct{}{}[len(storedValueSpecs)-int(storedValueCount)]

var ErrDuplicateStoredValue = errors.New("duplicate stored value")

// AllStoredValueIDs returns every identifier in declaration order.
func AllStoredValueIDs() []StoredValueID {
	ids := make([]StoredValueID, 0, storedValueCount)
	for id := StoredValueID(0); id < storedValueCount; id++ {
		ids = append(ids, id)
	}
	return ids
}

func (id StoredValueID) valid() bool {
	return id >= 0 && id < storedValueCount
}

// Key returns the persisted identifier string.
func (id StoredValueID) Key() string {
	if !id.valid() {
		return fmt.Sprintf("StoredValueID(%d)", int(id))
	}
	return storedValueSpecs[id].key
}

func (id StoredValueID) String() string { return id.Key() }

// Unit returns the semantic unit of the identifier.
func (id StoredValueID) Unit() Unit {
	if !id.valid() {
		return UnitCurrency
	}
	return storedValueSpecs[id].unit
}

// ParseStoredValueID maps a persisted identifier back to the enumeration.
func ParseStoredValueID(key string) (StoredValueID, error) {
	for id, spec := range storedValueSpecs {
		if spec.key == key {
			return StoredValueID(id), nil
		}
	}
	return 0, fmt.Errorf("unknown stored value identifier %q", key)
}

func (id StoredValueID) MarshalJSON() ([]byte, error) {
	if !id.valid() {
		return nil, fmt.Errorf("invalid stored value identifier %d", int(id))
	}
	return json.Marshal(id.Key())
}

func (id *StoredValueID) UnmarshalJSON(data []byte) error {
	var key string
	if err := json.Unmarshal(data, &key); err != nil {
		return err
	}
	parsed, err := ParseStoredValueID(key)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// StoredValue is one (identifier, value) row of a plot.
type StoredValue struct {
	ID         uuid.UUID       `json:"id"`
	Identifier StoredValueID   `json:"identifier"`
	Value      decimal.Decimal `json:"value"`
}

// StoredValues is the per-plot lookup. Missing identifiers read as zero.
type StoredValues map[StoredValueID]decimal.Decimal

// NewStoredValues indexes rows, rejecting a second row for an identifier.
func NewStoredValues(rows []StoredValue) (StoredValues, error) {
	values := make(StoredValues, len(rows))
	for _, row := range rows {
		if !row.Identifier.valid() {
			return nil, fmt.Errorf("invalid stored value identifier %d", int(row.Identifier))
		}
		if _, exists := values[row.Identifier]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateStoredValue, row.Identifier)
		}
		values[row.Identifier] = row.Value
	}
	return values, nil
}

// Float returns the value as float64, or 0 when absent.
func (v StoredValues) Float(id StoredValueID) float64 {
	d, ok := v[id]
	if !ok {
		return 0
	}
	return d.InexactFloat64()
}
