package models

import (
	"encoding/json"
	"fmt"
)

// OutgoingKind says how an outgoing line's unit*rate turns into an annual figure.
type OutgoingKind int

const (
	// Monthly lines recur twelve times a year.
	Monthly OutgoingKind = iota
	// Annual lines are already annual.
	Annual
	// PercentOfBase lines are percentage points of a base income figure.
	PercentOfBase
)

type outgoingKindSpec struct {
	legacy         string
	periodsPerYear float64
	percentage     bool
	displayOrder   int
}

var outgoingKindSpecs = [...]outgoingKindSpec{
	Monthly:       {legacy: "12", periodsPerYear: 12, displayOrder: 0},
	Annual:        {legacy: "1", periodsPerYear: 1, displayOrder: 1},
	PercentOfBase: {legacy: "%", percentage: true, displayOrder: 2},
}

func (k OutgoingKind) spec() outgoingKindSpec {
	if k < 0 || int(k) >= len(outgoingKindSpecs) {
		return outgoingKindSpec{legacy: "?", displayOrder: len(outgoingKindSpecs)}
	}
	return outgoingKindSpecs[k]
}

// PeriodsPerYear is the annualisation multiplier. Zero for percentage lines.
func (k OutgoingKind) PeriodsPerYear() float64 { return k.spec().periodsPerYear }

// IsPercentage reports whether unit*rate is a percentage of a base figure.
func (k OutgoingKind) IsPercentage() bool { return k.spec().percentage }

// DisplayOrder ranks kinds as 12, 1, %.
func (k OutgoingKind) DisplayOrder() int { return k.spec().displayOrder }

func (k OutgoingKind) String() string { return k.spec().legacy }

// ParseOutgoingKind accepts the stored "12", "1" and "%" item types.
func ParseOutgoingKind(s string) (OutgoingKind, error) {
	for k, spec := range outgoingKindSpecs {
		if spec.legacy == s {
			return OutgoingKind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown outgoing item type %q", s)
}

func (k OutgoingKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *OutgoingKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseOutgoingKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
