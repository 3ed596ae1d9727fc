// Package comparables shortlists the sale records used for the
// market-comparison approach.
package comparables

import (
	"math"
	"sort"
	"time"

	"property_valuation/pkg/models"
)

// Criteria bounds the rule-based shortlist. Zero fields disable their rule.
type Criteria struct {
	MaxAgeMonths       int     `json:"max_age_months" yaml:"max_age_months" validate:"gte=0"`
	ExtentTolerancePct float64 `json:"extent_tolerance_pct" yaml:"extent_tolerance_pct" validate:"gte=0"`
	Limit              int     `json:"limit" yaml:"limit" validate:"gte=0"`
}

// Filter keeps comparables of the subject's classification that sold within
// MaxAgeMonths of asOf and whose extent lies within ExtentTolerancePct of the
// subject's. Results are ordered by extent closeness, then most recent sale.
func Filter(subject *models.Plot, pool []models.ComparablePlot, c Criteria, asOf time.Time) []models.ComparablePlot {
	var subjectExtent float64
	var class models.Classification
	if subject != nil {
		subjectExtent = subject.Extent.InexactFloat64()
		class = subject.Classification
	}

	var cutoff time.Time
	if c.MaxAgeMonths > 0 && !asOf.IsZero() {
		cutoff = asOf.AddDate(0, -c.MaxAgeMonths, 0)
	}

	out := make([]models.ComparablePlot, 0, len(pool))
	for _, cp := range pool {
		if class != "" && cp.Classification != class {
			continue
		}
		if !cutoff.IsZero() && cp.TransactionDate.Before(cutoff) {
			continue
		}
		if c.ExtentTolerancePct > 0 && subjectExtent > 0 {
			diff := math.Abs(cp.Extent.InexactFloat64()-subjectExtent) / subjectExtent * 100
			if diff > c.ExtentTolerancePct {
				continue
			}
		}
		out = append(out, cp)
	}

	sort.SliceStable(out, func(i, j int) bool {
		di := math.Abs(out[i].Extent.InexactFloat64() - subjectExtent)
		dj := math.Abs(out[j].Extent.InexactFloat64() - subjectExtent)
		if di != dj {
			return di < dj
		}
		return out[i].TransactionDate.After(out[j].TransactionDate)
	})

	if c.Limit > 0 && len(out) > c.Limit {
		out = out[:c.Limit]
	}
	return out
}
