package iwl

import "github.com/verte-zerg/iwlcalc/internal/model"

// normalRRBands is ordered by UpperMonths; the last band is open-ended.
var normalRRBands = []model.NormalRRRange{
	{UpperMonths: 1, Min: 30, Max: 60, Label: "Newborn (<1 month)"},
	{UpperMonths: 3, Min: 30, Max: 50, Label: "1–3 months"},
	{UpperMonths: 6, Min: 25, Max: 40, Label: "3–6 months"},
	{UpperMonths: 12, Min: 20, Max: 35, Label: "6–12 months"},
	{UpperMonths: 36, Min: 20, Max: 30, Label: "1–3 years"},
	{Min: 15, Max: 25, Label: "3+ years"},
}

// LookupNormalRR returns the normal respiratory rate band for an age in months.
func LookupNormalRR(months int) model.NormalRRRange {
	last := len(normalRRBands) - 1
	for _, band := range normalRRBands[:last] {
		if months < band.UpperMonths {
			return band
		}
	}
	return normalRRBands[last]
}

// NormalRRBands returns a copy of the band table in lookup order.
func NormalRRBands() []model.NormalRRRange {
	return append([]model.NormalRRRange(nil), normalRRBands...)
}
