package iwl

import "github.com/verte-zerg/iwlcalc/internal/model"

const rrVolumePerBreathKg = 2.0

// RespiratoryAdjustment returns the extra daily loss for a respiratory rate
// above the age-normal maximum, and the band used for the comparison.
// Rates at or below the maximum add nothing.
func RespiratoryAdjustment(rate *float64, ageMonths int, weightKg float64) (float64, model.NormalRRRange) {
	band := LookupNormalRR(ageMonths)
	if rate == nil {
		return 0, band
	}
	excess := *rate - float64(band.Max)
	if excess <= 0 {
		return 0, band
	}
	return excess * rrVolumePerBreathKg * weightKg, band
}
