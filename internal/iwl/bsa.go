package iwl

import "math"

const (
	baseLowPerM2  = 400.0
	baseHighPerM2 = 500.0
)

// EstimateBSA returns body surface area in m² using the Mosteller formula.
// Both arguments must be positive.
func EstimateBSA(heightCm, weightKg float64) float64 {
	return math.Sqrt(heightCm * weightKg / 3600)
}

// BaseRange returns the baseline daily IWL range in mL for a BSA.
func BaseRange(bsa float64) (low, high float64) {
	return bsa * baseLowPerM2, bsa * baseHighPerM2
}
