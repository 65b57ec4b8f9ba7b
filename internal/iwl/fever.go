package iwl

const (
	feverThresholdC   = 37.0
	feverIncreasePerC = 0.13
)

// FeverAdjustment returns the multiplier applied to base IWL and its
// fractional increase. Temperatures at or below 37 °C leave IWL unchanged.
func FeverAdjustment(temperatureC *float64) (multiplier, increase float64) {
	if temperatureC == nil || *temperatureC <= feverThresholdC {
		return 1, 0
	}
	increase = (*temperatureC - feverThresholdC) * feverIncreasePerC
	return 1 + increase, increase
}
