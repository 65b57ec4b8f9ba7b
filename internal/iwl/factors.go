package iwl

import "github.com/verte-zerg/iwlcalc/internal/model"

var factorPercentages = [...]float64{
	model.FactorPhototherapy:  0.20,
	model.FactorRadiantWarmer: 0.30,
	model.FactorLowHumidity:   0.25,
	model.FactorBurns:         0.50,
}

// FactorPercentage returns the fraction of base IWL added by f.
func FactorPercentage(f model.Factor) float64 {
	if int(f) >= len(factorPercentages) {
		return 0
	}
	return factorPercentages[f]
}

// FactorAdjustments returns one adjustment per enabled factor plus the summed
// additions for each bound. Factors never interact.
func FactorAdjustments(set model.FactorSet, baseLow, baseHigh float64) (adjs []model.FactorAdjustment, addLow, addHigh float64) {
	for _, f := range set.Factors() {
		pct := FactorPercentage(f)
		adj := model.FactorAdjustment{
			Factor:     f,
			Percentage: pct,
			Low:        baseLow * pct,
			High:       baseHigh * pct,
		}
		adjs = append(adjs, adj)
		addLow += adj.Low
		addHigh += adj.High
	}
	return adjs, addLow, addHigh
}
