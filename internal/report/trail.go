package report

import (
	"fmt"
	"strconv"

	"github.com/verte-zerg/iwlcalc/internal/model"
)

// Step is one numbered line group of the derivation trail.
type Step struct {
	Number int
	Title  string
	Lines  []string
}

// BuildTrail explains how a result was derived. Fever, respiratory, and
// factor steps appear only when they changed the total, so numbering stays
// consecutive.
func BuildTrail(res model.CalculationResult, decimals int) []Step {
	in := res.Input
	vol := func(v float64) string { return formatNumber(v, decimals) }
	volRange := func(low, high float64) string { return vol(low) + "–" + vol(high) }

	steps := []Step{
		{
			Title: "Body surface area (Mosteller)",
			Lines: []string{fmt.Sprintf("√(%s cm × %s kg ÷ 3600) = %s m²",
				formatNumber(in.HeightCm, 1), formatNumber(in.WeightKg, 2), formatNumber(res.BSA, 4))},
		},
		{
			Title: "Base IWL",
			Lines: []string{fmt.Sprintf("%s m² × 400–500 mL/m²/day = %s mL/day",
				formatNumber(res.BSA, 4), volRange(res.BaseLow, res.BaseHigh))},
		},
	}

	if res.HasFever() {
		increase := fmt.Sprintf("Fever increase: +%s%%", formatNumber(res.FeverIncrease*100, 1))
		if in.TemperatureC != nil {
			increase = fmt.Sprintf("(%s °C − 37) × 13%% = +%s%%", formatNumber(*in.TemperatureC, 1), formatNumber(res.FeverIncrease*100, 1))
		}
		steps = append(steps, Step{
			Title: "Fever adjustment",
			Lines: []string{
				increase,
				fmt.Sprintf("%s mL/day × %s = %s mL/day", volRange(res.BaseLow, res.BaseHigh),
					formatNumber(res.FeverMultiplier, 3), volRange(res.BaseLow*res.FeverMultiplier, res.BaseHigh*res.FeverMultiplier)),
			},
		})
	}

	if res.HasRRAdjustment() {
		excess := fmt.Sprintf("Tachypnea above %d breaths/min: +%s mL/day", res.RRBand.Max, vol(res.RRAdjustment))
		if in.RespiratoryRate != nil {
			excess = fmt.Sprintf("(%s − %d) × 2 mL × %s kg = +%s mL/day", formatNumber(*in.RespiratoryRate, 1),
				res.RRBand.Max, formatNumber(in.WeightKg, 2), vol(res.RRAdjustment))
		}
		steps = append(steps, Step{
			Title: "Respiratory rate adjustment",
			Lines: []string{
				fmt.Sprintf("Normal range for %s: %d–%d breaths/min", res.RRBand.Label, res.RRBand.Min, res.RRBand.Max),
				excess,
			},
		})
	}

	if res.HasFactorAdjustments() {
		lines := make([]string, 0, len(res.FactorAdjustments)+1)
		for _, adj := range res.FactorAdjustments {
			lines = append(lines, fmt.Sprintf("%s (+%s%% of base): +%s mL/day",
				adj.Factor.Label(), formatNumber(adj.Percentage*100, 0), volRange(adj.Low, adj.High)))
		}
		if len(res.FactorAdjustments) > 1 {
			lines = append(lines, fmt.Sprintf("Combined: +%s mL/day", volRange(res.FactorLow, res.FactorHigh)))
		}
		steps = append(steps, Step{Title: "Clinical factors", Lines: lines})
	}

	steps = append(steps, Step{
		Title: "Total",
		Lines: []string{
			fmt.Sprintf("%s mL/day", volRange(res.TotalLow, res.TotalHigh)),
			fmt.Sprintf("÷ 24 = %s mL/hr", volRange(res.HourlyLow, res.HourlyHigh)),
		},
	})

	for i := range steps {
		steps[i].Number = i + 1
	}
	return steps
}

func formatNumber(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
