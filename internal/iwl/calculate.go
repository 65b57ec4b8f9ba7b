// Package iwl estimates pediatric insensible water loss from body surface
// area, temperature, respiratory rate, and clinical factors.
//
// Every function in this package is pure and safe for concurrent use.
package iwl

import (
	"fmt"
	"math"
	"strconv"

	"github.com/verte-zerg/iwlcalc/internal/model"
)

const hoursPerDay = 24

// Plausibility limits; values outside them are used as given but flagged.
const (
	minPlausibleTempC = 30.0
	maxPlausibleTempC = 43.0
	maxPlausibleRR    = 150.0

	maxPlausibleAgeMonths = 18 * 12
)

// Parts holds the already computed sub-results that Aggregate combines.
type Parts struct {
	Input     model.PatientInput
	AgeMonths int

	BSA      float64
	BaseLow  float64
	BaseHigh float64

	FeverMultiplier float64
	FeverIncrease   float64

	RRBand       model.NormalRRRange
	RRAdjustment float64

	FactorAdjustments []model.FactorAdjustment
	FactorLow         float64
	FactorHigh        float64

	Warnings []string
}

// Calculate validates the input and returns the full IWL breakdown.
// Weight and height are required; any other missing or non-finite value
// disables its adjustment.
func Calculate(in model.PatientInput) (model.CalculationResult, error) {
	if !positiveFinite(in.WeightKg) {
		return model.CalculationResult{}, &ValidationError{Field: "weight", Err: ErrInvalidWeight}
	}
	if !positiveFinite(in.HeightCm) {
		return model.CalculationResult{}, &ValidationError{Field: "height", Err: ErrInvalidHeight}
	}

	in = sanitize(in)
	ageMonths, warnings := totalAgeMonths(in.AgeYears, in.AgeMonths)
	warnings = append(warnings, plausibilityWarnings(in)...)

	bsa := EstimateBSA(in.HeightCm, in.WeightKg)
	baseLow, baseHigh := BaseRange(bsa)
	multiplier, increase := FeverAdjustment(in.TemperatureC)
	rrAdj, band := RespiratoryAdjustment(in.RespiratoryRate, ageMonths, in.WeightKg)
	adjs, addLow, addHigh := FactorAdjustments(in.Factors, baseLow, baseHigh)

	return Aggregate(Parts{
		Input:             in,
		AgeMonths:         ageMonths,
		BSA:               bsa,
		BaseLow:           baseLow,
		BaseHigh:          baseHigh,
		FeverMultiplier:   multiplier,
		FeverIncrease:     increase,
		RRBand:            band,
		RRAdjustment:      rrAdj,
		FactorAdjustments: adjs,
		FactorLow:         addLow,
		FactorHigh:        addHigh,
		Warnings:          warnings,
	}), nil
}

// Aggregate combines sub-results into daily and hourly totals. Both bounds
// share the same multiplier and RR adjustment.
func Aggregate(p Parts) model.CalculationResult {
	totalLow := p.BaseLow*p.FeverMultiplier + p.RRAdjustment + p.FactorLow
	totalHigh := p.BaseHigh*p.FeverMultiplier + p.RRAdjustment + p.FactorHigh
	return model.CalculationResult{
		Input:             p.Input,
		BSA:               p.BSA,
		BaseLow:           p.BaseLow,
		BaseHigh:          p.BaseHigh,
		FeverMultiplier:   p.FeverMultiplier,
		FeverIncrease:     p.FeverIncrease,
		AgeMonths:         p.AgeMonths,
		RRBand:            p.RRBand,
		RRAdjustment:      p.RRAdjustment,
		FactorAdjustments: p.FactorAdjustments,
		FactorLow:         p.FactorLow,
		FactorHigh:        p.FactorHigh,
		TotalLow:          totalLow,
		TotalHigh:         totalHigh,
		HourlyLow:         totalLow / hoursPerDay,
		HourlyHigh:        totalHigh / hoursPerDay,
		Warnings:          p.Warnings,
	}
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// sanitize copies optional values so the result never aliases caller memory,
// dropping non-finite numbers.
func sanitize(in model.PatientInput) model.PatientInput {
	in.TemperatureC = finiteCopy(in.TemperatureC)
	in.RespiratoryRate = finiteCopy(in.RespiratoryRate)
	in.AgeYears = intCopy(in.AgeYears)
	in.AgeMonths = intCopy(in.AgeMonths)
	return in
}

func finiteCopy(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	c := *v
	return &c
}

func intCopy(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// totalAgeMonths combines years and months; negative parts count as zero.
// Totals that would overflow saturate at math.MaxInt, which still selects the
// oldest respiratory band.
func totalAgeMonths(years, months *int) (int, []string) {
	var warnings []string
	total := 0
	if years != nil {
		switch {
		case *years < 0:
			warnings = append(warnings, fmt.Sprintf("negative age years (%d) treated as 0", *years))
		case *years > math.MaxInt/12:
			total = math.MaxInt
		default:
			total = *years * 12
		}
	}
	if months != nil {
		switch {
		case *months < 0:
			warnings = append(warnings, fmt.Sprintf("negative age months (%d) treated as 0", *months))
		case *months > math.MaxInt-total:
			total = math.MaxInt
		default:
			total += *months
		}
	}
	if total > maxPlausibleAgeMonths {
		warnings = append(warnings, fmt.Sprintf("age of %s exceeds %d years; using the oldest respiratory band",
			describeMonths(total), maxPlausibleAgeMonths/12))
	}
	return total, warnings
}

func describeMonths(total int) string {
	if total == math.MaxInt {
		return "more than " + strconv.Itoa(math.MaxInt/12) + " years"
	}
	return strconv.Itoa(total) + " months"
}

func plausibilityWarnings(in model.PatientInput) []string {
	var warnings []string
	if t := in.TemperatureC; t != nil {
		if *t < minPlausibleTempC || *t > maxPlausibleTempC {
			warnings = append(warnings, fmt.Sprintf("temperature %.1f °C is outside the plausible range %.0f–%.0f °C", *t, minPlausibleTempC, maxPlausibleTempC))
		}
	}
	if rr := in.RespiratoryRate; rr != nil && *rr > maxPlausibleRR {
		warnings = append(warnings, fmt.Sprintf("respiratory rate %.0f/min exceeds %.0f/min", *rr, maxPlausibleRR))
	}
	return warnings
}
