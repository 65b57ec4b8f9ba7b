// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
)

// Factor is a clinical condition that raises insensible water loss.
type Factor uint8

// Clinical factors in display order.
const (
	FactorPhototherapy Factor = iota
	FactorRadiantWarmer
	FactorLowHumidity
	FactorBurns
)

// AllFactors lists every factor in display order.
var AllFactors = []Factor{
	FactorPhototherapy,
	FactorRadiantWarmer,
	FactorLowHumidity,
	FactorBurns,
}

var factorNames = [...]string{
	FactorPhototherapy:  "phototherapy",
	FactorRadiantWarmer: "radiantWarmer",
	FactorLowHumidity:   "lowHumidity",
	FactorBurns:         "burns",
}

var factorLabels = [...]string{
	FactorPhototherapy:  "Phototherapy",
	FactorRadiantWarmer: "Radiant warmer",
	FactorLowHumidity:   "Low humidity",
	FactorBurns:         "Burns",
}

// String returns the canonical factor name.
func (f Factor) String() string {
	if int(f) < len(factorNames) {
		return factorNames[f]
	}
	return fmt.Sprintf("factor(%d)", uint8(f))
}

// Label returns a human-readable factor name.
func (f Factor) Label() string {
	if int(f) < len(factorLabels) {
		return factorLabels[f]
	}
	return f.String()
}

// FactorSet is a bitmask of enabled factors.
type FactorSet uint8

// NewFactorSet builds a set from the given factors.
func NewFactorSet(factors ...Factor) FactorSet {
	var s FactorSet
	for _, f := range factors {
		s = s.With(f)
	}
	return s
}

// Has reports whether f is enabled.
func (s FactorSet) Has(f Factor) bool {
	return s&(1<<f) != 0
}

// With returns a copy of s with f enabled.
func (s FactorSet) With(f Factor) FactorSet {
	return s | 1<<f
}

// Without returns a copy of s with f disabled.
func (s FactorSet) Without(f Factor) FactorSet {
	return s &^ (1 << f)
}

// Toggle returns a copy of s with f flipped.
func (s FactorSet) Toggle(f Factor) FactorSet {
	return s ^ 1<<f
}

// Factors returns the enabled factors in display order.
func (s FactorSet) Factors() []Factor {
	out := make([]Factor, 0, len(AllFactors))
	for _, f := range AllFactors {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// String joins the enabled factor names with commas.
func (s FactorSet) String() string {
	factors := s.Factors()
	names := make([]string, len(factors))
	for i, f := range factors {
		names[i] = f.String()
	}
	return strings.Join(names, ",")
}

// PatientInput holds the values for one calculation. Nil pointers mean the
// value was not provided.
type PatientInput struct {
	WeightKg        float64
	HeightCm        float64
	TemperatureC    *float64
	RespiratoryRate *float64
	AgeYears        *int
	AgeMonths       *int
	Factors         FactorSet
}

// NormalRRRange is the normal respiratory rate band for an age group.
// UpperMonths is the exclusive upper age bound; zero marks the open-ended band.
type NormalRRRange struct {
	UpperMonths int
	Min         int
	Max         int
	Label       string
}

// FactorAdjustment is the contribution of one enabled factor.
type FactorAdjustment struct {
	Factor     Factor
	Percentage float64
	Low        float64
	High       float64
}

// CalculationResult is the outcome of one IWL calculation. Volumes are mL/day
// except the hourly fields (mL/hour).
type CalculationResult struct {
	Input PatientInput

	BSA      float64
	BaseLow  float64
	BaseHigh float64

	FeverMultiplier float64
	FeverIncrease   float64

	AgeMonths    int
	RRBand       NormalRRRange
	RRAdjustment float64

	FactorAdjustments []FactorAdjustment
	FactorLow         float64
	FactorHigh        float64

	TotalLow   float64
	TotalHigh  float64
	HourlyLow  float64
	HourlyHigh float64

	Warnings []string
}

// HasFever reports whether the fever multiplier changed the base range.
func (r CalculationResult) HasFever() bool {
	return r.FeverIncrease > 0
}

// HasRRAdjustment reports whether tachypnea added volume.
func (r CalculationResult) HasRRAdjustment() bool {
	return r.RRAdjustment > 0
}

// HasFactorAdjustments reports whether any clinical factor was enabled.
func (r CalculationResult) HasFactorAdjustments() bool {
	return len(r.FactorAdjustments) > 0
}

// ReportConfig defines how results are rendered.
type ReportConfig struct {
	Format     string
	Steps      bool
	References bool
	Decimals   int
	Color      bool
	// Width wraps long prose lines; zero disables wrapping.
	Width int
}
