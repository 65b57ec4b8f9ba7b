package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/iwlcalc/internal/model"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Range is a low/high pair.
type Range struct {
	Low  float64 `json:"low" yaml:"low"`
	High float64 `json:"high" yaml:"high"`
}

// InputSummary echoes the values a calculation used.
type InputSummary struct {
	WeightKg        float64  `json:"weight_kg" yaml:"weight_kg"`
	HeightCm        float64  `json:"height_cm" yaml:"height_cm"`
	TemperatureC    *float64 `json:"temperature_c,omitempty" yaml:"temperature_c,omitempty"`
	RespiratoryRate *float64 `json:"respiratory_rate,omitempty" yaml:"respiratory_rate,omitempty"`
	AgeMonths       int      `json:"age_months" yaml:"age_months"`
	Factors         []string `json:"factors,omitempty" yaml:"factors,omitempty"`
}

// BandSummary describes the normal respiratory rate band used.
type BandSummary struct {
	Label string `json:"label" yaml:"label"`
	Min   int    `json:"min" yaml:"min"`
	Max   int    `json:"max" yaml:"max"`
}

// FactorSummary is one clinical factor contribution.
type FactorSummary struct {
	Factor     string  `json:"factor" yaml:"factor"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
	Range      `yaml:",inline"`
}

// Summary is the machine-readable form of a result, rounded for display.
type Summary struct {
	Input           InputSummary    `json:"input" yaml:"input"`
	BSA             float64         `json:"bsa_m2" yaml:"bsa_m2"`
	Base            Range           `json:"base_ml_day" yaml:"base_ml_day"`
	FeverMultiplier float64         `json:"fever_multiplier" yaml:"fever_multiplier"`
	FeverIncrease   float64         `json:"fever_increase_pct" yaml:"fever_increase_pct"`
	RRBand          BandSummary     `json:"rr_band" yaml:"rr_band"`
	RRAdjustment    float64         `json:"rr_adjustment_ml_day" yaml:"rr_adjustment_ml_day"`
	Factors         []FactorSummary `json:"factors,omitempty" yaml:"factors,omitempty"`
	Daily           Range           `json:"total_ml_day" yaml:"total_ml_day"`
	Hourly          Range           `json:"total_ml_hr" yaml:"total_ml_hr"`
	Warnings        []string        `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// NewSummary flattens a result, rounding volumes to decimals places.
func NewSummary(res model.CalculationResult, decimals int) Summary {
	vol := func(v float64) float64 { return round(v, decimals) }
	s := Summary{
		Input: InputSummary{
			WeightKg:        res.Input.WeightKg,
			HeightCm:        res.Input.HeightCm,
			TemperatureC:    res.Input.TemperatureC,
			RespiratoryRate: res.Input.RespiratoryRate,
			AgeMonths:       res.AgeMonths,
		},
		BSA:             round(res.BSA, 4),
		Base:            Range{Low: vol(res.BaseLow), High: vol(res.BaseHigh)},
		FeverMultiplier: round(res.FeverMultiplier, 4),
		FeverIncrease:   round(res.FeverIncrease*100, 2),
		RRBand:          BandSummary{Label: res.RRBand.Label, Min: res.RRBand.Min, Max: res.RRBand.Max},
		RRAdjustment:    vol(res.RRAdjustment),
		Daily:           Range{Low: vol(res.TotalLow), High: vol(res.TotalHigh)},
		Hourly:          Range{Low: vol(res.HourlyLow), High: vol(res.HourlyHigh)},
		Warnings:        res.Warnings,
	}
	for _, f := range res.Input.Factors.Factors() {
		s.Input.Factors = append(s.Input.Factors, f.String())
	}
	for _, adj := range res.FactorAdjustments {
		s.Factors = append(s.Factors, FactorSummary{
			Factor:     adj.Factor.String(),
			Percentage: adj.Percentage * 100,
			Range:      Range{Low: vol(adj.Low), High: vol(adj.High)},
		})
	}
	return s
}

// Encode writes v as JSON or YAML.
func Encode(w io.Writer, format string, v any) error {
	switch NormalizeFormat(format) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported encode format %q", format)
	}
}

// NormalizeFormat lowercases a format name and maps "yml" to yaml.
func NormalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "yml" {
		return FormatYAML
	}
	if f == "" {
		return FormatText
	}
	return f
}

// ValidFormat reports whether format names a supported output format.
func ValidFormat(format string) bool {
	switch NormalizeFormat(format) {
	case FormatText, FormatJSON, FormatYAML:
		return true
	}
	return false
}

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
