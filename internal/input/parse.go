// Package input parses free-text form values into calculation inputs.
package input

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/verte-zerg/iwlcalc/internal/model"
)

// OptionalFloat parses s as a decimal number. Empty or unparsable text
// yields nil. A decimal comma is accepted.
func OptionalFloat(s string) *float64 {
	s = normalizeNumber(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// OptionalInt parses s as a whole number. Empty or unparsable text yields nil.
func OptionalInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func normalizeNumber(s string) string {
	s = strings.TrimSpace(s)
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return s
}

var factorAliases = map[string]model.Factor{
	"phototherapy":   model.FactorPhototherapy,
	"photo":          model.FactorPhototherapy,
	"radiantwarmer":  model.FactorRadiantWarmer,
	"radiant-warmer": model.FactorRadiantWarmer,
	"radiant_warmer": model.FactorRadiantWarmer,
	"warmer":         model.FactorRadiantWarmer,
	"lowhumidity":    model.FactorLowHumidity,
	"low-humidity":   model.FactorLowHumidity,
	"low_humidity":   model.FactorLowHumidity,
	"humidity":       model.FactorLowHumidity,
	"burns":          model.FactorBurns,
	"burn":           model.FactorBurns,
}

// ParseFactor resolves a factor name or alias, case insensitive.
func ParseFactor(name string) (model.Factor, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if f, ok := factorAliases[key]; ok {
		return f, nil
	}
	valid := make([]string, len(model.AllFactors))
	for i, f := range model.AllFactors {
		valid[i] = f.String()
	}
	return 0, fmt.Errorf("unknown factor %q (available: %s)", name, strings.Join(valid, ", "))
}

// ParseFactors builds a set from names. Comma-separated entries are split;
// blanks are skipped.
func ParseFactors(names []string) (model.FactorSet, error) {
	var set model.FactorSet
	for _, entry := range names {
		for _, name := range strings.Split(entry, ",") {
			if strings.TrimSpace(name) == "" {
				continue
			}
			f, err := ParseFactor(name)
			if err != nil {
				return 0, err
			}
			set = set.With(f)
		}
	}
	return set, nil
}
