// Package batch runs IWL calculations for many patients from a TOML file.
package batch

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/iwlcalc/internal/input"
	"github.com/verte-zerg/iwlcalc/internal/model"
)

// File is the on-disk batch layout.
type File struct {
	Patients []Patient `toml:"patient"`
}

// Patient is one [[patient]] table. Optional values are pointers so an
// omitted key stays absent.
type Patient struct {
	ID              string   `toml:"id"`
	WeightKg        *float64 `toml:"weight"`
	HeightCm        *float64 `toml:"height"`
	TemperatureC    *float64 `toml:"temp"`
	RespiratoryRate *float64 `toml:"rr"`
	AgeYears        *int     `toml:"age-years"`
	AgeMonths       *int     `toml:"age-months"`
	Factors         []string `toml:"factors"`
}

// LoadPatients reads patients from a TOML batch file. Patients without an id
// get their 1-based position.
func LoadPatients(path string) ([]Patient, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to stat batch file: %w", err)
	}
	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode batch file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown batch key %q", undecoded[0].String())
	}
	if len(f.Patients) == 0 {
		return nil, fmt.Errorf("batch file has no [[patient]] entries")
	}
	for i := range f.Patients {
		if f.Patients[i].ID == "" {
			f.Patients[i].ID = strconv.Itoa(i + 1)
		}
	}
	return f.Patients, nil
}

// Input converts the patient into engine input. Missing weight or height
// become zero so the engine reports them; unknown factors are an error.
func (p Patient) Input() (model.PatientInput, error) {
	factors, err := input.ParseFactors(p.Factors)
	if err != nil {
		return model.PatientInput{}, err
	}
	in := model.PatientInput{
		TemperatureC:    p.TemperatureC,
		RespiratoryRate: p.RespiratoryRate,
		AgeYears:        p.AgeYears,
		AgeMonths:       p.AgeMonths,
		Factors:         factors,
	}
	if p.WeightKg != nil {
		in.WeightKg = *p.WeightKg
	}
	if p.HeightCm != nil {
		in.HeightCm = *p.HeightCm
	}
	return in, nil
}
