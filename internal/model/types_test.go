package model

import "testing"

func TestFactorSet(t *testing.T) {
	s := NewFactorSet(FactorBurns, FactorPhototherapy)
	if !s.Has(FactorBurns) || !s.Has(FactorPhototherapy) {
		t.Fatalf("expected burns and phototherapy enabled")
	}
	if s.Has(FactorRadiantWarmer) || s.Has(FactorLowHumidity) {
		t.Fatalf("unexpected factors enabled: %s", s)
	}
	if s.String() != "phototherapy,burns" {
		t.Fatalf("expected display order, got %q", s.String())
	}
	s = s.Toggle(FactorBurns).With(FactorLowHumidity).Without(FactorPhototherapy)
	if got := s.Factors(); len(got) != 1 || got[0] != FactorLowHumidity {
		t.Fatalf("unexpected factors: %v", got)
	}
	if FactorSet(0).String() != "" {
		t.Fatalf("empty set should render empty")
	}
}

func TestResultFlags(t *testing.T) {
	var r CalculationResult
	if r.HasFever() || r.HasRRAdjustment() || r.HasFactorAdjustments() {
		t.Fatalf("zero result should have no adjustments")
	}
	r.FeverIncrease = 0.13
	r.RRAdjustment = 4
	r.FactorAdjustments = []FactorAdjustment{{Factor: FactorBurns}}
	if !r.HasFever() || !r.HasRRAdjustment() || !r.HasFactorAdjustments() {
		t.Fatalf("expected all adjustments flagged")
	}
	if FactorRadiantWarmer.Label() != "Radiant warmer" || Factor(9).String() != "factor(9)" {
		t.Fatalf("unexpected factor names")
	}
}
