package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/iwlcalc/internal/model"
)

func typeText(m *Model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func press(m *Model, k tea.KeyType) {
	m.Update(tea.KeyMsg{Type: k})
}

func newTestModel(in model.PatientInput) *Model {
	return NewModel(model.ReportConfig{Decimals: 1, Steps: true}, nil, in)
}

func TestFormCalculates(t *testing.T) {
	m := newTestModel(model.PatientInput{})
	typeText(m, "3")
	press(m, tea.KeyTab)
	typeText(m, "50")
	press(m, tea.KeyEnter)

	if m.errMsg != "" {
		t.Fatalf("unexpected error: %s", m.errMsg)
	}
	if m.result == nil {
		t.Fatalf("expected result")
	}
	view := m.View()
	for _, want := range []string{"81.6–102.1", "3.4–4.3", "1. Body surface area"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestFormShowsValidationError(t *testing.T) {
	m := newTestModel(model.PatientInput{})
	press(m, tea.KeyTab)
	typeText(m, "50")
	press(m, tea.KeyEnter)

	if m.result != nil {
		t.Fatalf("expected no result")
	}
	if m.errMsg != "invalid weight" {
		t.Fatalf("expected invalid weight, got %q", m.errMsg)
	}
	if !strings.Contains(m.View(), "invalid weight") {
		t.Fatalf("expected error in view")
	}
}

func TestFormToggleFactor(t *testing.T) {
	m := newTestModel(model.PatientInput{WeightKg: 10, HeightCm: 75})
	press(m, tea.KeyShiftTab)
	if f, ok := m.focusedFactor(); !ok || f != model.FactorBurns {
		t.Fatalf("expected burns focused, got %v %v", f, ok)
	}
	typeText(m, " ")
	if !m.factors.Has(model.FactorBurns) {
		t.Fatalf("expected burns enabled")
	}
	press(m, tea.KeyEnter)
	if m.result == nil || len(m.result.FactorAdjustments) != 1 {
		t.Fatalf("expected one factor adjustment, got %+v", m.result)
	}
	if !strings.Contains(m.View(), "[x] Burns") {
		t.Fatalf("expected checked burns in view")
	}
}

func TestFormInputIgnoresUnparsableOptionalText(t *testing.T) {
	m := newTestModel(model.PatientInput{WeightKg: 3, HeightCm: 50})
	m.inputs[fieldTemp].SetValue("hot")
	m.inputs[fieldRR].SetValue("65")
	in := m.Input()
	if in.TemperatureC != nil {
		t.Fatalf("expected temperature absent")
	}
	if in.RespiratoryRate == nil || *in.RespiratoryRate != 65 {
		t.Fatalf("expected rr 65, got %v", in.RespiratoryRate)
	}
	if in.WeightKg != 3 || in.HeightCm != 50 {
		t.Fatalf("expected prefilled weight and height, got %+v", in)
	}
}

func TestFormFocusWraps(t *testing.T) {
	m := newTestModel(model.PatientInput{})
	for i := 0; i < m.focusCount(); i++ {
		press(m, tea.KeyTab)
	}
	if m.focus != 0 {
		t.Fatalf("expected focus to wrap to 0, got %d", m.focus)
	}
}

func TestFormFollowsColorSetting(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	plain := NewModel(model.ReportConfig{Decimals: 1}, nil, model.PatientInput{WeightKg: 3, HeightCm: 50})
	press(plain, tea.KeyEnter)
	if view := plain.View(); strings.Contains(view, "\x1b[") {
		t.Fatalf("expected no escape codes without color:\n%q", view)
	}

	colored := NewModel(model.ReportConfig{Decimals: 1, Color: true}, nil, model.PatientInput{WeightKg: 3, HeightCm: 50})
	press(colored, tea.KeyEnter)
	view := colored.View()
	title := strings.SplitN(view, "\n", 2)[0]
	if !strings.Contains(title, "\x1b[") {
		t.Fatalf("expected colored form title, got %q", title)
	}
	footer := view[strings.LastIndex(view, "\n")+1:]
	if !strings.Contains(footer, "\x1b[") {
		t.Fatalf("expected colored footer, got %q", footer)
	}
}
