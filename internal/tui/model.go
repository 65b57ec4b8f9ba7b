// Package tui provides the Bubble Tea patient form.
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/iwlcalc/internal/input"
	"github.com/verte-zerg/iwlcalc/internal/iwl"
	"github.com/verte-zerg/iwlcalc/internal/model"
	"github.com/verte-zerg/iwlcalc/internal/report"
)

const (
	fieldWeight = iota
	fieldHeight
	fieldTemp
	fieldRR
	fieldAgeYears
	fieldAgeMonths
	fieldCount
)

// Model implements the Bubble Tea calculator form.
type Model struct {
	cfg    model.ReportConfig
	logger *zap.Logger
	styles report.Styles

	inputs  []textinput.Model
	factors model.FactorSet
	focus   int

	result *model.CalculationResult
	errMsg string

	width  int
	height int
}

// NewModel constructs the form, prefilled from in when values are present.
func NewModel(cfg model.ReportConfig, logger *zap.Logger, in model.PatientInput) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Model{
		cfg:     cfg,
		logger:  logger,
		styles:  report.NewStyles(os.Stdout, cfg.Color),
		factors: in.Factors,
	}
	m.initInputs(in)
	m.setFocus(0)
	return m
}

func (m *Model) initInputs(in model.PatientInput) {
	m.inputs = make([]textinput.Model, fieldCount)
	m.inputs[fieldWeight] = newFieldInput(m.styles, "Weight (kg): ", "required")
	m.inputs[fieldHeight] = newFieldInput(m.styles, "Height (cm): ", "required")
	m.inputs[fieldTemp] = newFieldInput(m.styles, "Temperature (°C): ", "optional")
	m.inputs[fieldRR] = newFieldInput(m.styles, "Resp. rate (/min): ", "optional")
	m.inputs[fieldAgeYears] = newFieldInput(m.styles, "Age (years): ", "0")
	m.inputs[fieldAgeMonths] = newFieldInput(m.styles, "Age (months): ", "0")

	if in.WeightKg > 0 {
		m.inputs[fieldWeight].SetValue(formatFloat(in.WeightKg))
	}
	if in.HeightCm > 0 {
		m.inputs[fieldHeight].SetValue(formatFloat(in.HeightCm))
	}
	if in.TemperatureC != nil {
		m.inputs[fieldTemp].SetValue(formatFloat(*in.TemperatureC))
	}
	if in.RespiratoryRate != nil {
		m.inputs[fieldRR].SetValue(formatFloat(*in.RespiratoryRate))
	}
	if in.AgeYears != nil {
		m.inputs[fieldAgeYears].SetValue(fmt.Sprint(*in.AgeYears))
	}
	if in.AgeMonths != nil {
		m.inputs[fieldAgeMonths].SetValue(fmt.Sprint(*in.AgeMonths))
	}
}

func newFieldInput(st report.Styles, prompt, placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = placeholder
	ti.PromptStyle = st.Plain
	ti.TextStyle = st.Plain
	ti.PlaceholderStyle = st.Muted
	ti.Cursor.Style = st.Plain
	ti.Cursor.TextStyle = st.Plain
	ti.CharLimit = 8
	ti.Cursor.SetMode(cursor.CursorBlink)
	return ti
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab, tea.KeyDown:
			return m, m.setFocus(m.focus + 1)
		case tea.KeyShiftTab, tea.KeyUp:
			return m, m.setFocus(m.focus - 1)
		case tea.KeyEnter:
			m.calculate()
			return m, nil
		}
		if f, ok := m.focusedFactor(); ok {
			switch msg.String() {
			case " ", "x":
				m.factors = m.factors.Toggle(f)
			case "q":
				return m, tea.Quit
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	if m.focus < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	form := m.renderForm()
	body := form
	if res := m.renderResult(); res != "" {
		if m.width > 0 && m.width < lipgloss.Width(form)+lipgloss.Width(res)+2 {
			body = lipgloss.JoinVertical(lipgloss.Left, form, res)
		} else {
			body = lipgloss.JoinHorizontal(lipgloss.Top, form, "  ", res)
		}
	}
	return body + "\n" + m.styles.Footer.Render("tab/shift+tab move · space toggle · enter calculate · esc quit")
}

// Input returns the patient input built from the current form values.
func (m *Model) Input() model.PatientInput {
	in := model.PatientInput{
		TemperatureC:    input.OptionalFloat(m.inputs[fieldTemp].Value()),
		RespiratoryRate: input.OptionalFloat(m.inputs[fieldRR].Value()),
		AgeYears:        input.OptionalInt(m.inputs[fieldAgeYears].Value()),
		AgeMonths:       input.OptionalInt(m.inputs[fieldAgeMonths].Value()),
		Factors:         m.factors,
	}
	if v := input.OptionalFloat(m.inputs[fieldWeight].Value()); v != nil {
		in.WeightKg = *v
	}
	if v := input.OptionalFloat(m.inputs[fieldHeight].Value()); v != nil {
		in.HeightCm = *v
	}
	return in
}

func (m *Model) calculate() {
	res, err := iwl.Calculate(m.Input())
	if err != nil {
		m.logger.Debug("calculation rejected", zap.Error(err))
		m.result = nil
		m.errMsg = err.Error()
		return
	}
	m.result = &res
	m.errMsg = ""
}

func (m *Model) focusCount() int {
	return len(m.inputs) + len(model.AllFactors)
}

func (m *Model) focusedFactor() (model.Factor, bool) {
	idx := m.focus - len(m.inputs)
	if idx < 0 || idx >= len(model.AllFactors) {
		return 0, false
	}
	return model.AllFactors[idx], true
}

func (m *Model) setFocus(idx int) tea.Cmd {
	count := m.focusCount()
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.focus = idx
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == m.focus {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) renderForm() string {
	lines := []string{m.styles.Title.Render("Patient"), ""}
	for i := range m.inputs {
		lines = append(lines, m.inputs[i].View())
	}
	lines = append(lines, "", m.styles.Title.Render("Clinical factors"))
	for i, f := range model.AllFactors {
		box := "[ ]"
		if m.factors.Has(f) {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s (+%.0f%%)", box, f.Label(), iwl.FactorPercentage(f)*100)
		if m.focus == len(m.inputs)+i {
			line = m.styles.Value.Render("> " + line)
		} else {
			line = m.styles.Muted.Render("  " + line)
		}
		lines = append(lines, line)
	}
	if m.errMsg != "" {
		lines = append(lines, "", m.styles.Warning.Render(m.errMsg))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderResult() string {
	if m.result == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(report.Totals(*m.result, m.cfg.Decimals, m.styles))
	for _, w := range m.result.Warnings {
		b.WriteString(m.styles.Warning.Render("! "+w) + "\n")
	}
	if m.cfg.Steps {
		b.WriteString("\n")
		b.WriteString(report.Steps(report.BuildTrail(*m.result, m.cfg.Decimals), m.styles))
	}
	return m.styles.Card.Render(strings.TrimRight(b.String(), "\n"))
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}
