// Package report renders calculation results for terminals and machines.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/verte-zerg/iwlcalc/internal/model"
)

// DefaultDecimals is the number of decimals used for volumes.
const DefaultDecimals = 1

// Styles groups the lipgloss styles used by text output.
type Styles struct {
	Title   lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Warning lipgloss.Style
	Step    lipgloss.Style

	// Plain, Footer, and Card serve the interactive form.
	Plain  lipgloss.Style
	Footer lipgloss.Style
	Card   lipgloss.Style
}

// NewStyles returns styles bound to w. Color is used when w is a terminal,
// when force is set, and never when NO_COLOR is present.
func NewStyles(w io.Writer, force bool) Styles {
	r := lipgloss.NewRenderer(w)
	if !shouldUseColor(w, force) {
		r.SetColorProfile(termenv.Ascii)
	} else if force {
		r.SetColorProfile(termenv.ANSI256)
	}
	return Styles{
		Title:   r.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true),
		Value:   r.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("#FF4D4F")),
		Step:    r.NewStyle().Foreground(lipgloss.Color("#B8B8B8")).Bold(true),
		Plain:   r.NewStyle(),
		Footer:  r.NewStyle().Foreground(lipgloss.Color("#6E6E6E")),
		Card: r.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A")),
	}
}

// Write renders res to w in the configured format.
func Write(w io.Writer, res model.CalculationResult, cfg model.ReportConfig) error {
	format := NormalizeFormat(cfg.Format)
	if format != FormatText {
		return Encode(w, format, NewSummary(res, cfg.Decimals))
	}
	out := Text(res, cfg, NewStyles(w, cfg.Color))
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Text renders the human-readable report.
func Text(res model.CalculationResult, cfg model.ReportConfig, st Styles) string {
	var b strings.Builder
	b.WriteString(Totals(res, cfg.Decimals, st))

	if len(res.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range res.Warnings {
			b.WriteString(st.Warning.Render("! "+w) + "\n")
		}
	}

	if cfg.Steps {
		b.WriteString("\n" + st.Title.Render("Calculation") + "\n")
		b.WriteString(Steps(BuildTrail(res, cfg.Decimals), st))
	}

	if cfg.References {
		prose := st.Muted
		if cfg.Width > 0 {
			prose = prose.Width(cfg.Width)
		}
		b.WriteString("\n" + st.Title.Render("References") + "\n")
		for i, ref := range References {
			b.WriteString(prose.Render(fmt.Sprintf("  [%d] %s", i+1, ref)) + "\n")
		}
		b.WriteString("\n" + prose.Render(Disclaimer) + "\n")
	}
	return b.String()
}

// Totals renders the daily and hourly ranges.
func Totals(res model.CalculationResult, decimals int, st Styles) string {
	daily := formatNumber(res.TotalLow, decimals) + "–" + formatNumber(res.TotalHigh, decimals)
	hourly := formatNumber(res.HourlyLow, decimals) + "–" + formatNumber(res.HourlyHigh, decimals)
	lines := []string{
		st.Title.Render("Estimated insensible water loss"),
		"  Daily   " + st.Value.Render(daily) + " mL/day",
		"  Hourly  " + st.Value.Render(hourly) + " mL/hr",
	}
	return strings.Join(lines, "\n") + "\n"
}

// Steps renders a derivation trail.
func Steps(steps []Step, st Styles) string {
	var b strings.Builder
	for _, step := range steps {
		b.WriteString(st.Step.Render(fmt.Sprintf("  %d. %s", step.Number, step.Title)) + "\n")
		for _, line := range step.Lines {
			b.WriteString("     " + line + "\n")
		}
	}
	return b.String()
}

// BandRows returns table rows for the normal respiratory rate bands.
func BandRows(bands []model.NormalRRRange) [][]string {
	rows := make([][]string, 0, len(bands))
	lower := 0
	for _, band := range bands {
		ages := fmt.Sprintf("%d+ mo", lower)
		if band.UpperMonths > 0 {
			ages = fmt.Sprintf("%d–%d mo", lower, band.UpperMonths-1)
			lower = band.UpperMonths
		}
		rows = append(rows, []string{band.Label, ages, fmt.Sprint(band.Min), fmt.Sprint(band.Max)})
	}
	return rows
}

// WriteBands prints the band table.
func WriteBands(w io.Writer, bands []model.NormalRRRange) error {
	table := NewTable(Left("Band"), Left("Age"), Right("Min"), Right("Max"))
	for _, row := range BandRows(bands) {
		table.AddRow(row...)
	}
	return table.Write(w)
}

// WriteFactors prints each clinical factor with its share of base IWL.
func WriteFactors(w io.Writer, pct func(model.Factor) float64) error {
	table := NewTable(Left("Factor"), Left("Description"), Right("Of base"))
	for _, f := range model.AllFactors {
		table.AddRow(f.String(), f.Label(), formatNumber(pct(f)*100, 0)+"%")
	}
	return table.Write(w)
}
