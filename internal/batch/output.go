package batch

import (
	"fmt"
	"io"
	"strconv"

	"github.com/verte-zerg/iwlcalc/internal/report"
)

// Entry is the machine-readable form of a Row.
type Entry struct {
	ID     string          `json:"id" yaml:"id"`
	Error  string          `json:"error,omitempty" yaml:"error,omitempty"`
	Result *report.Summary `json:"result,omitempty" yaml:"result,omitempty"`
}

// Write prints rows as an aligned table or as a JSON/YAML list.
func Write(w io.Writer, rows []Row, format string, decimals int) error {
	format = report.NormalizeFormat(format)
	if format != report.FormatText {
		entries := make([]Entry, len(rows))
		for i, row := range rows {
			entries[i] = Entry{ID: row.ID}
			if row.Err != nil {
				entries[i].Error = row.Err.Error()
				continue
			}
			s := report.NewSummary(*row.Result, decimals)
			entries[i].Result = &s
		}
		return report.Encode(w, format, entries)
	}

	num := func(v float64) string { return strconv.FormatFloat(v, 'f', decimals, 64) }
	table := report.NewTable(
		report.Left("ID"),
		report.Right("BSA m²"),
		report.Right("Daily low"),
		report.Right("Daily high"),
		report.Right("mL/hr"),
		report.Left("Status"),
	)
	for _, row := range rows {
		if row.Err != nil {
			table.AddRow(row.ID, "", "", "", "", "error: "+row.Err.Error())
			continue
		}
		res := row.Result
		status := "ok"
		if len(res.Warnings) > 0 {
			status = fmt.Sprintf("%d warning(s)", len(res.Warnings))
		}
		table.AddRow(
			row.ID,
			strconv.FormatFloat(res.BSA, 'f', 4, 64),
			num(res.TotalLow),
			num(res.TotalHigh),
			num(res.HourlyLow)+"–"+num(res.HourlyHigh),
			status,
		)
	}
	return table.Write(w)
}
