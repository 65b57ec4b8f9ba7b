package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

const columnGap = "  "

// Align selects the side a column pads its cells on.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Column is a table column header with its alignment.
type Column struct {
	Header string
	Align  Align
}

// Left returns a left-aligned column.
func Left(header string) Column { return Column{Header: header} }

// Right returns a right-aligned column, used for numbers.
func Right(header string) Column { return Column{Header: header, Align: AlignRight} }

// Table collects rows under a fixed set of columns. Missing cells render
// empty and cells past the last column are dropped.
type Table struct {
	columns []Column
	rows    [][]string
}

// NewTable returns an empty table.
func NewTable(columns ...Column) *Table {
	return &Table{columns: columns}
}

// AddRow appends one row of cells.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Lines renders the header followed by every row. Widths are measured in
// terminal cells and trailing padding is trimmed.
func (t *Table) Lines() []string {
	if len(t.columns) == 0 {
		return nil
	}
	widths := t.widths()
	header := make([]string, len(t.columns))
	for i, c := range t.columns {
		header[i] = c.Header
	}
	lines := make([]string, 0, len(t.rows)+1)
	lines = append(lines, t.line(header, widths))
	for _, row := range t.rows {
		lines = append(lines, t.line(row, widths))
	}
	return lines
}

// Write prints the rendered table to w, one line per row.
func (t *Table) Write(w io.Writer) error {
	for _, line := range t.Lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func (t *Table) widths() []int {
	widths := make([]int, len(t.columns))
	for i, c := range t.columns {
		widths[i] = runewidth.StringWidth(c.Header)
	}
	for _, row := range t.rows {
		for i := range widths {
			if w := runewidth.StringWidth(cellAt(row, i)); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func (t *Table) line(row []string, widths []int) string {
	cells := make([]string, len(widths))
	for i, width := range widths {
		if t.columns[i].Align == AlignRight {
			cells[i] = runewidth.FillLeft(cellAt(row, i), width)
		} else {
			cells[i] = runewidth.FillRight(cellAt(row, i), width)
		}
	}
	return strings.TrimRight(strings.Join(cells, columnGap), " ")
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
