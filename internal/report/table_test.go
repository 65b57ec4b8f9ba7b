package report

import (
	"bytes"
	"testing"
)

func TestTableAlignsColumns(t *testing.T) {
	table := NewTable(Left("Age"), Right("Min"), Right("Max"))
	table.AddRow("Newborn (<1 month)", "30", "60")
	table.AddRow("1-3 months", "30", "50")
	table.AddRow("3+ years", "15", "25")

	lines := table.Lines()
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if lines[0] != "Age                 Min  Max" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[2] != "1-3 months           30   50" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
	if lines[3] != "3+ years             15   25" {
		t.Fatalf("unexpected row line: %q", lines[3])
	}
}

func TestTableMissingAndExtraCells(t *testing.T) {
	table := NewTable(Left("Name"), Left("Note"))
	table.AddRow("long-name")
	table.AddRow("a", "b", "dropped")

	lines := table.Lines()
	if lines[1] != "long-name" {
		t.Fatalf("expected trailing padding trimmed, got %q", lines[1])
	}
	if lines[2] != "a          b" {
		t.Fatalf("expected extra cell dropped, got %q", lines[2])
	}
}

func TestTableWrite(t *testing.T) {
	table := NewTable(Left("ID"), Right("mL"))
	table.AddRow("p1", "120.5")

	var buf bytes.Buffer
	if err := table.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := buf.String(); got != "ID     mL\np1  120.5\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestTableWithoutColumns(t *testing.T) {
	if lines := NewTable().Lines(); lines != nil {
		t.Fatalf("expected nil, got %v", lines)
	}
}
