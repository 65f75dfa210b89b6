// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/kpi-dashboard/internal/kpi"
	"github.com/jonathan/kpi-dashboard/internal/records"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCard outputs a single KPI summary card.
func (p *Printer) PrintCard(card *kpi.Card) {
	if card == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s\n", card.Label))
	sb.WriteString(fmt.Sprintf("  %s\n", card.Formatted))
	if card.Help != "" {
		help := card.Help
		if len(help) > 50 {
			help = help[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("  %s\n", help))
	}

	p.printBox(strings.ToUpper(card.KPI), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSeries outputs the most recent points of a KPI trend series.
func (p *Printer) PrintSeries(series *kpi.Series) {
	if series == nil || len(series.Points) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Periods: %d\n\n", len(series.Points)))

	// Show the most recent periods, oldest of them first.
	start := 0
	if len(series.Points) > maxItemsToShow {
		start = len(series.Points) - maxItemsToShow
		sb.WriteString(fmt.Sprintf("... %d earlier periods\n", start))
	}
	for _, point := range series.Points[start:] {
		sb.WriteString(fmt.Sprintf("%s\n", point.Period))
		for _, col := range series.Columns {
			sb.WriteString(fmt.Sprintf("  %s: %.2f\n", col, point.Values[col]))
		}
	}

	p.printBox(fmt.Sprintf("TREND: %s", strings.ToUpper(series.KPI)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBreakdown outputs one grouped view of a KPI.
func (p *Printer) PrintBreakdown(b *kpi.Breakdown) {
	if b == nil || len(b.Groups) == 0 {
		return
	}

	var sb strings.Builder
	for _, g := range b.Groups {
		sb.WriteString(fmt.Sprintf("%s\n", g.Name))
		for _, col := range b.Columns {
			sb.WriteString(fmt.Sprintf("  %s: %.2f\n", col, g.Values[col]))
		}
	}

	title := fmt.Sprintf("%s BY %s", strings.ToUpper(b.KPI), strings.ToUpper(b.Dimension))
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBatchResult outputs the outcome of a normalization run: how many rows
// survived, plus the first few errors and warnings with their line numbers.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintBatchResult(result *records.BatchResult) {
	if result == nil {
		return
	}

	if len(result.Errors) == 0 && len(result.Warnings) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4,
			fmt.Sprintf("✅ %d RECORDS NORMALIZED CLEANLY", len(result.Records)))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Records: %d   Errors: %d   Warnings: %d\n",
		len(result.Records), len(result.Errors), len(result.Warnings)))

	if len(result.Errors) > 0 {
		sb.WriteString("\nErrors:\n")
		count := min(len(result.Errors), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := result.Errors[i]
			msg := e.Message
			if len(msg) > 40 {
				msg = msg[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("⚠ line %d [%s]\n", e.Line, e.Field))
			sb.WriteString(fmt.Sprintf("  %s\n", msg))
		}
		if len(result.Errors) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more errors\n", len(result.Errors)-maxItemsToShow))
		}
	}

	if len(result.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		count := min(len(result.Warnings), 3)
		for i := 0; i < count; i++ {
			w := result.Warnings[i]
			msg := w.Message
			if len(msg) > 45 {
				msg = msg[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("• line %d: %s\n", w.Line, msg))
		}
		if len(result.Warnings) > 3 {
			sb.WriteString(fmt.Sprintf("... and %d more warnings\n", len(result.Warnings)-3))
		}
	}

	p.printBox("NORMALIZATION REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMetaTable outputs the KPI reference table.
func (p *Printer) PrintMetaTable(metas []kpi.Meta) {
	if len(metas) == 0 {
		return
	}

	var sb strings.Builder
	for i, m := range metas {
		sb.WriteString(fmt.Sprintf("%s (%s)\n", m.Key, m.Unit))
		name := m.DisplayName
		if len(name) > 50 {
			name = name[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("  %s\n", name))
		if i < len(metas)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("KPI REFERENCE", strings.TrimSuffix(sb.String(), "\n"))
}
