// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/empowr-credit/internal/mock"
	"github.com/jonathan/empowr-credit/internal/scoring"
	"github.com/jonathan/empowr-credit/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// meterWidth is the number of cells in a score meter
	meterWidth = 30
)

// Printer handles formatted output for the score command
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

	for _, line := range strings.Split(content, "\n") {
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %s%s │\n", line, strings.Repeat(" ", max(0, boxWidth-4-len([]rune(line)))))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// meter renders score as a bar of meterWidth cells.
func meter(score int) string {
	filled := int(scoring.Percent(score) / 100 * meterWidth)
	filled = min(max(filled, 0), meterWidth)
	return strings.Repeat("█", filled) + strings.Repeat("░", meterWidth-filled)
}

// PrintInputs outputs the figures a score was derived from.
func (p *Printer) PrintInputs(annualIncome, monthlyDebt float64) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Annual income:  %s\n", mock.FormatCurrency(annualIncome)))
	sb.WriteString(fmt.Sprintf("Monthly debt:   %s", mock.FormatCurrency(monthlyDebt)))
	p.printBox("INPUTS", sb.String())
}

// PrintCreditScore outputs the three scores, the risk level and the
// dashboard band.
func (p *Printer) PrintCreditScore(score *types.CreditScore) {
	if score == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Blended:  %3d  %s\n", score.BlendedScore, meter(score.BlendedScore)))
	sb.WriteString(fmt.Sprintf("FICO:     %3d  %s\n", score.FicoScore, meter(score.FicoScore)))
	sb.WriteString(fmt.Sprintf("Empowr:   %3d  %s\n", score.EmpowrScore, meter(score.EmpowrScore)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Risk level: %s\n", score.RiskLevel))
	sb.WriteString(fmt.Sprintf("Band:       %s", scoring.BandFor(score.BlendedScore)))

	p.printBox("CREDIT SCORE", sb.String())
}
