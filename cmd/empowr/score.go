package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jonathan/empowr-credit/internal/observability"
	"github.com/jonathan/empowr-credit/internal/scoring"
	"github.com/spf13/cobra"
)

var (
	scoreIncome float64
	scoreDebt   float64
	scoreSeed   uint64
	scoreJSON   bool
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Derive a credit score from income and debt",
	Long: `Derive a mock credit score the same way a submitted assessment is scored.

Without --seed the Empowr score jitter differs on every run.`,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().Float64Var(&scoreIncome, "income", 0, "Annual income in dollars (required)")
	scoreCmd.Flags().Float64Var(&scoreDebt, "debt", 0, "Monthly debt payments in dollars")
	scoreCmd.Flags().Uint64Var(&scoreSeed, "seed", 0, "Seed for the score jitter (0 = random)")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the score as JSON")

	_ = scoreCmd.MarkFlagRequired("income")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	return writeScore(cmd.OutOrStdout(), scoreIncome, scoreDebt, scoreSeed, scoreJSON)
}

// writeScore derives a score and prints it either as JSON or as boxes.
func writeScore(out io.Writer, income, debt float64, seed uint64, asJSON bool) error {
	if income < 0 {
		return fmt.Errorf("--income cannot be negative, got: %v", income)
	}
	if debt < 0 {
		return fmt.Errorf("--debt cannot be negative, got: %v", debt)
	}

	deriver := scoring.NewDeriver(nil)
	if seed != 0 {
		deriver = scoring.NewSeededDeriver(seed)
	}
	score := deriver.Derive(income, debt)

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(score)
	}

	p := observability.NewPrinter(out)
	p.PrintInputs(income, debt)
	p.PrintCreditScore(&score)
	return nil
}
