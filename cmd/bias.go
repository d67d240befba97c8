package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/datacleaner-cli/internal/analysis"
	"github.com/KaramelBytes/datacleaner-cli/internal/session"
	"github.com/KaramelBytes/datacleaner-cli/internal/utils"
)

var (
	biasColumn string
	biasJSON   bool
)

var biasCmd = &cobra.Command{
	Use:   "bias <file>",
	Short: "Check categorical columns for skewed value distributions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := session.New(eng)
		if err := s.Load(args[0]); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if biasColumn != "" {
			res, err := eng.DetectBias(s.Data, biasColumn)
			if err != nil {
				return err
			}
			if biasJSON {
				return printJSON(out, res)
			}
			printBiasResult(out, res)
			return nil
		}
		rep, err := eng.AnalyzeDatasetBias(s.Data, nil)
		if err != nil {
			return err
		}
		if biasJSON {
			return printJSON(out, rep)
		}
		if len(rep.Results) == 0 {
			fmt.Fprintln(out, "No categorical columns to analyze (text columns with 2-20 distinct values).")
			return nil
		}
		for _, r := range rep.Results {
			printBiasResult(out, r)
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "Overall bias score: %.2f\n", rep.OverallBiasScore)
		for _, d := range rep.DetectedBiases {
			fmt.Fprintf(out, "⚠ %s bias in %s (score %.2f)\n", d.Level, d.Column, d.BiasScore)
		}
		for _, rec := range rep.Recommendations {
			fmt.Fprintf(out, "  - %s\n", rec)
		}
		return nil
	},
}

func printBiasResult(w io.Writer, r *analysis.BiasResult) {
	a := r.Analysis
	fmt.Fprintf(w, "Column: %s\n", r.Column)
	fmt.Fprintf(w, "  bias score: %.2f (%d values, %d distinct)\n", a.BiasScore, a.TotalValues, a.UniqueValues)
	fmt.Fprintf(w, "  gini: %.2f  parity: %.2f  imbalance: %.2f\n",
		a.FairnessMetrics.GiniCoefficient, a.FairnessMetrics.DemographicParity, a.FairnessMetrics.ImbalanceRatio)
	for _, vc := range a.Distribution {
		fmt.Fprintf(w, "  %-20s %6d  %3d%% %s\n", vc.Value, vc.Count, vc.Percentage, strings.Repeat("█", vc.Percentage/5))
	}
	for _, rec := range r.Recommendations {
		fmt.Fprintf(w, "  → %s\n", rec)
	}
}

func printJSON(w io.Writer, v any) error {
	b, err := utils.PrettyJSON(v)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(b))
	return nil
}

func init() {
	rootCmd.AddCommand(biasCmd)
	biasCmd.Flags().StringVarP(&biasColumn, "column", "c", "", "analyze a single column (default: every categorical column)")
	biasCmd.Flags().BoolVar(&biasJSON, "json", false, "print results as JSON")
}
