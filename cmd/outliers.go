package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/datacleaner-cli/internal/analysis"
	"github.com/KaramelBytes/datacleaner-cli/internal/session"
)

var (
	outColumn string
	outJSON   bool
)

var outliersCmd = &cobra.Command{
	Use:   "outliers <file>",
	Short: "Detect outliers in a numeric column (IQR and z-score)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := session.New(eng)
		if err := s.Load(args[0]); err != nil {
			return err
		}
		res, err := eng.DetectOutliers(s.Data, outColumn)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if outJSON {
			return printJSON(out, res)
		}
		if res.Method == analysis.MethodNone {
			fmt.Fprintf(out, "Column %s has no numeric values.\n", res.Column)
			return nil
		}
		st := res.Statistics
		fmt.Fprintf(out, "Column: %s (%d numeric values)\n", res.Column, st.Count)
		fmt.Fprintf(out, "  min %.2f  q1 %.2f  median %.2f  q3 %.2f  max %.2f  mean %.2f\n", st.Min, st.Q1, st.Median, st.Q3, st.Max, st.Mean)
		fmt.Fprintf(out, "  IQR bounds [%.2f, %.2f]: %d outliers\n", res.IQR.Bounds.Lower, res.IQR.Bounds.Upper, len(res.IQR.Indices))
		fmt.Fprintf(out, "  z-score |z| > %.0f (σ %.2f): %d outliers\n", res.ZScore.Threshold, res.ZScore.Statistics.StdDev, len(res.ZScore.Indices))
		if len(res.Combined) == 0 {
			fmt.Fprintln(out, "✓ No outliers found")
			return nil
		}
		fmt.Fprintf(out, "⚠ %d rows flagged:", len(res.Combined))
		for _, i := range res.Combined {
			fmt.Fprintf(out, " %d", i+1)
		}
		fmt.Fprintln(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(outliersCmd)
	outliersCmd.Flags().StringVarP(&outColumn, "column", "c", "", "numeric column to analyze")
	outliersCmd.Flags().BoolVar(&outJSON, "json", false, "print the result as JSON")
	_ = outliersCmd.MarkFlagRequired("column")
}
