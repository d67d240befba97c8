package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/datacleaner-cli/internal/parser"
	"github.com/KaramelBytes/datacleaner-cli/internal/sample"
	"github.com/KaramelBytes/datacleaner-cli/internal/utils"
)

var (
	smpRows   int
	smpSeed   int64
	smpOutput string
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate a synthetic dataset with typical data quality problems",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if smpRows <= 0 {
			return fmt.Errorf("--rows must be positive")
		}
		d := sample.Generate(smpRows, smpSeed)
		body := parser.ToCSV(d) + "\n"
		if smpOutput == "" {
			fmt.Fprint(cmd.OutOrStdout(), body)
			return nil
		}
		if err := utils.SafeWriteFile(smpOutput, []byte(body)); err != nil {
			return fmt.Errorf("write sample: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d rows to %s (seed %d)\n", d.Len(), smpOutput, smpSeed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
	sampleCmd.Flags().IntVar(&smpRows, "rows", 100, "number of rows to generate")
	sampleCmd.Flags().Int64Var(&smpSeed, "seed", 42, "random seed; equal seeds give equal datasets")
	sampleCmd.Flags().StringVarP(&smpOutput, "output", "o", "", "output CSV path (stdout if empty)")
}
