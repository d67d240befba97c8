package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/datacleaner-cli/internal/cleaning"
	"github.com/KaramelBytes/datacleaner-cli/internal/session"
)

var (
	clMissing       string
	clFillValue     string
	clDuplicates    string
	clDates         bool
	clDateFormat    string
	clNumbers       bool
	clTrim          bool
	clCase          string
	clSpecialChars  bool
	clOutliers      string
	clOutlierMethod string
	clEncode        bool
	clEncoding      string
	clSchema        bool
	clChunked       bool
	clFormat        string
	clOutDir        string
	clQuiet         bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean <file>",
	Short: "Clean a CSV file and export the result with a cleaning log",
	Long: `Runs the cleaning pipeline (duplicates, text normalization, missing values,
formats, outliers, category encoding, schema enforcement) with the configured
defaults, overridden by any flags given. Writes <name>_cleaned.<format> and
<name>_cleaning_log.json into --out-dir.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cleaningOptions(cmd)
		if err := opts.Validate(); err != nil {
			return err
		}
		format := session.Format(strings.ToLower(strings.TrimSpace(clFormat)))
		if format != session.FormatCSV && format != session.FormatJSON {
			return fmt.Errorf("unsupported --format: %s (use csv|json)", clFormat)
		}
		outDir := cfg.OutputDir
		if cmd.Flags().Changed("out-dir") {
			outDir = clOutDir
		}

		s := session.New(eng)
		if err := s.Load(args[0]); err != nil {
			return err
		}
		var progress cleaning.ProgressFunc
		if clChunked && !clQuiet {
			progress = stepProgress(cmd.ErrOrStderr())
		}
		res, err := s.Clean(cmd.Context(), opts, clChunked, progress)
		if err != nil {
			return fmt.Errorf("cleaning failed: %w", err)
		}
		files, err := s.Export(outDir, format)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		l := res.Log
		fmt.Fprintf(out, "✓ Cleaned %s: %d → %d rows (%d removed, %d values imputed, %d columns added)\n",
			s.Name, l.OriginalRows, l.FinalRows, l.RowsRemoved, l.ValuesImputed, l.ColumnsAdded)
		if !clQuiet {
			for _, op := range l.Operations {
				fmt.Fprintf(out, "  - %s\n", op)
			}
		}
		fmt.Fprintf(out, "✓ Wrote %s\n", files.Data)
		fmt.Fprintf(out, "✓ Wrote %s\n", files.Log)
		return nil
	},
}

// cleaningOptions starts from the configured defaults and applies the flags
// that were set explicitly.
func cleaningOptions(cmd *cobra.Command) cleaning.Options {
	opts := cfg.CleaningOptions()
	f := cmd.Flags()
	if f.Changed("missing") {
		opts.HandleMissing = cleaning.MissingStrategy(clMissing)
	}
	if f.Changed("fill-value") {
		opts.CustomFillValue = clFillValue
	}
	if f.Changed("duplicates") {
		opts.HandleDuplicates = cleaning.DuplicateStrategy(clDuplicates)
	}
	if f.Changed("dates") {
		opts.StandardizeDates = clDates
	}
	if f.Changed("date-format") {
		opts.DateFormat = cleaning.DateFormat(clDateFormat)
	}
	if f.Changed("numbers") {
		opts.StandardizeNumbers = clNumbers
	}
	if f.Changed("trim") {
		opts.TrimWhitespace = clTrim
	}
	if f.Changed("case") {
		opts.StandardizeCase = cleaning.CaseStyle(clCase)
	}
	if f.Changed("special-chars") {
		opts.RemoveSpecialChars = clSpecialChars
	}
	if f.Changed("outliers") {
		opts.HandleOutliers = cleaning.OutlierAction(clOutliers)
	}
	if f.Changed("outlier-method") {
		opts.OutlierMethod = cleaning.OutlierMethod(clOutlierMethod)
	}
	if f.Changed("encode") {
		opts.EncodeCategories = clEncode
	}
	if f.Changed("encoding") {
		opts.EncodingMethod = cleaning.EncodingMethod(clEncoding)
	}
	if f.Changed("schema") {
		opts.EnforceSchema = clSchema
	}
	return opts
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	f := cleanCmd.Flags()
	f.StringVar(&clMissing, "missing", "", "missing values: keep|drop|mean|median|mode|custom")
	f.StringVar(&clFillValue, "fill-value", "", "value used with --missing custom")
	f.StringVar(&clDuplicates, "duplicates", "", "duplicate rows: keep|drop|keep_first|keep_last")
	f.BoolVar(&clDates, "dates", true, "standardize date columns")
	f.StringVar(&clDateFormat, "date-format", "", "date output format: YYYY-MM-DD|MM/DD/YYYY|DD/MM/YYYY")
	f.BoolVar(&clNumbers, "numbers", true, "canonicalize numeric values")
	f.BoolVar(&clTrim, "trim", true, "trim surrounding whitespace")
	f.StringVar(&clCase, "case", "", "text case: none|lower|upper|title")
	f.BoolVar(&clSpecialChars, "special-chars", false, "remove special characters from text")
	f.StringVar(&clOutliers, "outliers", "", "outliers: none|remove|cap|mark")
	f.StringVar(&clOutlierMethod, "outlier-method", "", "outlier detection: iqr|zscore")
	f.BoolVar(&clEncode, "encode", false, "encode categorical columns")
	f.StringVar(&clEncoding, "encoding", "", "category encoding: label|onehot")
	f.BoolVar(&clSchema, "schema", true, "blank \"null\"/\"undefined\" strings and canonicalize numeric values")
	f.BoolVar(&clChunked, "chunked", false, "process in chunks and report progress")
	f.StringVar(&clFormat, "format", "csv", "export format: csv|json")
	f.StringVar(&clOutDir, "out-dir", "", "output directory (default from config output_dir)")
	f.BoolVar(&clQuiet, "quiet", false, "suppress progress and the operations list")
}
