package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/datacleaner-cli/internal/analysis"
	"github.com/KaramelBytes/datacleaner-cli/internal/session"
	"github.com/KaramelBytes/datacleaner-cli/internal/utils"
)

var (
	profJSON       bool
	profEnhanced   bool
	profOutputPath string
	profDuplicates bool
)

var profileCmd = &cobra.Command{
	Use:   "profile <file>",
	Short: "Profile a CSV file: types, missing values, duplicates, quality score",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := session.New(eng)
		if err := s.Load(args[0]); err != nil {
			return err
		}
		p, err := analyze(cmd, s, profEnhanced)
		if err != nil {
			return err
		}
		out, err := renderProfile(p, profJSON)
		if err != nil {
			return err
		}
		if profDuplicates {
			out += duplicateDetails(p)
		}
		if profOutputPath != "" {
			if err := utils.SafeWriteFile(profOutputPath, []byte(out)); err != nil {
				return fmt.Errorf("write profile: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote profile of %s to %s\n", filepath.Base(args[0]), profOutputPath)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

// analyze profiles the session dataset. A failed enhanced profile degrades
// to the basic one with a warning.
func analyze(cmd *cobra.Command, s *session.Session, enhanced bool) (*analysis.DatasetProfile, error) {
	if !enhanced {
		return s.Analyze(cmd.Context(), false, nil)
	}
	p, err := s.Analyze(cmd.Context(), true, chunkProgress(cmd.ErrOrStderr(), "profiling"))
	if err != nil {
		if p == nil {
			return nil, err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: enhanced profile failed, showing basic profile: %v\n", err)
	}
	return p, nil
}

func renderProfile(p *analysis.DatasetProfile, asJSON bool) (string, error) {
	if !asJSON {
		return p.Markdown(), nil
	}
	b, err := utils.PrettyJSON(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func duplicateDetails(p *analysis.DatasetProfile) string {
	if len(p.DuplicateGroups) == 0 {
		return "\n(no duplicate rows)\n"
	}
	var b strings.Builder
	b.WriteString("\n[DUPLICATE ROWS]\n")
	for i, g := range p.DuplicateGroups {
		vals := make([]string, 0, len(p.Columns))
		for _, c := range p.Columns {
			vals = append(vals, fmt.Sprintf("%s=%s", c.Name, g.Sample[c.Name]))
		}
		fmt.Fprintf(&b, "%d. %s (%s): %s\n", i+1, g.DuplicateType, g.Severity, strings.Join(vals, ", "))
	}
	return b.String()
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().BoolVar(&profJSON, "json", false, "print the profile as JSON")
	profileCmd.Flags().BoolVar(&profEnhanced, "enhanced", false, "add correlations, per-column outliers and chunk progress")
	profileCmd.Flags().StringVarP(&profOutputPath, "output", "o", "", "write the profile to a file instead of stdout")
	profileCmd.Flags().BoolVar(&profDuplicates, "duplicates", false, "list every duplicate group with a sample record")
}
