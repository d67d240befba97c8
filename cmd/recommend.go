package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/datacleaner-cli/internal/session"
)

var recJSON bool

var recommendCmd = &cobra.Command{
	Use:   "recommend <file>",
	Short: "Suggest charts for a dataset based on its profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := session.New(eng)
		if err := s.Load(args[0]); err != nil {
			return err
		}
		p, err := s.Analyze(cmd.Context(), false, nil)
		if err != nil {
			return err
		}
		recs, err := eng.GenerateVisualizationRecommendations(s.Data, p)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if recJSON {
			return printJSON(out, recs)
		}
		if len(recs) == 0 {
			fmt.Fprintln(out, "No chart recommendations for this dataset.")
			return nil
		}
		for i, r := range recs {
			fmt.Fprintf(out, "%d. %s %s [%s, %s priority]\n", i+1, r.Icon, r.Title, r.Type, r.Priority)
			fmt.Fprintf(out, "   variables: %s\n", strings.Join(r.Variables, ", "))
			fmt.Fprintf(out, "   %s\n", r.Description)
			if r.Insight != "" {
				fmt.Fprintf(out, "   insight: %s\n", r.Insight)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	recommendCmd.Flags().BoolVar(&recJSON, "json", false, "print recommendations as JSON")
}
