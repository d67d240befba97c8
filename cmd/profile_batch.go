package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/datacleaner-cli/internal/session"
	"github.com/KaramelBytes/datacleaner-cli/internal/utils"
)

var (
	pbOutDir   string
	pbJSON     bool
	pbEnhanced bool
	pbQuiet    bool
)

var profileBatchCmd = &cobra.Command{
	Use:   "profile-batch <files...>",
	Short: "Profile multiple CSV files (globs allowed) with progress",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := utils.ExpandInputs(args)
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		if pbOutDir != "" {
			if err := utils.EnsureDir(pbOutDir); err != nil {
				return fmt.Errorf("ensure out dir: %w", err)
			}
		}
		suffix := ".profile.md"
		if pbJSON {
			suffix = ".profile.json"
		}
		out := cmd.OutOrStdout()

		total := len(files)
		for i, path := range files {
			if !pbQuiet {
				fmt.Fprintf(out, "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			s := session.New(eng)
			if err := s.Load(path); err != nil {
				return err
			}
			p, err := analyze(cmd, s, pbEnhanced)
			if err != nil {
				return fmt.Errorf("%s: %w", filepath.Base(path), err)
			}
			body, err := renderProfile(p, pbJSON)
			if err != nil {
				return err
			}
			if pbOutDir == "" {
				if !pbQuiet {
					fmt.Fprintln(out, body)
				}
				continue
			}
			base := utils.BaseName(path)
			outFile := utils.UniquePath(pbOutDir, base, suffix)
			if filepath.Base(outFile) != base+suffix && !pbQuiet {
				fmt.Fprintf(out, "⚠ Detected existing profile, writing to %s to avoid overwrite.\n", filepath.Base(outFile))
			}
			if err := utils.SafeWriteFile(outFile, []byte(body)); err != nil {
				return fmt.Errorf("write profile: %w", err)
			}
			if !pbQuiet {
				fmt.Fprintf(out, "✓ Wrote %s (quality score %d/100)\n", filepath.Base(outFile), p.Summary.QualityScore)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileBatchCmd)
	profileBatchCmd.Flags().StringVar(&pbOutDir, "out-dir", "", "directory for per-file reports (prints to stdout if empty)")
	profileBatchCmd.Flags().BoolVar(&pbJSON, "json", false, "write JSON profiles instead of Markdown")
	profileBatchCmd.Flags().BoolVar(&pbEnhanced, "enhanced", false, "compute enhanced profiles")
	profileBatchCmd.Flags().BoolVar(&pbQuiet, "quiet", false, "suppress progress and non-essential output")
}
