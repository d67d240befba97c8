package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/datacleaner-cli/internal/config"
	"github.com/KaramelBytes/datacleaner-cli/internal/engine"
	"github.com/KaramelBytes/datacleaner-cli/internal/logging"
)

var (
	// Global flags
	cfgFile  string
	envFile  string
	logLevel string
	debug    bool

	// Loaded configuration and the services built from it
	cfg    *cfgpkg.Global
	logger *logrus.Logger
	eng    *engine.Engine
)

var rootCmd = &cobra.Command{
	Use:   "datacleaner",
	Short: "DataCleaner CLI: profile, clean and audit CSV datasets",
	Long: `DataCleaner profiles tabular data (types, missing values, duplicates, outliers,
bias), cleans it with a configurable pipeline and exports the result with an audit log.`,
	SilenceUsage:      true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return loadConfig() },
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.datacleaner/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading DATACLEANER_* variables")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() error {
	c, err := cfgpkg.Load(cfgFile, envFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Default()
	}
	cfg = c

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	if debug {
		level = "debug"
	}
	logger = logging.Setup(level)
	eng = engine.New(engine.WithLogger(logger), engine.WithChunkSize(cfg.ChunkSize))
	logger.WithFields(logrus.Fields{"config": cfgFile, "chunk_size": cfg.ChunkSize}).Debug("configuration loaded")
	return nil
}
