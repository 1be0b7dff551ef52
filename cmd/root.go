package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cfgpkg "github.com/geoscience-tools/geochemtools/internal/config"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration and logger, shared by subcommands.
	cfg    *cfgpkg.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "geochem",
	Short: "Geochemical assay data cleaning, reshaping and aggregation tools",
	Long: `geochem ingests long-format geochemical assay exports, cleans and
normalizes the values, converts them between long and wide tabular forms and
computes down-hole maximum aggregates for mapping.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main().
func Execute() {
	cobra.OnInitialize(initRuntime)
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.geochemtools/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func initRuntime() {
	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to initialize logger: %v\n", err)
		logger = zap.NewNop()
	}

	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to default column bindings.
		logger.Warn("failed to load config, using defaults", zap.Error(err))
		return
	}
	cfg = c
}
