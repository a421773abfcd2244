package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kosciej/cabrillo-log/pkg/config"
	"github.com/kosciej/cabrillo-log/pkg/enricher"
	"github.com/kosciej/cabrillo-log/pkg/logging"
)

var rootCmd = &cobra.Command{
	Use:   "cabrillo",
	Short: "Cabrillo contest log toolkit",
	Long: `Parse, validate, enrich and summarize Cabrillo amateur radio contest
logs, and serve a web UI that maps the stations of an uploaded log.`,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error), overrides configuration")
	rootCmd.PersistentFlags().String("cty", "", "path to a cty.csv country file, overrides configuration")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// fail prints a message to stderr and exits
func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// loadConfig loads the configuration and applies the persistent flags
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if cty, _ := cmd.Flags().GetString("cty"); cty != "" {
		cfg.CtyFile = cty
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.Init(cfg.LogLevel)
}

// loadTable returns the country table from cfg.CtyFile, or the embedded one
func loadTable(cfg *config.Config) (*enricher.Table, error) {
	if cfg.CtyFile == "" {
		return enricher.Default(), nil
	}
	table, err := enricher.LoadFile(cfg.CtyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load country file %s: %w", cfg.CtyFile, err)
	}
	return table, nil
}

// setup loads configuration, logger and country table for a command
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, *enricher.Table) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fail("%v", err)
	}
	logger, err := newLogger(cfg)
	if err != nil {
		fail("%v", err)
	}
	table, err := loadTable(cfg)
	if err != nil {
		fail("%v", err)
	}
	return cfg, logger, table
}

func printJSON(v interface{}) error {
	out, err := jsonIndent(v)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
