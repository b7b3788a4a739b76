package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/tabloom/internal/config"
)

var (
	// Global flags
	cfgFile       string
	flagDelimiter string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "tabloom",
	Short: "Tabloom CLI: audit, clean, and analyze delimited tabular data",
	Long:  `Tabloom is a CLI tool for header-described delimiter-separated files: it audits columns for missing values, normalizes raw exports into a canonical tab-separated form with synthesized identifiers, and reports token frequencies and rating correlations.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.tabloom/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDelimiter, "delimiter", "", "input field delimiter: ';' ',' 'tab' '|' (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// activeConfig returns the loaded configuration, or the built-in defaults
// when loading failed or never ran (unit tests drive commands directly).
func activeConfig() *cfgpkg.Global {
	if cfg != nil {
		return cfg
	}
	return cfgpkg.Default()
}

// inputDelimiter resolves the effective input delimiter for a command:
// the --delimiter flag when set, otherwise the configured one.
func inputDelimiter(c *cfgpkg.Global) (string, error) {
	if flagDelimiter != "" {
		return parseDelimiter(flagDelimiter)
	}
	return c.InputDelimiter, nil
}

// parseDelimiter maps a delimiter spelling to the literal separator.
func parseDelimiter(s string) (string, error) {
	switch s {
	case ";", ",", "|":
		return s, nil
	case "\t", "tab":
		return "\t", nil
	default:
		return "", fmt.Errorf("unsupported delimiter: %q (use ';'|','|'tab'|'|')", s)
	}
}
