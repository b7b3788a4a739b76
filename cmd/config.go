package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/tabloom/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set Tabloom configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := activeConfig()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "input_delimiter: %s\n", spellDelimiter(c.InputDelimiter))
		fmt.Fprintf(out, "output_delimiter: %s\n", spellDelimiter(c.OutputDelimiter))
		fmt.Fprintf(out, "columns.id: %s\n", c.Columns.ID)
		fmt.Fprintf(out, "columns.rating: %s\n", c.Columns.Rating)
		fmt.Fprintf(out, "columns.complexity: %s\n", c.Columns.Complexity)
		fmt.Fprintf(out, "columns.year: %s\n", c.Columns.Year)
		fmt.Fprintf(out, "columns.mechanics: %s\n", c.Columns.Mechanics)
		fmt.Fprintf(out, "columns.domains: %s\n", c.Columns.Domains)
		fmt.Fprintf(out, "numeric_columns: %s\n", strings.Join(c.NumericColumns, ", "))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "input_delimiter":
			d, err := parseDelimiter(val)
			if err != nil {
				return err
			}
			cfg.InputDelimiter = d
		case "output_delimiter":
			d, err := parseDelimiter(val)
			if err != nil {
				return err
			}
			cfg.OutputDelimiter = d
		case "columns.id":
			cfg.Columns.ID = val
		case "columns.rating":
			cfg.Columns.Rating = val
		case "columns.complexity":
			cfg.Columns.Complexity = val
		case "columns.year":
			cfg.Columns.Year = val
		case "columns.mechanics":
			cfg.Columns.Mechanics = val
		case "columns.domains":
			cfg.Columns.Domains = val
		case "numeric_columns":
			var cols []string
			for _, c := range strings.Split(val, ",") {
				if c = strings.TrimSpace(c); c != "" {
					cols = append(cols, c)
				}
			}
			cfg.NumericColumns = cols
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

// spellDelimiter renders a delimiter readably for config output.
func spellDelimiter(s string) string {
	if s == "\t" {
		return "tab"
	}
	return s
}
