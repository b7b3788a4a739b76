package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/tabloom/internal/utils"
)

// Columns names the logical columns the engine resolves against a header.
// Matching is case-sensitive after trimming, against the first occurrence.
type Columns struct {
	ID         string `mapstructure:"id" yaml:"id"`
	Rating     string `mapstructure:"rating" yaml:"rating"`
	Complexity string `mapstructure:"complexity" yaml:"complexity"`
	Year       string `mapstructure:"year" yaml:"year"`
	Mechanics  string `mapstructure:"mechanics" yaml:"mechanics"`
	Domains    string `mapstructure:"domains" yaml:"domains"`
}

// Global configuration structure.
type Global struct {
	InputDelimiter  string   `mapstructure:"input_delimiter" yaml:"input_delimiter"`
	OutputDelimiter string   `mapstructure:"output_delimiter" yaml:"output_delimiter"`
	Columns         Columns  `mapstructure:"columns" yaml:"columns"`
	NumericColumns  []string `mapstructure:"numeric_columns" yaml:"numeric_columns"`
}

// Default returns the built-in configuration, used when no config file or
// environment overrides are present.
func Default() *Global {
	return &Global{
		InputDelimiter:  ";",
		OutputDelimiter: "\t",
		Columns: Columns{
			ID:         "/ID",
			Rating:     "Rating Average",
			Complexity: "Complexity Average",
			Year:       "Year Published",
			Mechanics:  "Mechanics",
			Domains:    "Domains",
		},
		NumericColumns: []string{"Rating Average", "Complexity Average"},
	}
}

// RequiredColumns lists every logical name the analyze operation resolves.
func (g *Global) RequiredColumns() []string {
	return []string{
		g.Columns.ID,
		g.Columns.Rating,
		g.Columns.Complexity,
		g.Columns.Year,
		g.Columns.Mechanics,
		g.Columns.Domains,
	}
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.tabloom/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".tabloom")
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("TABLOOM")
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("input_delimiter", def.InputDelimiter)
	v.SetDefault("output_delimiter", def.OutputDelimiter)
	v.SetDefault("columns.id", def.Columns.ID)
	v.SetDefault("columns.rating", def.Columns.Rating)
	v.SetDefault("columns.complexity", def.Columns.Complexity)
	v.SetDefault("columns.year", def.Columns.Year)
	v.SetDefault("columns.mechanics", def.Columns.Mechanics)
	v.SetDefault("columns.domains", def.Columns.Domains)
	v.SetDefault("numeric_columns", def.NumericColumns)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".tabloom")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
