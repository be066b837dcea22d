package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/cubeloom-cli/internal/errs"
)

// Global configuration structure.
type Global struct {
	DefaultRows    string `mapstructure:"default_rows" yaml:"default_rows" json:"default_rows"`
	DefaultColumns string `mapstructure:"default_columns" yaml:"default_columns" json:"default_columns"`
	DefaultGroupBy string `mapstructure:"default_group_by" yaml:"default_group_by" json:"default_group_by"`
	DefaultField   string `mapstructure:"default_field" yaml:"default_field" json:"default_field"`
	PercentOf      string `mapstructure:"percent_of" yaml:"percent_of" json:"percent_of"`
	Weighting      string `mapstructure:"weighting" yaml:"weighting" json:"weighting"`

	// Output
	OutputFormat string `mapstructure:"output_format" yaml:"output_format" json:"output_format"`
	ExportName   string `mapstructure:"export_name" yaml:"export_name" json:"export_name"`

	BatchJobs int    `mapstructure:"batch_jobs" yaml:"batch_jobs" json:"batch_jobs"`
	LogLevel  string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
}

// Keys lists the settable configuration keys in display order.
var Keys = []string{
	"default_rows", "default_columns", "default_group_by", "default_field",
	"percent_of", "weighting", "output_format", "export_name", "batch_jobs", "log_level",
}

// Defaults returns the built-in settings used when no file or environment value applies.
func Defaults() *Global {
	return &Global{
		DefaultRows:    "Type",
		DefaultColumns: "Color Identity",
		DefaultGroupBy: "Color",
		DefaultField:   "Mana Value",
		PercentOf:      "total",
		Weighting:      "count",
		OutputFormat:   "text",
		ExportName:     "export.csv",
		BatchJobs:      4,
		LogLevel:       "warn",
	}
}

// Dir returns ~/.cubeloom.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".cubeloom"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.cubeloom/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("CUBELOOM")
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("default_rows", d.DefaultRows)
	v.SetDefault("default_columns", d.DefaultColumns)
	v.SetDefault("default_group_by", d.DefaultGroupBy)
	v.SetDefault("default_field", d.DefaultField)
	v.SetDefault("percent_of", d.PercentOf)
	v.SetDefault("weighting", d.Weighting)
	v.SetDefault("output_format", d.OutputFormat)
	v.SetDefault("export_name", d.ExportName)
	v.SetDefault("batch_jobs", d.BatchJobs)
	v.SetDefault("log_level", d.LogLevel)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
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
	if c.BatchJobs < 1 {
		c.BatchJobs = 1
	}
	return &c, nil
}

// Set assigns a configuration key from its string form.
func (c *Global) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch strings.ToLower(key) {
	case "default_rows":
		c.DefaultRows = value
	case "default_columns":
		c.DefaultColumns = value
	case "default_group_by":
		c.DefaultGroupBy = value
	case "default_field":
		c.DefaultField = value
	case "percent_of":
		c.PercentOf = value
	case "weighting":
		c.Weighting = value
	case "output_format":
		c.OutputFormat = value
	case "export_name":
		c.ExportName = value
	case "batch_jobs":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return errs.Config("batch_jobs", "must be a positive integer")
		}
		c.BatchJobs = n
	case "log_level":
		c.LogLevel = value
	default:
		return errs.Config(key, "unknown key (valid: "+strings.Join(Keys, ", ")+")")
	}
	return nil
}

// Get returns a configuration value in its string form.
func (c *Global) Get(key string) (string, bool) {
	switch strings.ToLower(key) {
	case "default_rows":
		return c.DefaultRows, true
	case "default_columns":
		return c.DefaultColumns, true
	case "default_group_by":
		return c.DefaultGroupBy, true
	case "default_field":
		return c.DefaultField, true
	case "percent_of":
		return c.PercentOf, true
	case "weighting":
		return c.Weighting, true
	case "output_format":
		return c.OutputFormat, true
	case "export_name":
		return c.ExportName, true
	case "batch_jobs":
		return strconv.Itoa(c.BatchJobs), true
	case "log_level":
		return c.LogLevel, true
	}
	return "", false
}
