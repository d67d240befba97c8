package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/datacleaner-cli/internal/cleaning"
)

// EnvPrefix is prepended to every key when read from the environment.
const EnvPrefix = "DATACLEANER"

// Global configuration structure.
type Global struct {
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	ChunkSize int    `mapstructure:"chunk_size" yaml:"chunk_size"`

	// Cleaning defaults, overridable per run with clean flags.
	HandleMissing      string `mapstructure:"handle_missing" yaml:"handle_missing"`
	CustomFillValue    string `mapstructure:"custom_fill_value" yaml:"custom_fill_value"`
	HandleDuplicates   string `mapstructure:"handle_duplicates" yaml:"handle_duplicates"`
	StandardizeDates   bool   `mapstructure:"standardize_dates" yaml:"standardize_dates"`
	DateFormat         string `mapstructure:"date_format" yaml:"date_format"`
	StandardizeNumbers bool   `mapstructure:"standardize_numbers" yaml:"standardize_numbers"`
	TrimWhitespace     bool   `mapstructure:"trim_whitespace" yaml:"trim_whitespace"`
	StandardizeCase    string `mapstructure:"standardize_case" yaml:"standardize_case"`
	RemoveSpecialChars bool   `mapstructure:"remove_special_chars" yaml:"remove_special_chars"`
	HandleOutliers     string `mapstructure:"handle_outliers" yaml:"handle_outliers"`
	OutlierMethod      string `mapstructure:"outlier_method" yaml:"outlier_method"`
	EncodeCategories   bool   `mapstructure:"encode_categories" yaml:"encode_categories"`
	EncodingMethod     string `mapstructure:"encoding_method" yaml:"encoding_method"`
	EnforceSchema      bool   `mapstructure:"enforce_schema" yaml:"enforce_schema"`
}

// Keys lists every configuration key in display order.
var Keys = []string{
	"log_level", "output_dir", "chunk_size",
	"handle_missing", "custom_fill_value", "handle_duplicates",
	"standardize_dates", "date_format", "standardize_numbers",
	"trim_whitespace", "standardize_case", "remove_special_chars",
	"handle_outliers", "outlier_method", "encode_categories",
	"encoding_method", "enforce_schema",
}

func setDefaults(v *viper.Viper) {
	def := cleaning.DefaultOptions()
	v.SetDefault("log_level", "info")
	v.SetDefault("output_dir", ".")
	v.SetDefault("chunk_size", 0)

	v.SetDefault("handle_missing", string(def.HandleMissing))
	v.SetDefault("custom_fill_value", def.CustomFillValue)
	v.SetDefault("handle_duplicates", string(def.HandleDuplicates))
	v.SetDefault("standardize_dates", def.StandardizeDates)
	v.SetDefault("date_format", string(def.DateFormat))
	v.SetDefault("standardize_numbers", def.StandardizeNumbers)
	v.SetDefault("trim_whitespace", def.TrimWhitespace)
	v.SetDefault("standardize_case", string(def.StandardizeCase))
	v.SetDefault("remove_special_chars", def.RemoveSpecialChars)
	v.SetDefault("handle_outliers", string(def.HandleOutliers))
	v.SetDefault("outlier_method", string(def.OutlierMethod))
	v.SetDefault("encode_categories", def.EncodeCategories)
	v.SetDefault("encoding_method", string(def.EncodingMethod))
	v.SetDefault("enforce_schema", def.EnforceSchema)
}

// Default returns the built-in configuration, ignoring files and env.
func Default() *Global {
	v := viper.New()
	setDefaults(v)
	var c Global
	_ = v.Unmarshal(&c)
	return &c
}

// Dir returns ~/.datacleaner.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".datacleaner"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.datacleaner/config.yaml, creating the directory if necessary.
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

// LoadEnvFile loads KEY=VALUE pairs into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile, envFile string) (*Global, error) {
	if err := LoadEnvFile(envFile); err != nil {
		return nil, err
	}
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	setDefaults(v)

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
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// CleaningOptions maps the configured cleaning defaults.
func (c *Global) CleaningOptions() cleaning.Options {
	return cleaning.Options{
		HandleMissing:      cleaning.MissingStrategy(c.HandleMissing),
		CustomFillValue:    c.CustomFillValue,
		HandleDuplicates:   cleaning.DuplicateStrategy(c.HandleDuplicates),
		StandardizeDates:   c.StandardizeDates,
		DateFormat:         cleaning.DateFormat(c.DateFormat),
		StandardizeNumbers: c.StandardizeNumbers,
		TrimWhitespace:     c.TrimWhitespace,
		StandardizeCase:    cleaning.CaseStyle(c.StandardizeCase),
		RemoveSpecialChars: c.RemoveSpecialChars,
		HandleOutliers:     cleaning.OutlierAction(c.HandleOutliers),
		OutlierMethod:      cleaning.OutlierMethod(c.OutlierMethod),
		EncodeCategories:   c.EncodeCategories,
		EncodingMethod:     cleaning.EncodingMethod(c.EncodingMethod),
		EnforceSchema:      c.EnforceSchema,
	}
}

// Set assigns one key from its string form. Numeric and boolean keys are
// converted with cast; enumerated cleaning keys are validated.
func (c *Global) Set(key, val string) error {
	next := *c
	switch key {
	case "log_level":
		next.LogLevel = val
	case "output_dir":
		next.OutputDir = val
	case "chunk_size":
		i, err := cast.ToIntE(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for %s: %v", key, val)
		}
		next.ChunkSize = i
	case "standardize_dates", "standardize_numbers", "trim_whitespace",
		"remove_special_chars", "encode_categories", "enforce_schema":
		b, err := cast.ToBoolE(val)
		if err != nil {
			return fmt.Errorf("invalid bool for %s: %v", key, val)
		}
		*next.boolField(key) = b
	case "handle_missing":
		next.HandleMissing = val
	case "custom_fill_value":
		next.CustomFillValue = val
	case "handle_duplicates":
		next.HandleDuplicates = val
	case "date_format":
		next.DateFormat = val
	case "standardize_case":
		next.StandardizeCase = val
	case "handle_outliers":
		next.HandleOutliers = val
	case "outlier_method":
		next.OutlierMethod = val
	case "encoding_method":
		next.EncodingMethod = val
	default:
		return fmt.Errorf("unknown key: %s (known: %s)", key, strings.Join(Keys, ", "))
	}
	if err := next.CleaningOptions().Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

func (c *Global) boolField(key string) *bool {
	switch key {
	case "standardize_dates":
		return &c.StandardizeDates
	case "standardize_numbers":
		return &c.StandardizeNumbers
	case "trim_whitespace":
		return &c.TrimWhitespace
	case "remove_special_chars":
		return &c.RemoveSpecialChars
	case "encode_categories":
		return &c.EncodeCategories
	default:
		return &c.EnforceSchema
	}
}
