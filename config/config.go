package config

import (
	"bytes"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"strings"
)

const (
	KeyReportOutputDir         = "report.output_dir"
	KeyReportWindowDays        = "report.window_days"
	KeyReportHighlightCount    = "report.highlight_count"
	KeyReportEfficiencyAxisMax = "report.efficiency_axis_max"
	KeyStorageEnabled          = "storage.enabled"
	KeyStorageDBPath           = "storage.db_path"
	KeyLogLevel                = "log.level"
)

const (
	DefaultOutputDir         = "."
	DefaultWindowDays        = 30
	DefaultHighlightCount    = 5
	DefaultEfficiencyAxisMax = 2.2
	DefaultDBPath            = "./shiftstat.db"
	DefaultLogLevel          = "warn"
)

type Config struct {
	Report  ReportConfig  `mapstructure:"report"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
}

type ReportConfig struct {
	OutputDir         string  `mapstructure:"output_dir" validate:"required"`
	WindowDays        int     `mapstructure:"window_days" validate:"gte=1"`
	HighlightCount    int     `mapstructure:"highlight_count" validate:"gte=0"`
	EfficiencyAxisMax float64 `mapstructure:"efficiency_axis_max" validate:"gt=0"`
}

type StorageConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DBPath  string `mapstructure:"db_path"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn warning error"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# shiftstat configuration
report:
  output_dir: "."
  window_days: 30
  highlight_count: 5
  efficiency_axis_max: 2.2

storage:
  enabled: false
  db_path: "./shiftstat.db"

log:
  level: "warn"
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Report.OutputDir = strings.TrimSpace(cfg.Report.OutputDir)
	cfg.Storage.DBPath = strings.TrimSpace(cfg.Storage.DBPath)

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateStorage(cfg.Storage); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyReportOutputDir, DefaultOutputDir)
	v.SetDefault(KeyReportWindowDays, DefaultWindowDays)
	v.SetDefault(KeyReportHighlightCount, DefaultHighlightCount)
	v.SetDefault(KeyReportEfficiencyAxisMax, DefaultEfficiencyAxisMax)
	v.SetDefault(KeyStorageEnabled, false)
	v.SetDefault(KeyStorageDBPath, DefaultDBPath)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
}

func validateStorage(storage StorageConfig) error {
	if !storage.Enabled {
		return nil
	}
	if storage.DBPath == "" {
		return fmt.Errorf("validation failed: storage.db_path is required when storage.enabled is true")
	}
	if !strings.HasSuffix(strings.ToLower(storage.DBPath), ".db") {
		return fmt.Errorf("validation failed: storage.db_path %q must end with .db", storage.DBPath)
	}
	return nil
}
