package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyOutputDir               = "output.dir"
	KeyConvertJobs             = "convert.jobs"
	KeyConvertKeepGoing        = "convert.keep_going"
	KeyRenderEmptyMessage      = "render.empty_message"
	KeyRenderSearchPlaceholder = "render.search_placeholder"
	KeyXLSCharset              = "xls.charset"
	KeyLogLevel                = "log.level"
)

type Config struct {
	Output  OutputConfig  `mapstructure:"output"`
	Convert ConvertConfig `mapstructure:"convert"`
	Render  RenderConfig  `mapstructure:"render"`
	XLS     XLSConfig     `mapstructure:"xls"`
	Log     LogConfig     `mapstructure:"log"`
}

type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

type ConvertConfig struct {
	Jobs      int  `mapstructure:"jobs" validate:"min=1,max=64"`
	KeepGoing bool `mapstructure:"keep_going"`
}

// Validate checks c against the same bounds a config file is held to, so
// values merged from flags cannot bypass them.
func (c ConvertConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid convert settings: %w", err)
	}
	return nil
}

type RenderConfig struct {
	EmptyMessage      string `mapstructure:"empty_message" validate:"required"`
	SearchPlaceholder string `mapstructure:"search_placeholder" validate:"required"`
}

type XLSConfig struct {
	Charset string `mapstructure:"charset" validate:"required"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
}

// SlogLevel maps the configured level name to a slog level.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.Level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
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
	return ExampleYAMLWithOutputDir("")
}

// ExampleYAMLWithOutputDir returns the template with output.dir preset.
func ExampleYAMLWithOutputDir(dir string) string {
	return `# xlsxweb configuration
output:
  # default output directory; empty writes next to each input file
  dir: ` + strconv.Quote(dir) + `

convert:
  jobs: 1
  keep_going: false

render:
  empty_message: "No data"
  search_placeholder: "Search..."

xls:
  charset: "utf-8"

log:
  level: "info"
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyOutputDir, "")
	v.SetDefault(KeyConvertJobs, 1)
	v.SetDefault(KeyConvertKeepGoing, false)
	v.SetDefault(KeyRenderEmptyMessage, "No data")
	v.SetDefault(KeyRenderSearchPlaceholder, "Search...")
	v.SetDefault(KeyXLSCharset, "utf-8")
	v.SetDefault(KeyLogLevel, "info")
}
