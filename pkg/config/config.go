// Package config defines the file-based configuration for the CSV engine
// and its CLI. Configs load from YAML with ${VAR} environment substitution.
package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tabular-dev/tabular/pkg/csv"
	"github.com/tabular-dev/tabular/pkg/logger"
	"github.com/tabular-dev/tabular/pkg/taberrors"
)

// Config holds the dialect, parsing, and logging settings shared by the
// reader, the writer, and the CLI.
type Config struct {
	// Delimiter is the field separator. Defaults to a comma.
	Delimiter string `yaml:"delimiter" json:"delimiter"`
	// Quote is the quoting character. Defaults to a double quote.
	Quote string `yaml:"quote" json:"quote"`
	// LineTerminator for output, "\n" or "\r\n". Defaults to "\n".
	LineTerminator string `yaml:"line_terminator" json:"line_terminator"`
	// NAStrings are the tokens treated as missing values on input.
	// Defaults to the empty string.
	NAStrings []string `yaml:"na_strings" json:"na_strings"`
	// NoHeader treats the first input record as data.
	NoHeader bool `yaml:"no_header" json:"no_header"`
	// FillMissing pads short rows with NA instead of failing.
	FillMissing bool `yaml:"fill_missing" json:"fill_missing"`
	// Threads caps parse and serialize parallelism. Zero means one
	// task per CPU.
	Threads int `yaml:"threads" json:"threads"`

	Log LogConfig `yaml:"log" json:"log"`
}

// LogConfig configures the engine's structured logger.
type LogConfig struct {
	Level       string   `yaml:"level" json:"level"`
	Development bool     `yaml:"development" json:"development"`
	Encoding    string   `yaml:"encoding" json:"encoding"`
	OutputPaths []string `yaml:"output_paths" json:"output_paths"`
}

// New returns a Config with default settings.
func New() *Config {
	return &Config{
		Delimiter:      ",",
		Quote:          `"`,
		LineTerminator: "\n",
		NAStrings:      []string{""},
		Log: LogConfig{
			Level:    "info",
			Encoding: "json",
		},
	}
}

// Validate checks constraints that yaml decoding cannot express.
func (c *Config) Validate() error {
	if len(c.Delimiter) != 1 {
		return taberrors.Newf(taberrors.ErrorTypeConfig,
			"delimiter must be a single byte, got %q", c.Delimiter)
	}
	if len(c.Quote) != 1 {
		return taberrors.Newf(taberrors.ErrorTypeConfig,
			"quote must be a single byte, got %q", c.Quote)
	}
	if c.LineTerminator != "\n" && c.LineTerminator != "\r\n" {
		return taberrors.Newf(taberrors.ErrorTypeConfig,
			"line terminator must be \\n or \\r\\n, got %q", c.LineTerminator)
	}
	if c.Threads < 0 {
		return taberrors.Newf(taberrors.ErrorTypeConfig,
			"threads must be non-negative, got %d", c.Threads)
	}
	return nil
}

// ReadOptions converts the config into reader options.
func (c *Config) ReadOptions() csv.ReadOptions {
	return csv.ReadOptions{
		Delimiter:   c.Delimiter[0],
		Quote:       c.Quote[0],
		NAStrings:   c.NAStrings,
		NoHeader:    c.NoHeader,
		FillMissing: c.FillMissing,
		Threads:     c.Threads,
	}
}

// WriteOptions converts the config into writer options.
func (c *Config) WriteOptions() csv.WriteOptions {
	return csv.WriteOptions{
		Delimiter:      c.Delimiter[0],
		Quote:          c.Quote[0],
		LineTerminator: c.LineTerminator,
		Threads:        c.Threads,
	}
}

// LoggerConfig converts the log section into logger options.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:       c.Log.Level,
		Development: c.Log.Development,
		Encoding:    c.Log.Encoding,
		OutputPaths: c.Log.OutputPaths,
	}
}

// LoadFile reads a YAML config from path, substituting ${VAR} references
// with environment variable values before decoding, and validates it.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, taberrors.Wrap(err, taberrors.ErrorTypeFile, "failed to read config file").
			WithDetail("path", path)
	}

	cfg := New()
	content := substituteEnvVars(string(data))
	if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
		return nil, taberrors.Wrap(err, taberrors.ErrorTypeConfig, "failed to parse config").
			WithDetail("path", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
func substituteEnvVars(content string) string {
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.Index(content[start:], "}")
		if end == -1 {
			break
		}
		end += start

		content = content[:start] + os.Getenv(content[start+2:end]) + content[end+1:]
	}
	return content
}
