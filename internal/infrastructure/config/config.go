package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. LABEL_PRINTER_ENABLED
const EnvPrefix = "LABEL"

// Config holds all application configuration
type Config struct {
	App     AppConfig
	Log     LogConfig
	Label   LabelConfig
	Printer PrinterConfig
	HTTP    HTTPConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// LabelConfig holds label rendering and output settings
type LabelConfig struct {
	OutputDir     string // folder receiving the generated PDFs
	RetentionDays int    // prune label PDFs older than this at startup; 0 keeps everything
	Compress      bool   // compress PDF content streams
}

// PrinterConfig holds print dispatch settings
type PrinterConfig struct {
	Enabled     bool          // false only saves the PDF
	Command     string        // line-printer submission command on non-Windows systems
	Destination string        // optional printer name; empty uses the system default
	Timeout     time.Duration // upper bound for the submission command
}

// HTTPConfig holds settings for the web form server
type HTTPConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	MaxBodySize  int64
}

// Load loads configuration from a TOML file, .env and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with LABEL_ prefix (e.g., LABEL_PRINTER_COMMAND)
// 2. .env in the working directory
// 3. configFile, or config.toml found in "." when configFile is empty
// 4. Built-in defaults
func Load(configFile string) (*Config, error) {
	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file is fine: defaults and env vars apply.
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Booleans whose default is true cannot be told apart from "unset" after the fact.
	v.SetDefault("label.compress", true)
	v.SetDefault("printer.enabled", true)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Label: LabelConfig{
			OutputDir:     v.GetString("label.output_dir"),
			RetentionDays: v.GetInt("label.retention_days"),
			Compress:      v.GetBool("label.compress"),
		},
		Printer: PrinterConfig{
			Enabled:     v.GetBool("printer.enabled"),
			Command:     v.GetString("printer.command"),
			Destination: v.GetString("printer.destination"),
			Timeout:     v.GetDuration("printer.timeout"),
		},
		HTTP: HTTPConfig{
			Addr:         v.GetString("http.addr"),
			ReadTimeout:  v.GetDuration("http.read_timeout"),
			WriteTimeout: v.GetDuration("http.write_timeout"),
			IdleTimeout:  v.GetDuration("http.idle_timeout"),
			MaxBodySize:  v.GetInt64("http.max_body_size"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "label-printer"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "production"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "debug"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "label_print_log.txt"
	}
	if cfg.Label.OutputDir == "" {
		cfg.Label.OutputDir = "output_pdfs"
	}
	if cfg.Printer.Command == "" {
		cfg.Printer.Command = "lp"
	}
	if cfg.Printer.Timeout == 0 {
		cfg.Printer.Timeout = 30 * time.Second
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = "127.0.0.1:8080"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		// Covers render plus a blocking lp call.
		cfg.HTTP.WriteTimeout = cfg.Printer.Timeout + 15*time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 64 << 10 // 64KB
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	if c.Label.RetentionDays < 0 {
		return fmt.Errorf("label.retention_days cannot be negative")
	}
	if c.Printer.Timeout < 0 {
		return fmt.Errorf("printer.timeout cannot be negative")
	}
	if strings.ContainsAny(c.Printer.Destination, " \t\n") {
		return fmt.Errorf("printer.destination must be a single printer name")
	}
	if c.HTTP.MaxBodySize < 0 {
		return fmt.Errorf("http.max_body_size cannot be negative")
	}
	return nil
}

// IsDevelopment returns true when running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// Retention returns the label retention as a duration; zero disables pruning
func (c LabelConfig) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}
