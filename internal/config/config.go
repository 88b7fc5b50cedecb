// Package config loads the blogindex YAML configuration.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/blogindex/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "blogindex.yaml"

// Config is the complete configuration.
type Config struct {
	Source    SourceConfig    `yaml:"source"`
	Output    OutputConfig    `yaml:"output"`
	Render    RenderConfig    `yaml:"render"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Watch     WatchConfig     `yaml:"watch"`
	Notify    NotifyConfig    `yaml:"notify"`
	Bootstrap BootstrapConfig `yaml:"bootstrap"`
}

// SourceConfig locates the markdown documents.
type SourceConfig struct {
	Directory string `yaml:"directory"`
	Extension string `yaml:"extension"`
}

// OutputConfig locates the generated index and the public assets.
type OutputConfig struct {
	DataFile       string `yaml:"data_file"`
	AssetDirectory string `yaml:"asset_directory"`
	AssetURLPrefix string `yaml:"asset_url_prefix"`
}

// RenderConfig controls the optional html field.
type RenderConfig struct {
	Enabled        bool   `yaml:"enabled"`
	HighlightStyle string `yaml:"highlight_style"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig exposes Prometheus metrics in watch mode.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
}

// WatchConfig tunes the watch command.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
	Interval time.Duration `yaml:"interval"`
}

// NotifyConfig enables NATS notifications when NATSURL is set.
type NotifyConfig struct {
	NATSURL      string           `yaml:"nats_url"`
	Subject      string           `yaml:"subject"`
	Retries      int              `yaml:"retries"`
	RetryBackoff RetryBackoffMode `yaml:"retry_backoff"`
	RetryInitial time.Duration    `yaml:"retry_initial"`
	RetryMax     time.Duration    `yaml:"retry_max"`
}

// BootstrapConfig controls sample post creation.
type BootstrapConfig struct {
	Samples bool `yaml:"samples"`
}

// Load reads path on top of the defaults. .env files are loaded first and
// ${VAR} references in the file are expanded. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	cfg := Default()
	// #nosec G304 - configuration path is operator supplied
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("Configuration file not found, using defaults", "path", path)
		return cfg, nil
	}
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "read configuration").
			WithContext("path", path).
			Fatal().
			Build()
	}

	if err := decode(data, cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "parse configuration").
			WithContext("path", path).
			Fatal().
			Build()
	}
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
	cfg.Notify.RetryBackoff = NormalizeRetryBackoff(string(cfg.Notify.RetryBackoff))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader([]byte(os.ExpandEnv(string(data)))))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
