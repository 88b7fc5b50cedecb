package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/blogindex/internal/config"
)

// LogLevelEnv overrides the configured log level when set.
const LogLevelEnv = "BLOGINDEX_LOG_LEVEL"

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"blogindex.yaml" env:"BLOGINDEX_CONFIG"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" default:"withargs" help:"Generate the blog index if any source changed (default)"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`
	Watch    WatchCmd    `cmd:"" help:"Regenerate the index whenever the source directory changes"`
	Show     ShowCmd     `cmd:"" help:"Summarize an existing index"`
}

// AfterApply runs after flag parsing and installs the bootstrap logger. The
// configured level and format take over once a command loads its config.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	slog.SetDefault(newLogger(os.Stderr, c.logLevel(config.LogLevelInfo), config.LogFormatText))
	return nil
}

// configureLogging replaces the default logger using cfg.Logging, keeping
// --verbose and the environment override on top.
func (c *CLI) configureLogging(cfg *config.Config) {
	slog.SetDefault(newLogger(os.Stderr, c.logLevel(cfg.Logging.Level), cfg.Logging.Format))
}

func (c *CLI) logLevel(configured config.LogLevel) slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	if env := os.Getenv(LogLevelEnv); env != "" {
		return config.NormalizeLogLevel(env).SlogLevel()
	}
	return configured.SlogLevel()
}

func newLogger(w io.Writer, level slog.Level, format config.LogFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// PathFlags override the location settings of the configuration file.
type PathFlags struct {
	Source         string `name:"source" short:"s" help:"Markdown source directory"`
	DataFile       string `name:"data-file" short:"o" help:"Path of the generated JSON index"`
	AssetDirectory string `name:"asset-dir" help:"Directory receiving relocated images"`
	AssetURLPrefix string `name:"asset-prefix" help:"Public URL prefix of relocated images"`
}

func (p PathFlags) apply(cfg *config.Config) {
	if p.Source != "" {
		cfg.Source.Directory = p.Source
	}
	if p.DataFile != "" {
		cfg.Output.DataFile = p.DataFile
	}
	if p.AssetDirectory != "" {
		cfg.Output.AssetDirectory = p.AssetDirectory
	}
	if p.AssetURLPrefix != "" {
		cfg.Output.AssetURLPrefix = p.AssetURLPrefix
	}
}

// LoadConfig reads the configuration file, applies flag overrides and
// revalidates the result.
func LoadConfig(path string, flags PathFlags) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	flags.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
