package config

import (
	"strings"

	ferrors "git.home.luguber.info/inful/blogindex/internal/foundation/errors"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Source.Directory) == "":
		return invalid("source.directory", "must not be empty")
	case !strings.HasPrefix(c.Source.Extension, ".") || len(c.Source.Extension) < 2:
		return invalid("source.extension", "must start with a dot, e.g. .md")
	case strings.TrimSpace(c.Output.DataFile) == "":
		return invalid("output.data_file", "must not be empty")
	case strings.TrimSpace(c.Output.AssetDirectory) == "":
		return invalid("output.asset_directory", "must not be empty")
	case !strings.HasPrefix(c.Output.AssetURLPrefix, "/"):
		return invalid("output.asset_url_prefix", "must start with /")
	case c.Watch.Debounce <= 0:
		return invalid("watch.debounce", "must be positive")
	case c.Watch.Interval < 0:
		return invalid("watch.interval", "must not be negative")
	case c.Metrics.Enabled && strings.TrimSpace(c.Metrics.Address) == "":
		return invalid("metrics.address", "required when metrics are enabled")
	case c.Notify.Retries < 0:
		return invalid("notify.retries", "must not be negative")
	case c.Notify.RetryInitial < 0 || c.Notify.RetryMax < 0:
		return invalid("notify.retry_initial", "durations must not be negative")
	}
	return nil
}

func invalid(field, reason string) error {
	return ferrors.ValidationError("invalid configuration: "+field+" "+reason).
		WithContext("field", field).
		Build()
}
