package config

import "time"

// Default returns the built-in configuration: posts/*.md indexed into
// public/blog_data.json with images under public/images served at /images.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Directory: "posts",
			Extension: ".md",
		},
		Output: OutputConfig{
			DataFile:       "public/blog_data.json",
			AssetDirectory: "public/images",
			AssetURLPrefix: "/images",
		},
		Render: RenderConfig{
			HighlightStyle: "github",
		},
		Logging: LoggingConfig{
			Level:  LogLevelInfo,
			Format: LogFormatText,
		},
		Metrics: MetricsConfig{
			Address: ":9464",
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
			Interval: time.Minute,
		},
		Notify: NotifyConfig{
			Subject:      "blogindex.generated",
			Retries:      2,
			RetryBackoff: RetryBackoffLinear,
			RetryInitial: 500 * time.Millisecond,
			RetryMax:     5 * time.Second,
		},
		Bootstrap: BootstrapConfig{
			Samples: true,
		},
	}
}
